package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mplata/go-todos/internal/auth"
	"github.com/mplata/go-todos/internal/store"
)

func registerAdminRoutes(app *fiber.App, deps Deps) {
	group := app.Group("/admin",
		auth.Guard(deps.Tokens),
		auth.RequireRole(deps.Users, store.RoleAdmin),
	)

	group.Get("/todo", adminListTodos(deps))
	group.Delete("/todo/:id", adminDeleteTodo(deps))
}

func adminListTodos(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := deps.Todos.All(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(records)
	}
}

func adminDeleteTodo(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		if err := deps.Todos.Delete(c.UserContext(), id); err != nil {
			if store.IsRecordNotFound(err) {
				return todoNotFound()
			}
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
