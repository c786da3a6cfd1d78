package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/mplata/go-todos/internal/auth"
	"github.com/mplata/go-todos/internal/store"
)

// todoPayload is the create/update request body.
type todoPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

func (p todoPayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(3, 0)),
		validation.Field(&p.Description, validation.Required, validation.Length(3, 100)),
		validation.Field(&p.Priority, validation.Required, validation.Min(1), validation.Max(5)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid todo payload")
	}
	return nil
}

func registerTodoRoutes(app *fiber.App, deps Deps) {
	group := app.Group("/todos", auth.Guard(deps.Tokens))

	group.Get("/", listTodos(deps))
	group.Get("/todo/:id", readTodo(deps))
	group.Post("/todo", createTodo(deps))
	group.Put("/todo/:id", updateTodo(deps))
	group.Delete("/todo/:id", deleteTodo(deps))
}

func listTodos(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		records, err := deps.Todos.ByOwner(c.UserContext(), identity.UserID)
		if err != nil {
			return err
		}

		return c.JSON(records)
	}
}

func readTodo(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		id, err := pathID(c)
		if err != nil {
			return err
		}

		record, err := deps.Todos.ByIDForOwner(c.UserContext(), id, identity.UserID)
		if err != nil {
			if store.IsRecordNotFound(err) {
				return todoNotFound()
			}
			return err
		}

		return c.JSON(record)
	}
}

func createTodo(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		var payload todoPayload
		if err := c.BodyParser(&payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "could not parse request body").
				WithCode(errors.CodeBadRequest)
		}
		if err := payload.Validate(); err != nil {
			return err
		}

		record := &store.Todo{
			Title:       payload.Title,
			Description: payload.Description,
			Priority:    payload.Priority,
			Complete:    payload.Complete,
			OwnerID:     identity.UserID,
		}

		if _, err := deps.Todos.Create(c.UserContext(), record); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

func updateTodo(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		id, err := pathID(c)
		if err != nil {
			return err
		}

		var payload todoPayload
		if err := c.BodyParser(&payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "could not parse request body").
				WithCode(errors.CodeBadRequest)
		}
		if err := payload.Validate(); err != nil {
			return err
		}

		record := &store.Todo{
			ID:          id,
			Title:       payload.Title,
			Description: payload.Description,
			Priority:    payload.Priority,
			Complete:    payload.Complete,
			OwnerID:     identity.UserID,
		}

		if err := deps.Todos.Update(c.UserContext(), record); err != nil {
			if store.IsRecordNotFound(err) {
				return todoNotFound()
			}
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func deleteTodo(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		id, err := pathID(c)
		if err != nil {
			return err
		}

		if err := deps.Todos.DeleteForOwner(c.UserContext(), id, identity.UserID); err != nil {
			if store.IsRecordNotFound(err) {
				return todoNotFound()
			}
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return int64(id), nil
}

func todoNotFound() error {
	return errors.New("todo not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound)
}
