package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/mplata/go-todos/internal/books"
)

// The books routes serve the open, in-memory catalog: no auth, no database.
func registerBookRoutes(app *fiber.App, catalog *books.Catalog) {
	group := app.Group("/books")

	group.Get("/", func(c *fiber.Ctx) error {
		// ?book_rating= filters; without it the whole catalog comes back.
		if c.Query("book_rating") != "" {
			return c.JSON(catalog.ByRating(c.QueryInt("book_rating")))
		}
		return c.JSON(catalog.All())
	})

	group.Get("/publish/:rating<int>", func(c *fiber.Ctx) error {
		rating, err := c.ParamsInt("rating")
		if err != nil {
			return errors.New("rating must be an integer", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest)
		}
		return c.JSON(catalog.ByRating(rating))
	})

	group.Get("/:id<int>", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errors.New("id must be an integer", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest)
		}

		book, err := catalog.ByID(id)
		if err != nil {
			return err
		}
		return c.JSON(book)
	})

	group.Post("/create_book", func(c *fiber.Ctx) error {
		var payload books.BookPayload
		if err := c.BodyParser(&payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "could not parse request body").
				WithCode(errors.CodeBadRequest)
		}
		if err := payload.Validate(); err != nil {
			return err
		}

		book := catalog.Create(payload)
		return c.Status(fiber.StatusCreated).JSON(book)
	})

	group.Put("/update_book", func(c *fiber.Ctx) error {
		var payload books.BookPayload
		if err := c.BodyParser(&payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "could not parse request body").
				WithCode(errors.CodeBadRequest)
		}
		if err := payload.Validate(); err != nil {
			return err
		}

		book, err := catalog.Update(payload)
		if err != nil {
			return err
		}
		return c.JSON(book)
	})

	group.Delete("/:id<int>", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return errors.New("id must be an integer", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest)
		}

		if err := catalog.Delete(id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
