// Package httpapi wires the HTTP surface: auth, todos, admin, user profile,
// and the books catalog.
package httpapi

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/mplata/go-todos/internal/auth"
	"github.com/mplata/go-todos/internal/books"
	"github.com/mplata/go-todos/internal/metrics"
	"github.com/mplata/go-todos/internal/store"
)

// Deps carries everything the router needs.
type Deps struct {
	Auth      *auth.Authenticator
	Tokens    auth.TokenService
	Users     store.Users
	Todos     store.Todos
	Catalog   *books.Catalog
	Hasher    auth.Hasher
	Collector *metrics.Collector
	Logger    *slog.Logger
}

// New builds the fiber application with all routes registered.
func New(deps Deps) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})

	if deps.Collector != nil {
		app.Use(requestMetrics(deps.Collector))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Collector.Handler()))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	registerAuthRoutes(app, deps)
	registerTodoRoutes(app, deps)
	registerAdminRoutes(app, deps)
	registerUserRoutes(app, deps)
	registerBookRoutes(app, deps.Catalog)

	return app
}

// errorHandler maps the rich error taxonomy onto HTTP statuses. Every error
// body has the same shape: {"detail": <message>}.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred")
		}

		status := statusFor(richErr)

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"error", richErr.Message,
				"category", string(richErr.Category),
				"path", c.Path(),
				"details", print.MaybePrettyJSON(richErr.Metadata),
			)
		}

		body := fiber.Map{"detail": richErr.Message}
		if status == fiber.StatusUnprocessableEntity && richErr.Metadata != nil {
			body["errors"] = richErr.Metadata
		}

		return c.Status(status).JSON(body)
	}
}

func statusFor(err *errors.Error) int {
	if err.Code > 0 {
		return err.Code
	}

	switch err.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	case errors.CategoryValidation:
		return fiber.StatusUnprocessableEntity
	case errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func requestMetrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var richErr *errors.Error
			if errors.As(err, &richErr) {
				status = statusFor(richErr)
			}
		}
		collector.RecordRequest(c.Method(), c.Route().Path, status)
		return err
	}
}
