package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/mplata/go-todos/internal/auth"
)

// tokenResponse is the login response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func registerAuthRoutes(app *fiber.App, deps Deps) {
	group := app.Group("/auth")

	group.Post("/", createUser(deps))
	group.Post("/token", loginForAccessToken(deps))
}

func createUser(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload auth.RegisterPayload
		if err := c.BodyParser(&payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "could not parse request body").
				WithCode(errors.CodeBadRequest)
		}

		if _, err := deps.Auth.Register(c.UserContext(), payload); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusCreated)
	}
}

// loginForAccessToken handles the form-encoded login and returns a bearer
// token. Every failure is the same generic 401.
func loginForAccessToken(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.FormValue("username")
		password := c.FormValue("password")

		token, err := deps.Auth.Login(c.UserContext(), username, password)
		if err != nil {
			if deps.Collector != nil {
				deps.Collector.RecordLogin("failure")
			}
			return err
		}

		if deps.Collector != nil {
			deps.Collector.RecordLogin("success")
		}

		return c.JSON(tokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
