package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"

	"github.com/mplata/go-todos/internal/auth"
)

// passwordChangePayload is the change-password request body.
type passwordChangePayload struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

func (p passwordChangePayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.NewPassword, validation.Required, validation.Length(6, 72)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid password change payload")
	}
	return nil
}

func registerUserRoutes(app *fiber.App, deps Deps) {
	group := app.Group("/user", auth.Guard(deps.Tokens))

	group.Get("/", readProfile(deps))
	group.Put("/password", changePassword(deps))
	group.Put("/phonenumber/:number", changePhoneNumber(deps))
}

func readProfile(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		user, err := deps.Users.ByID(c.UserContext(), identity.UserID)
		if err != nil {
			return err
		}

		// PasswordHash is excluded by its json tag.
		return c.JSON(user)
	}
}

func changePassword(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		var payload passwordChangePayload
		if err := c.BodyParser(&payload); err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "could not parse request body").
				WithCode(errors.CodeBadRequest)
		}
		if err := payload.Validate(); err != nil {
			return err
		}

		user, err := deps.Users.ByID(c.UserContext(), identity.UserID)
		if err != nil {
			return err
		}

		if !deps.Hasher.VerifyPassword(payload.Password, user.PasswordHash) {
			return errors.New("error on password change", errors.CategoryAuth).
				WithCode(errors.CodeUnauthorized)
		}

		hash, err := deps.Hasher.HashPassword(payload.NewPassword)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
		}

		if err := deps.Users.UpdatePassword(c.UserContext(), user.ID, hash); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// changePhoneNumber validates and stores the new number. The number must be
// a possible phone number for the US region or carry an explicit +country
// prefix.
func changePhoneNumber(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}

		raw := c.Params("number")

		parsed, err := phonenumbers.Parse(raw, "US")
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			return errors.New("invalid phone number", errors.CategoryValidation)
		}

		formatted := phonenumbers.Format(parsed, phonenumbers.E164)

		if err := deps.Users.UpdatePhone(c.UserContext(), identity.UserID, formatted); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
