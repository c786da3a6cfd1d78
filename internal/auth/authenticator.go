package auth

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"

	"github.com/mplata/go-todos/internal/store"
)

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Validate enforces the registration contract. Failures surface as 422.
func (p RegisterPayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(3, 60)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.Surname, validation.Required),
		validation.Field(&p.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&p.Role, validation.Required, validation.By(validRole)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid registration payload")
	}
	return nil
}

func validRole(value any) error {
	role, _ := value.(string)
	if !store.ValidRole(role) {
		return errors.New("must be one of: user, admin", errors.CategoryValidation)
	}
	return nil
}

// Authenticator orchestrates credential verification and token issuance.
type Authenticator struct {
	users  store.Users
	hasher Hasher
	tokens TokenService
	logger *slog.Logger
}

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(users store.Users, hasher Hasher, tokens TokenService, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an active user record with a hashed password. Duplicate
// usernames or emails come back as a conflict from the store's unique index.
func (a *Authenticator) Register(ctx context.Context, payload RegisterPayload) (*store.User, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	hash, err := a.hasher.HashPassword(payload.Password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	record := &store.User{
		Username:     payload.Username,
		Email:        payload.Email,
		FirstName:    payload.FirstName,
		Surname:      payload.Surname,
		PasswordHash: hash,
		Role:         payload.Role,
		IsActive:     true,
	}

	created, err := a.users.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Login verifies the credentials and issues a bearer token. A missing user
// and a wrong password produce the identical error.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.users.ByUsername(ctx, username)
	if err != nil {
		if store.IsRecordNotFound(err) {
			return "", ErrAuthenticationFailed
		}
		a.logger.Error("login user lookup failed", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if !a.hasher.VerifyPassword(password, user.PasswordHash) {
		return "", ErrAuthenticationFailed
	}

	token, err := a.tokens.Issue(user.Username, user.ID)
	if err != nil {
		a.logger.Error("login token issuance failed", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return token, nil
}
