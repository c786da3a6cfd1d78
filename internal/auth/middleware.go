package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/mplata/go-todos/internal/store"
)

const (
	// ContextKey is the fiber Locals key the guard stores the identity under.
	ContextKey = "identity"
	// CookieName is the cookie page routes present tokens in.
	CookieName = "access_token"

	authScheme = "Bearer"
	authHeader = "Authorization"
)

// TokenExtractor pulls a raw token out of a request.
type TokenExtractor func(c *fiber.Ctx) (string, error)

// FromAuthHeader extracts a bearer token from the Authorization header.
func FromAuthHeader(c *fiber.Ctx) (string, error) {
	raw := c.Get(authHeader)
	l := len(authScheme)
	if len(raw) > l+1 && strings.EqualFold(raw[:l], authScheme) {
		return strings.TrimSpace(raw[l:]), nil
	}
	return "", ErrTokenInvalid
}

// FromCookie extracts a token from the access_token cookie.
func FromCookie(c *fiber.Ctx) (string, error) {
	token := c.Cookies(CookieName)
	if token == "" {
		return "", ErrTokenInvalid
	}
	return token, nil
}

func extractRawToken(c *fiber.Ctx, extractors []TokenExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	if raw == "" {
		return "", ErrTokenInvalid
	}

	return raw, err
}

// Guard is the request authentication middleware: extract, validate, stash
// the identity. An absent or invalid token is rejected with the same uniform
// 401 — no partial identity ever reaches a handler.
//
// The guard does no database lookup: it trusts the signed claims, so a
// deleted or deactivated user keeps access until the token expires. That is
// the stateless-token trade-off, accepted rather than fixed.
func Guard(tokens TokenService) fiber.Handler {
	extractors := []TokenExtractor{FromAuthHeader, FromCookie}

	return func(c *fiber.Ctx) error {
		raw, err := extractRawToken(c, extractors)
		if err != nil {
			return err
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			return err
		}

		identity := IdentityFromClaims(claims)
		c.Locals(ContextKey, identity)
		c.SetUserContext(WithIdentity(c.UserContext(), identity))

		return c.Next()
	}
}

// IdentityFrom returns the identity the guard stored for this request.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(ContextKey).(Identity)
	return identity, ok
}

// RequireRole gates a route on an exact role match. The backing record is
// re-fetched per request rather than trusting a role baked into the token,
// so a demotion takes effect immediately. The check is strict equality with
// no hierarchy.
func RequireRole(users store.Users, role store.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return ErrTokenInvalid
		}

		user, err := users.ByID(c.UserContext(), identity.UserID)
		if err != nil {
			if store.IsRecordNotFound(err) {
				return ErrAuthorizationFailed
			}
			return errors.Wrap(err, errors.CategoryInternal, "failed to load user for role check")
		}

		if user.Role != role {
			return ErrAuthorizationFailed
		}

		return c.Next()
	}
}
