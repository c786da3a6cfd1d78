package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the fixed-shape token payload: sub carries the username, id the
// numeric user id, exp the expiry. The role is deliberately absent; role
// checks go back to the store.
type Claims struct {
	jwt.RegisteredClaims
	UID int64 `json:"id"`
}

// Username returns the subject claim.
func (c *Claims) Username() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the numeric id claim.
func (c *Claims) UserID() int64 {
	return c.UID
}

// Expires returns the expiration instant, or the zero time when absent.
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// complete reports whether the decoded payload carries every required claim.
// A token missing subject, id, or expiration is unusable.
func (c *Claims) complete() bool {
	return c.RegisteredClaims.Subject != "" &&
		c.UID != 0 &&
		c.RegisteredClaims.ExpiresAt != nil
}

// Identity is the verified result of decoding a token: who the request is
// acting as. Derived per request, never stored.
type Identity struct {
	Username string
	UserID   int64
}

// IdentityFromClaims maps validated claims to the identity handlers consume.
func IdentityFromClaims(c *Claims) Identity {
	return Identity{
		Username: c.Username(),
		UserID:   c.UserID(),
	}
}
