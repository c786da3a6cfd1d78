package auth

import (
	"github.com/goliatone/go-errors"
)

// Text codes surfaced in error payloads. Clients key off these rather than
// the human readable message.
const (
	TextCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	TextCodeTokenInvalid         = "TOKEN_INVALID"
	TextCodeAuthorizationFailed  = "AUTHORIZATION_FAILED"
)

// ErrAuthenticationFailed is returned for any failed login attempt. The
// message is deliberately generic: a missing user and a wrong password are
// indistinguishable to the caller.
var ErrAuthenticationFailed = errors.New("could not validate user", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeAuthenticationFailed)

// ErrTokenInvalid is the uniform rejection for bearer tokens: expired,
// malformed, forged, missing claims, or absent altogether. Collapsing these
// avoids telling an attacker why a token failed.
var ErrTokenInvalid = errors.New("could not validate user", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenInvalid)

// ErrAuthorizationFailed is returned when a valid identity lacks the required
// role. It maps to 401 rather than 403, so a role miss looks the same as a
// bad token from the outside.
var ErrAuthorizationFailed = errors.New("authentication failed", errors.CategoryAuthz).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeAuthorizationFailed)

// ErrEmptyPassword rejects hashing an empty string.
var ErrEmptyPassword = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)
