package auth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates bearer tokens.
type TokenService interface {
	Issue(username string, userID int64) (string, error)
	Validate(raw string) (*Claims, error)
}

// TokenServiceImpl signs claims with a single static secret using HS256.
// There is no refresh and no revocation: a token lives until its exp.
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	logger     *slog.Logger
}

// NewTokenService creates a TokenService with a fixed TTL.
func NewTokenService(signingKey []byte, ttl time.Duration, logger *slog.Logger) *TokenServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		ttl:        ttl,
		logger:     logger,
	}
}

// Issue builds a claim set expiring ttl from now and signs it. Every token
// carries a fresh jti, so concurrent logins for one user stay distinct.
func (ts *TokenServiceImpl) Issue(username string, userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		UID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate checks signature integrity, structure, and expiry. Every failure
// mode collapses into ErrTokenInvalid: callers (and clients) never learn
// which check rejected the token.
func (ts *TokenServiceImpl) Validate(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("token validate could not decode claims")
		return nil, ErrTokenInvalid
	}

	if !claims.complete() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

var _ TokenService = (*TokenServiceImpl)(nil)
