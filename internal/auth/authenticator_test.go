package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mplata/go-todos/internal/auth"
)

func newTestAuthenticator(users *fakeUsers) *auth.Authenticator {
	hasher := auth.NewHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService(testSigningKey, 20*time.Minute, nil)
	return auth.NewAuthenticator(users, hasher, tokens, nil)
}

func validPayload() auth.RegisterPayload {
	return auth.RegisterPayload{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		Surname:   "Liddell",
		Password:  "secret1",
		Role:      "user",
	}
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	users := newFakeUsers()
	authenticator := newTestAuthenticator(users)
	ctx := context.Background()

	record, err := authenticator.Register(ctx, validPayload())
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.True(t, record.IsActive)
	assert.NotEqual(t, "secret1", record.PasswordHash)

	token, err := authenticator.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	tokens := auth.NewTokenService(testSigningKey, 20*time.Minute, nil)
	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, record.ID, claims.UserID())
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*auth.RegisterPayload)
	}{
		{
			name:   "missing username",
			mutate: func(p *auth.RegisterPayload) { p.Username = "" },
		},
		{
			name:   "short username",
			mutate: func(p *auth.RegisterPayload) { p.Username = "al" },
		},
		{
			name:   "malformed email",
			mutate: func(p *auth.RegisterPayload) { p.Email = "not-an-email" },
		},
		{
			name:   "short password",
			mutate: func(p *auth.RegisterPayload) { p.Password = "12345" },
		},
		{
			name:   "unknown role",
			mutate: func(p *auth.RegisterPayload) { p.Role = "superuser" },
		},
		{
			name:   "missing first name",
			mutate: func(p *auth.RegisterPayload) { p.FirstName = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsers()
			authenticator := newTestAuthenticator(users)

			payload := validPayload()
			tt.mutate(&payload)

			_, err := authenticator.Register(context.Background(), payload)
			require.Error(t, err)

			var richErr *errors.Error
			require.True(t, errors.As(err, &richErr))
			assert.Equal(t, errors.CategoryValidation, richErr.Category)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUsers()
	authenticator := newTestAuthenticator(users)
	ctx := context.Background()

	_, err := authenticator.Register(ctx, validPayload())
	require.NoError(t, err)

	payload := validPayload()
	payload.Email = "alice2@example.com"
	_, err = authenticator.Register(ctx, payload)
	require.Error(t, err)

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr))
	assert.Equal(t, errors.CategoryConflict, richErr.Category)
}

func TestLoginFailureIsUniform(t *testing.T) {
	users := newFakeUsers()
	authenticator := newTestAuthenticator(users)
	ctx := context.Background()

	_, err := authenticator.Register(ctx, validPayload())
	require.NoError(t, err)

	_, wrongPassword := authenticator.Login(ctx, "alice", "wrong")
	require.Error(t, wrongPassword)

	_, unknownUser := authenticator.Login(ctx, "bob", "whatever")
	require.Error(t, unknownUser)

	// A wrong password and a nonexistent user must be indistinguishable.
	assert.ErrorIs(t, wrongPassword, auth.ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownUser, auth.ErrAuthenticationFailed)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestConcurrentLogins(t *testing.T) {
	users := newFakeUsers()
	authenticator := newTestAuthenticator(users)
	ctx := context.Background()

	_, err := authenticator.Register(ctx, validPayload())
	require.NoError(t, err)

	const n = 8
	tokens := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := authenticator.Login(ctx, "alice", "secret1")
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	validator := auth.NewTokenService(testSigningKey, 20*time.Minute, nil)
	seen := map[string]bool{}
	for _, token := range tokens {
		require.NotEmpty(t, token)
		assert.False(t, seen[token], "tokens must be distinct")
		seen[token] = true

		_, err := validator.Validate(token)
		assert.NoError(t, err)
	}
}
