package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mplata/go-todos/internal/auth"
	"github.com/mplata/go-todos/internal/store"
)

// guardTestApp wires the guard in front of a handler that echoes the
// identity, using the same error mapping the real router applies.
func guardTestApp(tokens auth.TokenService, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": err.Error()})
		},
	})

	handlers := []fiber.Handler{auth.Guard(tokens)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return auth.ErrTokenInvalid
		}
		return c.JSON(fiber.Map{"username": identity.Username, "id": identity.UserID})
	})

	app.Get("/secure", handlers...)
	return app
}

func TestGuard(t *testing.T) {
	tokens := auth.NewTokenService(testSigningKey, 20*time.Minute, nil)

	token, err := tokens.Issue("alice", 42)
	require.NoError(t, err)

	expired := auth.NewTokenService(testSigningKey, -time.Minute, nil)
	expiredToken, err := expired.Issue("alice", 42)
	require.NoError(t, err)

	tests := []struct {
		name       string
		decorate   func(*http.Request)
		wantStatus int
	}{
		{
			name: "bearer header",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "access_token cookie",
			decorate: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing token",
			decorate:   func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong scheme",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Basic "+token)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+expiredToken)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	app := guardTestApp(tokens)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			tt.decorate(req)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireRole(t *testing.T) {
	users := newFakeUsers()
	ctx := context.Background()

	admin, err := users.Create(ctx, &store.User{
		Username: "root", Email: "root@example.com", Role: store.RoleAdmin, IsActive: true,
	})
	require.NoError(t, err)

	member, err := users.Create(ctx, &store.User{
		Username: "alice", Email: "alice@example.com", Role: store.RoleUser, IsActive: true,
	})
	require.NoError(t, err)

	tokens := auth.NewTokenService(testSigningKey, 20*time.Minute, nil)

	adminToken, err := tokens.Issue(admin.Username, admin.ID)
	require.NoError(t, err)
	memberToken, err := tokens.Issue(member.Username, member.ID)
	require.NoError(t, err)

	// Token for an id the store no longer knows: the gate re-queries and
	// rejects even though the signature is valid.
	ghostToken, err := tokens.Issue("ghost", 999)
	require.NoError(t, err)

	app := guardTestApp(tokens, auth.RequireRole(users, store.RoleAdmin))

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "admin role passes", token: adminToken, wantStatus: http.StatusOK},
		{name: "user role rejected", token: memberToken, wantStatus: http.StatusUnauthorized},
		{name: "unknown user rejected", token: ghostToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireRoleIsExactMatch(t *testing.T) {
	users := newFakeUsers()
	ctx := context.Background()

	admin, err := users.Create(ctx, &store.User{
		Username: "root", Email: "root@example.com", Role: store.RoleAdmin, IsActive: true,
	})
	require.NoError(t, err)

	tokens := auth.NewTokenService(testSigningKey, 20*time.Minute, nil)
	adminToken, err := tokens.Issue(admin.Username, admin.ID)
	require.NoError(t, err)

	// No hierarchy: admin does not satisfy a gate that wants "user".
	app := guardTestApp(tokens, auth.RequireRole(users, store.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIdentityContextPropagation(t *testing.T) {
	identity := auth.Identity{Username: "alice", UserID: 42}

	ctx := auth.WithIdentity(context.Background(), identity)
	got, ok := auth.IdentityFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, identity, got)

	_, ok = auth.IdentityFromContext(context.Background())
	assert.False(t, ok)
}
