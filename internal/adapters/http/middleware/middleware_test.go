package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kpi-dashboard/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withActor installs actor ahead of the handlers under test
func withActor(actor *domain.Actor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if actor != nil {
			SetActor(c, actor)
		}
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name   string
		actor  *domain.Actor
		target string
		want   int
	}{
		{"no actor", nil, "u1", http.StatusUnauthorized},
		{"owner", &domain.Actor{ID: "u1", Role: domain.RoleMember}, "u1", http.StatusOK},
		{"stranger", &domain.Actor{ID: "u1", Role: domain.RoleMember}, "u2", http.StatusForbidden},
		{"leader is not owner", &domain.Actor{ID: "u1", Role: domain.RoleLeader}, "u2", http.StatusForbidden},
		{"admin", &domain.Actor{ID: "a", Role: domain.RoleAdmin}, "u2", http.StatusOK},
		{"super admin", &domain.Actor{ID: "s", Role: domain.RoleSuperAdmin}, "u2", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/users/:id", withActor(tt.actor), OwnerOrAdmin("id"), ok)

			assert.Equal(t, tt.want, get(t, app, "/users/"+tt.target).StatusCode)
		})
	}
}

func TestAdminOnlyAndTeamLeaderOrAdmin(t *testing.T) {
	for _, role := range domain.Roles {
		app := fiber.New()
		actor := &domain.Actor{ID: "x", Role: role}
		app.Get("/admin", withActor(actor), AdminOnly(), ok)
		app.Get("/leads", withActor(actor), TeamLeaderOrAdmin(), ok)

		admin := role == domain.RoleAdmin || role == domain.RoleSuperAdmin
		lead := admin || role == domain.RoleLeader || role == domain.RoleSubLeader

		wantAdmin, wantLead := http.StatusForbidden, http.StatusForbidden
		if admin {
			wantAdmin = http.StatusOK
		}
		if lead {
			wantLead = http.StatusOK
		}

		assert.Equal(t, wantAdmin, get(t, app, "/admin").StatusCode, role)
		assert.Equal(t, wantLead, get(t, app, "/leads").StatusCode, role)
	}
}

func TestRoleMiddlewareWithoutRolesPermitsAnyActor(t *testing.T) {
	app := fiber.New()
	app.Get("/", withActor(&domain.Actor{ID: "m", Role: domain.RoleMember}), RoleMiddleware(), ok)

	assert.Equal(t, http.StatusOK, get(t, app, "/").StatusCode)
}

func TestCacheControl(t *testing.T) {
	app := fiber.New()
	app.Get("/cached", CacheControl(time.Minute), ok)
	app.Get("/missing", CacheControl(time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/secret", NoStore(), ok)

	assert.Equal(t, "private, max-age=60", get(t, app, "/cached").Header.Get(fiber.HeaderCacheControl))
	assert.Empty(t, get(t, app, "/missing").Header.Get(fiber.HeaderCacheControl))

	resp := get(t, app, "/secret")
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))
	assert.Equal(t, "no-cache", resp.Header.Get(fiber.HeaderPragma))
}
