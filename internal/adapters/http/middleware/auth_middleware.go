package middleware

import (
	"errors"
	"strings"

	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/config"
	"kpi-dashboard/internal/core/domain"
	"kpi-dashboard/internal/core/policy"
	"kpi-dashboard/internal/pkg/jwt"
	"kpi-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type actorKey struct{}

// ActorFrom returns the authenticated actor of the request, nil when the
// route is public.
func ActorFrom(c *fiber.Ctx) *domain.Actor {
	actor, _ := c.Locals(actorKey{}).(*domain.Actor)
	return actor
}

// SetActor stores the actor for the rest of the request
func SetActor(c *fiber.Ctx, actor *domain.Actor) {
	c.Locals(actorKey{}, actor)
}

// AuthMiddleware creates authentication middleware. The token identifies
// the user; role, team and active flag are read from the database so
// changes apply without waiting for the token to expire.
func AuthMiddleware(cfg *config.Config, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		user, err := userRepo.GetByID(c.Context(), claims.Payload.ID)
		if err != nil || !user.IsActive {
			return response.Unauthorized(c, "Invalid access token")
		}

		SetActor(c, user.Actor())
		return c.Next()
	}
}

// tokenFrom reads the access token from the cookie, then the
// Authorization header
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// RoleMiddleware permits only the given roles
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := policy.Authorize(ActorFrom(c), allowedRoles...); err != nil {
			return deny(c, err)
		}
		return c.Next()
	}
}

// AdminOnly middleware allows ADMIN and SUPER_ADMIN
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.AdminRoles...)
}

// TeamLeaderOrAdmin middleware allows admins, leaders and sub-leaders
func TeamLeaderOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := policy.TeamLeaderOrAdmin(ActorFrom(c)); err != nil {
			return deny(c, err)
		}
		return c.Next()
	}
}

// OwnerOrAdmin middleware allows admins or the user named by the route param
func OwnerOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := policy.OwnerOrAdmin(ActorFrom(c), c.Params(param)); err != nil {
			return deny(c, err)
		}
		return c.Next()
	}
}

func deny(c *fiber.Ctx, err error) error {
	message := domain.MessageOf(err, "Unauthorized")
	if errors.Is(err, domain.ErrForbidden) {
		return response.Forbidden(c, message)
	}
	return response.Unauthorized(c, message)
}
