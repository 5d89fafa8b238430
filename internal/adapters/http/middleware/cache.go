package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CacheControl lets the browser reuse successful GET responses for maxAge.
// Responses are per user, so shared caches must not store them.
func CacheControl(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == fiber.MethodGet && c.Response().StatusCode() == fiber.StatusOK {
			c.Set(fiber.HeaderCacheControl, formatCacheControl(maxAge))
		}

		return err
	}
}

// NoStore forbids caching, for responses carrying tokens
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Set(fiber.HeaderPragma, "no-cache")
		return c.Next()
	}
}

func formatCacheControl(maxAge time.Duration) string {
	return "private, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
}
