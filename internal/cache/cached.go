package cache

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CachedJSON serves GET responses from the store for ttl, keyed by the full
// request URL. Only 200 responses are cached.
func CachedJSON(store *Store, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}
		key := c.OriginalURL()
		if v, ok := store.Get(key); ok {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(v.([]byte))
		}
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			store.Set(key, body, ttl)
		}
		c.Set("X-Cache", "MISS")
		return nil
	}
}
