package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"hoagiehub/internal/apperror"
)

// RateLimit allows max requests per client IP in each fixed window. Every
// bucket keeps its own counters, so limits on different routes never share
// budget.
func RateLimit(bucket string, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return bucket + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperror.RateLimited(bucket)
		},
	})
}
