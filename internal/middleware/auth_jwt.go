package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenParser verifies a bearer token and returns the user id inside it.
type TokenParser interface {
	Parse(token string) (string, error)
}

// JWTUidOnly stores the token's user id in Locals("user_id") when a bearer
// token is sent. Requests without one pass through untouched; a bad token is
// rejected with 401.
func JWTUidOnly(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return c.Next()
		}

		uid, err := tokens.Parse(strings.TrimSpace(header[7:]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}
