package middleware

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/internal/apperror"
)

// UIDFromLocals returns the user id set by JWTUidOnly, if any.
func UIDFromLocals(c *fiber.Ctx) (string, bool) {
	uid, _ := c.Locals("user_id").(string)
	return uid, uid != ""
}

// ActingUser guards routes that name the acting user in the path. When the
// caller authenticated with a token, the token's user must be that user.
func ActingUser(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, ok := UIDFromLocals(c)
		if ok && uid != c.Params(param) {
			return apperror.PermissionDenied("token does not belong to the acting user")
		}
		return c.Next()
	}
}
