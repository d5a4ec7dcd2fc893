package middleware

import (
	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/auth"
	"mediaapi/internal/model"
)

// PrincipalLocalKey is the key used to store the caller identity in Fiber's context locals.
const PrincipalLocalKey = "principal"

// Auth gates a route behind bearer authentication. On success the derived
// Principal is stored in context locals; on failure the typed error is
// returned for the global error handler to render.
func Auth(authn auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := authn.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		c.Locals(PrincipalLocalKey, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the Principal attached by Auth, or nil when the
// route was not authenticated.
func PrincipalFromCtx(c *fiber.Ctx) *model.Principal {
	if p, ok := c.Locals(PrincipalLocalKey).(*model.Principal); ok {
		return p
	}
	return nil
}
