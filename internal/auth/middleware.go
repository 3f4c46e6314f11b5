package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber locals key the middleware stores claims under.
const ClaimsKey = "claims"

// Required returns middleware that rejects requests without a valid
// bearer token and stashes the claims for downstream handlers.
func Required(tokens *Tokens) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// AdminOnly returns middleware gating a route group to admin operators.
// Payment mutation and reminder trigger routes sit behind this.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(*Claims)
		if !ok || !claims.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}
