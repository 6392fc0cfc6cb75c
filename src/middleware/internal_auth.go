package middleware

import (
	"strings"

	"Backend-Worklink-007/src/utils"

	"github.com/gofiber/fiber/v2"
)

// InternalAuth guards the internal surface (job triggers, operator
// listings). Callers present a service JWT with the required scope; guest
// traffic never reaches these routes.
func InternalAuth(requiredScope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseServiceToken(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		if requiredScope != "" && claims.Scope != requiredScope {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient scope"})
		}

		c.Locals("caller", claims.Caller)
		c.Locals("scope", claims.Scope)

		return c.Next()
	}
}
