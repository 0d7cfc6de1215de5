package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ayethu/autoparts-backend/pkg/auth"
)

// SessionMiddleware validates the shop session token
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateSession(c)
	}
}

// SessionForWritesMiddleware validates the session token for mutating
// methods only; reads pass through untouched
func SessionForWritesMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		return validateSession(c)
	}
}

func validateSession(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	claims, err := auth.ValidateToken(parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}

	// Store session info in context and forward it downstream
	c.Locals("session_id", claims.SessionID)
	c.Request().Header.Set("X-Session-ID", claims.SessionID)

	return c.Next()
}
