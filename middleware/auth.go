package middleware

import (
	"github.com/gofiber/fiber/v2"

	"ids-dashboard/services"
)

// RequireAuth guards JSON API routes. It verifies the token carried in the
// auth cookie and exposes the subject's identity to downstream handlers via
// locals. The acting user id is always derived here, never read from the
// request body.
func RequireAuth(c *fiber.Ctx) error {
	token := c.Cookies(services.AuthCookieName)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	userID, email, err := services.VerifyToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired session",
		})
	}

	c.Locals("user_id", userID)
	c.Locals("email", email)

	return c.Next()
}
