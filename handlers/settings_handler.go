package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"ids-dashboard/models"
	"ids-dashboard/services"
)

// GetSettings returns the logged-in user's dashboard preferences, falling
// back to defaults when none were ever saved.
func GetSettings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	settings, err := services.GetSettings(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to fetch settings", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch settings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}

// SaveSettings upserts the user's settings document.
func SaveSettings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var settings models.UserSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := services.SaveSettings(c.Context(), userID, &settings); err != nil {
		slog.Error("Failed to save settings", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save settings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
