package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"ids-dashboard/services"
)

// GetStats returns the dashboard aggregates over the log store.
func GetStats(c *fiber.Ctx) error {
	stats, err := services.GetLogStats(c.Context())
	if err != nil {
		slog.Error("Failed to fetch stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
