package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"ids-dashboard/models"
	"ids-dashboard/services"
)

type CreateLogRequest struct {
	Type        string                 `json:"type"`
	SourceIP    string                 `json:"source_ip"`
	ActionTaken string                 `json:"action_taken"`
	Details     map[string]interface{} `json:"details"`
}

// CreateLog ingests one security event. Type and source IP are required;
// the timestamp is server-assigned and the action defaults to "Logged".
func CreateLog(c *fiber.Ctx) error {
	var req CreateLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid log data",
		})
	}

	if req.Type == "" || req.SourceIP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid log data",
		})
	}

	entry := &models.LogEntry{
		Type:        req.Type,
		SourceIP:    req.SourceIP,
		ActionTaken: req.ActionTaken,
		Details:     req.Details,
	}

	if err := services.InsertLog(c.Context(), entry); err != nil {
		slog.Error("Failed to create log", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create log",
		})
	}

	// Push to open dashboards; delivery is best-effort
	services.GetStreamManager().BroadcastLog(entry)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"log":     entry,
	})
}

// GetLogs returns the most recent records, newest first.
func GetLogs(c *fiber.Ctx) error {
	logs, err := services.ListLogs(c.Context())
	if err != nil {
		slog.Error("Failed to fetch logs", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch logs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(logs)
}
