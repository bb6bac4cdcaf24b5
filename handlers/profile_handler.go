package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"ids-dashboard/services"
)

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatarUrl"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfile overwrites the profile fields of the logged-in user. The
// acting user always comes from the verified session, set by RequireAuth.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	err := services.UpdateUserProfile(c.Context(), userID, req.Name, req.Email, req.Department, req.AvatarURL)
	if err != nil {
		slog.Error("Failed to update profile", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// UpdatePassword verifies the current password and stores the new one.
// Length and confirmation checks happen client-side before this is called.
func UpdatePassword(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Current and new password are required",
		})
	}

	err := services.UpdateUserPassword(c.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInvalidUserID):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		case errors.Is(err, services.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Current password is incorrect",
			})
		default:
			slog.Error("Failed to update password", "error", err, "user_id", userID)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update password",
			})
		}
	}

	slog.Info("Password updated", "user_id", userID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// DeleteAccount removes the user and their settings, then ends the session.
func DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := services.DeleteUser(c.Context(), userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidUserID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		slog.Error("Failed to delete account", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete account",
		})
	}

	clearAuthCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
