package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"ids-dashboard/config"
	"ids-dashboard/models"
	"ids-dashboard/services"
)

var secureCookies bool

// Init wires handler-level settings from the loaded configuration.
func Init(cfg *config.Config) {
	secureCookies = cfg.IsProduction()
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email, password, and name are required",
		})
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}

	if err := services.CreateUser(c.Context(), user); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "User already exists",
			})
		}
		slog.Error("Failed to register user", "error", err, "email", req.Email)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register user",
		})
	}

	// Registration does not log the user in; the client goes through login.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"userId":  user.ID.Hex(),
	})
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	if !services.LoginLimiter.Allow(c.IP()) {
		slog.Warn("Login rate limit exceeded", "ip", c.IP())
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many login attempts, try again later",
		})
	}

	// The same message covers unknown email and wrong password so the
	// endpoint cannot be used to enumerate accounts.
	user, err := services.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			slog.Error("Failed to look up user", "error", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !services.CheckPasswordHash(req.Password, user.Password) {
		slog.Info("Invalid password attempt", "email", req.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := services.IssueToken(user.ID.Hex(), user.Email)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to authenticate",
		})
	}

	setAuthCookie(c, token)

	slog.Info("User logged in", "user_id", user.ID.Hex(), "email", user.Email)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user": models.PublicUser{
			ID:    user.ID.Hex(),
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

func GetCurrentUser(c *fiber.Ctx) error {
	token := c.Cookies(services.AuthCookieName)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	userID, _, err := services.VerifyToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	// Re-read the record so name and role reflect current state, not the
	// token payload from login time.
	user, err := services.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidUserID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		slog.Error("Failed to get user", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get user information",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user.Public(),
	})
}

func Logout(c *fiber.Ctx) error {
	// Stateless tokens cannot be revoked server-side; clearing the cookie
	// is all logout does, and doing it twice is harmless.
	clearAuthCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     services.AuthCookieName,
		Value:    token,
		Expires:  time.Now().Add(services.TokenDuration),
		HTTPOnly: true,
		Secure:   secureCookies,
		SameSite: "Lax",
		Path:     "/",
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     services.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		Secure:   secureCookies,
		SameSite: "Lax",
		Path:     "/",
	})
}
