package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"ids-dashboard/services"
)

// PageGuardConfig classifies dashboard page paths. Paths are configuration,
// not scattered string comparisons: the guard only runs on matched pages and
// treats everything matched but not public as protected.
type PageGuardConfig struct {
	// Matched page path prefixes the guard applies to. Requests outside
	// these (the JSON API, static assets) pass through untouched.
	Pages []string

	// Public pages reachable without a session.
	PublicPages []string

	LoginPath     string
	DashboardPath string
}

// DefaultPageGuardConfig mirrors the dashboard's page map.
func DefaultPageGuardConfig() PageGuardConfig {
	return PageGuardConfig{
		Pages:         []string{"/dashboard", "/profile", "/settings", "/login", "/register"},
		PublicPages:   []string{"/login", "/register"},
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
	}
}

// NewPageGuard builds the per-request redirect state machine for dashboard
// pages. Each request terminates in exactly one of: allow, redirect to the
// login page, redirect to the dashboard. No database access happens here;
// the decision is a pure function of the path and the cookie token.
func NewPageGuard(cfg PageGuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if !matchesAny(path, cfg.Pages) {
			return c.Next()
		}

		public := matchesAny(path, cfg.PublicPages)
		token := c.Cookies(services.AuthCookieName)

		if token != "" {
			if _, _, err := services.VerifyToken(token); err == nil {
				if public {
					// Already authenticated, skip the login/register pages
					return c.Redirect(cfg.DashboardPath, fiber.StatusFound)
				}
				return c.Next()
			}

			slog.Info("Rejecting invalid session token", "path", path)
			if !public {
				clearAuthCookie(c)
				return c.Redirect(cfg.LoginPath, fiber.StatusFound)
			}
			// Invalid token on a public page: treat as unauthenticated
			return c.Next()
		}

		if !public {
			return c.Redirect(cfg.LoginPath, fiber.StatusFound)
		}

		return c.Next()
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     services.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}
