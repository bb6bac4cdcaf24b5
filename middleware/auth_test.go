package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ids-dashboard/services"
)

func decodeJSON(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func newAuthedApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/whoami", RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"email":   c.Locals("email"),
		})
	})
	return app
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	app := newAuthedApp()

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	app := newAuthedApp()

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: services.AuthCookieName, Value: "garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_ValidTokenSetsLocals(t *testing.T) {
	app := newAuthedApp()

	tok, err := services.IssueToken("64f1a2b3c4d5e6f7a8b9c0d1", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: services.AuthCookieName, Value: tok})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}
	require.NoError(t, decodeJSON(resp, &body))
	assert.Equal(t, "64f1a2b3c4d5e6f7a8b9c0d1", body.UserID)
	assert.Equal(t, "alice@example.com", body.Email)
}
