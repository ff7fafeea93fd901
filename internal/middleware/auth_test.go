package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/orghub/orghub-api/internal/middleware"
)

const testSecret = "test-secret"

func setupProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JWTProtected(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(middleware.AuthenticatedEmail(c))
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func requestWithToken(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTProtectedAcceptsValidToken(t *testing.T) {
	app := setupProtectedApp()

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "Dev@Org.dev",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	resp := requestWithToken(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	require.Equal(t, "dev@org.dev", string(body[:n]), "email is normalized to lower case")
}

func TestJWTProtectedFallsBackToEmailClaim(t *testing.T) {
	app := setupProtectedApp()

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "12345",
		"email": "dev@org.dev",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	resp := requestWithToken(t, app, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTProtectedRejections(t *testing.T) {
	app := setupProtectedApp()

	resp := requestWithToken(t, app, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "missing header")

	resp = requestWithToken(t, app, "not-a-token")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "malformed token")

	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "dev@org.dev",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	resp = requestWithToken(t, app, wrongKey)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "wrong signing key")

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "dev@org.dev",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	resp = requestWithToken(t, app, expired)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "expired token")

	noEmail := signToken(t, testSecret, jwt.MapClaims{
		"sub": "12345",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	resp = requestWithToken(t, app, noEmail)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "no email-bearing claim")
}
