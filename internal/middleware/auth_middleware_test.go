package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
	"blogapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

// setupPipeline wires a fiber app with the authentication middleware and a
// probe route that reports who the request ran as.
func setupPipeline(t *testing.T) (*fiber.App, *services.AuthService, *repositories.MockUserRepository) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	authService := services.NewAuthService(userRepo, nil, "test_jwt_secret", time.Hour, nil)

	app := fiber.New()
	app.Use(middleware.Authenticate(authService))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal := middleware.PrincipalFrom(c)
		if principal == nil {
			return c.JSON(fiber.Map{"email": "anonymous"})
		}
		return c.JSON(fiber.Map{"email": principal.Email, "role": principal.Role})
	})

	return app, authService, userRepo
}

func registerUser(t *testing.T, authService *services.AuthService, email string) string {
	t.Helper()
	user := models.User{Username: "tester", Email: email, Password: "password123"}
	token, err := authService.Register(&user)
	require.NoError(t, err)
	return token
}

func whoami(t *testing.T, app *fiber.App, authHeader string) map[string]string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The pipeline never rejects; every probe must come back 200.
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, decodeJSON(resp.Body, &body))
	return body
}

func TestAuthenticate_NoHeader(t *testing.T) {
	app, _, _ := setupPipeline(t)
	body := whoami(t, app, "")
	assert.Equal(t, "anonymous", body["email"])
}

func TestAuthenticate_NotBearer(t *testing.T) {
	app, _, _ := setupPipeline(t)
	body := whoami(t, app, "Basic dXNlcjpwYXNz")
	assert.Equal(t, "anonymous", body["email"])
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	app, _, _ := setupPipeline(t)
	body := whoami(t, app, "Bearer not.a.token")
	assert.Equal(t, "anonymous", body["email"])
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	app, _, userRepo := setupPipeline(t)

	past := time.Now().Add(-2 * time.Hour)
	expiredIssuer := services.NewAuthService(userRepo, nil, "test_jwt_secret", time.Hour, func() time.Time { return past })
	user := models.User{Username: "tester", Email: "old@example.com", Password: "password123"}
	token, err := expiredIssuer.Register(&user)
	require.NoError(t, err)

	body := whoami(t, app, "Bearer "+token)
	assert.Equal(t, "anonymous", body["email"])
}

func TestAuthenticate_ValidToken(t *testing.T) {
	app, authService, _ := setupPipeline(t)
	token := registerUser(t, authService, "alice@example.com")

	body := whoami(t, app, "Bearer "+token)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, models.RoleUser, body["role"])
}

// A valid token whose subject no longer exists resolves to no principal; the
// request still goes through unauthenticated.
func TestAuthenticate_UnknownSubject(t *testing.T) {
	app, authService, userRepo := setupPipeline(t)
	token := registerUser(t, authService, "ghost@example.com")

	user, err := userRepo.GetByEmail("ghost@example.com")
	require.NoError(t, err)
	require.NoError(t, userRepo.Delete(user.ID))

	body := whoami(t, app, "Bearer "+token)
	assert.Equal(t, "anonymous", body["email"])
}

// A role change in storage is reflected on the next request with the same
// token, because the pipeline re-resolves the subject every time.
func TestAuthenticate_RoleRefresh(t *testing.T) {
	app, authService, userRepo := setupPipeline(t)
	token := registerUser(t, authService, "promoted@example.com")

	body := whoami(t, app, "Bearer "+token)
	require.Equal(t, models.RoleUser, body["role"])

	user, err := userRepo.GetByEmail("promoted@example.com")
	require.NoError(t, err)
	user.Role = models.RoleAdmin
	require.NoError(t, userRepo.Update(user))

	body = whoami(t, app, "Bearer "+token)
	assert.Equal(t, models.RoleAdmin, body["role"])
}
