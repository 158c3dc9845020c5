package middleware

import (
	"elearn/models"
	"elearn/testutil"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whoami(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"userId": CurrentUserID(c), "role": CurrentRole(c)})
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestJWTMiddleware(t *testing.T) {
	testutil.Config()
	app := fiber.New()
	app.Get("/me", JWTMiddleware, whoami)

	token, err := GenerateJWT(7, models.RoleStudent, "a@test.io")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, float64(7), body["userId"])
	assert.Equal(t, models.RoleStudent, body["role"])

	for name, header := range map[string]string{
		"missing":    "",
		"not bearer": "Token " + token,
		"garbage":    "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAdminMiddleware_SeparateNamespace(t *testing.T) {
	testutil.Config()
	app := fiber.New()
	app.Get("/admin", AdminMiddleware, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/user", JWTMiddleware, whoami)

	adminToken, err := GenerateAdminJWT()
	require.NoError(t, err)
	userToken, err := GenerateJWT(1, models.RoleAdmin, "a@test.io")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(AdminTokenHeader, adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// A user token, even for an admin-role user, is not an operator credential.
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set(AdminTokenHeader, userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// And the operator token does not authenticate a user.
	req = httptest.NewRequest("GET", "/user", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoadUserAndRequireRole(t *testing.T) {
	db := testutil.OpenDB(t)
	user := testutil.SeedUser(t, db, "role@test.io", models.RoleStudent)

	app := fiber.New()
	app.Get("/staff", JWTMiddleware, LoadUser, RequireRole(models.RoleInstructor, models.RoleAdmin), whoami)

	// Token still says instructor but storage says student.
	token, err := GenerateJWT(user.ID, models.RoleInstructor, user.Email)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	require.NoError(t, db.Model(&user).Update("role", models.RoleInstructor).Error)
	req = httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	gone, err := GenerateJWT(9999, models.RoleAdmin, "x@test.io")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+gone)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestValidationErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ValidationErrorResponse(c, map[string]string{"email": "Invalid email!"})
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "Invalid email!", body["data"].(map[string]interface{})["email"])
}
