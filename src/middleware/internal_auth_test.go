package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"Backend-Worklink-007/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authApp() *fiber.App {
	app := fiber.New()
	app.Get("/jobs", InternalAuth("jobs"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("caller").(string))
	})
	return app
}

func TestInternalAuth(t *testing.T) {
	t.Setenv("INTERNAL_JWT_SECRET", "test-secret")
	app := authApp()

	t.Run("TestMissingHeaderIs401", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest("GET", "/jobs", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("TestGarbageTokenIs401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("TestWrongScopeIs403", func(t *testing.T) {
		token, err := utils.GenerateServiceToken("ops", "operator", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("TestValidTokenPassesAndSetsCaller", func(t *testing.T) {
		token, err := utils.GenerateServiceToken("scheduler", "jobs", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	})

	t.Run("TestExpiredTokenIs401", func(t *testing.T) {
		token, err := utils.GenerateServiceToken("scheduler", "jobs", -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}
