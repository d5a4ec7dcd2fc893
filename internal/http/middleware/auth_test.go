package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"mediaapi/internal/apierr"
	"mediaapi/internal/auth"
	authMocks "mediaapi/internal/auth/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	newApp := func(mVerifier *authMocks.MockTokenVerifier) *fiber.App {
		app := fiber.New(fiber.Config{
			// Mirror production wiring: typed API errors choose the status.
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				if apiErr := apierr.From(err); apiErr != nil {
					return c.Status(apiErr.Status).JSON(apiErr)
				}
				return c.SendStatus(fiber.StatusInternalServerError)
			},
		})
		app.Use(Auth(auth.NewAuthenticator(mVerifier)))
		app.Get("/test", func(c *fiber.Ctx) error {
			p := PrincipalFromCtx(c)
			require.NotNil(t, p)
			return c.JSON(p)
		})
		return app
	}

	t.Run("attaches principal on valid token", func(t *testing.T) {
		mVerifier := new(authMocks.MockTokenVerifier)
		mVerifier.On("Verify", mock.Anything, "validToken").
			Return(&auth.Claims{Role: "admin", Email: "example@ucr.ac.cr", UUID: "123456789101"}, nil)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer validToken")
		resp, _ := newApp(mVerifier).Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "admin", body["role"])
		assert.Equal(t, "example@ucr.ac.cr", body["email"])
	})

	t.Run("rejects missing header", func(t *testing.T) {
		mVerifier := new(authMocks.MockTokenVerifier)

		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := newApp(mVerifier).Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NO_TOKEN", body["code"])
		mVerifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("rejects unverifiable token", func(t *testing.T) {
		mVerifier := new(authMocks.MockTokenVerifier)
		mVerifier.On("Verify", mock.Anything, "badToken").Return(nil, assert.AnError)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer badToken")
		resp, _ := newApp(mVerifier).Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		mVerifier.AssertExpectations(t)
	})
}
