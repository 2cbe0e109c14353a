package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", fiber.Map{"user_id": ctx.Locals("user_id")}))
	})
	return app
}

func TestJwtMiddlewareAcceptsSignedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "4a2dfda1-54cb-4b84-90ff-a4bfa37d9c10",
		"role":    RoleTeacher,
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, _ := app.Test(req, -1)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestJwtMiddlewareRejectsUnsignedAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newProtectedApp()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "4a2dfda1-54cb-4b84-90ff-a4bfa37d9c10",
		"role":    RoleTeacher,
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+unsigned)
	resp, _ := app.Test(req, -1)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, _ := app.Test(req, -1)
	assert.Equal(t, 401, resp.StatusCode)
}
