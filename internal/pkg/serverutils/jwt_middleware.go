package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// JwtMiddleware authenticates the bearer token and exposes user_id and role
// in the request locals. Token issuance lives in the external auth service;
// this backend only consumes tokens.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(FailureResponse(fiber.StatusUnauthorized, "Missing token"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(FailureResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(FailureResponse(fiber.StatusUnauthorized, "Invalid claims"))
	}

	ctx.Locals("user_id", claims["user_id"])
	if role, ok := claims["role"].(string); ok {
		ctx.Locals("role", role)
	}
	return ctx.Next()
}

// RequireRole guards a route group behind a single role.
func RequireRole(role string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		current, _ := ctx.Locals("role").(string)
		if current != role {
			return ctx.Status(fiber.StatusForbidden).JSON(FailureResponse(fiber.StatusForbidden, "Insufficient role"))
		}
		return ctx.Next()
	}
}
