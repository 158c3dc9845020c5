package middleware

import (
	"elearn/config"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AdminTokenHeader carries the operator token. It is signed with its own key
// so a user token can never pass as an admin token or the other way round.
const AdminTokenHeader = "X-Admin-Token"

const adminScope = "admin"

// GenerateAdminJWT issues an operator token valid for 12 hours.
func GenerateAdminJWT() (string, error) {
	claims := jwt.MapClaims{
		"scope": adminScope,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.AdminJWTKey))
}

// AdminMiddleware guards the operator endpoints.
func AdminMiddleware(c *fiber.Ctx) error {
	tokenString := c.Get(AdminTokenHeader)
	if tokenString == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Admin authentication required", nil)
	}
	claims, err := parseHMAC(tokenString, config.AppConfig.AdminJWTKey)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired admin token", nil)
	}
	if scope, _ := claims["scope"].(string); scope != adminScope {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid admin token scope", nil)
	}
	c.Locals("admin", true)
	return c.Next()
}
