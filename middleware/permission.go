package middleware

import (
	"elearn/database"
	"elearn/logger"
	"elearn/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoadUser refreshes the caller's role from storage so role changes made by
// an operator apply before the token expires. Must run after JWTMiddleware.
func LoadUser(c *fiber.Ctx) error {
	userID := CurrentUserID(c)
	if userID == 0 {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	var user models.User
	err := database.Database.Db.Select("id", "role", "email").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Account no longer exists", nil)
		}
		logger.Log.Error("loading user for request failed", "userId", userID, "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
	}

	c.Locals("role", user.Role)
	c.Locals("email", user.Email)
	return c.Next()
}

// RequireRole allows the request through only for the listed roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := CurrentRole(c)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
