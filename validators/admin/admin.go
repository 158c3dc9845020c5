package adminValidator

import (
	"elearn/middleware"
	"elearn/models"
	"elearn/validators"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"role"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedAdminLogin", reqData)
		return c.Next()
	}
}

func UserID() fiber.Handler {
	return validators.IDParam("id", "targetUserId", "User ID")
}

func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRoleRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

// OrderList validates the optional status filter.
func OrderList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status")
		switch status {
		case "", models.OrderPending, models.OrderCompleted, models.OrderFailed, models.OrderCancelled:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "status must be one of pending, completed, failed, cancelled",
			})
		}
		c.Locals("orderStatus", status)
		return c.Next()
	}
}
