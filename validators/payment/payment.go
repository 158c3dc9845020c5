package paymentValidator

import (
	"elearn/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type InitializeRequest struct {
	CourseID uint `json:"courseId" validate:"required,gt=0"`
}

type VerifyRequest struct {
	Reference string `json:"reference" validate:"notblank,max=100"`
}

func Initialize() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitializeRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedInitialize", reqData)
		return c.Next()
	}
}

func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Reference = strings.TrimSpace(reqData.Reference)
		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
