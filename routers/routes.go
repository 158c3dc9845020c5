package routers

import (
	"elearn/routers/adminRoutes"
	"elearn/routers/authRoutes"
	"elearn/routers/courseRoutes"
	"elearn/routers/paymentRoutes"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts every route group on app.
func SetupRoutes(app *fiber.App) {
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
}
