package adminRoutes

import (
	adminControllers "elearn/controllers/admin"
	"elearn/middleware"
	adminValidators "elearn/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	app.Post("/admin/login", adminValidators.Login(), adminControllers.Login)

	app.Get("/admin/users", middleware.AdminMiddleware, adminControllers.UserList)
	app.Put("/admin/users/:id/role", middleware.AdminMiddleware, adminValidators.UserID(), adminValidators.UpdateRole(), adminControllers.UpdateUserRole)
	app.Get("/admin/orders", middleware.AdminMiddleware, adminValidators.OrderList(), adminControllers.OrderList)
	app.Post("/admin/certificates/reissue", middleware.AdminMiddleware, adminControllers.ReissueCertificates)
}
