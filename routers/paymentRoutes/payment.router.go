package paymentRoutes

import (
	paymentControllers "elearn/controllers/payment"
	"elearn/middleware"
	paymentValidators "elearn/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payments")

	paymentGroup.Post("/initialize", middleware.JWTMiddleware, paymentValidators.Initialize(), paymentControllers.InitializePayment)
	paymentGroup.Get("/callback", paymentControllers.PaymentCallback)
	paymentGroup.Post("/verify", middleware.JWTMiddleware, paymentValidators.Verify(), paymentControllers.VerifyPayment)
}
