package paymentRoutes

import (
	controllers "learnhub/controllers/payment"
	validators "learnhub/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the payment gateway webhook route. The gateway
// authenticates with its own signature headers upstream; the handler itself
// is idempotent so redelivery is harmless.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/webhook", validators.PaymentCompleted(), controllers.PaymentCompletedWebhook)
}
