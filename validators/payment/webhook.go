package paymentValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// PaymentCompletedEvent is the payment collaborator's completion payload.
// Delivery is at-least-once; ReferralCode is empty on organic purchases.
type PaymentCompletedEvent struct {
	PaymentRef   string                 `json:"paymentRef"`
	ReferralCode string                 `json:"referralCode"`
	Amount       float64                `json:"amount"`
	Currency     string                 `json:"currency"`
	UserID       uint                   `json:"userId"`
	CourseSlug   string                 `json:"courseSlug"`
	Raw          map[string]interface{} `json:"raw"`
}

func PaymentCompleted() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PaymentCompletedEvent)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PaymentRef) == "" {
			errors["paymentRef"] = "Payment reference is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.PaymentRef = strings.TrimSpace(reqData.PaymentRef)
		reqData.ReferralCode = strings.TrimSpace(reqData.ReferralCode)
		if reqData.Currency == "" {
			reqData.Currency = "INR"
		}

		c.Locals("validatedPaymentEvent", reqData)
		return c.Next()
	}
}
