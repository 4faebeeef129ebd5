package ambassadorValidator

import (
	"strings"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

func GenerateLink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CampaignID string `json:"campaignId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.CampaignID) == "" {
			errors["campaignId"] = "Campaign ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.CampaignID = strings.TrimSpace(reqData.CampaignID)
		c.Locals("validatedLink", reqData)
		return c.Next()
	}
}
