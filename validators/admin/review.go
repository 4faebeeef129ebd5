package adminValidator

import (
	"strconv"
	"strings"

	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
)

func ReviewApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		applicationIDStr := strings.TrimSpace(c.Params("id"))
		if applicationIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Application ID is required!", nil)
		}

		applicationID, err := strconv.Atoi(applicationIDStr)
		if err != nil || applicationID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Application ID!", nil)
		}

		reqData := new(struct {
			Decision string `json:"decision"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		decision := models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(reqData.Decision)))
		if decision != models.ApplicationStatusApproved && decision != models.ApplicationStatusRejected {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Decision must be APPROVED or REJECTED!", nil)
		}

		c.Locals("applicationID", applicationID)
		c.Locals("reviewDecision", decision)
		return c.Next()
	}
}

func ApplicationList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if reqData.Status != "" {
			status := models.ApplicationStatus(strings.ToUpper(reqData.Status))
			if status != models.ApplicationStatusPending &&
				status != models.ApplicationStatusApproved &&
				status != models.ApplicationStatusRejected {
				errors["status"] = "Status must be PENDING, APPROVED or REJECTED!"
			}
			reqData.Status = string(status)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApplicationList", reqData)
		return c.Next()
	}
}
