package adminController

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListApplications lists ambassador applications with optional status filter
func ListApplications(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedApplicationList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Status string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.AmbassadorApplication{})
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var total int64
	db.Count(&total)

	var applications []models.AmbassadorApplication
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Preload("User").Find(&applications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	type ApplicationWithUser struct {
		models.AmbassadorApplication
		UserName   string `json:"user_name"`
		UserEmail  string `json:"user_email"`
		IDProofURL string `json:"id_proof_url"`
	}

	result := make([]ApplicationWithUser, len(applications))
	for i, a := range applications {
		result[i] = ApplicationWithUser{
			AmbassadorApplication: a,
			UserName:              a.User.Name,
			UserEmail:             a.User.Email,
			IDProofURL:            utils.GetFileURL(a.IDProofPath),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", fiber.Map{
		"applications": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ReviewApplicationRecord applies an admin decision to an application.
// Decisions are idempotent where retries are expected: re-approving an
// approved application is a no-op, and a rejected application may be flipped
// to approved as a manual override. Everything else terminal is a conflict.
func ReviewApplicationRecord(db *gorm.DB, applicationID uint, decision models.ApplicationStatus, reviewerID uint) (models.AmbassadorApplication, int, string) {
	var application models.AmbassadorApplication
	if err := db.Where("id = ?", applicationID).First(&application).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return application, fiber.StatusNotFound, "Application not found!"
		}
		return application, fiber.StatusInternalServerError, "Failed to fetch application!"
	}

	switch application.Status {
	case models.ApplicationStatusApproved:
		if decision == models.ApplicationStatusApproved {
			// Retried admin action; nothing to do
			return application, fiber.StatusOK, "Application already approved."
		}
		return application, fiber.StatusConflict, "Application has already been reviewed!"
	case models.ApplicationStatusRejected:
		if decision == models.ApplicationStatusRejected {
			return application, fiber.StatusConflict, "Application has already been reviewed!"
		}
		// Manual override: rejected → approved is permitted
	}

	reviewTime := time.Now()
	application.Status = decision
	application.ReviewedBy = reviewerID
	application.ReviewedAt = &reviewTime

	if err := db.Save(&application).Error; err != nil {
		return application, fiber.StatusInternalServerError, "Failed to update application!"
	}

	return application, fiber.StatusOK, "Application reviewed successfully!"
}

// ReviewApplication handles the admin review decision endpoint
func ReviewApplication(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	applicationID := c.Locals("applicationID").(int)
	decision := c.Locals("reviewDecision").(models.ApplicationStatus)

	db := database.Database.Db

	application, status, message := ReviewApplicationRecord(db, uint(applicationID), decision, reviewerID)
	if status != fiber.StatusOK {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	// Decision notifications are best-effort and never block the review
	var applicant models.User
	if err := db.Where("id = ?", application.UserID).First(&applicant).Error; err == nil {
		utils.SendApplicationDecisionEmail(applicant.Email, applicant.Name, application.Status == models.ApplicationStatusApproved)
		if applicant.Mobile != "" && application.Status == models.ApplicationStatusApproved {
			go utils.SendWhatsappMessage(applicant.Mobile, "Congratulations! Your LearnHub ambassador application has been approved.")
		}
	} else {
		log.Printf("Error loading applicant %d for notification: %v", application.UserID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"applicationId": application.ID,
		"status":        application.Status,
		"reviewedAt":    application.ReviewedAt,
	})
}

// ProgramDashboard summarizes the ambassador program for the admin console
func ProgramDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var pendingCount, ambassadorCount, attributionCount int64
	db.Model(&models.AmbassadorApplication{}).Where("status = ?", models.ApplicationStatusPending).Count(&pendingCount)
	db.Model(&models.AmbassadorApplication{}).Where("status = ?", models.ApplicationStatusApproved).Count(&ambassadorCount)
	db.Model(&models.AttributedEnrollment{}).Count(&attributionCount)

	type TopAmbassador struct {
		UserID      uint    `json:"userId"`
		Enrollments int64   `json:"enrollments"`
		TotalAmount float64 `json:"totalAmount"`
	}

	var top []TopAmbassador
	if err := db.Model(&models.AttributedEnrollment{}).
		Select("user_id, COUNT(*) as enrollments, COALESCE(SUM(amount), 0) as total_amount").
		Group("user_id").
		Order("enrollments desc").
		Limit(10).
		Scan(&top).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"pendingApplications":   pendingCount,
		"activeAmbassadors":     ambassadorCount,
		"attributedEnrollments": attributionCount,
		"topAmbassadors":        top,
	})
}
