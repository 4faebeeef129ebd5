package ambassadorController

import (
	"log"
	"mime/multipart"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"
	ambassadorValidator "learnhub/validators/ambassador"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LatestApplication returns the applicant's most recent application, or
// gorm.ErrRecordNotFound when they never applied. The latest row wins so a
// fresh submission after a rejection supersedes the rejected one for status
// queries.
func LatestApplication(db *gorm.DB, userID uint) (models.AmbassadorApplication, error) {
	var application models.AmbassadorApplication
	err := db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		First(&application).Error
	return application, err
}

// SubmitApplication files an ambassador application for the authenticated user
func SubmitApplication(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedApplication").(*ambassadorValidator.ApplicationFields)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	idProof, ok := c.Locals("idProofFile").(*multipart.FileHeader)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Exactly one non-rejected application may exist per applicant
	var existing models.AmbassadorApplication
	if err := db.Where("user_id = ? AND status <> ?", userID, models.ApplicationStatusRejected).
		First(&existing).Error; err == nil {
		if existing.Status == models.ApplicationStatusApproved {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already an ambassador!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have a pending application!", nil)
	}

	filePath, err := utils.SaveUploadedFile(idProof, "./uploads/idproofs")
	if err != nil {
		log.Printf("Error saving ID proof: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save ID proof!", nil)
	}

	application := models.AmbassadorApplication{
		UserID:      userID,
		CollegeName: reqData.CollegeName,
		CollegeCity: reqData.CollegeCity,
		CollegeID:   reqData.CollegeID,
		Year:        reqData.Year,
		Branch:      reqData.Branch,
		Phone:       reqData.Phone,
		LinkedinURL: reqData.LinkedinURL,
		Motivation:  reqData.Motivation,
		Experience:  reqData.Experience,
		IDProofPath: filePath,
		Status:      models.ApplicationStatusPending,
	}

	if err := db.Create(&application).Error; err != nil {
		log.Printf("Error saving application: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully!", fiber.Map{
		"applicationId": application.ID,
		"status":        application.Status,
	})
}

// GetApplicationStatus reports the applicant's current standing
func GetApplicationStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	application, err := LatestApplication(database.Database.Db, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "No application found.", fiber.Map{
				"status": "NONE",
			})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch application status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application status fetched!", fiber.Map{
		"applicationId": application.ID,
		"status":        application.Status,
		"reviewedAt":    application.ReviewedAt,
	})
}
