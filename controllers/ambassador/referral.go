package ambassadorController

import (
	"fmt"
	"log"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const codeInsertRetries = 3

// GetOrCreateCode returns the stable referral code for an
// (ambassador, campaign) pair, minting one on first request. Issuance is
// idempotent: the lookup hits first, and when two concurrent requests race
// past it the composite unique index rejects the loser, which then re-reads
// the winner's code. A clash on the code string itself is retried with a
// fresh code.
func GetOrCreateCode(db *gorm.DB, userID uint, campaignID string) (models.ReferralCode, error) {
	var existing models.ReferralCode
	err := db.Where("user_id = ? AND campaign_id = ?", userID, campaignID).First(&existing).Error
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.ReferralCode{}, err
	}

	var lastErr error
	for attempt := 0; attempt < codeInsertRetries; attempt++ {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return models.ReferralCode{}, err
		}

		referral := models.ReferralCode{
			Code:       code,
			UserID:     userID,
			CampaignID: campaignID,
		}

		if lastErr = db.Create(&referral).Error; lastErr == nil {
			return referral, nil
		}

		// Either the code collided or a concurrent request won the
		// (user, campaign) slot. Re-read before trying a new code.
		if err := db.Where("user_id = ? AND campaign_id = ?", userID, campaignID).First(&existing).Error; err == nil {
			return existing, nil
		}
	}

	return models.ReferralCode{}, fmt.Errorf("could not allocate a unique referral code for user %d: %w", userID, lastErr)
}

// ResolveReferralCode looks up a code with no side effects. Resolution
// happens at checkout; attribution only happens on confirmed payment.
func ResolveReferralCode(db *gorm.DB, code string) (models.ReferralCode, error) {
	var referral models.ReferralCode
	err := db.Where("code = ?", code).First(&referral).Error
	return referral, err
}

// GenerateReferralLink mints (or returns) the caller's referral link for a campaign
func GenerateReferralLink(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	// Only approved ambassadors hold codes
	application, err := LatestApplication(db, userID)
	if err != nil || application.Status != models.ApplicationStatusApproved {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not an approved ambassador!", nil)
	}

	reqData, ok := c.Locals("validatedLink").(*struct {
		CampaignID string `json:"campaignId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Campaign must point at a live course
	var course models.Course
	if err := db.Where("slug = ? AND is_deleted = ? AND status = ?", reqData.CampaignID, false, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Campaign not found!", nil)
	}

	referral, err := GetOrCreateCode(db, userID, reqData.CampaignID)
	if err != nil {
		log.Printf("Error issuing referral code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate referral link!", nil)
	}

	shareURL := fmt.Sprintf("%s/course/%s?ref=%s", config.AppConfig.ReferralBaseUrl, referral.CampaignID, referral.Code)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Referral link ready!", fiber.Map{
		"code":       referral.Code,
		"campaignId": referral.CampaignID,
		"shareUrl":   shareURL,
	})
}
