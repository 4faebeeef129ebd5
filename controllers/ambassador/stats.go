package ambassadorController

import (
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// AmbassadorStats is the dashboard figure set, recomputed on every read from
// the attributed-enrollment rows. Nothing here is stored.
type AmbassadorStats struct {
	Total     int64 `json:"total"`
	ThisMonth int64 `json:"thisMonth"`
	ThisWeek  int64 `json:"thisWeek"`

	Tier models.CommissionTier `json:"tier"`

	// EstimatedEarnings applies the current tier rate to the entire
	// historical amount, matching the product dashboard. LockedEarnings
	// prices each enrollment at the rate in effect when it landed; payout
	// tooling reads this one.
	EstimatedEarnings float64 `json:"estimatedEarnings"`
	LockedEarnings    float64 `json:"lockedEarnings"`
}

// ComputeStats aggregates an ambassador's attributed enrollments as of the
// given instant. thisMonth uses the calendar month containing asOf; thisWeek
// is a rolling 7-day window.
func ComputeStats(db *gorm.DB, userID uint, asOf time.Time) (AmbassadorStats, error) {
	var stats AmbassadorStats

	if err := db.Model(&models.AttributedEnrollment{}).
		Where("user_id = ? AND created_at <= ?", userID, asOf).
		Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	monthStart := now.With(asOf).BeginningOfMonth()
	if err := db.Model(&models.AttributedEnrollment{}).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, monthStart, asOf).
		Count(&stats.ThisMonth).Error; err != nil {
		return stats, err
	}

	weekStart := asOf.AddDate(0, 0, -7)
	if err := db.Model(&models.AttributedEnrollment{}).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, weekStart, asOf).
		Count(&stats.ThisWeek).Error; err != nil {
		return stats, err
	}

	stats.Tier = models.TierFor(stats.Total)

	var rows []models.AttributedEnrollment
	if err := db.Where("user_id = ? AND created_at <= ?", userID, asOf).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return stats, err
	}

	var totalAmount float64
	for i, row := range rows {
		totalAmount += row.Amount
		stats.LockedEarnings += row.Amount * models.TierFor(int64(i+1)).Rate
	}
	stats.EstimatedEarnings = totalAmount * stats.Tier.Rate

	return stats, nil
}

// GetAmbassadorStats serves the ambassador dashboard figures
func GetAmbassadorStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	application, err := LatestApplication(db, userID)
	if err != nil || application.Status != models.ApplicationStatusApproved {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not an approved ambassador!", nil)
	}

	stats, err := ComputeStats(db, userID, time.Now())
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}
