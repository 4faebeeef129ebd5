package utils

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/models"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[AMBASSADOR-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendMonthlySummaries emails every ambassador their previous month's
// referred-enrollment count and estimated earnings.
func sendMonthlySummaries() {
	db := database.Database.Db

	monthStart := now.BeginningOfMonth()
	prevStart := monthStart.AddDate(0, -1, 0)

	var ambassadors []models.AmbassadorApplication
	if err := db.Where("status = ?", models.ApplicationStatusApproved).
		Preload("User").
		Find(&ambassadors).Error; err != nil {
		logScheduler("Error fetching ambassadors: " + err.Error())
		return
	}

	for _, amb := range ambassadors {
		var monthCount int64
		db.Model(&models.AttributedEnrollment{}).
			Where("user_id = ? AND created_at >= ? AND created_at < ?", amb.UserID, prevStart, monthStart).
			Count(&monthCount)

		if monthCount == 0 {
			continue
		}

		var lifetimeCount int64
		db.Model(&models.AttributedEnrollment{}).
			Where("user_id = ?", amb.UserID).
			Count(&lifetimeCount)

		var monthAmount float64
		db.Model(&models.AttributedEnrollment{}).
			Where("user_id = ? AND created_at >= ? AND created_at < ?", amb.UserID, prevStart, monthStart).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&monthAmount)

		tier := models.TierFor(lifetimeCount)
		earnings := monthAmount * tier.Rate

		SendMonthlySummaryEmail(amb.User.Email, amb.User.Name, monthCount, earnings, tier.Name)
	}

	logScheduler("Monthly summaries dispatched")
}

// StartMonthlyReportScheduler runs the summary job on the 1st of every month
func StartMonthlyReportScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 8 1 * *", sendMonthlySummaries); err != nil {
		logScheduler("Failed to register monthly summary job: " + err.Error())
		return
	}

	c.Start()
	logScheduler("Monthly report scheduler started")
}
