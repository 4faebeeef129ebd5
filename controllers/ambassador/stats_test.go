package ambassadorController_test

import (
	"fmt"
	"testing"
	"time"

	ambassadorController "learnhub/controllers/ambassador"
	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAttribution(t *testing.T, db *gorm.DB, userID uint, paymentRef string, amount float64, at time.Time) {
	row := models.AttributedEnrollment{
		EnrollmentRef: "enr-" + paymentRef,
		UserID:        userID,
		ReferralCode:  "STATCODE",
		CampaignID:    "course-x",
		PaymentRef:    paymentRef,
		Amount:        amount,
		Currency:      "INR",
	}
	row.CreatedAt = at
	require.NoError(t, db.Create(&row).Error)
}

func TestComputeStatsWindows(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "stats@test.in")

	asOf := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	seedAttribution(t, db, user.ID, "pay_old", 1000, asOf.AddDate(0, 0, -40)) // July 16
	seedAttribution(t, db, user.ID, "pay_mid", 1000, asOf.AddDate(0, 0, -20)) // Aug 5
	seedAttribution(t, db, user.ID, "pay_new", 1000, asOf.AddDate(0, 0, -3))  // Aug 22

	stats, err := ambassadorController.ComputeStats(db, user.ID, asOf)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ThisMonth, "calendar month should include the -20d and -3d rows")
	assert.Equal(t, int64(1), stats.ThisWeek, "rolling week should include only the -3d row")
}

func TestComputeStatsIgnoresOtherAmbassadors(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "mine@test.in")
	other := seedUser(t, db, "other@test.in")

	asOf := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	seedAttribution(t, db, user.ID, "pay_a", 500, asOf.AddDate(0, 0, -1))
	seedAttribution(t, db, other.ID, "pay_b", 500, asOf.AddDate(0, 0, -1))

	stats, err := ambassadorController.ComputeStats(db, user.ID, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
}

func TestComputeStatsEarnings(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "earnings@test.in")

	asOf := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	// Six enrollments of 1000 each: the ambassador crosses into Silver at
	// the fifth one.
	for i := 1; i <= 6; i++ {
		seedAttribution(t, db, user.ID, fmt.Sprintf("pay_%d", i), 1000, asOf.AddDate(0, 0, -i))
	}

	stats, err := ambassadorController.ComputeStats(db, user.ID, asOf)
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.Total)
	assert.Equal(t, models.TierSilver, stats.Tier)

	// Dashboard figure: current (Silver) rate applied retroactively
	assert.InDelta(t, 6000*0.20, stats.EstimatedEarnings, 0.001)

	// Ledger figure: first four at Bronze, last two at Silver
	assert.InDelta(t, 4*1000*0.10+2*1000*0.20, stats.LockedEarnings, 0.001)
}

func TestComputeStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "empty@test.in")

	stats, err := ambassadorController.ComputeStats(db, user.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, models.TierBronze, stats.Tier)
	assert.Equal(t, 0.0, stats.EstimatedEarnings)
	assert.Equal(t, 0.0, stats.LockedEarnings)
}
