package paymentController

import (
	"fmt"
	"testing"

	"learnhub/database"
	"learnhub/models"
	paymentValidator "learnhub/validators/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int

func setupTestDB(t *testing.T) *gorm.DB {
	testDBCounter++
	dsn := fmt.Sprintf("file:webhook_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func seedAmbassadorWithCode(t *testing.T, db *gorm.DB, code, campaign string) models.ReferralCode {
	user := models.User{Name: "Asha", Email: code + "@test.in", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	referral := models.ReferralCode{Code: code, UserID: user.ID, CampaignID: campaign}
	require.NoError(t, db.Create(&referral).Error)
	return referral
}

func TestAttributeEnrollmentIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	referral := seedAmbassadorWithCode(t, db, "ABC99", "course-x")

	event := &paymentValidator.PaymentCompletedEvent{
		PaymentRef:   "pay_123",
		ReferralCode: "ABC99",
		Amount:       2999,
		Currency:     "INR",
	}

	outcome, first, err := AttributeEnrollment(db, event)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAttributed, outcome)
	assert.Equal(t, referral.UserID, first.UserID)
	assert.Equal(t, "pay_123", first.PaymentRef)
	assert.NotEmpty(t, first.EnrollmentRef)

	// Redelivered event with identical arguments
	outcome, second, err := AttributeEnrollment(db, event)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyAttributed, outcome)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.EnrollmentRef, second.EnrollmentRef)

	var count int64
	db.Model(&models.AttributedEnrollment{}).Where("payment_ref = ?", "pay_123").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAttributeEnrollmentRecoversFromInsertRace(t *testing.T) {
	db := setupTestDB(t)
	referral := seedAmbassadorWithCode(t, db, "RACE42", "course-z")

	event := &paymentValidator.PaymentCompletedEvent{
		PaymentRef:   "pay_race",
		ReferralCode: "RACE42",
		Amount:       2999,
		Currency:     "INR",
	}

	// Slip a concurrent delivery in between the fast-path lookup and the
	// insert: right before our Create runs, write the winner's row so the
	// unique index on payment_ref rejects ours and the loser has to
	// recover by re-reading the winner.
	var winner models.AttributedEnrollment
	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("racing_delivery", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Model.(*models.AttributedEnrollment); !ok {
			return
		}
		injected = true
		winner = models.AttributedEnrollment{
			EnrollmentRef: "enr-winner",
			UserID:        referral.UserID,
			ReferralCode:  referral.Code,
			CampaignID:    referral.CampaignID,
			PaymentRef:    event.PaymentRef,
			Amount:        event.Amount,
			Currency:      event.Currency,
		}
		if err := db.Create(&winner).Error; err != nil {
			t.Errorf("failed to inject racing delivery: %v", err)
		}
	})
	require.NoError(t, err)

	outcome, got, err := AttributeEnrollment(db, event)
	require.NoError(t, err)
	require.True(t, injected, "racing delivery was never injected")

	assert.Equal(t, OutcomeAlreadyAttributed, outcome, "the losing insert must surface the winner, not an error")
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, "enr-winner", got.EnrollmentRef)

	var count int64
	db.Model(&models.AttributedEnrollment{}).Where("payment_ref = ?", "pay_race").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAttributeEnrollmentUnreferenced(t *testing.T) {
	db := setupTestDB(t)

	// No code at all
	outcome, _, err := AttributeEnrollment(db, &paymentValidator.PaymentCompletedEvent{
		PaymentRef: "pay_999",
		Amount:     500,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnreferenced, outcome)

	// A code nobody issued
	outcome, _, err = AttributeEnrollment(db, &paymentValidator.PaymentCompletedEvent{
		PaymentRef:   "pay_1000",
		ReferralCode: "NOSUCH99",
		Amount:       500,
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnreferenced, outcome)

	var count int64
	db.Model(&models.AttributedEnrollment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAttributeEnrollmentDistinctPayments(t *testing.T) {
	db := setupTestDB(t)
	seedAmbassadorWithCode(t, db, "XYZ77", "course-y")

	for i := 1; i <= 3; i++ {
		outcome, _, err := AttributeEnrollment(db, &paymentValidator.PaymentCompletedEvent{
			PaymentRef:   fmt.Sprintf("pay_%d", i),
			ReferralCode: "XYZ77",
			Amount:       1500,
		})
		require.NoError(t, err)
		assert.Equal(t, OutcomeAttributed, outcome)
	}

	var count int64
	db.Model(&models.AttributedEnrollment{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestRecordCourseEnrollmentBestEffort(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{Name: "Ravi", Email: "ravi@test.in", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	course := models.Course{Title: "Dream UPSC", Slug: "dream-upsc", Price: 2999}
	require.NoError(t, db.Create(&course).Error)

	event := &paymentValidator.PaymentCompletedEvent{
		PaymentRef: "pay_55",
		Amount:     2999,
		UserID:     user.ID,
		CourseSlug: "dream-upsc",
	}

	recordCourseEnrollment(db, event)
	recordCourseEnrollment(db, event) // redelivery must not duplicate

	var count int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Unknown course slug is a quiet no-op
	recordCourseEnrollment(db, &paymentValidator.PaymentCompletedEvent{
		PaymentRef: "pay_56",
		Amount:     100,
		UserID:     user.ID,
		CourseSlug: "no-such-course",
	})
	db.Model(&models.Enrollment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
