package adminController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/database"
	"learnhub/models"
	adminValidator "learnhub/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int

func setupTestDB(t *testing.T) *gorm.DB {
	testDBCounter++
	dsn := fmt.Sprintf("file:admin_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func seedApplication(t *testing.T, db *gorm.DB, email string) models.AmbassadorApplication {
	user := models.User{Name: "Applicant", Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	application := models.AmbassadorApplication{
		UserID:      user.ID,
		CollegeName: "NIT Trichy",
		CollegeCity: "Tiruchirappalli",
		CollegeID:   "2022EC1044",
		Year:        "2nd",
		Branch:      "ECE",
		Phone:       "9876501234",
		Motivation:  "Campus coding community lead looking to share good courses.",
		IDProofPath: "uploads/idproofs/test.png",
		Status:      models.ApplicationStatusPending,
	}
	require.NoError(t, db.Create(&application).Error)
	return application
}

func TestListApplicationsIncludesIDProofURL(t *testing.T) {
	db := setupTestDB(t)
	database.Database = database.DbInstance{Db: db}
	seedApplication(t, db, "list@test.in")

	app := fiber.New()
	app.Get("/admin/ambassador/applications", adminValidator.ApplicationList(), ListApplications)

	req := httptest.NewRequest(http.MethodGet, "/admin/ambassador/applications?page=1&limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Applications []struct {
				Status     string `json:"status"`
				UserEmail  string `json:"user_email"`
				IDProofURL string `json:"id_proof_url"`
			} `json:"applications"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Data.Applications, 1)

	got := payload.Data.Applications[0]
	assert.Equal(t, "PENDING", got.Status)
	assert.Equal(t, "list@test.in", got.UserEmail)
	assert.Equal(t, "/uploads/test.png", got.IDProofURL)
}

func TestReviewApplicationNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, status, _ := ReviewApplicationRecord(db, 12345, models.ApplicationStatusApproved, 1)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReviewApplicationApprove(t *testing.T) {
	db := setupTestDB(t)
	application := seedApplication(t, db, "approve@test.in")

	reviewed, status, _ := ReviewApplicationRecord(db, application.ID, models.ApplicationStatusApproved, 7)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.ApplicationStatusApproved, reviewed.Status)
	assert.Equal(t, uint(7), reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
}

func TestReviewApplicationReapproveIsNoop(t *testing.T) {
	db := setupTestDB(t)
	application := seedApplication(t, db, "reapprove@test.in")

	_, status, _ := ReviewApplicationRecord(db, application.ID, models.ApplicationStatusApproved, 7)
	require.Equal(t, fiber.StatusOK, status)

	// Retried admin action: still success, still approved
	reviewed, status, _ := ReviewApplicationRecord(db, application.ID, models.ApplicationStatusApproved, 8)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.ApplicationStatusApproved, reviewed.Status)
	assert.Equal(t, uint(7), reviewed.ReviewedBy, "no-op re-approval must not rewrite the review record")
}

func TestReviewApplicationRejectAfterApproveConflicts(t *testing.T) {
	db := setupTestDB(t)
	application := seedApplication(t, db, "conflict@test.in")

	_, status, _ := ReviewApplicationRecord(db, application.ID, models.ApplicationStatusApproved, 7)
	require.Equal(t, fiber.StatusOK, status)

	_, status, _ = ReviewApplicationRecord(db, application.ID, models.ApplicationStatusRejected, 7)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestReviewApplicationRejectedOverride(t *testing.T) {
	db := setupTestDB(t)
	application := seedApplication(t, db, "override@test.in")

	_, status, _ := ReviewApplicationRecord(db, application.ID, models.ApplicationStatusRejected, 7)
	require.Equal(t, fiber.StatusOK, status)

	// Re-rejecting a rejected application is a conflict
	_, status, _ = ReviewApplicationRecord(db, application.ID, models.ApplicationStatusRejected, 7)
	assert.Equal(t, fiber.StatusConflict, status)

	// Flipping a rejection to approved is the permitted manual override
	reviewed, status, _ := ReviewApplicationRecord(db, application.ID, models.ApplicationStatusApproved, 9)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.ApplicationStatusApproved, reviewed.Status)
	assert.Equal(t, uint(9), reviewed.ReviewedBy)
}
