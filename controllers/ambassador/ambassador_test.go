package ambassadorController_test

import (
	"fmt"
	"testing"

	"learnhub/database"
	"learnhub/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int

func setupTestDB(t *testing.T) *gorm.DB {
	testDBCounter++
	dsn := fmt.Sprintf("file:ambassador_test_%d?mode=memory&cache=shared", testDBCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database.RunMigrations(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{Name: "Test User", Email: email, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
