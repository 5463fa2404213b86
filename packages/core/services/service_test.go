package services

import (
	"fmt"
	"testing"

	"core/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database migrated with every core
// table. Each test gets its own named memory database so tests cannot see
// each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Player{},
		&models.PlayerRating{},
		&models.PendingMatch{},
		&models.CompletedMatch{},
		&models.Challenge{},
		&models.RatingHistory{},
	)
	require.NoError(t, err)

	return db
}

var testUserID uint

func createTestPlayer(t *testing.T, db *gorm.DB, handle string) *models.Player {
	t.Helper()

	testUserID++
	player := models.Player{
		Handle:      handle,
		UserID:      testUserID,
		DisplayName: handle,
	}
	require.NoError(t, db.Create(&player).Error)
	return &player
}

func setRating(t *testing.T, db *gorm.DB, handle, sport string, rating int) {
	t.Helper()

	require.NoError(t, db.Create(&models.PlayerRating{
		PlayerHandle: handle,
		Sport:        sport,
		Rating:       rating,
	}).Error)
}

func intPtr(v int) *int {
	return &v
}
