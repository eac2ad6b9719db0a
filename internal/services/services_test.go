package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway sqlite database. A single connection keeps
// sqlite's writers serialized, the same role the row lock plays on postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "services.db")

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Sport{},
		&models.SportsClass{},
		&models.Schedule{},
		&models.ClassRegistration{},
	))

	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
	}
	require.NoError(t, gdb.Create(&user).Error)

	return user
}

func createTestClass(t *testing.T, gdb *gorm.DB, maxParticipants int) models.SportsClass {
	t.Helper()

	sport := models.Sport{Name: fmt.Sprintf("Sport %d", time.Now().UnixNano()), Description: "test sport"}
	require.NoError(t, gdb.Create(&sport).Error)

	class := models.SportsClass{
		Name:            "Test Class",
		Description:     "test class",
		Duration:        60,
		MaxParticipants: maxParticipants,
		IsActive:        true,
		SportID:         sport.ID,
	}
	require.NoError(t, gdb.Create(&class).Error)

	return class
}

func registrationCount(t *testing.T, gdb *gorm.DB, classID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, gdb.Model(&models.ClassRegistration{}).Where("sports_class_id = ?", classID).Count(&count).Error)

	return count
}
