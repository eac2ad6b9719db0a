package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/auth"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/router"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires the real router against a throwaway sqlite database.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	path := filepath.Join(t.TempDir(), "handlers.db")

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

	db.DB = gdb

	gin.SetMode(gin.TestMode)

	return router.NewRouter()
}

func performRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()

	var response types.ErrorResponse
	decodeBody(t, recorder, &response)

	return response
}

// createUserWithToken inserts a user row directly and mints a token for it,
// bypassing the register endpoint so tests can create admins too.
func createUserWithToken(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	return user, token
}
