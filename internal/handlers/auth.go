package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/auth"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
	FirstName string `json:"firstName" binding:"required,min=2,alpha"`
	LastName  string `json:"lastName" binding:"required,min=2,alpha"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a regular user account. The role is always "user" here;
// admin accounts are created through the admin user endpoints.
func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existing models.User

	err := db.DB.Where("email = ?", email).First(&existing).Error

	if err == nil {
		respondError(ctx, http.StatusConflict, "User already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("failed to check existing user")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Role:         models.RoleUser,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.JSON(http.StatusCreated, userResponse(user))
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User

	err := db.DB.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		respondError(ctx, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)

	if err != nil {
		log.Error().Err(err).Msg("failed to generate JWT")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, types.LoginResponse{
		AccessToken: token,
		User:        userResponse(user),
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:        currentUser.ID,
		Email:     currentUser.Email,
		FirstName: currentUser.FirstName,
		LastName:  currentUser.LastName,
		Role:      currentUser.Role,
	})
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}
