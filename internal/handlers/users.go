package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpassword"`
	FirstName string `json:"firstName" binding:"required,min=2,alpha"`
	LastName  string `json:"lastName" binding:"required,min=2,alpha"`
	Role      string `json:"role" binding:"omitempty,oneof=admin user"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,strongpassword"`
	FirstName *string `json:"firstName" binding:"omitempty,min=2,alpha"`
	LastName  *string `json:"lastName" binding:"omitempty,min=2,alpha"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin user"`
}

func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

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

	role := body.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    body.FirstName,
		LastName:     body.LastName,
		Role:         role,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to create user")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.JSON(http.StatusCreated, userResponse(user))
}

func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("failed to list users")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, userResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Error().Err(err).Msg("failed to fetch user")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func UpdateUser(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var body UpdateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Error().Err(err).Msg("failed to fetch user")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))

		if email != user.Email {
			var existing models.User

			err := db.DB.Where("email = ? AND id != ?", email, user.ID).First(&existing).Error

			if err == nil {
				respondError(ctx, http.StatusConflict, "User already exists")
				return
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Error().Err(err).Msg("failed to check existing email")
				respondError(ctx, http.StatusInternalServerError, "Internal server error")
				return
			}

			user.Email = email
		}
	}

	if body.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)

		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
			return
		}

		user.PasswordHash = string(passwordHash)
	}

	if body.FirstName != nil {
		user.FirstName = *body.FirstName
	}

	if body.LastName != nil {
		user.LastName = *body.LastName
	}

	if body.Role != nil {
		user.Role = *body.Role
	}

	if err := db.DB.Save(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to update user")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// DeleteUser is guarded the same way as sport and class deletion: a user with
// registrations cannot be removed until those are unregistered.
func DeleteUser(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var user models.User

	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "User not found")
		} else {
			log.Error().Err(err).Msg("failed to fetch user")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	var registrations int64

	if err := db.DB.Model(&models.ClassRegistration{}).Where("user_id = ?", id).Count(&registrations).Error; err != nil {
		log.Error().Err(err).Msg("failed to count registrations")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if registrations > 0 {
		respondError(ctx, http.StatusConflict, "Cannot delete the user because they have associated class registrations. The registrations must be deleted first.")
		return
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete user")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.Status(http.StatusNoContent)
}
