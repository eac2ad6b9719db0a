package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateSportRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateSportRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

func ListSports(ctx *gin.Context) {
	var sports []models.Sport

	if err := db.DB.Find(&sports).Error; err != nil {
		log.Error().Err(err).Msg("failed to list sports")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]types.SportResponse, 0, len(sports))

	for _, sport := range sports {
		response = append(response, sportResponse(sport))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetSport(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var sport models.Sport

	if err := db.DB.First(&sport, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Sport not found")
		} else {
			log.Error().Err(err).Msg("failed to fetch sport")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	ctx.JSON(http.StatusOK, sportResponse(sport))
}

func CreateSport(ctx *gin.Context) {
	var body CreateSportRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	var existing models.Sport

	err := db.DB.Where("name = ?", body.Name).First(&existing).Error

	if err == nil {
		respondError(ctx, http.StatusConflict, "Sport with name "+body.Name+" already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("failed to check existing sport")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	sport := models.Sport{
		Name:        body.Name,
		Description: body.Description,
	}

	if err := db.DB.Create(&sport).Error; err != nil {
		log.Error().Err(err).Msg("failed to create sport")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.JSON(http.StatusCreated, sportResponse(sport))
}

func UpdateSport(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var body UpdateSportRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	var sport models.Sport

	if err := db.DB.First(&sport, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Sport not found")
		} else {
			log.Error().Err(err).Msg("failed to fetch sport")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	if body.Name != nil && *body.Name != sport.Name {
		var existing models.Sport

		err := db.DB.Where("name = ? AND id != ?", *body.Name, sport.ID).First(&existing).Error

		if err == nil {
			respondError(ctx, http.StatusConflict, "Sport with name "+*body.Name+" already exists")
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("failed to check existing sport")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
			return
		}

		sport.Name = *body.Name
	}

	if body.Description != nil {
		sport.Description = *body.Description
	}

	if err := db.DB.Save(&sport).Error; err != nil {
		log.Error().Err(err).Msg("failed to update sport")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, sportResponse(sport))
}

// DeleteSport refuses to remove a sport that still has classes; this mirrors
// the class-side guard on registrations.
func DeleteSport(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var sport models.Sport

	if err := db.DB.First(&sport, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Sport not found")
		} else {
			log.Error().Err(err).Msg("failed to fetch sport")
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	var classes int64

	if err := db.DB.Model(&models.SportsClass{}).Where("sport_id = ?", id).Count(&classes).Error; err != nil {
		log.Error().Err(err).Msg("failed to count classes")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if classes > 0 {
		respondError(ctx, http.StatusConflict, "Cannot delete sport because it has associated classes. Please delete the classes first.")
		return
	}

	if err := db.DB.Delete(&sport).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete sport")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func sportResponse(sport models.Sport) types.SportResponse {
	return types.SportResponse{
		ID:          sport.ID,
		Name:        sport.Name,
		Description: sport.Description,
	}
}

func paramID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}

	return uint(id), true
}
