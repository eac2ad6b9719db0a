package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/services"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/utils"
	"github.com/gin-gonic/gin"
)

type ScheduleRequest struct {
	StartDate types.Date `json:"startDate" binding:"required,futuredate"`
}

type CreateClassRequest struct {
	Name            string            `json:"name" binding:"required"`
	Description     string            `json:"description" binding:"required"`
	Duration        int               `json:"duration" binding:"required,min=1"`
	MaxParticipants int               `json:"maxParticipants" binding:"required,min=1"`
	IsActive        *bool             `json:"isActive"`
	SportID         uint              `json:"sportId" binding:"required"`
	Schedules       []ScheduleRequest `json:"schedules" binding:"required,min=1,dive"`
}

type UpdateClassRequest struct {
	Name            *string           `json:"name" binding:"omitempty,min=1"`
	Description     *string           `json:"description"`
	Duration        *int              `json:"duration" binding:"omitempty,min=1"`
	MaxParticipants *int              `json:"maxParticipants" binding:"omitempty,min=1"`
	IsActive        *bool             `json:"isActive"`
	SportID         *uint             `json:"sportId"`
	Schedules       []ScheduleRequest `json:"schedules" binding:"omitempty,min=1,dive"`
}

// ListClasses is open to any authenticated user; ?sport=yoga,boxing narrows
// the result by sport name fragments.
func ListClasses(ctx *gin.Context) {
	var sportNames []string

	if filter := ctx.Query("sport"); filter != "" {
		for _, name := range strings.Split(filter, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				sportNames = append(sportNames, trimmed)
			}
		}
	}

	classes, err := services.NewClassService(db.DB).List(sportNames)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	response := make([]types.ClassResponse, 0, len(classes))

	for _, class := range classes {
		response = append(response, classResponse(class))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetClass(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	class, err := services.NewClassService(db.DB).Get(id)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, classResponse(*class))
}

func CreateClass(ctx *gin.Context) {
	var body CreateClassRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	class, err := services.NewClassService(db.DB).Create(services.CreateClassInput{
		Name:            body.Name,
		Description:     body.Description,
		Duration:        body.Duration,
		MaxParticipants: body.MaxParticipants,
		IsActive:        isActive,
		SportID:         body.SportID,
		Schedules:       scheduleDates(body.Schedules),
	})

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, classResponse(*class))
}

func UpdateClass(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var body UpdateClassRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondBindingError(ctx, err)
		return
	}

	input := services.UpdateClassInput{
		Name:            body.Name,
		Description:     body.Description,
		Duration:        body.Duration,
		MaxParticipants: body.MaxParticipants,
		IsActive:        body.IsActive,
		SportID:         body.SportID,
	}

	if len(body.Schedules) > 0 {
		input.Schedules = scheduleDates(body.Schedules)
	}

	class, err := services.NewClassService(db.DB).Update(id, input)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, classResponse(*class))
}

func DeleteClass(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := services.NewClassService(db.DB).Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RegisterForClass enrolls the calling user; the capacity and duplicate
// checks happen inside the registration service transaction.
func RegisterForClass(ctx *gin.Context) {
	classID, ok := paramID(ctx)
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	registration, err := services.NewRegistrationService(db.DB).Register(userID, classID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, registrationResponse(*registration))
}

func UnregisterFromClass(ctx *gin.Context) {
	classID, ok := paramID(ctx)
	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := services.NewRegistrationService(db.DB).Unregister(userID, classID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func GetClassRegistrations(ctx *gin.Context) {
	classID, ok := paramID(ctx)
	if !ok {
		return
	}

	registrations, err := services.NewRegistrationService(db.DB).Registrations(classID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	response := make([]types.RegistrationResponse, 0, len(registrations))

	for _, registration := range registrations {
		item := registrationResponse(registration)
		user := userResponse(registration.User)
		item.User = &user
		response = append(response, item)
	}

	ctx.JSON(http.StatusOK, response)
}

func classResponse(class models.SportsClass) types.ClassResponse {
	response := types.ClassResponse{
		ID:              class.ID,
		Name:            class.Name,
		Description:     class.Description,
		Duration:        class.Duration,
		MaxParticipants: class.MaxParticipants,
		IsActive:        class.IsActive,
		SportID:         class.SportID,
		Schedules:       make([]types.ScheduleResponse, 0, len(class.Schedules)),
	}

	if class.Sport.ID != 0 {
		sport := sportResponse(class.Sport)
		response.Sport = &sport
	}

	for _, schedule := range class.Schedules {
		response.Schedules = append(response.Schedules, types.ScheduleResponse{
			ID:        schedule.ID,
			StartDate: schedule.StartDate,
		})
	}

	return response
}

func registrationResponse(registration models.ClassRegistration) types.RegistrationResponse {
	return types.RegistrationResponse{
		ID:          registration.ID,
		UserID:      registration.UserID,
		ClassID:     registration.SportsClassID,
		IsConfirmed: registration.IsConfirmed,
		CreatedAt:   registration.CreatedAt,
	}
}

func scheduleDates(schedules []ScheduleRequest) []time.Time {
	dates := make([]time.Time, 0, len(schedules))

	for _, schedule := range schedules {
		dates = append(dates, schedule.StartDate.Time)
	}

	return dates
}
