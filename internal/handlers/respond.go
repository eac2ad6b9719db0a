package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/services"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, types.NewError(status, message))
}

// respondBindingError turns a failed bind into the validation wire shape:
// field-level failures land in the errors array, anything else (malformed
// JSON, wrong types) gets a bare message.
func respondBindingError(ctx *gin.Context, err error) {
	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))

		for _, fieldError := range validationErrors {
			messages = append(messages, validationMessage(fieldError))
		}

		ctx.JSON(http.StatusBadRequest, types.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed",
			Errors:     messages,
		})
		return
	}

	respondError(ctx, http.StatusBadRequest, "Invalid request")
}

func validationMessage(fieldError validator.FieldError) string {
	field := fieldError.Field()

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s is below the minimum of %s", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("%s exceeds the maximum of %s", field, fieldError.Param())
	case "alpha":
		return fmt.Sprintf("%s must contain only letters", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	case "futuredate":
		return fmt.Sprintf("%s must not be in the past", field)
	case "strongpassword":
		return fmt.Sprintf("%s must be at least 8 characters long and contain at least one letter and one number", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// respondServiceError maps the business error kinds onto statuses; anything
// unrecognized is an internal error and is logged, not leaked.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSportNotFound),
		errors.Is(err, services.ErrClassNotFound),
		errors.Is(err, services.ErrRegistrationNotFound):
		respondError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrClassFull):
		respondError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrHasRegistrations):
		respondError(ctx, http.StatusBadRequest, "Cannot delete the class because it has registered participants. The registrations must be deleted first.")
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("unexpected service error")
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
