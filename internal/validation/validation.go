package validation

import (
	"regexp"
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`\d`)
)

// Register installs the domain validators into gin's binding engine so they
// can be used as binding tags on request DTOs.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("futuredate", validateFutureDate)
	_ = v.RegisterValidation("strongpassword", validateStrongPassword)
}

// validateFutureDate accepts dates from the start of today onward, so a
// schedule for later today is still valid.
func validateFutureDate(fl validator.FieldLevel) bool {
	var t time.Time

	switch value := fl.Field().Interface().(type) {
	case time.Time:
		t = value
	case types.Date:
		t = value.Time
	default:
		return false
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return !t.Before(today)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 && hasLetter.MatchString(password) && hasDigit.MatchString(password)
}
