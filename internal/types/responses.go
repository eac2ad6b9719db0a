package types

import "time"

// ErrorResponse is the wire shape for every non-2xx answer. Errors is only
// populated for validation failures.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func NewError(status int, message string) ErrorResponse {
	return ErrorResponse{StatusCode: status, Message: message}
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type SportResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ScheduleResponse struct {
	ID        uint      `json:"id"`
	StartDate time.Time `json:"startDate"`
}

type ClassResponse struct {
	ID              uint               `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Duration        int                `json:"duration"`
	MaxParticipants int                `json:"maxParticipants"`
	IsActive        bool               `json:"isActive"`
	SportID         uint               `json:"sportId"`
	Sport           *SportResponse     `json:"sport,omitempty"`
	Schedules       []ScheduleResponse `json:"schedules"`
}

type RegistrationResponse struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"userId"`
	ClassID     uint          `json:"classId"`
	IsConfirmed bool          `json:"isConfirmed"`
	CreatedAt   time.Time     `json:"createdAt"`
	User        *UserResponse `json:"user,omitempty"`
}
