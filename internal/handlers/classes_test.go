package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/stretchr/testify/require"
)

func TestClassRegistrationScenario(t *testing.T) {
	r := setupServer(t)

	_, adminToken := createUserWithToken(t, "admin@example.com", models.RoleAdmin)
	_, tokenA := createUserWithToken(t, "a@example.com", models.RoleUser)
	_, tokenB := createUserWithToken(t, "b@example.com", models.RoleUser)

	recorder := performRequest(t, r, http.MethodPost, "/sports", adminToken, map[string]string{"name": "Tennis"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var sport types.SportResponse
	decodeBody(t, recorder, &sport)

	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	recorder = performRequest(t, r, http.MethodPost, "/classes", adminToken, map[string]interface{}{
		"name":            "Private Lesson",
		"description":     "one on one",
		"duration":        60,
		"maxParticipants": 1,
		"sportId":         sport.ID,
		"schedules":       []map[string]string{{"startDate": nextWeek}},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var class types.ClassResponse
	decodeBody(t, recorder, &class)
	require.Len(t, class.Schedules, 1)

	registerPath := fmt.Sprintf("/classes/%d/register", class.ID)
	unregisterPath := fmt.Sprintf("/classes/%d/unregister", class.ID)

	// A takes the only seat.
	recorder = performRequest(t, r, http.MethodPost, registerPath, tokenA, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// B is turned away.
	recorder = performRequest(t, r, http.MethodPost, registerPath, tokenB, nil)
	require.Equal(t, http.StatusConflict, recorder.Code)
	require.Equal(t, "class is full", decodeError(t, recorder).Message)

	// A registering again is a conflict, not a second seat.
	recorder = performRequest(t, r, http.MethodPost, registerPath, tokenA, nil)
	require.Equal(t, http.StatusConflict, recorder.Code)

	// A gives the seat up, B gets it.
	recorder = performRequest(t, r, http.MethodDelete, unregisterPath, tokenA, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = performRequest(t, r, http.MethodDelete, unregisterPath, tokenA, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = performRequest(t, r, http.MethodPost, registerPath, tokenB, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Admin sees exactly B on the roster.
	recorder = performRequest(t, r, http.MethodGet, fmt.Sprintf("/classes/%d/registrations", class.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var roster []types.RegistrationResponse
	decodeBody(t, recorder, &roster)
	require.Len(t, roster, 1)
	require.NotNil(t, roster[0].User)
	require.Equal(t, "b@example.com", roster[0].User.Email)

	// The roster is admin-only.
	recorder = performRequest(t, r, http.MethodGet, fmt.Sprintf("/classes/%d/registrations", class.ID), tokenB, nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateClassRejectsPastSchedule(t *testing.T) {
	r := setupServer(t)

	_, adminToken := createUserWithToken(t, "admin@example.com", models.RoleAdmin)

	recorder := performRequest(t, r, http.MethodPost, "/sports", adminToken, map[string]string{"name": "Swimming"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var sport types.SportResponse
	decodeBody(t, recorder, &sport)

	lastWeek := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	recorder = performRequest(t, r, http.MethodPost, "/classes", adminToken, map[string]interface{}{
		"name":            "Laps",
		"description":     "endurance",
		"duration":        45,
		"maxParticipants": 6,
		"sportId":         sport.ID,
		"schedules":       []map[string]string{{"startDate": lastWeek}},
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	response := decodeError(t, recorder)
	require.Equal(t, "Validation failed", response.Message)
	require.NotEmpty(t, response.Errors)
}

func TestListClassesWithSportFilter(t *testing.T) {
	r := setupServer(t)

	_, adminToken := createUserWithToken(t, "admin@example.com", models.RoleAdmin)
	_, userToken := createUserWithToken(t, "user@example.com", models.RoleUser)

	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	for _, name := range []string{"Yoga", "Boxing"} {
		recorder := performRequest(t, r, http.MethodPost, "/sports", adminToken, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, recorder.Code)

		var sport types.SportResponse
		decodeBody(t, recorder, &sport)

		recorder = performRequest(t, r, http.MethodPost, "/classes", adminToken, map[string]interface{}{
			"name":            name + " Class",
			"description":     "d",
			"duration":        60,
			"maxParticipants": 10,
			"sportId":         sport.ID,
			"schedules":       []map[string]string{{"startDate": nextWeek}},
		})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := performRequest(t, r, http.MethodGet, "/classes", userToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var all []types.ClassResponse
	decodeBody(t, recorder, &all)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Sport, "sport must be preloaded in listings")

	recorder = performRequest(t, r, http.MethodGet, "/classes?sport=Yoga", userToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var filtered []types.ClassResponse
	decodeBody(t, recorder, &filtered)
	require.Len(t, filtered, 1)
	require.Equal(t, "Yoga Class", filtered[0].Name)

	// Regular users cannot create classes.
	recorder = performRequest(t, r, http.MethodPost, "/classes", userToken, map[string]interface{}{
		"name": "Rogue", "description": "d", "duration": 60, "maxParticipants": 5, "sportId": 1,
		"schedules": []map[string]string{{"startDate": nextWeek}},
	})
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDeleteUserBlockedByRegistrations(t *testing.T) {
	r := setupServer(t)

	_, adminToken := createUserWithToken(t, "admin@example.com", models.RoleAdmin)
	user, userToken := createUserWithToken(t, "member@example.com", models.RoleUser)

	recorder := performRequest(t, r, http.MethodPost, "/sports", adminToken, map[string]string{"name": "Cycling"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var sport types.SportResponse
	decodeBody(t, recorder, &sport)

	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	recorder = performRequest(t, r, http.MethodPost, "/classes", adminToken, map[string]interface{}{
		"name":            "Spin",
		"description":     "intervals",
		"duration":        45,
		"maxParticipants": 10,
		"sportId":         sport.ID,
		"schedules":       []map[string]string{{"startDate": nextWeek}},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var class types.ClassResponse
	decodeBody(t, recorder, &class)

	recorder = performRequest(t, r, http.MethodPost, fmt.Sprintf("/classes/%d/register", class.ID), userToken, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), adminToken, nil)
	require.Equal(t, http.StatusConflict, recorder.Code)

	recorder = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/classes/%d/unregister", class.ID), userToken, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
}
