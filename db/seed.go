package db

import (
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// SeedDatabase populates an empty database with a pair of accounts, a sports
// catalog and a few classes with upcoming schedules. It is a no-op once any
// user exists, so it is safe to leave enabled across restarts.
func SeedDatabase() error {
	var count int64

	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userHash, err := bcrypt.GenerateFromPassword([]byte("user1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "admin@example.com", PasswordHash: string(adminHash), FirstName: "Admin", LastName: "User", Role: models.RoleAdmin},
		{Email: "user@example.com", PasswordHash: string(userHash), FirstName: "Regular", LastName: "User", Role: models.RoleUser},
	}

	if err := DB.Create(&users).Error; err != nil {
		return err
	}

	sports := []models.Sport{
		{Name: "Yoga", Description: "A group of physical, mental, and spiritual practices originating in ancient India."},
		{Name: "Pilates", Description: "A physical fitness system developed in the early 20th century by Joseph Pilates."},
		{Name: "CrossFit", Description: "A high-intensity fitness program incorporating elements from several sports and types of exercise."},
		{Name: "Zumba", Description: "A fitness program that combines Latin and international music with dance moves."},
		{Name: "Boxing", Description: "A combat sport in which two people engage in a contest of strength, speed, reflexes, endurance, and will."},
		{Name: "Tennis", Description: "A racket sport that can be played individually against a single opponent or between two teams of two players each."},
		{Name: "Swimming", Description: "A full-body workout that improves cardiovascular health and builds endurance in the water."},
		{Name: "Cycling", Description: "A low-impact exercise that can help to tone muscles and improve cardiovascular fitness on a bicycle."},
	}

	if err := DB.Create(&sports).Error; err != nil {
		return err
	}

	nextWeek := time.Now().AddDate(0, 0, 7)

	classes := []models.SportsClass{
		{
			Name:            "Beginner Yoga",
			Description:     "A beginner-friendly yoga class focusing on breathing and basic poses.",
			Duration:        60,
			MaxParticipants: 12,
			IsActive:        true,
			SportID:         sports[0].ID,
			Schedules: []models.Schedule{
				{StartDate: nextWeek},
				{StartDate: nextWeek.AddDate(0, 0, 7)},
			},
		},
		{
			Name:            "Boxing Fundamentals",
			Description:     "Stance, footwork and the basic punches for first-time boxers.",
			Duration:        90,
			MaxParticipants: 8,
			IsActive:        true,
			SportID:         sports[4].ID,
			Schedules: []models.Schedule{
				{StartDate: nextWeek.AddDate(0, 0, 1)},
			},
		},
		{
			Name:            "Lap Swimming",
			Description:     "Technique-focused swim session for intermediate swimmers.",
			Duration:        45,
			MaxParticipants: 6,
			IsActive:        true,
			SportID:         sports[6].ID,
			Schedules: []models.Schedule{
				{StartDate: nextWeek.AddDate(0, 0, 2)},
			},
		},
	}

	return DB.Create(&classes).Error
}
