package models

import "time"

type Schedule struct {
	ID            uint      `gorm:"primaryKey"`
	StartDate     time.Time `gorm:"not null"`
	SportsClassID uint      `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
