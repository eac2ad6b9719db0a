package models

import "time"

type SportsClass struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	Description     string `gorm:"type:text"`
	Duration        int    `gorm:"not null"` // minutes
	MaxParticipants int    `gorm:"not null"`
	IsActive        bool   `gorm:"not null;default:true"`
	SportID         uint   `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships
	Sport         Sport               `gorm:"foreignKey:SportID"`
	Schedules     []Schedule          `gorm:"foreignKey:SportsClassID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Registrations []ClassRegistration `gorm:"foreignKey:SportsClassID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
