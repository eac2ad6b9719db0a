package models

import "time"

type Sport struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Classes []SportsClass `gorm:"foreignKey:SportID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
