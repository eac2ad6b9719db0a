package models

import "time"

// ClassRegistration links a user to a sports class. The composite unique
// index backs the one-registration-per-user-per-class rule at the storage
// level; the registration service still checks it inside its transaction to
// return a proper conflict instead of a driver error.
type ClassRegistration struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"not null;uniqueIndex:idx_user_class"`
	SportsClassID uint `gorm:"not null;uniqueIndex:idx_user_class"`
	IsConfirmed   bool `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	User        User        `gorm:"foreignKey:UserID"`
	SportsClass SportsClass `gorm:"foreignKey:SportsClassID"`
}
