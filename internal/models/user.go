package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Deletes are hard deletes everywhere; the API has no archival semantics, and
// soft-deleted rows would keep tripping the unique indexes on email, sport
// name and (user, class).
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	Registrations []ClassRegistration `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
