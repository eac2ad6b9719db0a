package services

import (
	"errors"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSportNotFound        = errors.New("sport not found")
	ErrClassNotFound        = errors.New("class not found")
	ErrAlreadyRegistered    = errors.New("user is already registered for this class")
	ErrClassFull            = errors.New("class is full")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrHasRegistrations     = errors.New("class has registered participants")
)

// RegistrationService owns the register/unregister transaction. Register is
// the only operation in the system where an unlocked check-then-act would be
// unsafe: two requests racing for the last seat must not both pass the count
// check.
type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

// Register enrolls the user into the class, holding a row lock on the class
// for the duration of the check-count-insert sequence. Either a registration
// is committed and the count grows by exactly one, or nothing changes.
func (s *RegistrationService) Register(userID, classID uint) (*models.ClassRegistration, error) {
	var user models.User

	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var registration models.ClassRegistration

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var class models.SportsClass

		// SELECT ... FOR UPDATE serializes concurrent registrations per
		// class on postgres. SQLite rejects the clause and serializes
		// writers on its own, so skip it there.
		query := tx
		if tx.Dialector.Name() != "sqlite" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := query.First(&class, classID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		var existing models.ClassRegistration

		err := tx.Where("user_id = ? AND sports_class_id = ?", userID, classID).First(&existing).Error

		if err == nil {
			return ErrAlreadyRegistered
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64

		if err := tx.Model(&models.ClassRegistration{}).Where("sports_class_id = ?", classID).Count(&count).Error; err != nil {
			return err
		}

		if count >= int64(class.MaxParticipants) {
			return ErrClassFull
		}

		registration = models.ClassRegistration{
			UserID:        userID,
			SportsClassID: classID,
		}

		return tx.Create(&registration).Error
	})

	if err != nil {
		return nil, err
	}

	return &registration, nil
}

// Unregister removes the (user, class) registration. The conditional delete
// makes the lookup and removal one statement, so a racing double-unregister
// sees zero rows and fails cleanly. No capacity check: the count only shrinks.
func (s *RegistrationService) Unregister(userID, classID uint) error {
	result := s.db.Where("user_id = ? AND sports_class_id = ?", userID, classID).Delete(&models.ClassRegistration{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// Registrations lists every registration for the class with the user loaded.
func (s *RegistrationService) Registrations(classID uint) ([]models.ClassRegistration, error) {
	var class models.SportsClass

	if err := s.db.First(&class, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	var registrations []models.ClassRegistration

	if err := s.db.Preload("User").Where("sports_class_id = ?", classID).Find(&registrations).Error; err != nil {
		return nil, err
	}

	return registrations, nil
}
