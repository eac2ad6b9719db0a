package services

import (
	"errors"
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"gorm.io/gorm"
)

// ClassService covers the class lifecycle. Creates and updates that touch
// schedules run in one transaction so a class is never observable with a
// half-replaced schedule set.
type ClassService struct {
	db *gorm.DB
}

func NewClassService(db *gorm.DB) *ClassService {
	return &ClassService{db: db}
}

type CreateClassInput struct {
	Name            string
	Description     string
	Duration        int
	MaxParticipants int
	IsActive        bool
	SportID         uint
	Schedules       []time.Time
}

type UpdateClassInput struct {
	Name            *string
	Description     *string
	Duration        *int
	MaxParticipants *int
	IsActive        *bool
	SportID         *uint
	Schedules       []time.Time // nil leaves the existing schedules untouched
}

func (s *ClassService) Create(input CreateClassInput) (*models.SportsClass, error) {
	var sport models.Sport

	if err := s.db.First(&sport, input.SportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}

	class := models.SportsClass{
		Name:            input.Name,
		Description:     input.Description,
		Duration:        input.Duration,
		MaxParticipants: input.MaxParticipants,
		IsActive:        input.IsActive,
		SportID:         input.SportID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&class).Error; err != nil {
			return err
		}

		return createSchedules(tx, class.ID, input.Schedules)
	})

	if err != nil {
		return nil, err
	}

	return s.Get(class.ID)
}

func (s *ClassService) Update(id uint, input UpdateClassInput) (*models.SportsClass, error) {
	var class models.SportsClass

	if err := s.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	if input.SportID != nil {
		var sport models.Sport

		if err := s.db.First(&sport, *input.SportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSportNotFound
			}
			return nil, err
		}
	}

	updates := make(map[string]interface{})

	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.MaxParticipants != nil {
		updates["max_participants"] = *input.MaxParticipants
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.SportID != nil {
		updates["sport_id"] = *input.SportID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&class).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.Schedules != nil {
			// Full replacement: the old set goes away with the field
			// update or not at all.
			if err := tx.Where("sports_class_id = ?", id).Delete(&models.Schedule{}).Error; err != nil {
				return err
			}

			if err := createSchedules(tx, id, input.Schedules); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes the class and its schedules. It is refused while
// registrations exist; those must be removed first.
func (s *ClassService) Delete(id uint) error {
	var class models.SportsClass

	if err := s.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	var registrations int64

	if err := s.db.Model(&models.ClassRegistration{}).Where("sports_class_id = ?", id).Count(&registrations).Error; err != nil {
		return err
	}

	if registrations > 0 {
		return ErrHasRegistrations
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sports_class_id = ?", id).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		return tx.Delete(&class).Error
	})
}

func (s *ClassService) Get(id uint) (*models.SportsClass, error) {
	var class models.SportsClass

	err := s.db.Preload("Sport").Preload("Schedules").First(&class, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &class, nil
}

// List returns classes with sport and schedules loaded, optionally filtered
// by sport name fragments.
func (s *ClassService) List(sportNames []string) ([]models.SportsClass, error) {
	query := s.db.Preload("Sport").Preload("Schedules")

	if len(sportNames) > 0 {
		condition := s.db.Where("sports.name LIKE ?", "%"+sportNames[0]+"%")

		for _, name := range sportNames[1:] {
			condition = condition.Or("sports.name LIKE ?", "%"+name+"%")
		}

		query = query.Joins("JOIN sports ON sports.id = sports_classes.sport_id").Where(condition)
	}

	var classes []models.SportsClass

	if err := query.Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func createSchedules(tx *gorm.DB, classID uint, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	schedules := make([]models.Schedule, 0, len(dates))

	for _, date := range dates {
		schedules = append(schedules, models.Schedule{
			StartDate:     date,
			SportsClassID: classID,
		})
	}

	return tx.Create(&schedules).Error
}
