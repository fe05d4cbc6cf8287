package repository

import (
	"context"
	"errors"

	"telemed-booking/internal/domain/entity"
	domainRepo "telemed-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

// Create inserts the profile and its associated user row in a single
// association create, so the two inserts share one transaction.
func (r *doctorRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorRepository) FindAllActive(ctx context.Context) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorRepository) FindActiveBySpecialty(ctx context.Context, specialtyID int) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		Where("specialty_id = ? AND active = ?", specialtyID, true).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	tx := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true})
	return tx.Save(profile).Error
}

// Deactivate soft-deletes: the row stays so historical appointments keep
// their doctor reference. Returns affected rows, 0 means unknown doctor.
func (r *doctorRepository) Deactivate(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.DoctorProfile{}).
		Where("user_id = ? AND active = ?", userID, true).
		Update("active", false)
	return result.RowsAffected, result.Error
}
