package repository

import (
	"context"

	"telemed-booking/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	// Create inserts the profile together with its associated user row
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	// FindByID returns (nil, nil) when the doctor does not exist;
	// deactivated doctors are still returned so admin reads keep working
	FindByID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAllActive(ctx context.Context) ([]entity.DoctorProfile, error)
	FindActiveBySpecialty(ctx context.Context, specialtyID int) ([]entity.DoctorProfile, error)
	Update(ctx context.Context, profile *entity.DoctorProfile) error
	// Deactivate soft-deletes; returns affected rows (0 = unknown doctor)
	Deactivate(ctx context.Context, userID uuid.UUID) (int64, error)
}
