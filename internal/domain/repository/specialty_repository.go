package repository

import (
	"context"

	"telemed-booking/internal/domain/entity"
)

type SpecialtyRepository interface {
	FindAll(ctx context.Context) ([]entity.Specialty, error)
	// FindByID returns (nil, nil) when the specialty does not exist
	FindByID(ctx context.Context, id int) (*entity.Specialty, error)
}
