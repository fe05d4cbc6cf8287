package repository

import (
	"context"

	"telemed-booking/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns (nil, nil) when no principal carries the email
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID preloads the doctor profile and specialty when present
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
