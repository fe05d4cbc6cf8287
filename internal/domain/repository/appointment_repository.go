package repository

import (
	"context"
	"time"

	"telemed-booking/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	// FindByID returns (nil, nil) when no appointment matches
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	// FindActiveSlot looks up a non-canceled appointment for the exact
	// (doctor, timestamp) pair; returns (nil, nil) when the slot is free
	FindActiveSlot(ctx context.Context, doctorID uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	// Cancel sets status to canceled only while the appointment is still
	// cancelable; returns affected rows (0 = lost the race or terminal)
	Cancel(ctx context.Context, id uuid.UUID, patientID uuid.UUID) (int64, error)
	// UpdateStatus overwrites status and notes only while the owning
	// doctor matches; returns affected rows (0 = unknown or foreign)
	UpdateStatus(ctx context.Context, id uuid.UUID, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (int64, error)
}
