package repository

import (
	"context"
	"errors"
	"time"

	"telemed-booking/internal/domain/entity"
	domainRepo "telemed-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Doctor.Specialty").
		Preload("Patient").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindActiveSlot is the friendly pre-check for the exact-slot conflict.
// The partial unique index is what actually holds under concurrency.
func (r *appointmentRepository) FindActiveSlot(ctx context.Context, doctorID uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND scheduled_at = ? AND status <> ?",
			doctorID, scheduledAt, entity.AppointmentStatusCanceled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Doctor.Specialty").
		Where("patient_id = ?", patientID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// Cancel atomically cancels only while the appointment is still cancelable.
// Affected rows 0 means the row was already canceled or completed in the
// meantime, which closes the double-cancel race.
func (r *appointmentRepository) Cancel(ctx context.Context, id uuid.UUID, patientID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND patient_id = ? AND status NOT IN ?",
			id, patientID,
			[]entity.AppointmentStatus{entity.AppointmentStatusCanceled, entity.AppointmentStatusCompleted}).
		Update("status", entity.AppointmentStatusCanceled)
	return result.RowsAffected, result.Error
}

// UpdateStatus is owner-guarded like Cancel: the doctor predicate in
// the UPDATE closes the window the usecase's ownership pre-read leaves
// open. Affected rows 0 means unknown or foreign appointment.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Updates(map[string]interface{}{"status": status, "notes": notes})
	return result.RowsAffected, result.Error
}
