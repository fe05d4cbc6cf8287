package usecase

import (
	"context"
	"testing"
	"time"

	"telemed-booking/internal/delivery/dto"
	"telemed-booking/internal/delivery/http/middleware"
	"telemed-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func principalContext(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func activeDoctor(userID uuid.UUID) *entity.DoctorProfile {
	active := true
	return &entity.DoctorProfile{
		UserID:      userID,
		CRM:         "CRM-55555",
		SpecialtyID: 1,
		Active:      &active,
	}
}

func TestCreateAppointmentSuccess(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	slot := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	doctorRepo := &MockDoctorRepository{
		FindByIDFunc: func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
			return activeDoctor(doctorID), nil
		},
	}
	var created *entity.Appointment
	appointmentRepo := &MockAppointmentRepository{
		CreateFunc: func(ctx context.Context, appointment *entity.Appointment) error {
			appointment.ID = uuid.New()
			created = appointment
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return created, nil
		},
	}
	audit := &MockAuditService{}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, doctorRepo, audit)

	resp, err := uc.CreateAppointment(principalContext(patientID), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: slot,
		Notes:       "first visit",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), resp.Status)
	assert.Equal(t, patientID, created.PatientID)
	assert.Equal(t, slot, created.ScheduledAt)
	assert.Contains(t, audit.Actions, entity.AuditActionAppointmentCreate)
}

func TestCreateAppointmentWithoutPrincipal(t *testing.T) {
	uc := NewAppointmentUsecase(testLogger(), &MockAppointmentRepository{}, &MockDoctorRepository{}, &MockAuditService{})

	_, err := uc.CreateAppointment(context.Background(), &dto.CreateAppointmentRequest{
		DoctorID:    uuid.New(),
		ScheduledAt: time.Now(),
	})

	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	uc := NewAppointmentUsecase(testLogger(), &MockAppointmentRepository{}, &MockDoctorRepository{}, &MockAuditService{})

	_, err := uc.CreateAppointment(principalContext(uuid.New()), &dto.CreateAppointmentRequest{
		DoctorID:    uuid.New(),
		ScheduledAt: time.Now(),
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateAppointmentInactiveDoctor(t *testing.T) {
	doctorID := uuid.New()
	inactive := false
	doctorRepo := &MockDoctorRepository{
		FindByIDFunc: func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
			return &entity.DoctorProfile{UserID: doctorID, Active: &inactive}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), &MockAppointmentRepository{}, doctorRepo, &MockAuditService{})

	_, err := uc.CreateAppointment(principalContext(uuid.New()), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: time.Now(),
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	doctorID := uuid.New()
	slot := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	doctorRepo := &MockDoctorRepository{
		FindByIDFunc: func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
			return activeDoctor(doctorID), nil
		},
	}
	appointmentRepo := &MockAppointmentRepository{
		FindActiveSlotFunc: func(ctx context.Context, dID uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error) {
			assert.Equal(t, doctorID, dID)
			assert.Equal(t, slot, scheduledAt)
			return &entity.Appointment{ID: uuid.New(), DoctorID: dID, ScheduledAt: scheduledAt, Status: entity.AppointmentStatusConfirmed}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, doctorRepo, &MockAuditService{})

	_, err := uc.CreateAppointment(principalContext(uuid.New()), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: slot,
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateAppointmentRaceLoserMapsToSlotUnavailable(t *testing.T) {
	doctorID := uuid.New()
	doctorRepo := &MockDoctorRepository{
		FindByIDFunc: func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
			return activeDoctor(doctorID), nil
		},
	}
	// Pre-check passes, insert hits the partial unique index
	appointmentRepo := &MockAppointmentRepository{
		CreateFunc: func(ctx context.Context, appointment *entity.Appointment) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot"}
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, doctorRepo, &MockAuditService{})

	_, err := uc.CreateAppointment(principalContext(uuid.New()), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestGetMyAppointments(t *testing.T) {
	patientID := uuid.New()
	appointmentRepo := &MockAppointmentRepository{
		FindByPatientIDFunc: func(ctx context.Context, pID uuid.UUID) ([]entity.Appointment, error) {
			assert.Equal(t, patientID, pID)
			return []entity.Appointment{
				{ID: uuid.New(), PatientID: pID, Status: entity.AppointmentStatusPending},
				{ID: uuid.New(), PatientID: pID, Status: entity.AppointmentStatusCanceled},
			}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

	resp, err := uc.GetMyAppointments(principalContext(patientID))

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Appointments, 2)
}

func TestCancelAppointmentSuccess(t *testing.T) {
	patientID := uuid.New()
	appointmentID := uuid.New()
	appointmentRepo := &MockAppointmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: appointmentID, PatientID: patientID, Status: entity.AppointmentStatusConfirmed}, nil
		},
		CancelFunc: func(ctx context.Context, id uuid.UUID, pID uuid.UUID) (int64, error) {
			assert.Equal(t, appointmentID, id)
			assert.Equal(t, patientID, pID)
			return 1, nil
		},
	}
	audit := &MockAuditService{}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, audit)

	err := uc.CancelAppointment(principalContext(patientID), appointmentID)

	assert.NoError(t, err)
	assert.Contains(t, audit.Actions, entity.AuditActionAppointmentCancel)
}

func TestCancelAppointmentNotFound(t *testing.T) {
	uc := NewAppointmentUsecase(testLogger(), &MockAppointmentRepository{}, &MockDoctorRepository{}, &MockAuditService{})

	err := uc.CancelAppointment(principalContext(uuid.New()), uuid.New())

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelAppointmentOwnedBySomeoneElse(t *testing.T) {
	appointmentRepo := &MockAppointmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, PatientID: uuid.New(), Status: entity.AppointmentStatusPending}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

	err := uc.CancelAppointment(principalContext(uuid.New()), uuid.New())

	// Foreign appointments read the same as missing ones
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelAppointmentTerminalStates(t *testing.T) {
	patientID := uuid.New()
	for _, status := range []entity.AppointmentStatus{entity.AppointmentStatusCanceled, entity.AppointmentStatusCompleted} {
		appointmentRepo := &MockAppointmentRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
				return &entity.Appointment{ID: id, PatientID: patientID, Status: status}, nil
			},
		}
		uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

		err := uc.CancelAppointment(principalContext(patientID), uuid.New())

		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestCancelAppointmentLostRace(t *testing.T) {
	patientID := uuid.New()
	appointmentRepo := &MockAppointmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, PatientID: patientID, Status: entity.AppointmentStatusPending}, nil
		},
		CancelFunc: func(ctx context.Context, id uuid.UUID, pID uuid.UUID) (int64, error) {
			return 0, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

	err := uc.CancelAppointment(principalContext(patientID), uuid.New())

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetDoctorAppointments(t *testing.T) {
	doctorID := uuid.New()
	appointmentRepo := &MockAppointmentRepository{
		FindByDoctorIDFunc: func(ctx context.Context, dID uuid.UUID) ([]entity.Appointment, error) {
			assert.Equal(t, doctorID, dID)
			return []entity.Appointment{{ID: uuid.New(), DoctorID: dID, Status: entity.AppointmentStatusConfirmed}}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

	resp, err := uc.GetDoctorAppointments(principalContext(doctorID))

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestUpdateAppointmentStatusSuccess(t *testing.T) {
	doctorID := uuid.New()
	appointmentID := uuid.New()
	var updatedTo entity.AppointmentStatus
	appointmentRepo := &MockAppointmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: appointmentID, DoctorID: doctorID, Status: entity.AppointmentStatusPending}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, dID uuid.UUID, status entity.AppointmentStatus, notes string) (int64, error) {
			assert.Equal(t, doctorID, dID)
			updatedTo = status
			return 1, nil
		},
	}
	audit := &MockAuditService{}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, audit)

	resp, err := uc.UpdateAppointmentStatus(principalContext(doctorID), appointmentID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusConfirmed),
		Notes:  "bring previous exams",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConfirmed, updatedTo)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)
	assert.Contains(t, audit.Actions, entity.AuditActionAppointmentStatusChange)
}

func TestUpdateAppointmentStatusRejectsUnknownStatus(t *testing.T) {
	uc := NewAppointmentUsecase(testLogger(), &MockAppointmentRepository{}, &MockDoctorRepository{}, &MockAuditService{})

	_, err := uc.UpdateAppointmentStatus(principalContext(uuid.New()), uuid.New(), &dto.UpdateAppointmentStatusRequest{
		Status: "rescheduled",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateAppointmentStatusForeignDoctor(t *testing.T) {
	appointmentRepo := &MockAppointmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, DoctorID: uuid.New(), Status: entity.AppointmentStatusPending}, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

	_, err := uc.UpdateAppointmentStatus(principalContext(uuid.New()), uuid.New(), &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusCompleted),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateAppointmentStatusGuardedWrite(t *testing.T) {
	doctorID := uuid.New()
	// Pre-read passes but the guarded UPDATE matches nothing, as when
	// the row is reassigned or deleted between read and write
	appointmentRepo := &MockAppointmentRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, DoctorID: doctorID, Status: entity.AppointmentStatusPending}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, dID uuid.UUID, status entity.AppointmentStatus, notes string) (int64, error) {
			return 0, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, &MockDoctorRepository{}, &MockAuditService{})

	_, err := uc.UpdateAppointmentStatus(principalContext(doctorID), uuid.New(), &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusConfirmed),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

// Books a slot, fails to rebook it, cancels, then rebooks the freed
// slot, all against one stateful mock acting as the appointments table.
func TestBookCancelRebookScenario(t *testing.T) {
	doctorID := uuid.New()
	firstPatient := uuid.New()
	secondPatient := uuid.New()
	slot := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)

	store := map[uuid.UUID]*entity.Appointment{}
	doctorRepo := &MockDoctorRepository{
		FindByIDFunc: func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
			return activeDoctor(doctorID), nil
		},
	}
	appointmentRepo := &MockAppointmentRepository{
		CreateFunc: func(ctx context.Context, appointment *entity.Appointment) error {
			appointment.ID = uuid.New()
			stored := *appointment
			store[appointment.ID] = &stored
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			if a, ok := store[id]; ok {
				copied := *a
				return &copied, nil
			}
			return nil, nil
		},
		FindActiveSlotFunc: func(ctx context.Context, dID uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error) {
			for _, a := range store {
				if a.DoctorID == dID && a.ScheduledAt.Equal(scheduledAt) && !a.IsCanceled() {
					copied := *a
					return &copied, nil
				}
			}
			return nil, nil
		},
		CancelFunc: func(ctx context.Context, id uuid.UUID, patientID uuid.UUID) (int64, error) {
			a, ok := store[id]
			if !ok || a.PatientID != patientID || !a.CanBeCanceled() {
				return 0, nil
			}
			a.Status = entity.AppointmentStatusCanceled
			return 1, nil
		},
	}
	uc := NewAppointmentUsecase(testLogger(), appointmentRepo, doctorRepo, &MockAuditService{})

	booked, err := uc.CreateAppointment(principalContext(firstPatient), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: slot,
	})
	assert.NoError(t, err)

	_, err = uc.CreateAppointment(principalContext(secondPatient), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: slot,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	err = uc.CancelAppointment(principalContext(firstPatient), booked.ID)
	assert.NoError(t, err)

	// Canceled rows do not hold the slot
	_, err = uc.CreateAppointment(principalContext(secondPatient), &dto.CreateAppointmentRequest{
		DoctorID:    doctorID,
		ScheduledAt: slot,
	})
	assert.NoError(t, err)
}
