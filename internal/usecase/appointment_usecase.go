package usecase

import (
	"context"
	"errors"

	"telemed-booking/internal/converter"
	"telemed-booking/internal/delivery/dto"
	"telemed-booking/internal/delivery/http/middleware"
	"telemed-booking/internal/domain/entity"
	"telemed-booking/internal/domain/repository"
	"telemed-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrInvalidTransition   = errors.New("appointment is already canceled or completed")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrNoPrincipal         = errors.New("no principal in request context")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error
	GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

// CreateAppointment books an exact (doctor, timestamp) slot for the
// logged-in patient.
//
// Conflict detection is exact-timestamp equality, not interval overlap:
// back-to-back or overlapping-but-not-identical times are never
// rejected. The pre-check read gives the friendly error; the partial
// unique index on (doctor_id, scheduled_at) excluding canceled rows is
// what actually decides when two requests race for the same slot, and
// the loser's 23505 maps to the same ErrSlotUnavailable.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsActive() {
		return nil, ErrDoctorNotFound
	}

	existing, err := u.appointmentRepo.FindActiveSlot(ctx, req.DoctorID, req.ScheduledAt)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID:   patientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		Status:      entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment.ScheduledAt); err != nil {
		u.log.Warnf("Failed to audit appointment creation: %+v", err)
	}

	u.log.Infof("Appointment created: id=%s doctor=%s at=%s", appointment.ID, req.DoctorID, req.ScheduledAt)

	full, err := u.appointmentRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		// Reference data missing from the response is not worth failing for
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// GetMyAppointments lists the patient's appointments with doctor and
// specialty reference data, newest scheduled first
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment lets the owning patient cancel while the
// appointment is neither canceled nor completed
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNoPrincipal
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	// Ownership mismatch reads the same as absence
	if appointment == nil || appointment.PatientID != patientID {
		return ErrAppointmentNotFound
	}

	if !appointment.CanBeCanceled() {
		return ErrInvalidTransition
	}

	rows, err := u.appointmentRepo.Cancel(ctx, appointmentID, patientID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		// Lost the race against a concurrent cancel or completion
		return ErrInvalidTransition
	}

	if err := u.auditService.LogUpdate(ctx, &patientID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), string(appointment.Status), string(entity.AppointmentStatusCanceled)); err != nil {
		u.log.Warnf("Failed to audit appointment cancel: %+v", err)
	}

	u.log.Infof("Appointment canceled: id=%s", appointmentID)
	return nil
}

// GetDoctorAppointments lists the doctor's appointments with patient
// contact data, soonest scheduled first
func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateAppointmentStatus lets the owning doctor overwrite status and
// notes. Any valid status may follow any other; there is no transition
// table here, only enum validation. Tightening this is an open product
// question.
func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}

	if !entity.ValidAppointmentStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotFound
	}

	newStatus := entity.AppointmentStatus(req.Status)
	rows, err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, doctorID, newStatus, req.Notes)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	if err := u.auditService.LogUpdate(ctx, &doctorID, entity.AuditActionAppointmentStatusChange, "appointment", appointmentID.String(), string(appointment.Status), req.Status); err != nil {
		u.log.Warnf("Failed to audit status change: %+v", err)
	}

	appointment.Status = newStatus
	appointment.Notes = req.Notes
	u.log.Infof("Appointment status updated: id=%s status=%s", appointmentID, req.Status)
	return converter.AppointmentToResponse(appointment), nil
}
