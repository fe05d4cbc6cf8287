package usecase

import (
	"context"
	"time"

	"telemed-booking/internal/delivery/dto"
	"telemed-booking/internal/domain/entity"
	"telemed-booking/internal/domain/repository"
	"telemed-booking/internal/service"

	"github.com/google/uuid"
)

// Compile-time checks
var (
	_ repository.UserRepository        = (*MockUserRepository)(nil)
	_ repository.DoctorRepository      = (*MockDoctorRepository)(nil)
	_ repository.SpecialtyRepository   = (*MockSpecialtyRepository)(nil)
	_ repository.AppointmentRepository = (*MockAppointmentRepository)(nil)
	_ repository.AuditLogRepository    = (*MockAuditLogRepository)(nil)
	_ service.CatalogCache             = (*MockCatalogCache)(nil)
	_ service.AuditService             = (*MockAuditService)(nil)
)

type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

type MockDoctorRepository struct {
	CreateFunc                func(ctx context.Context, profile *entity.DoctorProfile) error
	FindByIDFunc              func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAllActiveFunc         func(ctx context.Context) ([]entity.DoctorProfile, error)
	FindActiveBySpecialtyFunc func(ctx context.Context, specialtyID int) ([]entity.DoctorProfile, error)
	UpdateFunc                func(ctx context.Context, profile *entity.DoctorProfile) error
	DeactivateFunc            func(ctx context.Context, userID uuid.UUID) (int64, error)

	FindAllActiveCalls int
}

func (m *MockDoctorRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDoctorRepository) FindAllActive(ctx context.Context) ([]entity.DoctorProfile, error) {
	m.FindAllActiveCalls++
	if m.FindAllActiveFunc != nil {
		return m.FindAllActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockDoctorRepository) FindActiveBySpecialty(ctx context.Context, specialtyID int) ([]entity.DoctorProfile, error) {
	if m.FindActiveBySpecialtyFunc != nil {
		return m.FindActiveBySpecialtyFunc(ctx, specialtyID)
	}
	return nil, nil
}

func (m *MockDoctorRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

func (m *MockDoctorRepository) Deactivate(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, userID)
	}
	return 1, nil
}

type MockSpecialtyRepository struct {
	FindAllFunc  func(ctx context.Context) ([]entity.Specialty, error)
	FindByIDFunc func(ctx context.Context, id int) (*entity.Specialty, error)
}

func (m *MockSpecialtyRepository) FindAll(ctx context.Context) ([]entity.Specialty, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockSpecialtyRepository) FindByID(ctx context.Context, id int) (*entity.Specialty, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

type MockAppointmentRepository struct {
	CreateFunc          func(ctx context.Context, appointment *entity.Appointment) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindActiveSlotFunc  func(ctx context.Context, doctorID uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error)
	FindByPatientIDFunc func(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorIDFunc  func(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	CancelFunc          func(ctx context.Context, id uuid.UUID, patientID uuid.UUID) (int64, error)
	UpdateStatusFunc    func(ctx context.Context, id uuid.UUID, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (int64, error)
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, appointment)
	}
	return nil
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) FindActiveSlot(ctx context.Context, doctorID uuid.UUID, scheduledAt time.Time) (*entity.Appointment, error) {
	if m.FindActiveSlotFunc != nil {
		return m.FindActiveSlotFunc(ctx, doctorID, scheduledAt)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	if m.FindByPatientIDFunc != nil {
		return m.FindByPatientIDFunc(ctx, patientID)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	if m.FindByDoctorIDFunc != nil {
		return m.FindByDoctorIDFunc(ctx, doctorID)
	}
	return nil, nil
}

func (m *MockAppointmentRepository) Cancel(ctx context.Context, id uuid.UUID, patientID uuid.UUID) (int64, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, id, patientID)
	}
	return 1, nil
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, doctorID uuid.UUID, status entity.AppointmentStatus, notes string) (int64, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, doctorID, status, notes)
	}
	return 1, nil
}

type MockAuditLogRepository struct {
	CreateFunc  func(ctx context.Context, log *entity.AuditLog) error
	FindAllFunc func(ctx context.Context, limit int) ([]entity.AuditLog, error)

	CreatedLogs []entity.AuditLog
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	m.CreatedLogs = append(m.CreatedLogs, *log)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return nil
}

func (m *MockAuditLogRepository) FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, limit)
	}
	return nil, nil
}

// MockCatalogCache defaults to always-miss, the behavior of a cold or
// unreachable redis
type MockCatalogCache struct {
	GetDoctorsFunc     func(ctx context.Context, key string) ([]dto.DoctorResponse, bool)
	GetSpecialtiesFunc func(ctx context.Context) ([]dto.SpecialtyResponse, bool)

	SetDoctorsCalls     int
	InvalidationCalls   int
	SetSpecialtiesCalls int
}

func (m *MockCatalogCache) GetDoctors(ctx context.Context, key string) ([]dto.DoctorResponse, bool) {
	if m.GetDoctorsFunc != nil {
		return m.GetDoctorsFunc(ctx, key)
	}
	return nil, false
}

func (m *MockCatalogCache) SetDoctors(ctx context.Context, key string, doctors []dto.DoctorResponse) {
	m.SetDoctorsCalls++
}

func (m *MockCatalogCache) GetSpecialties(ctx context.Context) ([]dto.SpecialtyResponse, bool) {
	if m.GetSpecialtiesFunc != nil {
		return m.GetSpecialtiesFunc(ctx)
	}
	return nil, false
}

func (m *MockCatalogCache) SetSpecialties(ctx context.Context, specialties []dto.SpecialtyResponse) {
	m.SetSpecialtiesCalls++
}

func (m *MockCatalogCache) InvalidateDoctors(ctx context.Context) {
	m.InvalidationCalls++
}

type MockAuditService struct {
	Actions []string
}

func (m *MockAuditService) LogCreate(ctx context.Context, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}

func (m *MockAuditService) LogDelete(ctx context.Context, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	m.Actions = append(m.Actions, action)
	return nil
}
