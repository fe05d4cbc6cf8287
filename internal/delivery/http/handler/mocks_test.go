package handler

import (
	"context"

	"telemed-booking/internal/delivery/dto"
	"telemed-booking/internal/usecase"

	"github.com/google/uuid"
)

// Compile-time checks
var (
	_ usecase.AuthUsecase        = (*MockAuthUsecase)(nil)
	_ usecase.AppointmentUsecase = (*MockAppointmentUsecase)(nil)
)

type MockAuthUsecase struct {
	RegisterFunc       func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc          func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetCurrentUserFunc func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

func (m *MockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *MockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return m.LoginFunc(ctx, req)
}

func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return m.GetCurrentUserFunc(ctx, userID)
}

type MockAppointmentUsecase struct {
	CreateAppointmentFunc       func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointmentsFunc       func(ctx context.Context) (*dto.AppointmentListResponse, error)
	CancelAppointmentFunc       func(ctx context.Context, appointmentID uuid.UUID) error
	GetDoctorAppointmentsFunc   func(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateAppointmentStatusFunc func(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

func (m *MockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.CreateAppointmentFunc(ctx, req)
}

func (m *MockAppointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return m.GetMyAppointmentsFunc(ctx)
}

func (m *MockAppointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	return m.CancelAppointmentFunc(ctx, appointmentID)
}

func (m *MockAppointmentUsecase) GetDoctorAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return m.GetDoctorAppointmentsFunc(ctx)
}

func (m *MockAppointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	return m.UpdateAppointmentStatusFunc(ctx, appointmentID, req)
}
