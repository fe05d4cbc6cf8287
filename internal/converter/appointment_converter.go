package converter

import (
	"telemed-booking/internal/delivery/dto"
	"telemed-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// Doctor and patient reference data is included only when preloaded:
// patient listings carry doctor+specialty, doctor listings carry
// patient name and phone.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	resp := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		ScheduledAt: appointment.ScheduledAt,
		Notes:       appointment.Notes,
		Status:      string(appointment.Status),
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}

	if appointment.Doctor.UserID != uuid.Nil {
		resp.DoctorName = appointment.Doctor.User.Name
		resp.DoctorImage = appointment.Doctor.ProfileImage
		resp.SpecialtyName = appointment.Doctor.Specialty.Name
	}

	if appointment.Patient.ID != uuid.Nil {
		resp.PatientName = appointment.Patient.Name
		resp.PatientPhone = appointment.Patient.Phone
	}

	return resp
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
