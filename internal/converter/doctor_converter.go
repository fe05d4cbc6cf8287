package converter

import (
	"telemed-booking/internal/delivery/dto"
	"telemed-booking/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                profile.UserID,
		Name:              profile.User.Name,
		Email:             profile.User.Email,
		CRM:               profile.CRM,
		SpecialtyID:       profile.SpecialtyID,
		SpecialtyName:     profile.Specialty.Name,
		Phone:             profile.User.Phone,
		Bio:               profile.Bio,
		ProfileImage:      profile.ProfileImage,
		ConsultationPrice: profile.ConsultationPrice,
		Active:            profile.IsActive(),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}

// SpecialtiesToResponses converts specialties to DTOs
func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i, s := range specialties {
		responses[i] = dto.SpecialtyResponse{ID: s.ID, Name: s.Name}
	}
	return responses
}
