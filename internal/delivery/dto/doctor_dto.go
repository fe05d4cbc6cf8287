package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name              string          `json:"name" validate:"required,min=2"`
	Email             string          `json:"email" validate:"required,email"`
	Password          string          `json:"password" validate:"required,min=6"`
	CRM               string          `json:"crm" validate:"required"`
	SpecialtyID       int             `json:"specialty_id" validate:"required,min=1"`
	Phone             string          `json:"phone" validate:"omitempty,min=8,max=20"`
	Bio               string          `json:"bio" validate:"omitempty"`
	ProfileImage      string          `json:"profile_image" validate:"omitempty,url"`
	ConsultationPrice decimal.Decimal `json:"consultation_price"`
}

type UpdateDoctorRequest struct {
	Name              string           `json:"name" validate:"omitempty,min=2"`
	Email             string           `json:"email" validate:"omitempty,email"`
	CRM               string           `json:"crm" validate:"omitempty"`
	SpecialtyID       int              `json:"specialty_id" validate:"omitempty,min=1"`
	Phone             string           `json:"phone" validate:"omitempty,min=8,max=20"`
	Bio               string           `json:"bio" validate:"omitempty"`
	ProfileImage      string           `json:"profile_image" validate:"omitempty,url"`
	ConsultationPrice *decimal.Decimal `json:"consultation_price" validate:"omitempty"`
	Active            *bool            `json:"active" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	CRM               string          `json:"crm"`
	SpecialtyID       int             `json:"specialty_id"`
	SpecialtyName     string          `json:"specialty_name,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Bio               string          `json:"bio,omitempty"`
	ProfileImage      string          `json:"profile_image,omitempty"`
	ConsultationPrice decimal.Decimal `json:"consultation_price"`
	Active            bool            `json:"active"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type SpecialtyResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
