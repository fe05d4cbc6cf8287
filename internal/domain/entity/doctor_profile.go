package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile extends a doctor-role user with license and catalog data.
// Active is the soft-delete marker: deactivated doctors disappear from
// public listings but keep their historical appointments.
type DoctorProfile struct {
	UserID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	CRM               string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"crm"`
	SpecialtyID       int             `gorm:"not null;index" json:"specialty_id"`
	Bio               string          `gorm:"type:text" json:"bio,omitempty"`
	ProfileImage      string          `gorm:"type:varchar(500)" json:"profile_image,omitempty"`
	ConsultationPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"consultation_price"`
	Active            *bool           `gorm:"not null;default:true;index" json:"active"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsActive reports whether the doctor is visible for booking
func (p *DoctorProfile) IsActive() bool {
	return p.Active != nil && *p.Active
}
