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
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrCRMAlreadyExists  = errors.New("CRM already exists")
	ErrSpecialtyNotFound = errors.New("specialty not found")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	ListDoctorsBySpecialty(ctx context.Context, specialtyID int) (*dto.DoctorListResponse, error)
	ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeactivateDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	log           *logrus.Logger
	doctorRepo    repository.DoctorRepository
	specialtyRepo repository.SpecialtyRepository
	catalogCache  service.CatalogCache
	auditService  service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	catalogCache service.CatalogCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:           log,
		doctorRepo:    doctorRepo,
		specialtyRepo: specialtyRepo,
		catalogCache:  catalogCache,
		auditService:  auditService,
	}
}

// CreateDoctor provisions a doctor-role user and its profile in one
// association insert. Admin only, enforced at the route level.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", req.SpecialtyID, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		CRM:               req.CRM,
		SpecialtyID:       req.SpecialtyID,
		Bio:               req.Bio,
		ProfileImage:      req.ProfileImage,
		ConsultationPrice: req.ConsultationPrice,
		User: entity.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hashedPassword),
			Phone:    req.Phone,
			Role:     entity.RoleDoctor,
		},
	}

	if err := u.doctorRepo.Create(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "crm") {
			return nil, ErrCRMAlreadyExists
		}
		if isForeignKeyError(err, "specialty") {
			return nil, ErrSpecialtyNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}
	profile.Specialty = *specialty

	u.catalogCache.InvalidateDoctors(ctx)

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, &actorID, entity.AuditActionDoctorCreate, "doctor_profile", profile.UserID.String(), converter.DoctorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to audit doctor creation: %+v", err)
	}

	u.log.Infof("Doctor created: id=%s crm=%s", profile.UserID, profile.CRM)
	return converter.DoctorProfileToResponse(profile), nil
}

// GetDoctor is the public read: deactivated doctors are invisible here
func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil || !profile.IsActive() {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	if doctors, ok := u.catalogCache.GetDoctors(ctx, service.CacheKeyDoctorsActive); ok {
		return &dto.DoctorListResponse{Doctors: doctors, Total: len(doctors)}, nil
	}

	profiles, err := u.doctorRepo.FindAllActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)
	u.catalogCache.SetDoctors(ctx, service.CacheKeyDoctorsActive, doctors)

	return &dto.DoctorListResponse{Doctors: doctors, Total: len(doctors)}, nil
}

func (u *doctorUsecase) ListDoctorsBySpecialty(ctx context.Context, specialtyID int) (*dto.DoctorListResponse, error) {
	key := service.DoctorsSpecialtyKey(specialtyID)
	if doctors, ok := u.catalogCache.GetDoctors(ctx, key); ok {
		return &dto.DoctorListResponse{Doctors: doctors, Total: len(doctors)}, nil
	}

	profiles, err := u.doctorRepo.FindActiveBySpecialty(ctx, specialtyID)
	if err != nil {
		u.log.Warnf("Failed to list doctors for specialty %d: %+v", specialtyID, err)
		return nil, err
	}

	doctors := converter.DoctorProfilesToResponses(profiles)
	u.catalogCache.SetDoctors(ctx, key, doctors)

	return &dto.DoctorListResponse{Doctors: doctors, Total: len(doctors)}, nil
}

func (u *doctorUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	if specialties, ok := u.catalogCache.GetSpecialties(ctx); ok {
		return &dto.SpecialtyListResponse{Specialties: specialties, Total: len(specialties)}, nil
	}

	entities, err := u.specialtyRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	specialties := converter.SpecialtiesToResponses(entities)
	u.catalogCache.SetSpecialties(ctx, specialties)

	return &dto.SpecialtyListResponse{Specialties: specialties, Total: len(specialties)}, nil
}

// UpdateDoctor applies partial admin updates, including reactivation
// through the Active flag
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorProfileToResponse(profile)

	if req.Name != "" {
		profile.User.Name = req.Name
	}
	if req.Email != "" {
		profile.User.Email = req.Email
	}
	if req.Phone != "" {
		profile.User.Phone = req.Phone
	}
	if req.CRM != "" {
		profile.CRM = req.CRM
	}
	if req.SpecialtyID != 0 {
		specialty, err := u.specialtyRepo.FindByID(ctx, req.SpecialtyID)
		if err != nil {
			return nil, err
		}
		if specialty == nil {
			return nil, ErrSpecialtyNotFound
		}
		profile.SpecialtyID = req.SpecialtyID
		profile.Specialty = *specialty
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.ProfileImage != "" {
		profile.ProfileImage = req.ProfileImage
	}
	if req.ConsultationPrice != nil {
		profile.ConsultationPrice = *req.ConsultationPrice
	}
	if req.Active != nil {
		profile.Active = req.Active
	}

	if err := u.doctorRepo.Update(ctx, profile); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "crm") {
			return nil, ErrCRMAlreadyExists
		}
		u.log.Warnf("Failed to update doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.catalogCache.InvalidateDoctors(ctx)

	newValue := converter.DoctorProfileToResponse(profile)
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, &actorID, entity.AuditActionDoctorUpdate, "doctor_profile", doctorID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to audit doctor update: %+v", err)
	}

	return newValue, nil
}

// DeactivateDoctor is the soft delete: the flag flips, the row and the
// doctor's appointment history stay
func (u *doctorUsecase) DeactivateDoctor(ctx context.Context, doctorID uuid.UUID) error {
	profile, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	if _, err := u.doctorRepo.Deactivate(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to deactivate doctor %s: %+v", doctorID, err)
		return err
	}

	u.catalogCache.InvalidateDoctors(ctx)

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, &actorID, entity.AuditActionDoctorDeactivate, "doctor_profile", doctorID.String(), converter.DoctorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to audit doctor deactivation: %+v", err)
	}

	u.log.Infof("Doctor deactivated: id=%s", doctorID)
	return nil
}
