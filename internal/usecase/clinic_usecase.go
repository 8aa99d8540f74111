package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/middleware"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClinicNotFound = errors.New("clinic not found")
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrNotADoctor     = errors.New("user is not a doctor")
)

type ClinicUsecase interface {
	CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error)
	GetClinic(ctx context.Context, id uint) (*dto.ClinicResponse, error)
	UpdateClinic(ctx context.Context, id uint, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error)
	DeleteClinic(ctx context.Context, id uint) error
	AssignDoctor(ctx context.Context, clinicID, doctorID uint, req *dto.AssignDoctorRequest) (*dto.ClinicDoctorResponse, error)
	UnassignDoctor(ctx context.Context, clinicID, doctorID uint) error
}

type clinicUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	clinicRepo       repository.ClinicRepository
	userRepo         repository.UserRepository
	clinicDoctorRepo repository.ClinicDoctorRepository
	appointmentRepo  repository.AppointmentRepository
	auditService     service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	clinicDoctorRepo repository.ClinicDoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:               db,
		log:              log,
		clinicRepo:       clinicRepo,
		userRepo:         userRepo,
		clinicDoctorRepo: clinicDoctorRepo,
		appointmentRepo:  appointmentRepo,
		auditService:     auditService,
	}
}

func (u *clinicUsecase) CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic := &entity.Clinic{
		Name:     req.Name,
		Location: req.Location,
		Phone:    req.Phone,
	}

	if err := u.clinicRepo.Create(tx, clinic); err != nil {
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionClinicCreate, entity.JSON{
		"clinic_id": clinic.ID,
		"name":      clinic.Name,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list clinics: %+v", err)
		return nil, err
	}

	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}, nil
}

func (u *clinicUsecase) GetClinic(ctx context.Context, id uint) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find clinic by ID: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) UpdateClinic(ctx context.Context, id uint, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic, err := u.clinicRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find clinic by ID: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Location != nil {
		clinic.Location = *req.Location
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}

	if err := u.clinicRepo.Update(tx, clinic); err != nil {
		u.log.Warnf("Failed to update clinic: %+v", err)
		return nil, err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionClinicUpdate, entity.JSON{
		"clinic_id": clinic.ID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}

// DeleteClinic removes the clinic, its doctor assignments, and detaches any
// appointments that referenced it, all in one transaction.
func (u *clinicUsecase) DeleteClinic(ctx context.Context, id uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic, err := u.clinicRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find clinic by ID: %+v", err)
		return err
	}
	if clinic == nil {
		return ErrClinicNotFound
	}

	if err := u.clinicDoctorRepo.DeleteByClinicID(tx, id); err != nil {
		u.log.Warnf("Failed to delete assignments for clinic %d: %+v", id, err)
		return err
	}

	if err := u.appointmentRepo.ClearClinicID(tx, id); err != nil {
		u.log.Warnf("Failed to detach appointments for clinic %d: %+v", id, err)
		return err
	}

	if _, err := u.clinicRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete clinic %d: %+v", id, err)
		return err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionClinicDelete, entity.JSON{
		"clinic_id": id,
		"name":      clinic.Name,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// AssignDoctor attaches a doctor to a clinic. Attaching an already-attached
// doctor succeeds and returns the existing assignment; the unique index on
// (clinic_id, doctor_id) closes the race between concurrent attaches.
func (u *clinicUsecase) AssignDoctor(ctx context.Context, clinicID, doctorID uint, req *dto.AssignDoctorRequest) (*dto.ClinicDoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic, err := u.clinicRepo.FindByID(tx, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic by ID: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	doctor, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return nil, ErrNotADoctor
	}

	existing, err := u.clinicDoctorRepo.FindByClinicAndDoctor(tx, clinicID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to check existing assignment: %+v", err)
		return nil, err
	}
	if existing != nil {
		existing.Doctor = *doctor
		resp := converter.AssignmentToDoctorResponse(existing)
		return &resp, nil
	}

	assignment := &entity.ClinicDoctor{
		ClinicID:  clinicID,
		DoctorID:  doctorID,
		Specialty: req.Specialty,
	}

	if err := u.clinicDoctorRepo.Create(tx, assignment); err != nil {
		if isDuplicateKeyError(err, "idx_clinic_doctor") {
			// Lost the race; the assignment exists, which is what was asked
			// for. The tx is aborted at this point, so read outside it.
			existing, findErr := u.clinicDoctorRepo.FindByClinicAndDoctor(u.db.WithContext(ctx), clinicID, doctorID)
			if findErr != nil || existing == nil {
				return nil, err
			}
			existing.Doctor = *doctor
			resp := converter.AssignmentToDoctorResponse(existing)
			return &resp, nil
		}
		u.log.Warnf("Failed to create assignment: %+v", err)
		return nil, err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionDoctorAssign, entity.JSON{
		"clinic_id": clinicID,
		"doctor_id": doctorID,
		"specialty": req.Specialty,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	assignment.Doctor = *doctor
	resp := converter.AssignmentToDoctorResponse(assignment)
	return &resp, nil
}

// UnassignDoctor detaches a doctor from a clinic. Detaching an already
// detached doctor succeeds; only a missing clinic is an error.
func (u *clinicUsecase) UnassignDoctor(ctx context.Context, clinicID, doctorID uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	clinic, err := u.clinicRepo.FindByID(tx, clinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic by ID: %+v", err)
		return err
	}
	if clinic == nil {
		return ErrClinicNotFound
	}

	removed, err := u.clinicDoctorRepo.DeleteByClinicAndDoctor(tx, clinicID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to delete assignment: %+v", err)
		return err
	}

	if removed > 0 {
		callerID, _ := middleware.GetUserIDFromContext(ctx)
		u.auditService.Record(tx, &callerID, entity.AuditActionDoctorUnassign, entity.JSON{
			"clinic_id": clinicID,
			"doctor_id": doctorID,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
