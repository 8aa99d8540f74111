package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrNotAPatient         = errors.New("user is not a patient")
	ErrInvalidDateFormat   = errors.New("invalid date_time format, use RFC 3339 e.g. 2025-01-01T10:00:00Z")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, id uint) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uint) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	clinicRepo      repository.ClinicRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	clinicRepo repository.ClinicRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		clinicRepo:      clinicRepo,
		auditService:    auditService,
	}
}

// CreateAppointment books a patient with a doctor. Non-admin callers always
// book for themselves; the doctor reference must resolve to a user holding
// the doctor role before anything is persisted.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrAccessDenied
	}
	callerRole, _ := middleware.GetUserRoleFromContext(ctx)

	patientID := callerID
	if req.PatientID != nil && *req.PatientID != callerID {
		if callerRole != entity.RoleAdmin {
			return nil, ErrAccessDenied
		}
		patientID = *req.PatientID
	}

	dateTime, err := parseDateTime(req.DateTime)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !patient.IsPatient() {
		return nil, ErrNotAPatient
	}

	doctor, err := u.userRepo.FindByID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return nil, ErrNotADoctor
	}

	if req.ClinicID != nil {
		clinic, err := u.clinicRepo.FindByID(tx, *req.ClinicID)
		if err != nil {
			u.log.Warnf("Failed to find clinic %d: %+v", *req.ClinicID, err)
			return nil, err
		}
		if clinic == nil {
			return nil, ErrClinicNotFound
		}
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		ClinicID:  req.ClinicID,
		DateTime:  dateTime,
		Status:    entity.AppointmentStatusBooked,
		Notes:     req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// Races with a concurrent user delete surface as FK violations
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(tx, &callerID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID,
		"patient_id":     patientID,
		"doctor_id":      req.DoctorID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

// GetMyAppointments lists what the caller may see: patients their own
// bookings, doctors the ones where they are the doctor, admins everything.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrAccessDenied
	}
	callerRole, _ := middleware.GetUserRoleFromContext(ctx)

	var (
		appointments []entity.Appointment
		err          error
	)
	db := u.db.WithContext(ctx)

	switch callerRole {
	case entity.RoleAdmin:
		appointments, err = u.appointmentRepo.FindAll(db)
	case entity.RoleDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(db, callerID)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, callerID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	appointment, err := u.findOwned(ctx, u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findOwned(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if req.DateTime != nil {
		dateTime, err := parseDateTime(*req.DateTime)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.DateTime = dateTime
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.ClinicID != nil {
		clinic, err := u.clinicRepo.FindByID(tx, *req.ClinicID)
		if err != nil {
			u.log.Warnf("Failed to find clinic %d: %+v", *req.ClinicID, err)
			return nil, err
		}
		if clinic == nil {
			return nil, ErrClinicNotFound
		}
		appointment.ClinicID = req.ClinicID
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionAppointmentUpdate, entity.JSON{
		"appointment_id": id,
		"status":         string(appointment.Status),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findOwned(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := u.appointmentRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}

	callerID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Record(tx, &callerID, entity.AuditActionAppointmentDelete, entity.JSON{
		"appointment_id": id,
		"patient_id":     appointment.PatientID,
		"doctor_id":      appointment.DoctorID,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// findOwned loads an appointment and enforces that the caller is the
// patient, the doctor, or an admin.
func (u *appointmentUsecase) findOwned(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrAccessDenied
	}
	callerRole, _ := middleware.GetUserRoleFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if callerRole != entity.RoleAdmin && appointment.PatientID != callerID && appointment.DoctorID != callerID {
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

// parseDateTime accepts RFC 3339 and the bare form without a zone.
func parseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}
