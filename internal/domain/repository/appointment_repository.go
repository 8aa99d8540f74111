package repository

import (
	"clinic-appointment-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uint) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uint) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uint) (int64, error)
	// DeleteByUserID removes every appointment referencing the user as
	// patient or doctor. Used by the user-delete cascade.
	DeleteByUserID(db *gorm.DB, userID uint) error
	// ClearClinicID detaches appointments from a clinic being deleted.
	ClearClinicID(db *gorm.DB, clinicID uint) error
}
