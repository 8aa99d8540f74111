package repository

import (
	"clinic-appointment-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicDoctorRepository interface {
	Create(db *gorm.DB, assignment *entity.ClinicDoctor) error
	FindByClinicAndDoctor(db *gorm.DB, clinicID, doctorID uint) (*entity.ClinicDoctor, error)
	FindByClinicID(db *gorm.DB, clinicID uint) ([]entity.ClinicDoctor, error)
	DeleteByClinicAndDoctor(db *gorm.DB, clinicID, doctorID uint) (int64, error)
	DeleteByClinicID(db *gorm.DB, clinicID uint) error
	DeleteByDoctorID(db *gorm.DB, doctorID uint) error
}
