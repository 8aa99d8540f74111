package repository

import (
	"errors"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicDoctorRepository struct{}

func NewClinicDoctorRepository() domainRepo.ClinicDoctorRepository {
	return &clinicDoctorRepository{}
}

func (r *clinicDoctorRepository) Create(db *gorm.DB, assignment *entity.ClinicDoctor) error {
	return db.Create(assignment).Error
}

func (r *clinicDoctorRepository) FindByClinicAndDoctor(db *gorm.DB, clinicID, doctorID uint) (*entity.ClinicDoctor, error) {
	var assignment entity.ClinicDoctor
	err := db.Where("clinic_id = ? AND doctor_id = ?", clinicID, doctorID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *clinicDoctorRepository) FindByClinicID(db *gorm.DB, clinicID uint) ([]entity.ClinicDoctor, error) {
	var assignments []entity.ClinicDoctor
	err := db.Preload("Doctor").Where("clinic_id = ?", clinicID).Order("id ASC").Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *clinicDoctorRepository) DeleteByClinicAndDoctor(db *gorm.DB, clinicID, doctorID uint) (int64, error) {
	result := db.Where("clinic_id = ? AND doctor_id = ?", clinicID, doctorID).Delete(&entity.ClinicDoctor{})
	return result.RowsAffected, result.Error
}

func (r *clinicDoctorRepository) DeleteByClinicID(db *gorm.DB, clinicID uint) error {
	return db.Where("clinic_id = ?", clinicID).Delete(&entity.ClinicDoctor{}).Error
}

func (r *clinicDoctorRepository) DeleteByDoctorID(db *gorm.DB, doctorID uint) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.ClinicDoctor{}).Error
}
