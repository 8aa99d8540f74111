package entity

import (
	"time"
)

// ClinicDoctor links a doctor to a clinic and carries the specialty the
// doctor practices there. The (clinic_id, doctor_id) pair is unique, which
// is what makes attach idempotent under concurrency.
type ClinicDoctor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID  uint      `gorm:"not null;uniqueIndex:idx_clinic_doctor" json:"clinic_id"`
	DoctorID  uint      `gorm:"not null;uniqueIndex:idx_clinic_doctor" json:"doctor_id"`
	Specialty string    `gorm:"type:varchar(120)" json:"specialty,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Doctor User   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (ClinicDoctor) TableName() string {
	return "clinic_doctors"
}
