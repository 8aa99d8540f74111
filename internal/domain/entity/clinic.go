package entity

import (
	"time"
)

// Clinic is a service location doctors can be assigned to.
type Clinic struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Location  string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []ClinicDoctor `gorm:"foreignKey:ClinicID" json:"doctors,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
