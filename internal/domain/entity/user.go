package entity

import (
	"time"
)

// Role names form a closed set; anything else is rejected at the DTO layer.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is the single identity table for patients, doctors and admins.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Email     string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(256);not null" json:"-"`
	Role      string    `gorm:"type:varchar(50);not null;index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinics             []ClinicDoctor `gorm:"foreignKey:DoctorID" json:"clinics,omitempty"`
	PatientAppointments []Appointment  `gorm:"foreignKey:PatientID" json:"patient_appointments,omitempty"`
	DoctorAppointments  []Appointment  `gorm:"foreignKey:DoctorID" json:"doctor_appointments,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDoctor reports whether the user holds the doctor role.
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

// IsPatient reports whether the user holds the patient role.
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
