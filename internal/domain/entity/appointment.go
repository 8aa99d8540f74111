package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is a booking between one patient and one doctor, optionally
// at a clinic.
type Appointment struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint              `gorm:"not null;index" json:"doctor_id"`
	ClinicID  *uint             `gorm:"index" json:"clinic_id,omitempty"`
	DateTime  time.Time         `gorm:"not null" json:"date_time"`
	Status    AppointmentStatus `gorm:"type:varchar(50);not null;default:'booked';index" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Clinic  *Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel moves the appointment to the cancelled status.
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// ValidStatus reports whether s is one of the recognized statuses.
func ValidStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusBooked, AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	}
	return false
}
