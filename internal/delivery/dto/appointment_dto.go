package dto

import (
	"time"
)

// Request DTOs

// CreateAppointmentRequest books a patient with a doctor. PatientID is only
// honored for admin callers; patients always book for themselves.
type CreateAppointmentRequest struct {
	PatientID *uint  `json:"patient_id" validate:"omitempty,min=1"`
	DoctorID  uint   `json:"doctor_id" validate:"required,min=1"`
	ClinicID  *uint  `json:"clinic_id" validate:"omitempty,min=1"`
	DateTime  string `json:"date_time" validate:"required"`
	Notes     string `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	DateTime *string `json:"date_time" validate:"omitempty"`
	Status   *string `json:"status" validate:"omitempty,oneof=booked cancelled completed"`
	ClinicID *uint   `json:"clinic_id" validate:"omitempty,min=1"`
	Notes    *string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uint      `json:"id"`
	PatientID   uint      `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorID    uint      `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	ClinicID    *uint     `json:"clinic_id,omitempty"`
	ClinicName  string    `json:"clinic_name,omitempty"`
	DateTime    time.Time `json:"date_time"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
