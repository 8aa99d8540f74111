package dto

import (
	"time"
)

// Request DTOs

type CreateClinicRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type UpdateClinicRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
}

// AssignDoctorRequest carries the optional per-assignment specialty.
type AssignDoctorRequest struct {
	Specialty string `json:"specialty" validate:"omitempty,max=120"`
}

// Response DTOs

type ClinicDoctorResponse struct {
	DoctorID  uint   `json:"doctor_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
}

type ClinicResponse struct {
	ID        uint                   `json:"id"`
	Name      string                 `json:"name"`
	Location  string                 `json:"location,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Doctors   []ClinicDoctorResponse `json:"doctors"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type ClinicListResponse struct {
	Clinics []ClinicResponse `json:"clinics"`
	Total   int              `json:"total"`
}
