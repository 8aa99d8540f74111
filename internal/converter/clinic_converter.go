package converter

import (
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
)

// ClinicToResponse converts a Clinic entity with its loaded assignments to
// the API shape, flattening each assignment into a doctor summary.
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}

	doctors := make([]dto.ClinicDoctorResponse, 0, len(clinic.Doctors))
	for i := range clinic.Doctors {
		doctors = append(doctors, AssignmentToDoctorResponse(&clinic.Doctors[i]))
	}

	return &dto.ClinicResponse{
		ID:        clinic.ID,
		Name:      clinic.Name,
		Location:  clinic.Location,
		Phone:     clinic.Phone,
		Doctors:   doctors,
		CreatedAt: clinic.CreatedAt,
		UpdatedAt: clinic.UpdatedAt,
	}
}

func ClinicsToResponses(clinics []entity.Clinic) []dto.ClinicResponse {
	responses := make([]dto.ClinicResponse, 0, len(clinics))
	for i := range clinics {
		responses = append(responses, *ClinicToResponse(&clinics[i]))
	}
	return responses
}

func AssignmentToDoctorResponse(assignment *entity.ClinicDoctor) dto.ClinicDoctorResponse {
	return dto.ClinicDoctorResponse{
		DoctorID:  assignment.DoctorID,
		Name:      assignment.Doctor.Name,
		Email:     assignment.Doctor.Email,
		Specialty: assignment.Specialty,
	}
}
