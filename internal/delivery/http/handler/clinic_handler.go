package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
	"clinic-appointment-api/pkg/validator"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

func (h *ClinicHandler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.CreateClinic(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create clinic")
		return
	}

	response.Success(w, http.StatusCreated, "Clinic created successfully", clinic)
}

func (h *ClinicHandler) GetAllClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAllClinics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}

func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	clinic, err := h.clinicUsecase.GetClinic(r.Context(), clinicID)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

func (h *ClinicHandler) UpdateClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.UpdateClinic(r.Context(), clinicID, &req)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to update clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic updated successfully", clinic)
}

func (h *ClinicHandler) DeleteClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "id")
	if !ok {
		return
	}

	if err := h.clinicUsecase.DeleteClinic(r.Context(), clinicID); err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to delete clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic deleted successfully", nil)
}

// AssignDoctor attaches a doctor to a clinic. The body is optional; when
// present it may carry the specialty.
func (h *ClinicHandler) AssignDoctor(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "clinicId")
	if !ok {
		return
	}
	doctorID, ok := parseIDVar(w, r, "doctorId")
	if !ok {
		return
	}

	var req dto.AssignDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assignment, err := h.clinicUsecase.AssignDoctor(r.Context(), clinicID, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrNotADoctor:
			response.Error(w, http.StatusBadRequest, "User is not a doctor", nil)
		default:
			response.InternalServerError(w, "Failed to assign doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor assigned successfully", assignment)
}

func (h *ClinicHandler) UnassignDoctor(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := parseIDVar(w, r, "clinicId")
	if !ok {
		return
	}
	doctorID, ok := parseIDVar(w, r, "doctorId")
	if !ok {
		return
	}

	if err := h.clinicUsecase.UnassignDoctor(r.Context(), clinicID, doctorID); err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to unassign doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor unassigned successfully", nil)
}
