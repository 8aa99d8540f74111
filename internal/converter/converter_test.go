package converter

import (
	"testing"
	"time"

	"clinic-appointment-api/internal/domain/entity"
)

func TestAppointmentToResponse(t *testing.T) {
	clinicID := uint(4)
	appointment := &entity.Appointment{
		ID:        1,
		PatientID: 2,
		DoctorID:  3,
		ClinicID:  &clinicID,
		DateTime:  time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Status:    entity.AppointmentStatusBooked,
		Notes:     "first visit",
		Patient:   entity.User{ID: 2, Name: "Alice"},
		Doctor:    entity.User{ID: 3, Name: "Dr. Bob"},
		Clinic:    &entity.Clinic{ID: 4, Name: "Downtown Clinic"},
	}

	resp := AppointmentToResponse(appointment)

	if resp.ID != 1 || resp.PatientID != 2 || resp.DoctorID != 3 {
		t.Errorf("unexpected ids: %+v", resp)
	}
	if resp.PatientName != "Alice" {
		t.Errorf("patient name = %q", resp.PatientName)
	}
	if resp.DoctorName != "Dr. Bob" {
		t.Errorf("doctor name = %q", resp.DoctorName)
	}
	if resp.ClinicName != "Downtown Clinic" {
		t.Errorf("clinic name = %q", resp.ClinicName)
	}
	if resp.Status != "booked" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestAppointmentToResponseWithoutClinic(t *testing.T) {
	appointment := &entity.Appointment{
		ID:        1,
		PatientID: 2,
		DoctorID:  3,
		Status:    entity.AppointmentStatusBooked,
	}

	resp := AppointmentToResponse(appointment)

	if resp.ClinicID != nil {
		t.Error("expected nil clinic id")
	}
	if resp.ClinicName != "" {
		t.Errorf("expected empty clinic name, got %q", resp.ClinicName)
	}
}

func TestAppointmentToResponseNil(t *testing.T) {
	if resp := AppointmentToResponse(nil); resp != nil {
		t.Errorf("expected nil, got %+v", resp)
	}
}

func TestClinicToResponseFlattensDoctors(t *testing.T) {
	clinic := &entity.Clinic{
		ID:       1,
		Name:     "Downtown Clinic",
		Location: "Main St 1",
		Doctors: []entity.ClinicDoctor{
			{
				ClinicID:  1,
				DoctorID:  3,
				Specialty: "cardiology",
				Doctor:    entity.User{ID: 3, Name: "Dr. Bob", Email: "bob@example.com"},
			},
		},
	}

	resp := ClinicToResponse(clinic)

	if len(resp.Doctors) != 1 {
		t.Fatalf("expected 1 doctor, got %d", len(resp.Doctors))
	}
	doctor := resp.Doctors[0]
	if doctor.DoctorID != 3 || doctor.Name != "Dr. Bob" || doctor.Specialty != "cardiology" {
		t.Errorf("unexpected doctor summary: %+v", doctor)
	}
}

func TestUsersToResponsesOmitsPassword(t *testing.T) {
	users := []entity.User{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "hash", Role: entity.RolePatient},
	}

	responses := UsersToResponses(users)

	if len(responses) != 1 {
		t.Fatalf("expected 1 user, got %d", len(responses))
	}
	if responses[0].Email != "alice@example.com" {
		t.Errorf("unexpected email %q", responses[0].Email)
	}
}
