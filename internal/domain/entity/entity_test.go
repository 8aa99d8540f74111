package entity

import "testing"

func TestUserRoleHelpers(t *testing.T) {
	tests := []struct {
		role    string
		admin   bool
		doctor  bool
		patient bool
	}{
		{RoleAdmin, true, false, false},
		{RoleDoctor, false, true, false},
		{RolePatient, false, false, true},
	}

	for _, tt := range tests {
		u := User{Role: tt.role}
		if u.IsAdmin() != tt.admin {
			t.Errorf("role %s: IsAdmin() = %v", tt.role, u.IsAdmin())
		}
		if u.IsDoctor() != tt.doctor {
			t.Errorf("role %s: IsDoctor() = %v", tt.role, u.IsDoctor())
		}
		if u.IsPatient() != tt.patient {
			t.Errorf("role %s: IsPatient() = %v", tt.role, u.IsPatient())
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"booked", "cancelled", "completed"} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "pending", "BOOKED"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestAppointmentCancel(t *testing.T) {
	a := Appointment{Status: AppointmentStatusBooked}
	if a.IsCancelled() {
		t.Error("fresh appointment should not be cancelled")
	}
	a.Cancel()
	if !a.IsCancelled() {
		t.Error("expected cancelled after Cancel()")
	}
}
