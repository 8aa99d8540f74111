package validator

import (
	"testing"
)

type registerPayload struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"required,oneof=patient doctor"`
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerPayload{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "supersecret",
		Role:     "patient",
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&registerPayload{
		Name:     "",
		Email:    "not-an-email",
		Password: "short",
		Role:     "owner",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := v.FormatValidationErrors(err)

	want := map[string]string{
		"Name":     "Name is required",
		"Email":    "Email must be a valid email address",
		"Password": "Password must be at least 8 characters",
		"Role":     "Role must be one of: patient doctor",
	}
	for field, msg := range want {
		if formatted[field] != msg {
			t.Errorf("field %s: got %q, want %q", field, formatted[field], msg)
		}
	}
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	v := NewValidator()

	formatted := v.FormatValidationErrors(errNotValidation)
	if len(formatted) != 0 {
		t.Errorf("expected empty map, got %v", formatted)
	}
}

var errNotValidation = errPlain("boom")

type errPlain string

func (e errPlain) Error() string { return string(e) }
