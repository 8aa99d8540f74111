package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/handler"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/validator"

	"github.com/gorilla/mux"
)

type stubAppointmentUsecase struct {
	createFn func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	listFn   func(ctx context.Context) (*dto.AppointmentListResponse, error)
	getFn    func(ctx context.Context, id uint) (*dto.AppointmentResponse, error)
	updateFn func(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubAppointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return s.listFn(ctx)
}

func (s *stubAppointmentUsecase) GetAppointment(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubAppointmentUsecase) UpdateAppointment(ctx context.Context, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubAppointmentUsecase) DeleteAppointment(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func newAppointmentHandler(stub *stubAppointmentUsecase) *handler.AppointmentHandler {
	return handler.NewAppointmentHandler(stub, validator.NewValidator())
}

func TestCreateAppointmentSuccess(t *testing.T) {
	stub := &stubAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{
				ID:        1,
				PatientID: 2,
				DoctorID:  req.DoctorID,
				DateTime:  time.Now().Add(24 * time.Hour),
				Status:    "booked",
			}, nil
		},
	}
	h := newAppointmentHandler(stub)

	body := jsonBody(t, dto.CreateAppointmentRequest{
		DoctorID: 3,
		DateTime: "2026-09-15T10:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", body)
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateAppointmentDoctorNotFound(t *testing.T) {
	stub := &stubAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrDoctorNotFound
		},
	}
	h := newAppointmentHandler(stub)

	body := jsonBody(t, dto.CreateAppointmentRequest{
		DoctorID: 999,
		DateTime: "2026-09-15T10:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", body)
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateAppointmentMissingDoctor(t *testing.T) {
	h := newAppointmentHandler(&stubAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	})

	body := jsonBody(t, dto.CreateAppointmentRequest{DateTime: "2026-09-15T10:00:00Z"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", body)
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetAppointmentForbidden(t *testing.T) {
	stub := &stubAppointmentUsecase{
		getFn: func(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrAccessDenied
		},
	}
	h := newAppointmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/5", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()

	h.GetAppointment(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	stub := &stubAppointmentUsecase{
		getFn: func(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrAppointmentNotFound
		},
	}
	h := newAppointmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/5", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "5"})
	rec := httptest.NewRecorder()

	h.GetAppointment(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetAppointmentInvalidID(t *testing.T) {
	h := newAppointmentHandler(&stubAppointmentUsecase{
		getFn: func(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	h.GetAppointment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteAppointmentSuccess(t *testing.T) {
	var deletedID uint
	stub := &stubAppointmentUsecase{
		deleteFn: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	h := newAppointmentHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.DeleteAppointment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedID != 7 {
		t.Errorf("expected delete of appointment 7, got %d", deletedID)
	}
}

func TestGetMyAppointments(t *testing.T) {
	stub := &stubAppointmentUsecase{
		listFn: func(ctx context.Context) (*dto.AppointmentListResponse, error) {
			return &dto.AppointmentListResponse{
				Appointments: []dto.AppointmentResponse{{ID: 1}, {ID: 2}},
				Total:        2,
			}, nil
		},
	}
	h := newAppointmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()

	h.GetMyAppointments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success=true")
	}
}
