package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/delivery/http/handler"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/validator"

	"github.com/gorilla/mux"
)

type stubUserUsecase struct {
	createFn func(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	listFn   func(ctx context.Context) (*dto.UserListResponse, error)
	getFn    func(ctx context.Context, id uint) (*dto.UserResponse, error)
	updateFn func(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubUserUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubUserUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	return s.listFn(ctx)
}

func (s *stubUserUsecase) GetUser(ctx context.Context, id uint) (*dto.UserResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserUsecase) UpdateUser(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	return s.updateFn(ctx, id, req)
}

func (s *stubUserUsecase) DeleteUser(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func newUserHandler(stub *stubUserUsecase) *handler.UserHandler {
	return handler.NewUserHandler(stub, validator.NewValidator())
}

func strPtr(s string) *string { return &s }

func TestUpdateUserRoleChangeForbidden(t *testing.T) {
	stub := &stubUserUsecase{
		updateFn: func(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
			return nil, usecase.ErrRoleChangeForbidden
		},
	}
	h := newUserHandler(stub)

	body := jsonBody(t, dto.UpdateUserRequest{Role: strPtr("admin")})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/7", body)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.UpdateUser(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("expected success=false")
	}
}

func TestUpdateUserSuccess(t *testing.T) {
	stub := &stubUserUsecase{
		updateFn: func(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
			return &dto.UserResponse{ID: id, Name: *req.Name, Role: "patient"}, nil
		},
	}
	h := newUserHandler(stub)

	body := jsonBody(t, dto.UpdateUserRequest{Name: strPtr("Renamed")})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/7", body)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.UpdateUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUpdateUserInvalidRole(t *testing.T) {
	h := newUserHandler(&stubUserUsecase{
		updateFn: func(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
			t.Fatal("usecase should not be reached")
			return nil, nil
		},
	})

	body := jsonBody(t, dto.UpdateUserRequest{Role: strPtr("superuser")})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/7", body)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.UpdateUser(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetUserForbidden(t *testing.T) {
	stub := &stubUserUsecase{
		getFn: func(ctx context.Context, id uint) (*dto.UserResponse, error) {
			return nil, usecase.ErrAccessDenied
		},
	}
	h := newUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/7", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	h.GetUser(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	stub := &stubUserUsecase{
		createFn: func(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
			return nil, usecase.ErrEmailAlreadyExists
		},
	}
	h := newUserHandler(stub)

	body := jsonBody(t, dto.CreateUserRequest{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", body)
	rec := httptest.NewRecorder()

	h.CreateUser(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	stub := &stubUserUsecase{
		deleteFn: func(ctx context.Context, id uint) error {
			return usecase.ErrUserNotFound
		},
	}
	h := newUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rec := httptest.NewRecorder()

	h.DeleteUser(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
