package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-appointment-api/config"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/pkg/jwt"
)

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateNoHeader(t *testing.T) {
	m := NewAuthMiddleware(newTestJWTService(), nil, nil, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()

	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not run")
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(newTestJWTService(), nil, nil, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()

	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not run")
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expiredService := jwt.NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})
	token, _, err := expiredService.GenerateAccessToken(1, "x@example.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := NewAuthMiddleware(newTestJWTService(), nil, nil, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not run")
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	service := newTestJWTService()
	token, _, err := service.GenerateRefreshToken(1, "x@example.com", entity.RolePatient)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m := NewAuthMiddleware(service, nil, nil, nil)

	var called bool
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("next handler should not run")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", ""},
		{"bearer", "Bearer abc123", "abc123"},
		{"lowercase bearer", "bearer abc123", "abc123"},
		{"raw token", "abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractToken(req); got != tt.want {
				t.Errorf("extractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextGetters(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Error("expected no user id on empty context")
	}

	ctx = context.WithValue(ctx, UserIDKey, uint(9))
	ctx = context.WithValue(ctx, UserEmailKey, "x@example.com")
	ctx = context.WithValue(ctx, UserRoleKey, entity.RoleDoctor)
	ctx = context.WithValue(ctx, TokenIDKey, "tid")

	if id, ok := GetUserIDFromContext(ctx); !ok || id != 9 {
		t.Errorf("user id = %d, %v", id, ok)
	}
	if email, ok := GetUserEmailFromContext(ctx); !ok || email != "x@example.com" {
		t.Errorf("email = %q, %v", email, ok)
	}
	if role, ok := GetUserRoleFromContext(ctx); !ok || role != entity.RoleDoctor {
		t.Errorf("role = %q, %v", role, ok)
	}
	if tid, ok := GetTokenIDFromContext(ctx); !ok || tid != "tid" {
		t.Errorf("token id = %q, %v", tid, ok)
	}
}
