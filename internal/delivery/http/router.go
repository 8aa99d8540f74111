package http

import (
	"net/http"

	"clinic-appointment-api/internal/delivery/http/handler"
	"clinic-appointment-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	clinicHandler      *handler.ClinicHandler
	appointmentHandler *handler.AppointmentHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	clinicHandler *handler.ClinicHandler,
	appointmentHandler *handler.AppointmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		clinicHandler:      clinicHandler,
		appointmentHandler: appointmentHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Clinic reads are public
	api.HandleFunc("/clinics", r.clinicHandler.GetAllClinics).Methods(http.MethodGet)
	api.HandleFunc("/clinics/{id}", r.clinicHandler.GetClinic).Methods(http.MethodGet)

	// User routes: listing and creation are admin-only, single-record
	// access is owner-or-admin (enforced in the usecase)
	usersAdmin := api.PathPrefix("/users").Subrouter()
	usersAdmin.Use(r.authMiddleware.Authenticate)
	usersAdmin.Use(middleware.RequireAdmin)
	usersAdmin.HandleFunc("", r.userHandler.GetAllUsers).Methods(http.MethodGet)
	usersAdmin.HandleFunc("", r.userHandler.CreateUser).Methods(http.MethodPost)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", r.userHandler.UpdateUser).Methods(http.MethodPatch)
	users.HandleFunc("/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Clinic mutations and doctor assignment (admin only)
	clinicsAdmin := api.PathPrefix("/clinics").Subrouter()
	clinicsAdmin.Use(r.authMiddleware.Authenticate)
	clinicsAdmin.Use(middleware.RequireAdmin)
	clinicsAdmin.HandleFunc("", r.clinicHandler.CreateClinic).Methods(http.MethodPost)
	clinicsAdmin.HandleFunc("/{id}", r.clinicHandler.UpdateClinic).Methods(http.MethodPatch)
	clinicsAdmin.HandleFunc("/{id}", r.clinicHandler.DeleteClinic).Methods(http.MethodDelete)
	clinicsAdmin.HandleFunc("/{clinicId}/doctors/{doctorId}", r.clinicHandler.AssignDoctor).Methods(http.MethodPost)
	clinicsAdmin.HandleFunc("/{clinicId}/doctors/{doctorId}", r.clinicHandler.UnassignDoctor).Methods(http.MethodDelete)

	// Appointment routes (authenticated, ownership enforced in the usecase)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetRecentLogs).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
