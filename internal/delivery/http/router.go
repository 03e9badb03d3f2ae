package http

import (
	"net/http"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/http/handler"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	patientHandler        *handler.PatientHandler
	clinicalRecordHandler *handler.ClinicalRecordHandler
	appointmentHandler    *handler.AppointmentHandler
	backupHandler         *handler.BackupHandler
	settingsHandler       *handler.SettingsHandler
	documentHandler       *handler.DocumentHandler
	dashboardHandler      *handler.DashboardHandler
	assetHandler          *handler.AssetHandler
	sessionMiddleware     *middleware.SessionMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	clinicalRecordHandler *handler.ClinicalRecordHandler,
	appointmentHandler *handler.AppointmentHandler,
	backupHandler *handler.BackupHandler,
	settingsHandler *handler.SettingsHandler,
	documentHandler *handler.DocumentHandler,
	dashboardHandler *handler.DashboardHandler,
	assetHandler *handler.AssetHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		patientHandler:        patientHandler,
		clinicalRecordHandler: clinicalRecordHandler,
		appointmentHandler:    appointmentHandler,
		backupHandler:         backupHandler,
		settingsHandler:       settingsHandler,
		documentHandler:       documentHandler,
		dashboardHandler:      dashboardHandler,
		assetHandler:          assetHandler,
		sessionMiddleware:     sessionMiddleware,
		corsMiddleware:        corsMiddleware,
		loggingMiddleware:     loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session routes (public)
	api.HandleFunc("/session/login", r.settingsHandler.Login).Methods(http.MethodPost)

	// Everything else requires the unlocked session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.sessionMiddleware.RequireLogin)

	protected.HandleFunc("/session/logout", r.settingsHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/session/password", r.settingsHandler.ChangePassword).Methods(http.MethodPut)

	// Dashboard
	protected.HandleFunc("/dashboard", r.dashboardHandler.Overview).Methods(http.MethodGet)

	// Settings
	protected.HandleFunc("/settings", r.settingsHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/settings/profile", r.settingsHandler.SaveProfile).Methods(http.MethodPut)
	protected.HandleFunc("/settings/holidays", r.settingsHandler.SaveHolidays).Methods(http.MethodPut)

	// Patients
	protected.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.Search).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)

	// Clinical record
	protected.HandleFunc("/patients/{id}/record", r.clinicalRecordHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/record/anamnesis", r.clinicalRecordHandler.SaveAnamnesis).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}/record/visits", r.clinicalRecordHandler.AppendVisit).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/record/visits/{visitId}", r.clinicalRecordHandler.EditVisit).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}/record/visits/{visitId}", r.clinicalRecordHandler.DeleteVisit).Methods(http.MethodDelete)

	// Appointments
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.ByDate).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/upcoming", r.appointmentHandler.Upcoming).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Edit).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}/appointments", r.appointmentHandler.ByPatient).Methods(http.MethodGet)

	// Printable documents
	protected.HandleFunc("/patients/{id}/documents/{type}", r.documentHandler.Get).Methods(http.MethodGet)

	// Backup
	protected.HandleFunc("/backup/export", r.backupHandler.Export).Methods(http.MethodGet)
	protected.HandleFunc("/backup/import", r.backupHandler.Import).Methods(http.MethodPost)
	protected.HandleFunc("/backup/wipe", r.backupHandler.Wipe).Methods(http.MethodPost)

	// App shell assets, served through the cache worker
	r.router.PathPrefix("/").HandlerFunc(r.assetHandler.Serve).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
