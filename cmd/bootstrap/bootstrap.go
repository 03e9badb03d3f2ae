package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/config"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/assetcache"
	deliveryHttp "github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/http"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/http/handler"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/http/middleware"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/infrastructure/database"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Settings    *settings.Store
	AssetWorker *assetcache.Worker
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewSQLiteConnection(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = db

	settingsStore, err := settings.Open(cfg.Storage.SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	app.Settings = settingsStore
	logrus.Info("Settings loaded successfully")

	worker, err := setupAssetWorker(cfg.AssetCache)
	if err != nil {
		return nil, fmt.Errorf("failed to set up asset cache: %w", err)
	}
	app.AssetWorker = worker

	app.Server = initializeServer(cfg, db, settingsStore, worker)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// setupAssetWorker starts the shell cache worker and runs its install
// and activate lifecycle. An empty origin disables asset serving.
func setupAssetWorker(cfg config.AssetCacheConfig) (*assetcache.Worker, error) {
	if cfg.Origin == "" {
		logrus.Info("Asset origin not configured; shell caching disabled")
		return nil, nil
	}

	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("parse asset origin %s: %w", cfg.Origin, err)
	}

	store := assetcache.NewStore(cfg.Dir)
	worker := assetcache.NewWorker(logrus.StandardLogger(), store, origin, cfg.Version, cfg.Manifest, nil)
	worker.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// A failed install is survivable: a previously activated cache
	// version keeps serving until the origin comes back.
	if err := worker.Install(ctx); err != nil {
		logrus.Warnf("Shell install failed, continuing without fresh cache: %v", err)
		return worker, nil
	}
	if err := worker.Activate(ctx); err != nil {
		return nil, fmt.Errorf("activate shell cache: %w", err)
	}

	logrus.Infof("Shell cache %s activated", worker.CacheName())

	return worker, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, settingsStore *settings.Store, worker *assetcache.Worker) *http.Server {
	customValidator := validator.NewValidator()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	recordRepo := repository.NewClinicalRecordRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	log := logrus.StandardLogger()

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, recordRepo, appointmentRepo)
	recordUsecase := usecase.NewClinicalRecordUsecase(db, log, patientRepo, recordRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, settingsStore)
	backupUsecase := usecase.NewBackupUsecase(db, log, cfg.Storage, settingsStore, patientRepo, recordRepo, appointmentRepo)
	settingsUsecase := usecase.NewSettingsUsecase(log, settingsStore)
	documentUsecase := usecase.NewDocumentUsecase(db, log, patientRepo, recordRepo, settingsStore)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, patientRepo, recordRepo, appointmentRepo, appointmentUsecase)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	recordHandler := handler.NewClinicalRecordHandler(recordUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	backupHandler := handler.NewBackupHandler(backupUsecase, customValidator)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, customValidator)
	documentHandler := handler.NewDocumentHandler(documentUsecase)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	assetHandler := handler.NewAssetHandler(worker)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(settingsStore)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		patientHandler,
		recordHandler,
		appointmentHandler,
		backupHandler,
		settingsHandler,
		documentHandler,
		dashboardHandler,
		assetHandler,
		sessionMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)
	httpRouter := router.Setup()

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections
func (app *App) Close() {
	if app.AssetWorker != nil {
		app.AssetWorker.Close()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
