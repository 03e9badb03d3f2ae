package usecase_test

import (
	"context"
	"io"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/config"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	domainRepo "github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/infrastructure/database"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// env wires a full stack against a throwaway on-disk database.
type env struct {
	db              *gorm.DB
	settings        *settings.Store
	storageCfg      config.StorageConfig
	patientRepo     domainRepo.PatientRepository
	recordRepo      domainRepo.ClinicalRecordRepository
	appointmentRepo domainRepo.AppointmentRepository
	patients        usecase.PatientUsecase
	records         usecase.ClinicalRecordUsecase
	appointments    usecase.AppointmentUsecase
	backup          usecase.BackupUsecase
	documents       usecase.DocumentUsecase
	config          usecase.SettingsUsecase
	dashboard       usecase.DashboardUsecase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := config.StorageConfig{
		DataDir:      t.TempDir(),
		DatabaseFile: "clinic.db",
		SettingsFile: "settings.json",
	}

	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	set, err := settings.Open(cfg.SettingsPath())
	if err != nil {
		t.Fatalf("open settings: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	patientRepo := repository.NewPatientRepository()
	recordRepo := repository.NewClinicalRecordRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	appointments := usecase.NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, set)

	return &env{
		db:              db,
		settings:        set,
		storageCfg:      cfg,
		patientRepo:     patientRepo,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		patients:        usecase.NewPatientUsecase(db, log, patientRepo, recordRepo, appointmentRepo),
		records:         usecase.NewClinicalRecordUsecase(db, log, patientRepo, recordRepo),
		appointments:    appointments,
		backup:          usecase.NewBackupUsecase(db, log, cfg, set, patientRepo, recordRepo, appointmentRepo),
		documents:       usecase.NewDocumentUsecase(db, log, patientRepo, recordRepo, set),
		config:          usecase.NewSettingsUsecase(log, set),
		dashboard:       usecase.NewDashboardUsecase(db, log, patientRepo, recordRepo, appointmentRepo, appointments),
	}
}

func createPatient(t *testing.T, e *env, name string) *dto.PatientResponse {
	t.Helper()
	patient, err := e.patients.CreatePatient(context.Background(), &dto.CreatePatientRequest{Name: name})
	if err != nil {
		t.Fatalf("create patient %q: %v", name, err)
	}
	return patient
}

func appendVisit(t *testing.T, e *env, patientID, date, note string) {
	t.Helper()
	_, err := e.records.AppendVisit(context.Background(), patientID, &dto.AppendVisitRequest{Date: date, Note: note})
	if err != nil {
		t.Fatalf("append visit %q: %v", note, err)
	}
}

func upsertAppointment(t *testing.T, e *env, date, hhmm, patientID string) *dto.AppointmentResponse {
	t.Helper()
	appt, err := e.appointments.UpsertAppointment(context.Background(), &dto.UpsertAppointmentRequest{
		Date:      date,
		Time:      hhmm,
		PatientID: patientID,
	})
	if err != nil {
		t.Fatalf("upsert appointment %s %s: %v", date, hhmm, err)
	}
	return appt
}
