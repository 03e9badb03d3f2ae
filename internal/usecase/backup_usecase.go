package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/config"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/infrastructure/database"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// snapshotVersion tags the backup format.
const snapshotVersion = 1

// WipeConfirmation is the exact phrase required to destroy all data.
const WipeConfirmation = "ERASE ALL DATA"

var (
	ErrInvalidSnapshot     = errors.New("snapshot is malformed")
	ErrUnsupportedSnapshot = errors.New("snapshot format version is not supported")
	ErrWipeNotConfirmed    = errors.New("wipe confirmation phrase does not match")
)

// Snapshot is the full point-in-time backup: configuration state plus
// the complete contents of the three collections.
type Snapshot struct {
	Version      int                     `json:"version"`
	ExportedAt   string                  `json:"exportedAt"`
	Pro          *settings.Profile       `json:"pro"`
	Holidays     []string                `json:"holidays"`
	Patients     []entity.Patient        `json:"patients"`
	Records      []entity.ClinicalRecord `json:"records"`
	Appointments []entity.Appointment    `json:"appointments"`
}

type BackupUsecase interface {
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, data []byte) error
	Wipe(ctx context.Context, confirmation string) error
}

type backupUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	storageCfg      config.StorageConfig
	settings        *settings.Store
	patientRepo     repository.PatientRepository
	recordRepo      repository.ClinicalRecordRepository
	appointmentRepo repository.AppointmentRepository
}

func NewBackupUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	storageCfg config.StorageConfig,
	settingsStore *settings.Store,
	patientRepo repository.PatientRepository,
	recordRepo repository.ClinicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
) BackupUsecase {
	return &backupUsecase{
		db:              db,
		log:             log,
		storageCfg:      storageCfg,
		settings:        settingsStore,
		patientRepo:     patientRepo,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Export produces a full non-streaming dump of the store and the
// configuration state.
func (u *backupUsecase) Export(ctx context.Context) (*Snapshot, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, fmt.Errorf("export patients: %w", err)
	}
	records, err := u.recordRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	appointments, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, fmt.Errorf("export appointments: %w", err)
	}

	pro := u.settings.Profile()
	return &Snapshot{
		Version:      snapshotVersion,
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		Pro:          &pro,
		Holidays:     u.settings.Holidays(time.Now().Year()),
		Patients:     patients,
		Records:      records,
		Appointments: appointments,
	}, nil
}

// Import merges a snapshot by upsert. Parsing happens before any
// write, so a malformed payload touches nothing. Absent sections are
// left as they are. Once writing starts there is no rollback: a
// failed put mid-collection leaves earlier puts in place and the
// error reports where the merge stopped.
func (u *backupUsecase) Import(ctx context.Context, data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snapshot.Version > snapshotVersion {
		return fmt.Errorf("%w: version %d", ErrUnsupportedSnapshot, snapshot.Version)
	}

	if snapshot.Pro != nil {
		if err := u.settings.SetProfile(*snapshot.Pro); err != nil {
			return fmt.Errorf("import profile: %w", err)
		}
	}
	if snapshot.Holidays != nil {
		if err := u.settings.SetHolidays(snapshot.Holidays); err != nil {
			return fmt.Errorf("import holidays: %w", err)
		}
	}

	for i := range snapshot.Patients {
		if err := u.patientRepo.Save(ctx, u.db, &snapshot.Patients[i]); err != nil {
			u.log.Warnf("Import stopped at patient %s: %+v", snapshot.Patients[i].ID, err)
			return fmt.Errorf("import patient %s: %w", snapshot.Patients[i].ID, err)
		}
	}
	for i := range snapshot.Records {
		if err := u.recordRepo.Save(ctx, u.db, &snapshot.Records[i]); err != nil {
			u.log.Warnf("Import stopped at record %s: %+v", snapshot.Records[i].PatientID, err)
			return fmt.Errorf("import record %s: %w", snapshot.Records[i].PatientID, err)
		}
	}
	for i := range snapshot.Appointments {
		if err := u.appointmentRepo.Save(ctx, u.db, &snapshot.Appointments[i]); err != nil {
			u.log.Warnf("Import stopped at appointment %s: %+v", snapshot.Appointments[i].ID, err)
			return fmt.Errorf("import appointment %s: %w", snapshot.Appointments[i].ID, err)
		}
	}

	u.log.Infof("Imported snapshot: %d patients, %d records, %d appointments",
		len(snapshot.Patients), len(snapshot.Records), len(snapshot.Appointments))

	return nil
}

// Wipe irreversibly destroys the database and the settings file. The
// process holds dead handles afterwards and must be restarted.
func (u *backupUsecase) Wipe(ctx context.Context, confirmation string) error {
	if confirmation != WipeConfirmation {
		return ErrWipeNotConfirmed
	}

	if err := database.Destroy(u.db, u.storageCfg); err != nil {
		return fmt.Errorf("destroy database: %w", err)
	}
	if err := u.settings.Wipe(); err != nil {
		return fmt.Errorf("wipe settings: %w", err)
	}

	u.log.Warn("All data wiped; restart required")

	return nil
}
