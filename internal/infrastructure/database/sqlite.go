package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/config"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// schemaVersion gates DDL execution: statements run only when the
// database file reports an older user_version.
const schemaVersion = 1

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		cpf TEXT,
		created_at INTEGER,
		updated_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_patients_name ON patients(name)`,
	`CREATE TABLE IF NOT EXISTS records (
		patient_id TEXT PRIMARY KEY,
		anamnese TEXT,
		visits TEXT,
		updated_at INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		date TEXT,
		time TEXT,
		patient_id TEXT,
		note TEXT,
		created_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id)`,
}

// NewSQLiteConnection opens (or creates) the clinic database file and
// applies the schema exactly once, gated by PRAGMA user_version.
// Failure to open is returned to the caller; the process must not run
// without durable storage.
func NewSQLiteConnection(cfg config.StorageConfig) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := cfg.DatabasePath()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database %s: %w", path, err)
	}

	logrus.Infof("Database ready at %s", path)

	return db, nil
}

func migrate(db *gorm.DB) error {
	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	for _, stmt := range schemaStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)).Error; err != nil {
		return fmt.Errorf("stamp schema version: %w", err)
	}

	logrus.Infof("Database schema created at version %d", schemaVersion)

	return nil
}

// Destroy closes the connection and removes the database file along
// with SQLite's sidecar files. Irreversible; used only by the full
// wipe operation.
func Destroy(db *gorm.DB, cfg config.StorageConfig) error {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	path := cfg.DatabasePath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove database %s: %w", path, err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(filepath.Clean(path + suffix))
	}
	return nil
}
