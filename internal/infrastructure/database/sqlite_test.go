package database_test

import (
	"errors"
	"os"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/config"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/infrastructure/database"

	"gorm.io/gorm"
)

func testConfig(t *testing.T) config.StorageConfig {
	t.Helper()
	return config.StorageConfig{
		DataDir:      t.TempDir(),
		DatabaseFile: "clinic.db",
		SettingsFile: "settings.json",
	}
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap connection: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	cfg := testConfig(t)

	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("user_version = %d, want 1", version)
	}
	closeDB(t, db)

	// Reopening the same file must be a no-op migration.
	db, err = database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer closeDB(t, db)
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("user_version after reopen = %d, want 1", version)
	}
}

func TestDataSurvivesReopen(t *testing.T) {
	cfg := testConfig(t)

	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Exec(
		"INSERT INTO patients (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		"p1", "Persistente", 1, 1,
	).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	closeDB(t, db)

	db, err = database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer closeDB(t, db)

	var name string
	if err := db.Raw("SELECT name FROM patients WHERE id = ?", "p1").Scan(&name).Error; err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "Persistente" {
		t.Fatalf("name = %q", name)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	cfg := testConfig(t)

	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Exec("PRAGMA user_version = 99").Error; err != nil {
		t.Fatalf("bump version: %v", err)
	}
	closeDB(t, db)

	if _, err := database.NewSQLiteConnection(cfg); err == nil {
		t.Fatal("expected error opening a newer-versioned database")
	}
}

func TestDestroyRemovesFiles(t *testing.T) {
	cfg := testConfig(t)

	db, err := database.NewSQLiteConnection(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := database.Destroy(db, cfg); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, err := os.Stat(cfg.DatabasePath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("database file still present: %v", err)
	}

	// Destroying an already-absent database is not an error.
	if err := database.Destroy(nil, cfg); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
}
