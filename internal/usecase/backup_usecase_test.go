package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
)

func exportJSON(t *testing.T, e *env) []byte {
	t.Helper()
	snapshot, err := e.backup.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	return data
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newEnv(t)
	ctx := context.Background()

	patient := createPatient(t, source, "Exportado")
	appendVisit(t, source, patient.ID, "2025-01-10", "Avaliação inicial")
	upsertAppointment(t, source, "2099-03-02", "09:00", patient.ID)
	if err := source.settings.SetProfile(settings.Profile{Name: "Dra. Exemplo", Reg: "CRO 12345"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if err := source.settings.SetHolidays([]string{"2099-06-15"}); err != nil {
		t.Fatalf("set holidays: %v", err)
	}

	data := exportJSON(t, source)

	target := newEnv(t)
	if err := target.backup.Import(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}

	got, err := target.patients.GetPatient(ctx, patient.ID)
	if err != nil {
		t.Fatalf("patient missing after import: %v", err)
	}
	if got.Name != "Exportado" {
		t.Errorf("patient name = %q", got.Name)
	}
	record, err := target.records.GetRecord(ctx, patient.ID)
	if err != nil {
		t.Fatalf("record missing after import: %v", err)
	}
	if len(record.Visits) != 1 || record.Visits[0].Note != "Avaliação inicial" {
		t.Errorf("visits not restored: %+v", record.Visits)
	}
	appointments, err := target.appointments.AppointmentsByDate(ctx, "2099-03-02")
	if err != nil {
		t.Fatalf("appointments: %v", err)
	}
	if appointments.Total != 1 {
		t.Errorf("appointments not restored, got %d", appointments.Total)
	}
	if target.settings.Profile().Name != "Dra. Exemplo" {
		t.Errorf("profile not restored: %+v", target.settings.Profile())
	}
	holidays := target.settings.Holidays(2099)
	if len(holidays) != 1 || holidays[0] != "2099-06-15" {
		t.Errorf("holidays not restored: %v", holidays)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	patient := createPatient(t, e, "Duplicado")
	data := exportJSON(t, e)

	if err := e.backup.Import(ctx, data); err != nil {
		t.Fatalf("first import: %v", err)
	}
	if err := e.backup.Import(ctx, data); err != nil {
		t.Fatalf("second import: %v", err)
	}

	list, err := e.patients.SearchPatients(ctx, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("merge duplicated patient %s, total = %d", patient.ID, list.Total)
	}
}

func TestImportMergesOverExisting(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	keeper := createPatient(t, e, "Pré-existente")
	data := exportJSON(t, e)

	// Local work after the backup was taken must survive the merge.
	later := createPatient(t, e, "Pós-backup")
	if err := e.backup.Import(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}

	for _, id := range []string{keeper.ID, later.ID} {
		if _, err := e.patients.GetPatient(ctx, id); err != nil {
			t.Errorf("patient %s lost by merge: %v", id, err)
		}
	}
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.backup.Import(ctx, []byte(`{"version": 1, "patients": [`))
	if !errors.Is(err, usecase.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}

	list, err := e.patients.SearchPatients(ctx, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("malformed import wrote data: %d patients", list.Total)
	}
}

func TestImportRejectsNewerVersion(t *testing.T) {
	e := newEnv(t)

	err := e.backup.Import(context.Background(), []byte(`{"version": 2}`))
	if !errors.Is(err, usecase.ErrUnsupportedSnapshot) {
		t.Fatalf("expected ErrUnsupportedSnapshot, got %v", err)
	}
}

func TestImportLeavesAbsentSectionsAlone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if err := e.settings.SetProfile(settings.Profile{Name: "Mantida"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	createPatient(t, e, "Intocado")

	// A patients-only snapshot must not touch profile or holidays.
	if err := e.backup.Import(ctx, []byte(`{"version": 1, "patients": []}`)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if e.settings.Profile().Name != "Mantida" {
		t.Errorf("profile overwritten: %+v", e.settings.Profile())
	}
	list, err := e.patients.SearchPatients(ctx, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if list.Total != 1 {
		t.Errorf("existing patients lost, total = %d", list.Total)
	}
}

func TestWipeRequiresExactConfirmation(t *testing.T) {
	e := newEnv(t)

	err := e.backup.Wipe(context.Background(), "erase all data")
	if !errors.Is(err, usecase.ErrWipeNotConfirmed) {
		t.Fatalf("expected ErrWipeNotConfirmed, got %v", err)
	}
}

func TestWipeDestroysEverything(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	createPatient(t, e, "Apagado")
	if err := e.settings.SetPassword("9999"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	if err := e.backup.Wipe(ctx, usecase.WipeConfirmation); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	if _, err := os.Stat(e.storageCfg.DatabasePath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("database file still present: %v", err)
	}
	if e.settings.Password() != settings.DefaultPassword {
		t.Errorf("password not reset, got %q", e.settings.Password())
	}
}
