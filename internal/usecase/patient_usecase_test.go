package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
)

func TestCreatePatientRequiresName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.patients.CreatePatient(ctx, &dto.CreatePatientRequest{Name: "   "})
	if !errors.Is(err, usecase.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreatePatientTrimsAndStamps(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created, err := e.patients.CreatePatient(ctx, &dto.CreatePatientRequest{
		Name:  "  Maria Souza  ",
		Phone: "11 99999-0000",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Maria Souza" {
		t.Errorf("name not trimmed: %q", created.Name)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.CreatedAt == 0 || created.UpdatedAt == 0 {
		t.Errorf("timestamps not set: %d %d", created.CreatedAt, created.UpdatedAt)
	}

	got, err := e.patients.GetPatient(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Phone != "11 99999-0000" {
		t.Errorf("phone = %q", got.Phone)
	}
}

func TestUpdatePatientMergesOnlyProvidedFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	created := createPatient(t, e, "Carlos Lima")
	phone := "21 98888-1234"
	updated, err := e.patients.UpdatePatient(ctx, created.ID, &dto.UpdatePatientRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Carlos Lima" {
		t.Errorf("name changed unexpectedly: %q", updated.Name)
	}
	if updated.Phone != phone {
		t.Errorf("phone = %q, want %q", updated.Phone, phone)
	}
}

func TestUpdatePatientNotFound(t *testing.T) {
	e := newEnv(t)

	name := "Alguém"
	_, err := e.patients.UpdatePatient(context.Background(), "missing", &dto.UpdatePatientRequest{Name: &name})
	if !errors.Is(err, usecase.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestDeletePatientCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	victim := createPatient(t, e, "Paciente Removido")
	other := createPatient(t, e, "Paciente Mantido")

	appendVisit(t, e, victim.ID, "2025-01-10", "Consulta inicial")
	upsertAppointment(t, e, "2099-03-02", "09:00", victim.ID)
	upsertAppointment(t, e, "2099-03-03", "10:00", victim.ID)
	upsertAppointment(t, e, "2099-03-04", "11:00", other.ID)

	if err := e.patients.DeletePatient(ctx, victim.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := e.patients.GetPatient(ctx, victim.ID); !errors.Is(err, usecase.ErrPatientNotFound) {
		t.Errorf("patient still readable, err = %v", err)
	}
	record, err := e.recordRepo.FindByPatientID(ctx, e.db, victim.ID)
	if err != nil {
		t.Fatalf("record lookup: %v", err)
	}
	if record != nil {
		t.Error("clinical record survived the cascade")
	}
	byPatient, err := e.appointments.AppointmentsByPatient(ctx, victim.ID)
	if err != nil {
		t.Fatalf("appointments lookup: %v", err)
	}
	if byPatient.Total != 0 {
		t.Errorf("expected no appointments, got %d", byPatient.Total)
	}

	kept, err := e.appointments.AppointmentsByPatient(ctx, other.ID)
	if err != nil {
		t.Fatalf("other appointments lookup: %v", err)
	}
	if kept.Total != 1 {
		t.Errorf("other patient's appointments affected, got %d", kept.Total)
	}
}

func TestDeletePatientNotFound(t *testing.T) {
	e := newEnv(t)

	err := e.patients.DeletePatient(context.Background(), "missing")
	if !errors.Is(err, usecase.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestSearchPatientsFiltersAllFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	createPatient(t, e, "Ana Beatriz")
	bruno, err := e.patients.CreatePatient(ctx, &dto.CreatePatientRequest{
		Name:  "Bruno Castro",
		Phone: "31 97777-5555",
		CPF:   "123.456.789-00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, tc := range []struct {
		query string
		want  string
	}{
		{"bruno", bruno.ID},
		{"97777", bruno.ID},
		{"456.789", bruno.ID},
	} {
		list, err := e.patients.SearchPatients(ctx, tc.query)
		if err != nil {
			t.Fatalf("search %q: %v", tc.query, err)
		}
		if list.Total != 1 || list.Patients[0].ID != tc.want {
			t.Errorf("search %q: got %d results", tc.query, list.Total)
		}
	}

	all, err := e.patients.SearchPatients(ctx, "")
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if all.Total != 2 {
		t.Errorf("empty query should list everyone, got %d", all.Total)
	}
}

func TestSearchPatientsSortsWithCollation(t *testing.T) {
	e := newEnv(t)

	createPatient(t, e, "carla Dias")
	createPatient(t, e, "Álvaro Nunes")
	createPatient(t, e, "Bruno Castro")

	list, err := e.patients.SearchPatients(context.Background(), "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []string{"Álvaro Nunes", "Bruno Castro", "carla Dias"}
	if len(list.Patients) != len(want) {
		t.Fatalf("got %d patients, want %d", len(list.Patients), len(want))
	}
	for i, name := range want {
		if list.Patients[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, list.Patients[i].Name, name)
		}
	}
}
