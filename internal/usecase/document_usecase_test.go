package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/usecase"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"
)

func TestBuildDocumentDataUnknownType(t *testing.T) {
	e := newEnv(t)
	patient := createPatient(t, e, "Documentado")

	_, err := e.documents.BuildDocumentData(context.Background(), patient.ID, "laudo")
	if !errors.Is(err, usecase.ErrUnknownDocumentType) {
		t.Fatalf("expected ErrUnknownDocumentType, got %v", err)
	}
}

func TestBuildDocumentDataUnknownPatient(t *testing.T) {
	e := newEnv(t)

	_, err := e.documents.BuildDocumentData(context.Background(), "missing", usecase.DocumentPrescription)
	if !errors.Is(err, usecase.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestBuildDocumentDataPrescription(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	patient := createPatient(t, e, "Receita")
	if err := e.settings.SetProfile(settings.Profile{Name: "Dra. Exemplo", Reg: "CRO 12345"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}

	data, err := e.documents.BuildDocumentData(ctx, patient.ID, usecase.DocumentPrescription)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if data.Type != usecase.DocumentPrescription {
		t.Errorf("type = %q", data.Type)
	}
	if data.Date != calendar.Today() {
		t.Errorf("date = %q, want today", data.Date)
	}
	if data.Patient.Name != "Receita" {
		t.Errorf("patient = %+v", data.Patient)
	}
	if data.Pro.Name != "Dra. Exemplo" {
		t.Errorf("pro = %+v", data.Pro)
	}
	if data.Anamnese != nil || data.Visits != nil {
		t.Error("non-clinical document should carry no record data")
	}
}

func TestBuildDocumentDataClinicalLimitsVisits(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	patient := createPatient(t, e, "Ficha Longa")
	_, err := e.records.SaveAnamnesis(ctx, patient.ID, &dto.AnamnesisRequest{Chief: "Sensibilidade"})
	if err != nil {
		t.Fatalf("anamnesis: %v", err)
	}
	for i := 0; i < 15; i++ {
		appendVisit(t, e, patient.ID, "2025-01-10", fmt.Sprintf("Sessão %02d", i))
	}

	data, err := e.documents.BuildDocumentData(ctx, patient.ID, usecase.DocumentClinical)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if data.Anamnese == nil || data.Anamnese.Chief != "Sensibilidade" {
		t.Errorf("anamnesis missing: %+v", data.Anamnese)
	}
	if len(data.Visits) != 12 {
		t.Fatalf("got %d visits, want 12", len(data.Visits))
	}
	// Visits come newest first, so the most recent session leads.
	if data.Visits[0].Note != "Sessão 14" {
		t.Errorf("first visit = %q", data.Visits[0].Note)
	}
}
