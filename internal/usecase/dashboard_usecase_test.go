package usecase_test

import (
	"context"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"
)

func TestOverviewEmptyStore(t *testing.T) {
	e := newEnv(t)

	overview, err := e.dashboard.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Today != calendar.Today() {
		t.Errorf("today = %q", overview.Today)
	}
	if overview.PatientCount != 0 || overview.VisitNoteCount != 0 || overview.MonthAppointments != 0 {
		t.Errorf("empty store yielded counters: %+v", overview)
	}
	if len(overview.NextAppointments) != 0 || len(overview.RecentPatients) != 0 {
		t.Errorf("empty store yielded previews: %+v", overview)
	}
}

func TestOverviewCounters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first := createPatient(t, e, "Primeiro")
	second := createPatient(t, e, "Segundo")
	appendVisit(t, e, first.ID, "2025-01-10", "Avaliação")
	appendVisit(t, e, first.ID, "2025-01-05", "Retorno")
	appendVisit(t, e, second.ID, "2025-01-10", "Limpeza")
	upsertAppointment(t, e, "2099-03-02", "09:00", first.ID)

	overview, err := e.dashboard.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.PatientCount != 2 {
		t.Errorf("patientCount = %d", overview.PatientCount)
	}
	if overview.VisitNoteCount != 3 {
		t.Errorf("visitNoteCount = %d", overview.VisitNoteCount)
	}
	if len(overview.NextAppointments) != 1 || overview.NextAppointments[0].Date != "2099-03-02" {
		t.Errorf("nextAppointments = %+v", overview.NextAppointments)
	}
	if len(overview.RecentPatients) != 2 {
		t.Errorf("recentPatients = %d", len(overview.RecentPatients))
	}
}
