package settings_test

import (
	"path/filepath"
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
)

func open(t *testing.T, path string) *settings.Store {
	t.Helper()
	s, err := settings.Open(path)
	if err != nil {
		t.Fatalf("open settings: %v", err)
	}
	return s
}

func TestDefaults(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "settings.json"))

	if got := s.Password(); got != "1212" {
		t.Errorf("default password = %q, want 1212", got)
	}
	if s.LoggedIn() {
		t.Error("fresh store should not be logged in")
	}
	if p := s.Profile(); p.Name != "" {
		t.Errorf("default profile name = %q, want empty", p.Name)
	}

	holidays := s.Holidays(2025)
	if len(holidays) != 8 {
		t.Fatalf("default holidays = %d entries, want 8", len(holidays))
	}
	set := s.HolidaySet(2025)
	if _, ok := set["2025-12-25"]; !ok {
		t.Error("default holiday set missing 2025-12-25")
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := open(t, path)
	if err := s.SetPassword("4321"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLoggedIn(true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetProfile(settings.Profile{Name: "Dr. Teste", Email: "t@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetHolidays([]string{"2025-12-25"}); err != nil {
		t.Fatal(err)
	}

	// Reopen from disk and check every key survived.
	s2 := open(t, path)
	if got := s2.Password(); got != "4321" {
		t.Errorf("password = %q, want 4321", got)
	}
	if !s2.LoggedIn() {
		t.Error("logged-in flag lost")
	}
	if got := s2.Profile().Name; got != "Dr. Teste" {
		t.Errorf("profile name = %q", got)
	}
	if h := s2.Holidays(2030); len(h) != 1 || h[0] != "2025-12-25" {
		t.Errorf("holidays = %v, want only 2025-12-25", h)
	}
}

func TestConfiguredEmptyHolidayListStaysEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := open(t, path)
	if err := s.SetHolidays(nil); err != nil {
		t.Fatal(err)
	}

	// An explicitly cleared list must not fall back to the defaults.
	if h := s.Holidays(2025); len(h) != 0 {
		t.Errorf("cleared holidays = %v, want empty", h)
	}
	s2 := open(t, path)
	if h := s2.Holidays(2025); len(h) != 0 {
		t.Errorf("cleared holidays after reopen = %v, want empty", h)
	}
}

func TestWipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := open(t, path)
	if err := s.SetPassword("4321"); err != nil {
		t.Fatal(err)
	}
	if err := s.Wipe(); err != nil {
		t.Fatal(err)
	}

	if got := s.Password(); got != "1212" {
		t.Errorf("password after wipe = %q, want default", got)
	}
	s2 := open(t, path)
	if got := s2.Password(); got != "1212" {
		t.Errorf("password after wipe and reopen = %q, want default", got)
	}
}
