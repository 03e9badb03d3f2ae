package calendar_test

import (
	"testing"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"
)

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date    string
		weekend bool
	}{
		{"2025-12-26", false}, // Friday
		{"2025-12-27", true},  // Saturday
		{"2025-12-28", true},  // Sunday
		{"2025-12-29", false}, // Monday
		{"2025-01-01", false}, // Wednesday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := calendar.Parse(tt.date)
			if err != nil {
				t.Fatalf("parse %s: %v", tt.date, err)
			}
			if got := calendar.IsWeekend(d); got != tt.weekend {
				t.Errorf("IsWeekend(%s) = %v, want %v", tt.date, got, tt.weekend)
			}
		})
	}
}

func TestIsValidISO(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2025-12-25", true},
		{"2025-1-05", false},
		{"25/12/2025", false},
		{"2025-13-01", false},
		{"", false},
		{"2025-02-28", true},
	}

	for _, tt := range tests {
		if got := calendar.IsValidISO(tt.in); got != tt.ok {
			t.Errorf("IsValidISO(%q) = %v, want %v", tt.in, got, tt.ok)
		}
	}
}

func TestMonthKey(t *testing.T) {
	d, err := calendar.Parse("2025-03-09")
	if err != nil {
		t.Fatal(err)
	}
	if got := calendar.MonthKey(d); got != "2025-03" {
		t.Errorf("MonthKey = %q, want 2025-03", got)
	}
}
