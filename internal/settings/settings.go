// Package settings persists the process-wide configuration state that
// lives outside the transactional store: the password secret, the
// logged-in flag, the professional profile and the holiday list.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPassword is the secret used until the practitioner sets one.
const DefaultPassword = "1212"

// Profile is the professional profile shown on documents and on the
// public card. Field names match the backup snapshot format.
type Profile struct {
	Name      string `json:"name"`
	Reg       string `json:"reg"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	PublicBio string `json:"publicBio"`
}

type fileData struct {
	Password string   `json:"password,omitempty"`
	LoggedIn bool     `json:"loggedIn,omitempty"`
	Pro      *Profile `json:"pro,omitempty"`
	// No omitempty: an explicitly cleared holiday list must persist
	// as [] rather than falling back to the defaults on reload.
	Holidays []string `json:"holidays"`
}

// Store is a small key-based settings file. Every setter persists
// immediately; reads serve defaults for keys never written.
type Store struct {
	mu   sync.Mutex
	path string
	data fileData
}

// Open loads the settings file if it exists. A missing file is a
// fresh install, not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) persist() error {
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func (s *Store) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Password == "" {
		return DefaultPassword
	}
	return s.data.Password
}

func (s *Store) SetPassword(pw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Password = pw
	return s.persist()
}

func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.LoggedIn
}

func (s *Store) SetLoggedIn(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LoggedIn = v
	return s.persist()
}

func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Pro == nil {
		return Profile{}
	}
	return *s.data.Pro
}

func (s *Store) SetProfile(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Pro = &p
	return s.persist()
}

// Holidays returns the configured holiday dates, or the fixed national
// set for the given year when never configured. The list does not roll
// forward across years on its own.
func (s *Store) Holidays(year int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Holidays == nil {
		return DefaultHolidays(year)
	}
	out := make([]string, len(s.data.Holidays))
	copy(out, s.data.Holidays)
	return out
}

func (s *Store) SetHolidays(dates []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dates == nil {
		dates = []string{}
	}
	s.data.Holidays = dates
	return s.persist()
}

// HolidaySet is the Holidays list as a membership set for the
// blocked-day rule.
func (s *Store) HolidaySet(year int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, d := range s.Holidays(year) {
		set[d] = struct{}{}
	}
	return set
}

// Wipe removes the settings file and resets the in-memory state.
func (s *Store) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileData{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove settings %s: %w", s.path, err)
	}
	return nil
}

// DefaultHolidays lists the eight national holidays for a year.
func DefaultHolidays(year int) []string {
	return []string{
		fmt.Sprintf("%d-01-01", year),
		fmt.Sprintf("%d-04-21", year),
		fmt.Sprintf("%d-05-01", year),
		fmt.Sprintf("%d-09-07", year),
		fmt.Sprintf("%d-10-12", year),
		fmt.Sprintf("%d-11-02", year),
		fmt.Sprintf("%d-11-15", year),
		fmt.Sprintf("%d-12-25", year),
	}
}
