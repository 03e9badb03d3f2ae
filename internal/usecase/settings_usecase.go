package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/converter"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"

	"github.com/sirupsen/logrus"
)

const minPasswordLength = 4

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrWrongPassword    = errors.New("password is incorrect")
	ErrPasswordTooShort = errors.New("new password is too short")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
)

type SettingsUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	SaveProfile(ctx context.Context, req *dto.ProfileRequest) (*dto.SettingsResponse, error)
	SaveHolidays(ctx context.Context, req *dto.HolidaysRequest) (*dto.SettingsResponse, error)
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
}

type settingsUsecase struct {
	log      *logrus.Logger
	settings *settings.Store
}

func NewSettingsUsecase(log *logrus.Logger, settingsStore *settings.Store) SettingsUsecase {
	return &settingsUsecase{
		log:      log,
		settings: settingsStore,
	}
}

func (u *settingsUsecase) Login(ctx context.Context, req *dto.LoginRequest) error {
	pw := strings.TrimSpace(req.Password)
	if pw == "" {
		return ErrPasswordRequired
	}
	if pw != u.settings.Password() {
		return ErrWrongPassword
	}
	return u.settings.SetLoggedIn(true)
}

func (u *settingsUsecase) Logout(ctx context.Context) error {
	return u.settings.SetLoggedIn(false)
}

func (u *settingsUsecase) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	current := strings.TrimSpace(req.Current)
	next := strings.TrimSpace(req.New)
	confirm := strings.TrimSpace(req.Confirm)

	if current != u.settings.Password() {
		return ErrWrongPassword
	}
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	return u.settings.SetPassword(next)
}

func (u *settingsUsecase) SaveProfile(ctx context.Context, req *dto.ProfileRequest) (*dto.SettingsResponse, error) {
	profile := settings.Profile{
		Name:      strings.TrimSpace(req.Name),
		Reg:       strings.TrimSpace(req.Reg),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		PublicBio: strings.TrimSpace(req.PublicBio),
	}
	if err := u.settings.SetProfile(profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return u.GetSettings(ctx)
}

// SaveHolidays keeps only well-formed YYYY-MM-DD entries, silently
// dropping everything else.
func (u *settingsUsecase) SaveHolidays(ctx context.Context, req *dto.HolidaysRequest) (*dto.SettingsResponse, error) {
	valid := make([]string, 0, len(req.Holidays))
	for _, line := range req.Holidays {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if calendar.IsValidISO(line) {
			valid = append(valid, line)
		}
	}
	if err := u.settings.SetHolidays(valid); err != nil {
		return nil, fmt.Errorf("save holidays: %w", err)
	}
	return u.GetSettings(ctx)
}

func (u *settingsUsecase) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	return &dto.SettingsResponse{
		Pro:      converter.ProfileToResponse(u.settings.Profile()),
		Holidays: u.settings.Holidays(time.Now().Year()),
	}, nil
}
