package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/converter"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDateRequired        = errors.New("appointment date is required")
	ErrInvalidDate         = errors.New("appointment date is not a valid calendar date")
	ErrBlockedDay          = errors.New("appointments cannot be created on weekends or holidays")
	ErrTimeRequired        = errors.New("appointment time is required")
	ErrPatientRequired     = errors.New("appointment patient is required")
)

// upcomingPreviewLimit bounds the dashboard preview of future
// appointments.
const upcomingPreviewLimit = 6

type AppointmentUsecase interface {
	UpsertAppointment(ctx context.Context, req *dto.UpsertAppointmentRequest) (*dto.AppointmentResponse, error)
	EditAppointment(ctx context.Context, id string, req *dto.EditAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id string) error
	AppointmentsByDate(ctx context.Context, date string) (*dto.AppointmentListResponse, error)
	AppointmentsByPatient(ctx context.Context, patientID string) (*dto.AppointmentListResponse, error)
	UpcomingAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	settings        *settings.Store
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	settingsStore *settings.Store,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		settings:        settingsStore,
	}
}

// isBlockedDay implements the scheduling rule: weekends and configured
// holidays accept no new appointments.
func (u *appointmentUsecase) isBlockedDay(date string) (bool, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return false, ErrInvalidDate
	}
	if calendar.IsWeekend(d) {
		return true, nil
	}
	_, holiday := u.settings.HolidaySet(time.Now().Year())[date]
	return holiday, nil
}

func (u *appointmentUsecase) UpsertAppointment(ctx context.Context, req *dto.UpsertAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.Date == "" {
		return nil, ErrDateRequired
	}
	blocked, err := u.isBlockedDay(req.Date)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlockedDay
	}
	if req.Time == "" {
		return nil, ErrTimeRequired
	}
	if req.PatientID == "" {
		return nil, ErrPatientRequired
	}

	appointment := &entity.Appointment{
		ID:        uuid.NewString(),
		Date:      req.Date,
		Time:      req.Time,
		PatientID: req.PatientID,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := u.appointmentRepo.Save(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to save appointment: %+v", err)
		return nil, fmt.Errorf("save appointment: %w", err)
	}

	return converter.AppointmentToResponse(appointment, ""), nil
}

// EditAppointment adjusts time and note only. The blocked-day rule is
// deliberately not re-checked here: the date cannot change after
// creation, so the rule gates creation time only.
func (u *appointmentUsecase) EditAppointment(ctx context.Context, id string, req *dto.EditAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	appointment.Time = strings.TrimSpace(req.Time)
	appointment.Note = strings.TrimSpace(req.Note)

	if err := u.appointmentRepo.Save(ctx, u.db, appointment); err != nil {
		u.log.Warnf("Failed to edit appointment %s: %+v", id, err)
		return nil, fmt.Errorf("save appointment: %w", err)
	}

	return converter.AppointmentToResponse(appointment, ""), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id string) error {
	if err := u.appointmentRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (u *appointmentUsecase) patientNames(ctx context.Context) (map[string]string, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}
	return names, nil
}

// AppointmentsByDate lists one day's appointments sorted ascending by
// the HH:MM string. The lexical sort is correct because times are
// zero-padded.
func (u *appointmentUsecase) AppointmentsByDate(ctx context.Context, date string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDate(ctx, u.db, date)
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", date, err)
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Time < appointments[j].Time
	})

	names, err := u.patientNames(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, names),
		Total:        len(appointments),
	}, nil
}

// AppointmentsByPatient lists a patient's history, most recent first.
func (u *appointmentUsecase) AppointmentsByPatient(ctx context.Context, patientID string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].SortKey() > appointments[j].SortKey()
	})

	names, err := u.patientNames(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, names),
		Total:        len(appointments),
	}, nil
}

// UpcomingAppointments previews the next appointments from today
// onward, ordered by date+time, bounded to a fixed count.
func (u *appointmentUsecase) UpcomingAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindFromDate(ctx, u.db, calendar.Today())
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].SortKey() < appointments[j].SortKey()
	})
	if len(appointments) > upcomingPreviewLimit {
		appointments = appointments[:upcomingPreviewLimit]
	}

	names, err := u.patientNames(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, names),
		Total:        len(appointments),
	}, nil
}
