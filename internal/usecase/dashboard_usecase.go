package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/converter"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentPatientsLimit = 6

type DashboardUsecase interface {
	Overview(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	recordRepo      repository.ClinicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	appointments    AppointmentUsecase
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.ClinicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	appointments AppointmentUsecase,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		appointments:    appointments,
	}
}

// Overview collects the landing-page counters and previews.
func (u *dashboardUsecase) Overview(ctx context.Context) (*dto.DashboardResponse, error) {
	patientCount, err := u.patientRepo.Count(ctx, u.db)
	if err != nil {
		return nil, err
	}

	monthCount, err := u.appointmentRepo.CountByDatePrefix(ctx, u.db, calendar.MonthKey(time.Now()))
	if err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, err
	}
	noteCount := 0
	for _, r := range records {
		noteCount += len(r.Visits)
	}

	upcoming, err := u.appointments.UpcomingAppointments(ctx)
	if err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(patients, func(i, j int) bool {
		return patients[i].UpdatedAt > patients[j].UpdatedAt
	})
	if len(patients) > recentPatientsLimit {
		patients = patients[:recentPatientsLimit]
	}

	return &dto.DashboardResponse{
		Today:             calendar.Today(),
		PatientCount:      patientCount,
		MonthAppointments: monthCount,
		VisitNoteCount:    noteCount,
		NextAppointments:  upcoming.Appointments,
		RecentPatients:    converter.PatientsToResponses(patients),
	}, nil
}
