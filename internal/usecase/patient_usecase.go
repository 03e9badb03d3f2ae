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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrNameRequired    = errors.New("patient name is required")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id string) error
	GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error)
	SearchPatients(ctx context.Context, query string) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	recordRepo      repository.ClinicalRecordRepository
	appointmentRepo repository.AppointmentRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.ClinicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now().UnixMilli()
	patient := &entity.Patient{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		CPF:       strings.TrimSpace(req.CPF),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.patientRepo.Save(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, fmt.Errorf("save patient: %w", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id string, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		patient.Name = name
	}
	if req.Phone != nil {
		patient.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CPF != nil {
		patient.CPF = strings.TrimSpace(*req.CPF)
	}
	patient.UpdatedAt = time.Now().UnixMilli()

	if err := u.patientRepo.Save(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, fmt.Errorf("save patient: %w", err)
	}

	return converter.PatientToResponse(patient), nil
}

// DeletePatient removes the patient and everything referencing it.
// The store has no cross-collection transaction, so the cascade is an
// explicit ordered sequence: clinical record first, then every
// appointment, the patient row last. A crash mid-way leaves a visible
// patient with already-cleaned dependents, never a dangling reference.
func (u *patientUsecase) DeletePatient(ctx context.Context, id string) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.recordRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Cascade for patient %s halted at clinical record: %+v", id, err)
		return fmt.Errorf("delete clinical record: %w", err)
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Cascade for patient %s halted listing appointments: %+v", id, err)
		return fmt.Errorf("list appointments: %w", err)
	}
	for _, a := range appointments {
		if err := u.appointmentRepo.Delete(ctx, u.db, a.ID); err != nil {
			u.log.Warnf("Cascade for patient %s halted at appointment %s: %+v", id, a.ID, err)
			return fmt.Errorf("delete appointment %s: %w", a.ID, err)
		}
	}

	if err := u.patientRepo.Delete(ctx, u.db, id); err != nil {
		u.log.Warnf("Cascade for patient %s halted at patient row: %+v", id, err)
		return fmt.Errorf("delete patient: %w", err)
	}

	return nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, u.db, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

// SearchPatients filters by case-insensitive substring over name,
// phone and CPF, and sorts by name with pt-BR collation.
func (u *patientUsecase) SearchPatients(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	filtered := patients[:0:0]
	for _, p := range patients {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Phone), q) ||
			strings.Contains(strings.ToLower(p.CPF), q) {
			filtered = append(filtered, p)
		}
	}

	// Collators are not safe for concurrent use; build one per call.
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(filtered, func(i, j int) bool {
		return c.CompareString(filtered[i].Name, filtered[j].Name) < 0
	})

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(filtered),
		Total:    len(filtered),
	}, nil
}
