package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/converter"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoteRequired  = errors.New("visit note is required")
	ErrVisitNotFound = errors.New("visit not found")
)

type ClinicalRecordUsecase interface {
	GetRecord(ctx context.Context, patientID string) (*dto.ClinicalRecordResponse, error)
	SaveAnamnesis(ctx context.Context, patientID string, req *dto.AnamnesisRequest) (*dto.ClinicalRecordResponse, error)
	AppendVisit(ctx context.Context, patientID string, req *dto.AppendVisitRequest) (*dto.ClinicalRecordResponse, error)
	EditVisit(ctx context.Context, patientID, visitID string, req *dto.EditVisitRequest) (*dto.ClinicalRecordResponse, error)
	DeleteVisit(ctx context.Context, patientID, visitID string) (*dto.ClinicalRecordResponse, error)
}

type clinicalRecordUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	recordRepo  repository.ClinicalRecordRepository
}

func NewClinicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.ClinicalRecordRepository,
) ClinicalRecordUsecase {
	return &clinicalRecordUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		recordRepo:  recordRepo,
	}
}

// ensureRecord returns the stored record or a fresh default-shaped
// one. The default is only persisted when a write operation follows.
func (u *clinicalRecordUsecase) ensureRecord(ctx context.Context, patientID string) (*entity.ClinicalRecord, error) {
	record, err := u.recordRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = &entity.ClinicalRecord{
			PatientID: patientID,
			Visits:    entity.VisitList{},
		}
	}
	if record.Visits == nil {
		record.Visits = entity.VisitList{}
	}
	return record, nil
}

func (u *clinicalRecordUsecase) requirePatient(ctx context.Context, patientID string) error {
	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return nil
}

func (u *clinicalRecordUsecase) GetRecord(ctx context.Context, patientID string) (*dto.ClinicalRecordResponse, error) {
	if err := u.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	record, err := u.ensureRecord(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.ClinicalRecordToResponse(record), nil
}

func (u *clinicalRecordUsecase) SaveAnamnesis(ctx context.Context, patientID string, req *dto.AnamnesisRequest) (*dto.ClinicalRecordResponse, error) {
	if err := u.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	record, err := u.ensureRecord(ctx, patientID)
	if err != nil {
		return nil, err
	}

	record.Anamnese = entity.Anamnesis{
		Chief:     req.Chief,
		HDA:       req.HDA,
		Hx:        req.Hx,
		Allergies: req.Allergies,
		Meds:      req.Meds,
		Vitals:    req.Vitals,
	}
	record.UpdatedAt = time.Now().UnixMilli()

	if err := u.recordRepo.Save(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to save anamnesis for patient %s: %+v", patientID, err)
		return nil, fmt.Errorf("save record: %w", err)
	}
	return converter.ClinicalRecordToResponse(record), nil
}

// AppendVisit inserts at the front of the visit list. Ordering is by
// insertion, never re-sorted by the visit date.
func (u *clinicalRecordUsecase) AppendVisit(ctx context.Context, patientID string, req *dto.AppendVisitRequest) (*dto.ClinicalRecordResponse, error) {
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, ErrNoteRequired
	}
	date := req.Date
	if date == "" {
		date = calendar.Today()
	}

	if err := u.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	record, err := u.ensureRecord(ctx, patientID)
	if err != nil {
		return nil, err
	}

	visit := entity.Visit{
		ID:        uuid.NewString(),
		Date:      date,
		Note:      note,
		CreatedAt: time.Now().UnixMilli(),
	}
	record.Visits = append(entity.VisitList{visit}, record.Visits...)
	record.UpdatedAt = visit.CreatedAt

	if err := u.recordRepo.Save(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to append visit for patient %s: %+v", patientID, err)
		return nil, fmt.Errorf("save record: %w", err)
	}
	return converter.ClinicalRecordToResponse(record), nil
}

// EditVisit replaces the note text in place, preserving the visit's
// position and createdAt.
func (u *clinicalRecordUsecase) EditVisit(ctx context.Context, patientID, visitID string, req *dto.EditVisitRequest) (*dto.ClinicalRecordResponse, error) {
	record, err := u.recordRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrVisitNotFound
	}

	found := false
	for i := range record.Visits {
		if record.Visits[i].ID == visitID {
			record.Visits[i].Note = req.Note
			found = true
			break
		}
	}
	if !found {
		return nil, ErrVisitNotFound
	}
	record.UpdatedAt = time.Now().UnixMilli()

	if err := u.recordRepo.Save(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to edit visit %s for patient %s: %+v", visitID, patientID, err)
		return nil, fmt.Errorf("save record: %w", err)
	}
	return converter.ClinicalRecordToResponse(record), nil
}

// DeleteVisit removes by id; an absent record or visit id is a no-op,
// not an error.
func (u *clinicalRecordUsecase) DeleteVisit(ctx context.Context, patientID, visitID string) (*dto.ClinicalRecordResponse, error) {
	record, err := u.recordRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return converter.ClinicalRecordToResponse(&entity.ClinicalRecord{
			PatientID: patientID,
			Visits:    entity.VisitList{},
		}), nil
	}

	kept := record.Visits[:0:0]
	for _, v := range record.Visits {
		if v.ID != visitID {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(record.Visits) {
		return converter.ClinicalRecordToResponse(record), nil
	}
	record.Visits = kept
	record.UpdatedAt = time.Now().UnixMilli()

	if err := u.recordRepo.Save(ctx, u.db, record); err != nil {
		u.log.Warnf("Failed to delete visit %s for patient %s: %+v", visitID, patientID, err)
		return nil, fmt.Errorf("save record: %w", err)
	}
	return converter.ClinicalRecordToResponse(record), nil
}
