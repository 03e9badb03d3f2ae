package usecase

import (
	"context"
	"errors"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/converter"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/settings"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/pkg/calendar"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnknownDocumentType = errors.New("unknown document type")

// Document types the rendering layer knows how to lay out.
const (
	DocumentPrescription = "prescription"
	DocumentCertificate  = "certificate"
	DocumentBudget       = "budget"
	DocumentClinical     = "clinical"
)

// clinicalVisitLimit caps how many evolution notes a clinical summary
// carries, newest first.
const clinicalVisitLimit = 12

type DocumentUsecase interface {
	BuildDocumentData(ctx context.Context, patientID, docType string) (*dto.DocumentDataResponse, error)
}

type documentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	recordRepo  repository.ClinicalRecordRepository
	settings    *settings.Store
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.ClinicalRecordRepository,
	settingsStore *settings.Store,
) DocumentUsecase {
	return &documentUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		recordRepo:  recordRepo,
		settings:    settingsStore,
	}
}

// BuildDocumentData gathers the structured text a printable document
// needs. Formatting and pagination are the renderer's problem.
func (u *documentUsecase) BuildDocumentData(ctx context.Context, patientID, docType string) (*dto.DocumentDataResponse, error) {
	switch docType {
	case DocumentPrescription, DocumentCertificate, DocumentBudget, DocumentClinical:
	default:
		return nil, ErrUnknownDocumentType
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	data := &dto.DocumentDataResponse{
		Type: docType,
		Date: calendar.Today(),
		Patient: dto.DocumentPatient{
			ID:   patient.ID,
			Name: patient.Name,
		},
		Pro: converter.ProfileToResponse(u.settings.Profile()),
	}

	if docType == DocumentClinical {
		record, err := u.recordRepo.FindByPatientID(ctx, u.db, patientID)
		if err != nil {
			return nil, err
		}
		anamnesis := dto.AnamnesisResponse{}
		visits := []dto.VisitResponse{}
		if record != nil {
			anamnesis = converter.AnamnesisToResponse(record.Anamnese)
			limit := len(record.Visits)
			if limit > clinicalVisitLimit {
				limit = clinicalVisitLimit
			}
			visits = converter.VisitsToResponses(record.Visits[:limit])
		}
		data.Anamnese = &anamnesis
		data.Visits = visits
	}

	return data, nil
}
