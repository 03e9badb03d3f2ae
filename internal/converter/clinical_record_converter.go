package converter

import (
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
)

func AnamnesisToResponse(a entity.Anamnesis) dto.AnamnesisResponse {
	return dto.AnamnesisResponse{
		Chief:     a.Chief,
		HDA:       a.HDA,
		Hx:        a.Hx,
		Allergies: a.Allergies,
		Meds:      a.Meds,
		Vitals:    a.Vitals,
	}
}

func VisitToResponse(v entity.Visit) dto.VisitResponse {
	return dto.VisitResponse{
		ID:        v.ID,
		Date:      v.Date,
		Note:      v.Note,
		CreatedAt: v.CreatedAt,
	}
}

// VisitsToResponses preserves the stored order: newest insertion first.
func VisitsToResponses(visits entity.VisitList) []dto.VisitResponse {
	responses := make([]dto.VisitResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, VisitToResponse(v))
	}
	return responses
}

func ClinicalRecordToResponse(record *entity.ClinicalRecord) *dto.ClinicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.ClinicalRecordResponse{
		PatientID: record.PatientID,
		Anamnese:  AnamnesisToResponse(record.Anamnese),
		Visits:    VisitsToResponses(record.Visits),
		UpdatedAt: record.UpdatedAt,
	}
}
