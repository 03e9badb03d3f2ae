package converter

import (
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		Name:      patient.Name,
		Phone:     patient.Phone,
		CPF:       patient.CPF,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
