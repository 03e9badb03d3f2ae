package converter

import (
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/delivery/dto"
	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response
// DTO. patientName may be empty when the caller did not resolve it.
func AppointmentToResponse(appointment *entity.Appointment, patientName string) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		Date:        appointment.Date,
		Time:        appointment.Time,
		PatientID:   appointment.PatientID,
		PatientName: patientName,
		Note:        appointment.Note,
		CreatedAt:   appointment.CreatedAt,
	}
}

// AppointmentsToResponses resolves patient names through the given
// id -> name lookup.
func AppointmentsToResponses(appointments []entity.Appointment, names map[string]string) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i], names[appointments[i].PatientID]))
	}
	return responses
}
