package dto

type UpsertAppointmentRequest struct {
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	PatientID string `json:"patientId" validate:"required"`
	Note      string `json:"note"`
}

// EditAppointmentRequest adjusts time and note only; the date of an
// existing appointment never changes.
type EditAppointmentRequest struct {
	Time string `json:"time"`
	Note string `json:"note"`
}

type AppointmentResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName,omitempty"`
	Note        string `json:"note,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
