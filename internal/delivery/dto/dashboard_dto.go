package dto

type DashboardResponse struct {
	Today             string                `json:"today"`
	PatientCount      int64                 `json:"patientCount"`
	MonthAppointments int64                 `json:"monthAppointments"`
	VisitNoteCount    int                   `json:"visitNoteCount"`
	NextAppointments  []AppointmentResponse `json:"nextAppointments"`
	RecentPatients    []PatientResponse     `json:"recentPatients"`
}
