package dto

// AnamnesisRequest carries the six intake fields; absent fields save
// as empty strings.
type AnamnesisRequest struct {
	Chief     string `json:"chief"`
	HDA       string `json:"hda"`
	Hx        string `json:"hx"`
	Allergies string `json:"allergies"`
	Meds      string `json:"meds"`
	Vitals    string `json:"vitals"`
}

type AppendVisitRequest struct {
	// Empty Date defaults to today.
	Date string `json:"date"`
	Note string `json:"note" validate:"required"`
}

type EditVisitRequest struct {
	Note string `json:"note"`
}

type AnamnesisResponse struct {
	Chief     string `json:"chief"`
	HDA       string `json:"hda"`
	Hx        string `json:"hx"`
	Allergies string `json:"allergies"`
	Meds      string `json:"meds"`
	Vitals    string `json:"vitals"`
}

type VisitResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Note      string `json:"note"`
	CreatedAt int64  `json:"createdAt"`
}

type ClinicalRecordResponse struct {
	PatientID string            `json:"patientId"`
	Anamnese  AnamnesisResponse `json:"anamnese"`
	Visits    []VisitResponse   `json:"visits"`
	UpdatedAt int64             `json:"updatedAt,omitempty"`
}
