package dto

// DocumentPatient is the minimal patient identification a printable
// document needs.
type DocumentPatient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentDataResponse is the structured data handed to the external
// rendering layer. The core never formats or paginates.
type DocumentDataResponse struct {
	Type     string             `json:"type"`
	Date     string             `json:"date"`
	Patient  DocumentPatient    `json:"patient"`
	Pro      ProfileResponse    `json:"pro"`
	Anamnese *AnamnesisResponse `json:"anamnese,omitempty"`
	Visits   []VisitResponse    `json:"visits,omitempty"`
}
