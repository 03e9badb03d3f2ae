package dto

type CreatePatientRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	CPF   string `json:"cpf"`
}

// UpdatePatientRequest merges changed fields only; nil means "leave
// as is".
type UpdatePatientRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	CPF   *string `json:"cpf,omitempty"`
}

type PatientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	CPF       string `json:"cpf,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
