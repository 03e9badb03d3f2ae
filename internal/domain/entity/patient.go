package entity

// Patient represents a person under the practitioner's care.
// Timestamps are epoch milliseconds so records survive backup
// round-trips without timezone drift.
type Patient struct {
	ID        string `gorm:"type:text;primaryKey" json:"id"`
	Name      string `gorm:"type:text;not null;index" json:"name"`
	Phone     string `gorm:"type:text" json:"phone"`
	CPF       string `gorm:"type:text" json:"cpf"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func (Patient) TableName() string {
	return "patients"
}
