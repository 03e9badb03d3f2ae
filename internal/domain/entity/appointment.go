package entity

// Appointment is a scheduled slot for a patient. Time is a zero-padded
// HH:MM string (may be empty), which keeps lexical sorting correct.
type Appointment struct {
	ID        string `gorm:"type:text;primaryKey" json:"id"`
	Date      string `gorm:"type:text;index" json:"date"`
	Time      string `gorm:"type:text" json:"time"`
	PatientID string `gorm:"type:text;index" json:"patientId"`
	Note      string `gorm:"type:text" json:"note"`
	CreatedAt int64  `json:"createdAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// SortKey is the date+time concatenation used for chronological
// ordering across days.
func (a *Appointment) SortKey() string {
	return a.Date + a.Time
}
