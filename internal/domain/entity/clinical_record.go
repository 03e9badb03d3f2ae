package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Anamnesis holds the six free-text intake fields. Absent fields stay
// empty strings; rendering never sees null.
type Anamnesis struct {
	Chief     string `json:"chief"`
	HDA       string `json:"hda"`
	Hx        string `json:"hx"`
	Allergies string `json:"allergies"`
	Meds      string `json:"meds"`
	Vitals    string `json:"vitals"`
}

// Visit is a single dated evolution note. Date carries no time
// component; ordering within a record is by insertion, not by Date.
type Visit struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Note      string `json:"note"`
	CreatedAt int64  `json:"createdAt"`
}

// VisitList is stored as a JSON column so the newest-insert-first
// ordering contract is preserved byte-for-byte.
type VisitList []Visit

func (v VisitList) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *VisitList) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*v = VisitList{}
		return nil
	case []byte:
		return json.Unmarshal(s, v)
	case string:
		return json.Unmarshal([]byte(s), v)
	default:
		return fmt.Errorf("unsupported visit list column type %T", src)
	}
}

func (a Anamnesis) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Anamnesis) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*a = Anamnesis{}
		return nil
	case []byte:
		return json.Unmarshal(s, a)
	case string:
		return json.Unmarshal([]byte(s), a)
	default:
		return fmt.Errorf("unsupported anamnesis column type %T", src)
	}
}

// ClinicalRecord is keyed 1:1 by the owning patient's id. It is
// materialized lazily on the first anamnesis save or visit append.
type ClinicalRecord struct {
	PatientID string    `gorm:"type:text;primaryKey" json:"patientId"`
	Anamnese  Anamnesis `gorm:"type:text" json:"anamnese"`
	Visits    VisitList `gorm:"type:text" json:"visits"`
	UpdatedAt int64     `json:"updatedAt,omitempty"`
}

func (ClinicalRecord) TableName() string {
	return "records"
}
