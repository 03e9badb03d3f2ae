package repository

import (
	"context"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicalRecordRepository interface {
	Save(ctx context.Context, db *gorm.DB, record *entity.ClinicalRecord) error
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) (*entity.ClinicalRecord, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.ClinicalRecord, error)
	Delete(ctx context.Context, db *gorm.DB, patientID string) error
}
