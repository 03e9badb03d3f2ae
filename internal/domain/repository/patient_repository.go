package repository

import (
	"context"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Save(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
