package repository

import (
	"context"
	"errors"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
	domainRepo "github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

// Save is an upsert keyed by the patient id: insert when absent, full
// replace when present.
func (r *patientRepository) Save(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Count(&count).Error
	return count, err
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Patient{}).Error
}
