package repository

import (
	"context"
	"errors"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
	domainRepo "github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type clinicalRecordRepository struct{}

func NewClinicalRecordRepository() domainRepo.ClinicalRecordRepository {
	return &clinicalRecordRepository{}
}

func (r *clinicalRecordRepository) Save(ctx context.Context, db *gorm.DB, record *entity.ClinicalRecord) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error
}

func (r *clinicalRecordRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) (*entity.ClinicalRecord, error) {
	var record entity.ClinicalRecord
	err := db.WithContext(ctx).Where("patient_id = ?", patientID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *clinicalRecordRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.ClinicalRecord, error) {
	var records []entity.ClinicalRecord
	err := db.WithContext(ctx).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete is absence-tolerant: removing a record that was never
// materialized is not an error.
func (r *clinicalRecordRepository) Delete(ctx context.Context, db *gorm.DB, patientID string) error {
	return db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.ClinicalRecord{}).Error
}
