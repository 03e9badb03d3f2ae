package repository

import (
	"context"
	"errors"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"
	domainRepo "github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Save(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).Where("date = ?", date).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).Where("patient_id = ?", patientID).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindFromDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).Where("date >= ?", date).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// CountByDatePrefix counts appointments whose ISO date starts with
// prefix (a YYYY-MM month key).
func (r *appointmentRepository) CountByDatePrefix(ctx context.Context, db *gorm.DB, prefix string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).Where("date LIKE ?", prefix+"%").Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{}).Error
}
