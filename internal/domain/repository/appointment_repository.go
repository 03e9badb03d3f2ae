package repository

import (
	"context"

	"github.com/gerenciamentodecontasorlando-create/prontuario-clinico22026v4/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Save(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error)
	FindByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID string) ([]entity.Appointment, error)
	FindFromDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Appointment, error)
	CountByDatePrefix(ctx context.Context, db *gorm.DB, prefix string) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
