package repository

import (
	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRepository interface {
	Create(db *gorm.DB, record *entity.Record) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Record, error)
	FindDefaultByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.Record, error)
	FindAll(db *gorm.DB, filter *entity.RecordFilter) ([]entity.Record, int64, error)
	CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	StatsByPatientIDs(db *gorm.DB, patientIDs []uuid.UUID) ([]entity.PatientRecordStats, error)
	Update(db *gorm.DB, record *entity.Record) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
