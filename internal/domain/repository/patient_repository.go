package repository

import (
	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	// LockByID loads the patient with a row lock held until the transaction ends.
	LockByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindDuplicate(db *gorm.DB, fullName string, age int, gender string) (*entity.Patient, error)
	FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	// Delete removes the patient together with its records, prescriptions and dispensing events.
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
