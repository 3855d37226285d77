package repository

import (
	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescribedMedicineRepository interface {
	Create(db *gorm.DB, prescription *entity.PrescribedMedicine) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescribedMedicine, error)
	FindAll(db *gorm.DB, filter *entity.PrescribedMedicineFilter) ([]entity.PrescribedMedicine, int64, error)
	Update(db *gorm.DB, prescription *entity.PrescribedMedicine) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
