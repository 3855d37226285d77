package repository

import (
	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GivenMedicineRepository interface {
	Create(db *gorm.DB, given *entity.GivenMedicine) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.GivenMedicine, error)
	FindAll(db *gorm.DB, filter *entity.GivenMedicineFilter) ([]entity.GivenMedicine, int64, error)
	Update(db *gorm.DB, given *entity.GivenMedicine) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	// SumTotal adds price × quantity over the scope in one aggregate query.
	SumTotal(db *gorm.DB, scope entity.BillingScope) (decimal.Decimal, error)
	// SumTotalsByRecordIDs returns the total of each listed record that has
	// dispensing events, grouped in one query.
	SumTotalsByRecordIDs(db *gorm.DB, recordIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	// UsageReport groups dispensing events by medicine name, dose and price.
	UsageReport(db *gorm.DB, filter *entity.UsageReportFilter) ([]entity.MedicineUsage, error)
}
