package repository

import (
	"errors"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"
	"patients-management/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type givenMedicineRepository struct{}

func NewGivenMedicineRepository() domainRepo.GivenMedicineRepository {
	return &givenMedicineRepository{}
}

// lineTotal mirrors money.LineTotal: invalid quantities or prices contribute nothing.
const lineTotal = "CASE WHEN g.quantity >= 1 AND m.price >= 0 THEN ROUND(m.price * g.quantity, 2) ELSE 0 END"

func (r *givenMedicineRepository) Create(db *gorm.DB, given *entity.GivenMedicine) error {
	return db.Omit("Patient", "PrescribedMedicine").Create(given).Error
}

func (r *givenMedicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.GivenMedicine, error) {
	var given entity.GivenMedicine
	err := db.Preload("PrescribedMedicine.Medicine").Where("id = ?", id).First(&given).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &given, nil
}

func (r *givenMedicineRepository) filtered(db *gorm.DB, filter *entity.GivenMedicineFilter) *gorm.DB {
	query := db.Model(&entity.GivenMedicine{})
	if filter == nil {
		return query
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.PrescribedMedicineID != nil {
		query = query.Where("prescribed_medicine_id = ?", *filter.PrescribedMedicineID)
	}
	return query
}

func (r *givenMedicineRepository) FindAll(db *gorm.DB, filter *entity.GivenMedicineFilter) ([]entity.GivenMedicine, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var given []entity.GivenMedicine
	query := r.filtered(db, filter).Preload("PrescribedMedicine.Medicine").Order("given_at DESC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&given).Error; err != nil {
		return nil, 0, err
	}
	return given, total, nil
}

func (r *givenMedicineRepository) Update(db *gorm.DB, given *entity.GivenMedicine) error {
	return db.Model(&entity.GivenMedicine{}).Where("id = ?", given.ID).Update("quantity", given.Quantity).Error
}

func (r *givenMedicineRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.GivenMedicine{})
	return result.RowsAffected, result.Error
}

func (r *givenMedicineRepository) SumTotal(db *gorm.DB, scope entity.BillingScope) (decimal.Decimal, error) {
	query := db.Table("given_medicines AS g").
		Select("COALESCE(SUM(" + lineTotal + "), 0)").
		Joins("LEFT JOIN prescribed_medicines pm ON pm.id = g.prescribed_medicine_id").
		Joins("LEFT JOIN medicines m ON m.id = pm.medicine_id")
	if scope.PatientID != nil {
		query = query.Where("g.patient_id = ?", *scope.PatientID)
	}
	if scope.RecordID != nil {
		query = query.Where("pm.record_id = ?", *scope.RecordID)
	}

	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return money.Zero, err
	}
	return money.Round(total), nil
}

type recordTotalRow struct {
	RecordID uuid.UUID
	Total    decimal.Decimal
}

func (r *givenMedicineRepository) SumTotalsByRecordIDs(db *gorm.DB, recordIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	totals := make(map[uuid.UUID]decimal.Decimal, len(recordIDs))
	if len(recordIDs) == 0 {
		return totals, nil
	}

	var rows []recordTotalRow
	err := db.Table("given_medicines AS g").
		Select("pm.record_id AS record_id, COALESCE(SUM("+lineTotal+"), 0) AS total").
		Joins("JOIN prescribed_medicines pm ON pm.id = g.prescribed_medicine_id").
		Joins("LEFT JOIN medicines m ON m.id = pm.medicine_id").
		Where("pm.record_id IN ?", recordIDs).
		Group("pm.record_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.RecordID] = money.Round(row.Total)
	}
	return totals, nil
}

func (r *givenMedicineRepository) UsageReport(db *gorm.DB, filter *entity.UsageReportFilter) ([]entity.MedicineUsage, error) {
	query := db.Table("given_medicines AS g").
		Select("m.name AS name, m.dose AS dose, m.price AS price_per_unit, " +
			"COALESCE(SUM(g.quantity), 0) AS total_quantity, " +
			"COALESCE(SUM(" + lineTotal + "), 0) AS total_price").
		Joins("JOIN prescribed_medicines pm ON pm.id = g.prescribed_medicine_id").
		Joins("JOIN medicines m ON m.id = pm.medicine_id")
	if filter != nil {
		if filter.Area != "" {
			query = query.Joins("JOIN patients p ON p.id = g.patient_id").Where("p.area = ?", filter.Area)
		}
		if filter.From != nil {
			query = query.Where("g.given_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("g.given_at < ?", *filter.To)
		}
	}

	usage := []entity.MedicineUsage{}
	err := query.
		Group("m.name, m.dose, m.price").
		Order("m.name ASC, m.dose ASC, m.price ASC").
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	for i := range usage {
		usage[i].TotalPrice = money.Round(usage[i].TotalPrice)
	}
	return usage, nil
}
