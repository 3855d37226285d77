package repository

import (
	"errors"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescribedMedicineRepository struct{}

func NewPrescribedMedicineRepository() domainRepo.PrescribedMedicineRepository {
	return &prescribedMedicineRepository{}
}

func (r *prescribedMedicineRepository) Create(db *gorm.DB, prescription *entity.PrescribedMedicine) error {
	return db.Omit("Record", "Medicine").Create(prescription).Error
}

func (r *prescribedMedicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescribedMedicine, error) {
	var prescription entity.PrescribedMedicine
	err := db.Preload("Medicine").Preload("Record").Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescribedMedicineRepository) filtered(db *gorm.DB, filter *entity.PrescribedMedicineFilter) *gorm.DB {
	query := db.Model(&entity.PrescribedMedicine{})
	if filter == nil {
		return query
	}
	if filter.RecordID != nil {
		query = query.Where("prescribed_medicines.record_id = ?", *filter.RecordID)
	}
	if filter.MedicineID != nil {
		query = query.Where("prescribed_medicines.medicine_id = ?", *filter.MedicineID)
	}
	if filter.PatientID != nil {
		query = query.
			Joins("JOIN records ON records.id = prescribed_medicines.record_id").
			Where("records.patient_id = ?", *filter.PatientID)
	}
	return query
}

func (r *prescribedMedicineRepository) FindAll(db *gorm.DB, filter *entity.PrescribedMedicineFilter) ([]entity.PrescribedMedicine, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prescriptions []entity.PrescribedMedicine
	query := r.filtered(db, filter).
		Select("prescribed_medicines.*").
		Preload("Medicine").
		Order("prescribed_medicines.created_at ASC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&prescriptions).Error; err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}

func (r *prescribedMedicineRepository) Update(db *gorm.DB, prescription *entity.PrescribedMedicine) error {
	return db.Omit("Record", "Medicine").Save(prescription).Error
}

func (r *prescribedMedicineRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if err := db.Where("prescribed_medicine_id = ?", id).Delete(&entity.GivenMedicine{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&entity.PrescribedMedicine{})
	return result.RowsAffected, result.Error
}
