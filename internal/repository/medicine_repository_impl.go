package repository

import (
	"errors"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicineRepository struct{}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{}
}

func (r *medicineRepository) Create(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Create(medicine).Error
}

func (r *medicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := db.Where("id = ?", id).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepository) filtered(db *gorm.DB, filter *entity.MedicineFilter) *gorm.DB {
	query := db.Model(&entity.Medicine{})
	if filter != nil && filter.Search != "" {
		term := like(filter.Search)
		query = query.Where(ilike("name", "scientific_name", "company"), term, term, term)
	}
	return query
}

func (r *medicineRepository) FindAll(db *gorm.DB, filter *entity.MedicineFilter) ([]entity.Medicine, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var medicines []entity.Medicine
	query := r.filtered(db, filter).Order("name ASC, dose ASC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&medicines).Error; err != nil {
		return nil, 0, err
	}
	return medicines, total, nil
}

func (r *medicineRepository) Update(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Save(medicine).Error
}

func (r *medicineRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Medicine{})
	return result.RowsAffected, result.Error
}
