package repository

import (
	"errors"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("User").Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.first(db.Preload("User").Where("id = ?", id))
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	return r.first(db.Preload("User").Where("user_id = ?", userID))
}

func (r *doctorRepository) FindFirst(db *gorm.DB) (*entity.Doctor, error) {
	return r.first(db.Order("created_at ASC, id ASC"))
}

func (r *doctorRepository) first(query *gorm.DB) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := query.First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) filtered(db *gorm.DB, filter *entity.DoctorFilter) *gorm.DB {
	query := db.Model(&entity.Doctor{})
	if filter != nil && filter.Search != "" {
		term := like(filter.Search)
		query = query.
			Joins("LEFT JOIN users ON users.id = doctors.user_id").
			Where(ilike("doctors.name", "doctors.specialization", "doctors.mobile_number", "users.username"),
				term, term, term, term)
	}
	return query
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []entity.Doctor
	query := r.filtered(db, filter).Select("doctors.*").Preload("User").Order("doctors.created_at ASC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("User", "UserID").Save(doctor).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}
