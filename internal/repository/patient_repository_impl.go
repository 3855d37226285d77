package repository

import (
	"errors"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.first(db.Where("id = ?", id))
}

func (r *patientRepository) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.first(db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *patientRepository) FindDuplicate(db *gorm.DB, fullName string, age int, gender string) (*entity.Patient, error) {
	return r.first(db.Where("full_name = ? AND age = ? AND gender = ?", fullName, age, gender).Order("created_at ASC"))
}

func (r *patientRepository) first(query *gorm.DB) (*entity.Patient, error) {
	var patient entity.Patient
	err := query.First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) filtered(db *gorm.DB, filter *entity.PatientFilter) *gorm.DB {
	query := db.Model(&entity.Patient{})
	if filter == nil {
		return query
	}
	if filter.Search != "" {
		query = query.Where(ilike("full_name", "mobile_number"), like(filter.Search), like(filter.Search))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Area != "" {
		query = query.Where("area = ?", filter.Area)
	}
	if filter.IsWaiting != nil {
		query = query.Where("is_waiting = ?", *filter.IsWaiting)
	}
	return query
}

func (r *patientRepository) FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []entity.Patient
	query := r.filtered(db, filter).Order("created_at DESC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit(clause.Associations).Save(patient).Error
}

// Delete cascades by hand so the result does not depend on FK actions in the schema.
// Dispensing events are removed first, both the patient's own and any that point
// at one of the patient's prescriptions.
func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	records := db.Model(&entity.Record{}).Select("id").Where("patient_id = ?", id)
	prescriptions := db.Model(&entity.PrescribedMedicine{}).Select("id").Where("record_id IN (?)", records)

	if err := db.Where("patient_id = ? OR prescribed_medicine_id IN (?)", id, prescriptions).Delete(&entity.GivenMedicine{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("record_id IN (?)", records).Delete(&entity.PrescribedMedicine{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("patient_id = ?", id).Delete(&entity.Record{}).Error; err != nil {
		return 0, err
	}

	result := db.Where("id = ?", id).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}
