package repository

import (
	"errors"
	"time"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recordRepository struct{}

func NewRecordRepository() domainRepo.RecordRepository {
	return &recordRepository{}
}

func (r *recordRepository) Create(db *gorm.DB, record *entity.Record) error {
	return db.Omit("Patient", "Doctor", "PrescribedMedicines").Create(record).Error
}

func (r *recordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Record, error) {
	return r.first(r.preloaded(db).Where("records.id = ?", id))
}

func (r *recordRepository) FindDefaultByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.Record, error) {
	return r.first(r.preloaded(db).Where("records.patient_id = ? AND records.is_default", patientID))
}

func (r *recordRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("Doctor").
		Preload("PrescribedMedicines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("PrescribedMedicines.Medicine")
}

func (r *recordRepository) first(query *gorm.DB) (*entity.Record, error) {
	var record entity.Record
	err := query.First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) filtered(db *gorm.DB, filter *entity.RecordFilter) *gorm.DB {
	query := db.Model(&entity.Record{}).
		Joins("JOIN patients ON patients.id = records.patient_id").
		Joins("JOIN doctors ON doctors.id = records.doctor_id")
	if filter == nil {
		return query
	}
	if filter.PatientID != nil {
		query = query.Where("records.patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("records.doctor_id = ?", *filter.DoctorID)
	}
	if filter.DoctorSpecialization != "" {
		query = query.Where(ilike("doctors.specialization"), likeEscaper.Replace(filter.DoctorSpecialization))
	}
	if filter.Search != "" {
		term := like(filter.Search)
		query = query.Where(ilike("patients.full_name", "doctors.name", "doctors.specialization"), term, term, term)
	}
	return query
}

func (r *recordRepository) FindAll(db *gorm.DB, filter *entity.RecordFilter) ([]entity.Record, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []entity.Record
	query := r.preloaded(r.filtered(db, filter)).
		Select("records.*").
		Order("records.issued_date DESC, records.created_at DESC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *recordRepository) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Record{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	return count, err
}

type patientRecordStatsRow struct {
	PatientID    uuid.UUID
	RecordsCount int64
	LastVisit    *time.Time
}

func (r *recordRepository) StatsByPatientIDs(db *gorm.DB, patientIDs []uuid.UUID) ([]entity.PatientRecordStats, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}

	var rows []patientRecordStatsRow
	err := db.Model(&entity.Record{}).
		Select("patient_id, COUNT(*) AS records_count, MAX(issued_date) AS last_visit").
		Where("patient_id IN ?", patientIDs).
		Group("patient_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]entity.PatientRecordStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, entity.PatientRecordStats{
			PatientID:    row.PatientID,
			RecordsCount: row.RecordsCount,
			LastVisit:    row.LastVisit,
		})
	}
	return stats, nil
}

func (r *recordRepository) Update(db *gorm.DB, record *entity.Record) error {
	return db.Omit("Patient", "Doctor", "PrescribedMedicines").Save(record).Error
}

// Delete removes the record's prescriptions and their dispensing events first.
func (r *recordRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	prescriptions := db.Model(&entity.PrescribedMedicine{}).Select("id").Where("record_id = ?", id)
	if err := db.Where("prescribed_medicine_id IN (?)", prescriptions).Delete(&entity.GivenMedicine{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("record_id = ?", id).Delete(&entity.PrescribedMedicine{}).Error; err != nil {
		return 0, err
	}

	result := db.Where("id = ?", id).Delete(&entity.Record{})
	return result.RowsAffected, result.Error
}
