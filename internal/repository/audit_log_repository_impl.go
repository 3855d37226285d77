package repository

import (
	"errors"

	"patients-management/internal/domain/entity"
	domainRepo "patients-management/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) filtered(db *gorm.DB, filter *entity.AuditLogFilter) *gorm.DB {
	query := db.Model(&entity.AuditLog{})
	if filter != nil && filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	return query
}

func (r *auditLogRepository) FindAll(db *gorm.DB, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.AuditLog
	query := r.filtered(db, filter).Preload("User").Order("created_at DESC")
	if filter != nil {
		query = query.Scopes(paginate(filter.Pagination))
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Preload("User").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
