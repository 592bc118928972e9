package repositories

import (
	"feedback_backend/internal/models"

	"gorm.io/gorm"
)

// AuditLogRepository is append-and-read only. Update and delete are
// deliberately absent from the interface.
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	FindAll(limit, offset int) ([]models.AuditLog, error)
	CountAll() (int64, error)
}

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

func (r *AuditLogRepositoryImpl) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditLogRepositoryImpl) FindAll(limit, offset int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (r *AuditLogRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.AuditLog{}).Count(&count).Error
	return count, err
}
