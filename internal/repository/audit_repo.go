package repository

import (
	"go-affiliate-ops/internal/model"

	"gorm.io/gorm"
)

type AuditFilter struct {
	Table string
	Limit int
}

// AuditRepository is append-only: there is no update or delete
type AuditRepository interface {
	Create(entry *model.AuditEntry) error
	FindAll(filter AuditFilter) ([]model.AuditEntry, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditEntry) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) FindAll(filter AuditFilter) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	q := r.db.Preload("User")
	if filter.Table != "" {
		q = q.Where("table_name = ?", filter.Table)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Order("timestamp DESC").Find(&entries).Error
	return entries, err
}
