package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"freiplatz/internal/models/db_models"
)

type AuditFilter struct {
	Action string
	Entity string
}

type AuditRepository interface {
	Insert(ctx context.Context, entry *db_models.AuditLog) error
	List(ctx context.Context, filter AuditFilter, page, pageSize int) ([]db_models.AuditLog, int64, error)
	CountByActionSince(ctx context.Context, action string, since time.Time) (int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *db_models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter, page, pageSize int) ([]db_models.AuditLog, int64, error) {
	var (
		rows  []db_models.AuditLog
		total int64
	)

	q := r.db.WithContext(ctx).Model(&db_models.AuditLog{})
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *auditRepository) CountByActionSince(ctx context.Context, action string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.AuditLog{}).
		Where("action = ? AND created_at >= ?", action, since).
		Count(&n).Error
	return n, err
}
