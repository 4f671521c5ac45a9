package repository

import (
	"context"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"

	"gorm.io/gorm"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// 監査ログは追記のみ（更新・削除はしない）
type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return translateErr(r.db.WithContext(ctx).Create(&log).Error)
}

func (r *auditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs := []model.AuditLog{}
	err := r.db.WithContext(ctx).
		Scopes(auditFilterScope(f), pageScope(f.Limit, f.Offset)).
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return logs, nil
}

// 空の条件は付けない
func auditFilterScope(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		cond := map[string]interface{}{}
		if f.Actor != "" {
			cond["actor"] = f.Actor
		}
		if f.Action != nil {
			cond["action"] = *f.Action
		}
		if f.ResourceType != nil {
			cond["resource_type"] = *f.ResourceType
		}
		if f.ResourceID != "" {
			cond["resource_id"] = f.ResourceID
		}
		if len(cond) > 0 {
			q = q.Where(cond)
		}

		if f.CreatedFrom != nil {
			q = q.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			q = q.Where("created_at <= ?", *f.CreatedTo)
		}
		return q
	}
}

// limit は 1..200（範囲外は50）、offset は負なら0
func pageScope(limit, offset int) func(*gorm.DB) *gorm.DB {
	if limit <= 0 || limit > auditMaxLimit {
		limit = auditDefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Limit(limit).Offset(offset)
	}
}
