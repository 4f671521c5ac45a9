package repository

import (
	"context"
	"time"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	t table[model.Order]
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{t: table[model.Order]{db: db}}
}

func (r *OrderGormRepository) Insert(ctx context.Context, order model.Order) error {
	_, err := r.t.insert(ctx, order)
	return err
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id string) (model.Order, error) {
	return r.t.findByID(ctx, id)
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	q := r.t.db.WithContext(ctx).Model(&model.Order{})

	//status 絞り込み
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	// Count と Find で同じ条件を使い回す
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, translateErr(err)
	}

	items := []model.Order{}
	err := q.Order("created_at desc").Order("id desc").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, translateErr(err)
	}
	return items, total, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return r.t.update(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}
