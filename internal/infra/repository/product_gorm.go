package repository

import (
	"context"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	t table[model.Product]
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{t: table[model.Product]{db: db}}
}

// 新しい順。category_id があればそのカテゴリだけ。
func (r *ProductGormRepository) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	var scopes []func(*gorm.DB) *gorm.DB
	if f.CategoryID != nil {
		id := *f.CategoryID
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB {
			return tx.Where("category_id = ?", id)
		})
	}
	return r.t.list(ctx, "created_at desc, id desc", scopes...)
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	return r.t.findByID(ctx, id)
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return r.t.insert(ctx, p)
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	return r.t.update(ctx, p.ID, map[string]interface{}{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"category_id": p.CategoryID,
	})
}

func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
