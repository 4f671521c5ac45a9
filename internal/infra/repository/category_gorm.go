package repository

import (
	"context"

	"spiceshop/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	t table[model.Category]
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{t: table[model.Category]{db: db}}
}

// 名前順
func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	return r.t.list(ctx, "name asc, id asc")
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	return r.t.findByID(ctx, id)
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	return r.t.insert(ctx, c)
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	return r.t.update(ctx, c.ID, map[string]interface{}{
		"name": c.Name,
		"slug": c.Slug,
	})
}

// 商品側の category_id は DB が NULL にする
func (r *CategoryGormRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
