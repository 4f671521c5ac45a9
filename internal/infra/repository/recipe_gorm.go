package repository

import (
	"context"

	"spiceshop/internal/domain/model"

	"gorm.io/gorm"
)

type RecipeGormRepository struct {
	t table[model.Recipe]
}

func NewRecipeGormRepository(db *gorm.DB) *RecipeGormRepository {
	return &RecipeGormRepository{t: table[model.Recipe]{db: db}}
}

func (r *RecipeGormRepository) List(ctx context.Context) ([]model.Recipe, error) {
	return r.t.list(ctx, "created_at desc, id desc")
}

func (r *RecipeGormRepository) FindByID(ctx context.Context, id string) (model.Recipe, error) {
	return r.t.findByID(ctx, id)
}

func (r *RecipeGormRepository) Create(ctx context.Context, rc model.Recipe) (model.Recipe, error) {
	return r.t.insert(ctx, rc)
}

func (r *RecipeGormRepository) Update(ctx context.Context, rc model.Recipe) error {
	return r.t.update(ctx, rc.ID, map[string]interface{}{
		"title":       rc.Title,
		"content":     rc.Content,
		"image_url":   rc.ImageURL,
		"youtube_url": rc.YouTubeURL,
	})
}

func (r *RecipeGormRepository) Delete(ctx context.Context, id string) error {
	return r.t.delete(ctx, id)
}
