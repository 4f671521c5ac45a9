package repository

import (
	"context"

	"spiceshop/internal/domain/model"
)

type RecipeRepository interface {
	List(ctx context.Context) ([]model.Recipe, error)
	FindByID(ctx context.Context, id string) (model.Recipe, error)

	Create(ctx context.Context, r model.Recipe) (model.Recipe, error)
	Update(ctx context.Context, r model.Recipe) error
	Delete(ctx context.Context, id string) error
}
