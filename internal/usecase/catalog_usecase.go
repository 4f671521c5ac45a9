package usecase

import (
	"context"
	"net/http"
	"strings"

	"spiceshop/internal/domain/model"
	repo "spiceshop/internal/repository"

	"github.com/google/uuid"
)

// 公開ページ（商品・カテゴリ・レシピ・イベント）の読み取り
type CatalogUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	recipes    repo.RecipeRepository
	events     repo.EventRepository
}

func NewCatalogUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	recipes repo.RecipeRepository,
	events repo.EventRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		products:   products,
		categories: categories,
		recipes:    recipes,
		events:     events,
	}
}

// レシピに動画IDを足したもの
type RecipeOutput struct {
	model.Recipe
	YouTubeID string `json:"youtube_id,omitempty"`
}

func toRecipeOutput(r model.Recipe) RecipeOutput {
	return RecipeOutput{Recipe: r, YouTubeID: YouTubeID(r.YouTubeURL)}
}

// categoryID が空なら全件
func (u *CatalogUsecase) ListProducts(ctx context.Context, categoryID string) ([]model.Product, error) {
	var f repo.ProductFilter
	if id := strings.TrimSpace(categoryID); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return []model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		f.CategoryID = &id
	}

	items, err := u.products.List(ctx, f)
	if err != nil {
		return []model.Product{}, fromRepoErr(err)
	}
	return items, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, fromRepoErr(err)
	}
	return p, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, fromRepoErr(err)
	}
	return items, nil
}

func (u *CatalogUsecase) ListRecipes(ctx context.Context) ([]RecipeOutput, error) {
	items, err := u.recipes.List(ctx)
	if err != nil {
		return []RecipeOutput{}, fromRepoErr(err)
	}
	outs := make([]RecipeOutput, 0, len(items))
	for _, r := range items {
		outs = append(outs, toRecipeOutput(r))
	}
	return outs, nil
}

func (u *CatalogUsecase) GetRecipe(ctx context.Context, id string) (RecipeOutput, error) {
	r, err := u.recipes.FindByID(ctx, id)
	if err != nil {
		return RecipeOutput{}, fromRepoErr(err)
	}
	return toRecipeOutput(r), nil
}

func (u *CatalogUsecase) ListEvents(ctx context.Context) ([]model.Event, error) {
	items, err := u.events.List(ctx)
	if err != nil {
		return []model.Event{}, fromRepoErr(err)
	}
	return items, nil
}
