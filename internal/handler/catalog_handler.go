package handler

import (
	"context"
	"net/http"

	"spiceshop/internal/domain/model"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 公開カタログの読み取り
type Catalog interface {
	ListProducts(ctx context.Context, categoryID string) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListRecipes(ctx context.Context) ([]usecase.RecipeOutput, error)
	GetRecipe(ctx context.Context, id string) (usecase.RecipeOutput, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
}

// /products /categories /recipes /events の公開API
type CatalogHandler struct {
	uc Catalog
}

// DI
func NewCatalogHandler(uc Catalog) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.listProducts)
	e.GET("/products/:id", h.getProduct)
	e.GET("/categories", h.listCategories)
	e.GET("/recipes", h.listRecipes)
	e.GET("/recipes/:id", h.getRecipe)
	e.GET("/events", h.listEvents)
}

// GET /products?category_id=
func (h *CatalogHandler) listProducts(c echo.Context) error {
	items, err := h.uc.ListProducts(c.Request().Context(), c.QueryParam("category_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) getProduct(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	items, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) listRecipes(c echo.Context) error {
	items, err := h.uc.ListRecipes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) getRecipe(c echo.Context) error {
	r, err := h.uc.GetRecipe(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *CatalogHandler) listEvents(c echo.Context) error {
	items, err := h.uc.ListEvents(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
