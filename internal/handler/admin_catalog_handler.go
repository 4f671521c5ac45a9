package handler

import (
	"context"
	"net/http"

	"spiceshop/internal/config"
	"spiceshop/internal/domain/model"
	"spiceshop/internal/domain/money"
	"spiceshop/internal/middleware"
	"spiceshop/internal/repository"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminCatalog interface {
	CreateProduct(ctx context.Context, actor string, in usecase.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, actor string, id string, in usecase.ProductInput) (model.Product, error)
	DeleteProduct(ctx context.Context, actor string, id string) error

	CreateCategory(ctx context.Context, actor string, in usecase.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, actor string, id string, in usecase.CategoryInput) (model.Category, error)
	DeleteCategory(ctx context.Context, actor string, id string) error

	CreateRecipe(ctx context.Context, actor string, in usecase.RecipeInput) (usecase.RecipeOutput, error)
	UpdateRecipe(ctx context.Context, actor string, id string, in usecase.RecipeInput) (usecase.RecipeOutput, error)
	DeleteRecipe(ctx context.Context, actor string, id string) error

	CreateEvent(ctx context.Context, actor string, in usecase.EventInput) (model.Event, error)
	UpdateEvent(ctx context.Context, actor string, id string, in usecase.EventInput) (model.Event, error)
	DeleteEvent(ctx context.Context, actor string, id string) error
}

// price は数値でも "12.50" でも受け付ける
type ProductRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       money.Money `json:"price"`
	ImageURL    string      `json:"image_url"`
	CategoryID  *string     `json:"category_id"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type RecipeRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	YouTubeURL string `json:"youtube_url"`
}

type EventRequest struct {
	Title    string `json:"title"`
	Address  string `json:"address"`
	MapsURL  string `json:"maps_url"`
	ImageURL string `json:"image_url"`
}

// /admin/products /admin/categories /admin/recipes /admin/events
type AdminCatalogHandler struct {
	uc AdminCatalog
}

func NewAdminCatalogHandler(uc AdminCatalog) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc}
}

func (h *AdminCatalogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.AdminUserRepository) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminGuard(cfg.AdminUsername))

	admin.POST("/products", h.createProduct)
	admin.PUT("/products/:id", h.updateProduct)
	admin.DELETE("/products/:id", h.deleteProduct)

	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)

	admin.POST("/recipes", h.createRecipe)
	admin.PUT("/recipes/:id", h.updateRecipe)
	admin.DELETE("/recipes/:id", h.deleteRecipe)

	admin.POST("/events", h.createEvent)
	admin.PUT("/events/:id", h.updateEvent)
	admin.DELETE("/events/:id", h.deleteEvent)
}

// =====================
// products
// =====================

func (req ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	}
}

func (h *AdminCatalogHandler) createProduct(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), actor, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *AdminCatalogHandler) updateProduct(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminCatalogHandler) deleteProduct(c echo.Context) error {
	return h.deleteByID(c, h.uc.DeleteProduct)
}

// =====================
// categories
// =====================

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cat, err := h.uc.CreateCategory(c.Request().Context(), actor, usecase.CategoryInput{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *AdminCatalogHandler) updateCategory(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cat, err := h.uc.UpdateCategory(c.Request().Context(), actor, c.Param("id"), usecase.CategoryInput{Name: req.Name})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	return h.deleteByID(c, h.uc.DeleteCategory)
}

// =====================
// recipes
// =====================

func (req RecipeRequest) input() usecase.RecipeInput {
	return usecase.RecipeInput{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		YouTubeURL: req.YouTubeURL,
	}
}

func (h *AdminCatalogHandler) createRecipe(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RecipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	r, err := h.uc.CreateRecipe(c.Request().Context(), actor, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *AdminCatalogHandler) updateRecipe(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RecipeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	r, err := h.uc.UpdateRecipe(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *AdminCatalogHandler) deleteRecipe(c echo.Context) error {
	return h.deleteByID(c, h.uc.DeleteRecipe)
}

// =====================
// events
// =====================

func (req EventRequest) input() usecase.EventInput {
	return usecase.EventInput{
		Title:    req.Title,
		Address:  req.Address,
		MapsURL:  req.MapsURL,
		ImageURL: req.ImageURL,
	}
}

func (h *AdminCatalogHandler) createEvent(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ev, err := h.uc.CreateEvent(c.Request().Context(), actor, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *AdminCatalogHandler) updateEvent(c echo.Context) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ev, err := h.uc.UpdateEvent(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *AdminCatalogHandler) deleteEvent(c echo.Context) error {
	return h.deleteByID(c, h.uc.DeleteEvent)
}

// DELETE は4種類とも同じ形
func (h *AdminCatalogHandler) deleteByID(c echo.Context, del func(ctx context.Context, actor string, id string) error) error {
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	if err := del(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
