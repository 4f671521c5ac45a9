package handler

import (
	"context"
	"net/http"
	"strconv"

	"spiceshop/internal/config"
	"spiceshop/internal/domain/model"
	"spiceshop/internal/middleware"
	"spiceshop/internal/repository"
	"spiceshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrders interface {
	List(ctx context.Context, in usecase.AdminListOrdersInput) (usecase.OrderListOutput, error)
	UpdateStatus(ctx context.Context, actor string, orderID string, in usecase.AdminUpdateOrderStatusInput) (model.Order, error)
}

type AdminOrderHandler struct {
	uc AdminOrders
}

func NewAdminOrderHandler(uc AdminOrders) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.AdminUserRepository) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminGuard(cfg.AdminUsername))

	admin.GET("/orders", h.list)
	admin.PUT("/orders/:id/status", h.updateStatus)
}

// GET /admin/orders?status=&limit=&offset=
func (h *AdminOrderHandler) list(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		offset = o
	}

	out, err := h.uc.List(c.Request().Context(), usecase.AdminListOrdersInput{
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 操作した管理者（監査ログ用）
	actor, ok := getActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	o, err := h.uc.UpdateStatus(
		c.Request().Context(),
		actor,
		c.Param("id"),
		usecase.AdminUpdateOrderStatusInput{Status: req.Status},
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, o)
}
