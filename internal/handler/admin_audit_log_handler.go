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

type AuditLogs interface {
	List(ctx context.Context, in usecase.ListAuditLogsInput) ([]model.AuditLog, error)
}

type AdminAuditLogHandler struct {
	uc AuditLogs
}

func NewAdminAuditLogHandler(uc AuditLogs) *AdminAuditLogHandler {
	return &AdminAuditLogHandler{uc: uc}
}

func (h *AdminAuditLogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.AdminUserRepository) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.TokenVersionGuard(userRepo))
	admin.Use(middleware.AdminGuard(cfg.AdminUsername))

	admin.GET("/audit-logs", h.list)
}

// GET /admin/audit-logs?actor=&action=&resource_type=&resource_id=&from=&to=&limit=&offset=
// from/to は RFC3339（usecase側で検証）
func (h *AdminAuditLogHandler) list(c echo.Context) error {
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

	logs, err := h.uc.List(c.Request().Context(), usecase.ListAuditLogsInput{
		Actor:        c.QueryParam("actor"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   c.QueryParam("resource_id"),
		From:         c.QueryParam("from"),
		To:           c.QueryParam("to"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, logs)
}
