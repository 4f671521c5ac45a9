package server

import (
	"spiceshop/internal/config"
	"spiceshop/internal/handler"
	"spiceshop/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers は main で組み立てた全ハンドラ。
type Handlers struct {
	Health       *handler.HealthHandler
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Auth         *handler.AuthHandler
	AdminCatalog *handler.AdminCatalogHandler
	AdminOrders  *handler.AdminOrderHandler
	AuditLogs    *handler.AdminAuditLogHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.AdminUserRepository, h Handlers) {
	// 公開
	h.Health.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, cfg, userRepo)

	// 管理者
	h.AdminCatalog.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrders.RegisterRoutes(e, cfg, userRepo)
	h.AuditLogs.RegisterRoutes(e, cfg, userRepo)
}
