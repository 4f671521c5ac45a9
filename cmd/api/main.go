package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spiceshop/internal/cart"
	"spiceshop/internal/checkout"
	"spiceshop/internal/config"
	"spiceshop/internal/handler"
	"spiceshop/internal/infra/broker"
	"spiceshop/internal/infra/db"
	infraRepo "spiceshop/internal/infra/repository"
	"spiceshop/internal/logging"
	"spiceshop/internal/server"
	"spiceshop/internal/session"
	"spiceshop/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

// 注文確定の通知先（RabbitMQ か Noop）
type orderNotifier interface {
	checkout.Notifier
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	//マイグレーション → DB接続
	if err := db.RunMigrations(cfg.DSN(), logger); err != nil {
		return err
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	recipeRepo := infraRepo.NewRecipeGormRepository(gormDB)
	eventRepo := infraRepo.NewEventGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	userRepo := infraRepo.NewAdminUserGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//通知（RABBITMQ_URL が無ければ何もしない）
	var notifier orderNotifier = broker.Noop{}
	if cfg.RabbitMQURL != "" {
		pub, err := broker.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		notifier = pub
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("publisher close error", zap.Error(err))
		}
	}()

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, recipeRepo, eventRepo)
	adminCatalogUC := usecase.NewAdminCatalogUsecase(txm, idGen, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, clock)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)
	identityUC := usecase.NewIdentityUsecase(
		userRepo,
		usecase.NewBcryptPasswordHasher(bcrypt.DefaultCost),
		usecase.NewBcryptPasswordVerifier(),
		usecase.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL),
		idGen,
		clock,
		cfg.AdminUsername,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := identityUC.EnsureAdmin(ctx, cfg.AdminPassword); err != nil {
		return err
	}

	//ブラウザごとのカートと注文フォーム
	sessions := session.NewRegistry(cfg.CartSessionMax, cfg.CartSessionTTL, func(store *cart.Store) *checkout.Workflow {
		return checkout.New(store, orderRepo, notifier, idGen, clock, cfg.CheckoutTimeout, logger.Named("checkout"))
	})

	//Handler生成
	e := server.New(cfg, logger)
	server.RegisterRoutes(e, cfg, userRepo, server.Handlers{
		Health:       handler.NewHealthHandler(sqlDB),
		Catalog:      handler.NewCatalogHandler(catalogUC),
		Cart:         handler.NewCartHandler(catalogUC, sessions, cfg.IsProd()),
		Auth:         handler.NewAuthHandler(identityUC),
		AdminCatalog: handler.NewAdminCatalogHandler(adminCatalogUC),
		AdminOrders:  handler.NewAdminOrderHandler(adminOrderUC),
		AuditLogs:    handler.NewAdminAuditLogHandler(auditUC),
	})

	//Server起動
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return server.Start(ctx, e, addr, logger)
}
