package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/shopbill-api/internal/application/service"
	"github.com/sangkips/shopbill-api/internal/config"
	"github.com/sangkips/shopbill-api/internal/infrastructure/cache"
	"github.com/sangkips/shopbill-api/internal/infrastructure/database"
	"github.com/sangkips/shopbill-api/internal/infrastructure/lock"
	"github.com/sangkips/shopbill-api/internal/infrastructure/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/sequence"
	"github.com/sangkips/shopbill-api/internal/infrastructure/storage"
	"github.com/sangkips/shopbill-api/internal/presentation/http/handler"
	"github.com/sangkips/shopbill-api/internal/presentation/http/routes"
	"github.com/sangkips/shopbill-api/pkg/logger"
	"github.com/sangkips/shopbill-api/pkg/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// app is the set of long lived dependencies shared by the commands.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
	rdb *redis.Client
}

// boot loads configuration, sets up logging and opens the database.
func boot() (*app, error) {
	cfg := config.Load()
	log := logger.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(&cfg.Database, log, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close redis client")
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// billing picks the bill number store and the bill locker: redis when it is
// enabled, the counters table and an in-process locker otherwise.
func (a *app) billing(ctx context.Context) (sequence.Store, lock.Locker, error) {
	wait := a.cfg.Billing.LockTTL
	if !a.cfg.Redis.Enabled {
		a.log.Info("Redis disabled, using database counters and in-process bill locks")
		return repository.NewCounterRepository(a.db), lock.NewLocalLocker(wait), nil
	}

	rdb, err := cache.NewRedisClient(ctx, &a.cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	a.rdb = rdb
	a.log.WithField("addr", a.cfg.Redis.Addr).Info("Connected to redis")
	return sequence.NewRedisStore(rdb), lock.NewRedisLocker(rdb, a.cfg.Billing.LockTTL, wait), nil
}

// router wires repositories, services and handlers into the HTTP router.
func (a *app) router(ctx context.Context, done <-chan struct{}) (*gin.Engine, error) {
	cfg := a.cfg

	if err := utils.RegisterValidators(cfg.Billing.PhoneRegion); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	documents, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to set up document storage: %w", err)
	}

	counters, locker, err := a.billing(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set up billing backend: %w", err)
	}

	// Repositories
	shopRepo := repository.NewShopRepository(a.db)
	categoryRepo := repository.NewCategoryRepository(a.db)
	productRepo := repository.NewProductRepository(a.db)
	billRepo := repository.NewBillRepository(a.db)
	reportRepo := repository.NewReportRepository(a.db)
	settingsRepo := repository.NewSettingsRepository(a.db)
	supplierRepo := repository.NewSupplierRepository(a.db)
	idempotencyRepo := repository.NewIdempotencyRepository(a.db)
	maintenanceRepo := repository.NewMaintenanceRepository(a.db, database.Models())

	// Services
	shopService := service.NewShopService(shopRepo, cfg.Billing.PhoneRegion, cfg.Billing.DefaultShopGSTRate)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	billService := service.NewBillService(
		billRepo,
		productRepo,
		shopRepo,
		sequence.NewGenerator(counters, cfg.Billing.NumberPrefix),
		locker,
		documents,
	)
	reportService := service.NewReportService(reportRepo, billRepo, shopRepo)
	dashboardService := service.NewDashboardService(billRepo, productRepo, cfg.Billing.RecentBillsLimit)
	settingsService := service.NewSettingsService(settingsRepo)
	supplierService := service.NewSupplierService(supplierRepo, shopRepo, cfg.Billing.PhoneRegion)
	adminService := service.NewAdminService(maintenanceRepo, idempotencyRepo)

	handlers := &routes.Handlers{
		Shop:      handler.NewShopHandler(shopService),
		Category:  handler.NewCategoryHandler(categoryService),
		Product:   handler.NewProductHandler(productService),
		Bill:      handler.NewBillHandler(billService),
		Report:    handler.NewReportHandler(reportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Supplier:  handler.NewSupplierHandler(supplierService),
		Admin:     handler.NewAdminHandler(adminService),
	}

	return routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Ping: func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Done: done,
	}), nil
}

func (a *app) adminService() *service.AdminService {
	return service.NewAdminService(
		repository.NewMaintenanceRepository(a.db, database.Models()),
		repository.NewIdempotencyRepository(a.db),
	)
}
