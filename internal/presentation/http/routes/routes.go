package routes

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopbill-api/internal/config"
	domainRepo "github.com/sangkips/shopbill-api/internal/domain/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/metrics"
	"github.com/sangkips/shopbill-api/internal/presentation/http/handler"
	"github.com/sangkips/shopbill-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Shop      *handler.ShopHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Bill      *handler.BillHandler
	Report    *handler.ReportHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	Supplier  *handler.SupplierHandler
	Admin     *handler.AdminHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Ping reports whether the database is reachable. Optional.
	Ping func(ctx context.Context) error
	// Done stops background work started by the router.
	Done <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	if deps.Cfg.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	health := healthHandler(deps)
	router.GET("/health", health)

	if deps.Cfg.Metrics.Enabled {
		router.GET(deps.Cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	if deps.Cfg.Storage.Driver == "local" || deps.Cfg.Storage.Driver == "" {
		router.Static(localFilesPrefix(deps.Cfg.Storage.PublicURL), deps.Cfg.Storage.Path)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health)

		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(&deps.Cfg.RateLimit), deps.Done)
		api := v1.Group("")
		api.Use(rateLimiter.Middleware())

		registerRoutes(api, h, deps)
	}

	return router
}

func registerRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	registerShopRoutes(api, h)
	registerCategoryRoutes(api, h)
	registerProductRoutes(api, h)
	registerBillRoutes(api, h, deps)
	registerReportRoutes(api, h)

	api.GET("/dashboard/stats", h.Dashboard.GetStats)
	api.GET("/dashboard/recent-bills", h.Dashboard.GetRecentBills)

	api.GET("/settings", h.Settings.List)
	api.GET("/settings/:key", h.Settings.Get)
	api.PUT("/settings/:key", h.Settings.Upsert)

	registerSupplierRoutes(api, h)

	api.POST("/admin/cleanup-db", h.Admin.CleanupDatabase)
}

func registerShopRoutes(api *gin.RouterGroup, h *Handlers) {
	shops := api.Group("/shops")
	{
		shops.POST("", h.Shop.Create)
		shops.GET("", h.Shop.List)
		shops.GET("/mine", h.Shop.Mine)
		shops.GET("/:id", h.Shop.Get)
		shops.PUT("/:id", h.Shop.Update)
		shops.DELETE("/:id", h.Shop.Delete)
		shops.GET("/:id/bills", h.Bill.ListByShop)
		shops.GET("/:id/suppliers", h.Supplier.ListByShop)
	}
}

func registerCategoryRoutes(api *gin.RouterGroup, h *Handlers) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
		categories.GET("/:id/products", h.Product.ListByCategory)
	}
}

func registerProductRoutes(api *gin.RouterGroup, h *Handlers) {
	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/restock", h.Product.Restock)
	}
}

func registerBillRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Billing.IdempotencyKeyTTL,
	})

	bills := api.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", idempotent, h.Bill.Create)
		bills.GET("/number/:number", h.Bill.GetByNumber)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", idempotent, h.Bill.Update)
		bills.DELETE("/:id", h.Bill.Delete)
		bills.POST("/:id/pdf", h.Bill.UploadPDF)
	}
}

func registerReportRoutes(api *gin.RouterGroup, h *Handlers) {
	reports := api.Group("/reports")
	{
		reports.POST("", h.Report.Generate)
		reports.GET("", h.Report.List)
		reports.GET("/metrics", h.Report.Metrics)
		reports.GET("/:id", h.Report.Get)
		reports.GET("/:id/export", h.Report.Export)
	}
}

func registerSupplierRoutes(api *gin.RouterGroup, h *Handlers) {
	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func healthHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		database := "unchecked"
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				status, code, database = "degraded", http.StatusServiceUnavailable, "unreachable"
			} else {
				database = "ok"
			}
		}
		c.JSON(code, gin.H{
			"status":   status,
			"service":  deps.Cfg.App.Name,
			"database": database,
		})
	}
}

// localFilesPrefix returns the path part of the public URL local files are
// served under, "/files" when it has none.
func localFilesPrefix(publicURL string) string {
	path := ""
	if u, err := url.Parse(publicURL); err == nil {
		path = strings.TrimRight(u.Path, "/")
	}
	if path == "" {
		return "/files"
	}
	return path
}
