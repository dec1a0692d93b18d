package router

import (
	"time"

	"github.com/Pessima-byte/Estommy-sub002/internal/config"
	"github.com/Pessima-byte/Estommy-sub002/internal/handler"
	"github.com/Pessima-byte/Estommy-sub002/internal/middleware"
	"github.com/Pessima-byte/Estommy-sub002/internal/model"
	"github.com/Pessima-byte/Estommy-sub002/internal/repository"
	"github.com/Pessima-byte/Estommy-sub002/internal/service"
	"github.com/Pessima-byte/Estommy-sub002/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the wired services the server needs outside the HTTP layer
// (worker pool handlers).
type Deps struct {
	Ledger service.LedgerService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	priceHistoryRepo := repository.NewPriceHistoryRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	activitySvc := service.NewActivityService(activityRepo)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, activitySvc)
	ledgerSvc := service.NewLedgerService(customerRepo, creditRepo)
	productSvc := service.NewProductService(productRepo, priceHistoryRepo, activitySvc, rdb)
	customerSvc := service.NewCustomerService(customerRepo, activitySvc)
	categorySvc := service.NewCategoryService(categoryRepo, activitySvc, db)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, inventorySvc, activitySvc, dispatcher)
	creditSvc := service.NewCreditService(creditRepo, saleRepo, customerRepo, inventorySvc, ledgerSvc, activitySvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc, inventorySvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	customersH := handler.NewCustomersHandler(customerSvc, ledgerSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	creditsH := handler.NewCreditsHandler(creditSvc)
	activitiesH := handler.NewActivitiesHandler(activitySvc)
	reportsH := handler.NewReportsHandler(saleSvc)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/price/:sku", priceH.GetPriceBySKU)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleStaff, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		// Sales — staff record and browse; destructive operations are admin-only
		v1.POST("/sales", anyRole, salesH.Record)
		v1.GET("/sales", anyRole, salesH.List)
		v1.GET("/sales/:id", anyRole, salesH.Get)
		v1.POST("/sales/:id/reverse", adminOnly, salesH.Reverse)
		v1.DELETE("/sales/:id", adminOnly, salesH.Delete)

		// Credits — staff extend and browse; update/delete move the ledger, admin-only
		v1.POST("/credits", anyRole, creditsH.Record)
		v1.GET("/credits", anyRole, creditsH.List)
		v1.GET("/credits/:id", anyRole, creditsH.Get)
		v1.PUT("/credits/:id", adminOnly, creditsH.Update)
		v1.DELETE("/credits/:id", adminOnly, creditsH.Delete)

		// Products — reads for all, writes admin-only
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.Get)
		v1.GET("/products/:id/price-history", anyRole, productsH.PriceHistory)
		products := v1.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/reactivate", productsH.Reactivate)
			products.PATCH("/:id/stock", productsH.AdjustStock)
		}

		v1.GET("/inventory/movements", adminOnly, productsH.ListMovements)

		// Customers
		v1.GET("/customers", anyRole, customersH.List)
		v1.GET("/customers/:id", anyRole, customersH.Get)
		v1.POST("/customers", anyRole, customersH.Create)
		v1.PUT("/customers/:id", anyRole, customersH.Update)
		v1.DELETE("/customers/:id", adminOnly, customersH.Delete)
		v1.PATCH("/customers/:id/reactivate", adminOnly, customersH.Reactivate)
		v1.POST("/customers/:id/reconcile", adminOnly, customersH.Reconcile)

		// Categories — admin writes, all authenticated read
		v1.GET("/categories", anyRole, categoriesH.List)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Audit trail and reports
		v1.GET("/activities", anyRole, activitiesH.List)
		v1.GET("/reports/profit", adminOnly, reportsH.Profit)

		// Users — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &Deps{Ledger: ledgerSvc}
}
