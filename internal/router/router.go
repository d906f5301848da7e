package router

import (
	"time"

	"github.com/santyarena1/soundtec-fin/internal/config"
	"github.com/santyarena1/soundtec-fin/internal/handler"
	"github.com/santyarena1/soundtec-fin/internal/infra"
	"github.com/santyarena1/soundtec-fin/internal/middleware"
	"github.com/santyarena1/soundtec-fin/internal/repository"
	"github.com/santyarena1/soundtec-fin/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(rdb, 1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	priceListRepo := repository.NewPriceListRepository(db)
	priceItemRepo := repository.NewPriceItemRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo, mailer)
	supplierSvc := service.NewSupplierService(supplierRepo)
	priceListSvc := service.NewPriceListService(priceListRepo, priceItemRepo, productRepo, supplierRepo)
	productSvc := service.NewProductService(productRepo, priceItemRepo)
	priceItemSvc := service.NewPriceItemService(priceItemRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	productsH := handler.NewProductsHandler(productSvc)
	priceListsH := handler.NewPriceListsHandler(priceListSvc, cfg.MaxUploadMB)
	priceItemsH := handler.NewPriceItemsHandler(priceItemSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		// Catalog reads — any authenticated role; prices already carry the
		// caller's discount, so there is nothing admin-only about them
		v1.GET("/products", middleware.RequireRole("admin", "user"), productsH.List)
		v1.GET("/products/export.pdf", middleware.RequireRole("admin", "user"), productsH.ExportPDF)
		v1.GET("/products/:id", middleware.RequireRole("admin", "user"), productsH.Get)

		// Catalog writes — admin only
		v1.PATCH("/products/:id", middleware.RequireRole("admin"), productsH.Update)

		suppliers := v1.Group("/suppliers", middleware.RequireRole("admin"))
		{
			suppliers.GET("", suppliersH.List)
			suppliers.POST("", suppliersH.Create)
			suppliers.PATCH("/:id", suppliersH.Update)
		}

		priceLists := v1.Group("/pricelists", middleware.RequireRole("admin"))
		{
			priceLists.GET("", priceListsH.List)
			priceLists.POST("/import", priceListsH.Import)
			priceLists.POST("/import-xlsx", priceListsH.ImportXLSX)
		}

		priceItems := v1.Group("/priceitems", middleware.RequireRole("admin"))
		{
			priceItems.GET("", priceItemsH.List)
			priceItems.GET("/:id", priceItemsH.Get)
			priceItems.PATCH("/:id", priceItemsH.Update)
			priceItems.POST("/bulk-update", priceItemsH.BulkUpdate)
		}

		adminUsers := v1.Group("/admin/users", middleware.RequireRole("admin"))
		{
			adminUsers.GET("", usersH.List)
			adminUsers.POST("", usersH.Create)
			adminUsers.PATCH("/:id", usersH.Update)
			adminUsers.POST("/:id/reset-password", usersH.ResetPassword)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
