package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountingapp "github.com/gulfbooks/backend/internal/application/accounting"
	catalogapp "github.com/gulfbooks/backend/internal/application/catalog"
	identityapp "github.com/gulfbooks/backend/internal/application/identity"
	inventoryapp "github.com/gulfbooks/backend/internal/application/inventory"
	tradeapp "github.com/gulfbooks/backend/internal/application/trade"
	"github.com/gulfbooks/backend/internal/infrastructure/auth"
	"github.com/gulfbooks/backend/internal/infrastructure/config"
	"github.com/gulfbooks/backend/internal/infrastructure/logger"
	"github.com/gulfbooks/backend/internal/infrastructure/persistence"
	"github.com/gulfbooks/backend/internal/interfaces/http/handler"
	"github.com/gulfbooks/backend/internal/interfaces/http/middleware"
	"github.com/gulfbooks/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GulfBooks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed gorm logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	seriesRepo := persistence.NewGormInvoiceSeriesRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Application services
	chartService := accountingapp.NewChartService(accountRepo)
	postingService := accountingapp.NewPostingService(accountRepo, entryRepo)
	reportService := accountingapp.NewReportService(accountRepo, entryRepo, saleRepo, purchaseRepo)
	productService := catalogapp.NewProductService(productRepo)
	stockService := inventoryapp.NewStockService(stockRepo, productRepo)
	companyService := identityapp.NewCompanyService(txManager, companyRepo, chartService)
	salesService := tradeapp.NewSalesService(txManager, companyRepo, productRepo, saleRepo, seriesRepo, postingService, stockService)
	purchaseService := tradeapp.NewPurchaseService(txManager, companyRepo, productRepo, purchaseRepo, seriesRepo, postingService, stockService)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Gin mode follows the environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// JWT protects everything except health probes and company provisioning
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/ready", "/api/v1/companies")
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// API routes
	systemHandler := handler.NewSystemHandler(db.DB, version)
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(handler.NewCompaniesHandler(companyService)).
		Register(handler.NewAccountsHandler(chartService)).
		Register(handler.NewProductsHandler(productService)).
		Register(handler.NewInventoryHandler(stockService)).
		Register(handler.NewSalesHandler(salesService)).
		Register(handler.NewPurchasesHandler(purchaseService)).
		Register(handler.NewReportsHandler(reportService))
	r.Setup()

	// Root-level probe for load balancers
	engine.GET("/health", systemHandler.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
