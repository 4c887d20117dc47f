package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commercekit/payments-stripe/internal/di"
	"github.com/commercekit/payments-stripe/internal/gateway"
	"github.com/commercekit/payments-stripe/internal/locale"
	"github.com/commercekit/payments-stripe/internal/repository"
	"github.com/commercekit/payments-stripe/internal/service"
	"github.com/commercekit/payments-stripe/internal/settings"
	"github.com/commercekit/payments-stripe/pkg/config"
	"github.com/commercekit/payments-stripe/pkg/database"
	"github.com/commercekit/payments-stripe/pkg/logger"
	"github.com/commercekit/payments-stripe/pkg/middleware"
	pkgredis "github.com/commercekit/payments-stripe/pkg/redis"
	"github.com/commercekit/payments-stripe/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.L()
	appLog.Info("Starting Stripe payment service...")

	ctx := context.Background()

	tel, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        os.Getenv("OTEL_COLLECTOR_ADDR") != "",
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  os.Getenv("OTEL_COLLECTOR_ADDR"),
	})
	if err != nil {
		appLog.Warn("Telemetry init failed", zap.Error(err))
	} else {
		defer tel.Shutdown(ctx)
	}

	// Database connection. Without one the service falls back to in-memory
	// collaborators, which is only useful for local development.
	var db *database.PostgresDB
	db, err = database.NewPostgres(ctx, &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   os.Getenv("OTEL_COLLECTOR_ADDR") != "",
	})
	if err != nil {
		appLog.Warn("Database connection failed", zap.Error(err))
		db = nil
	} else {
		defer db.Close()
		appLog.Info("Database connected")
	}

	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      50,
		MinIdleConns:  5,
		DialTimeout:   5 * time.Second,
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Warn("Redis connection failed, request idempotency disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info("Redis connected")
	}

	var cardGateway gateway.CardGateway
	if cfg.Payment.Gateway == "mock" {
		cardGateway = gateway.NewMockGateway()
		appLog.Warn("Using mock card gateway, no real charges will be made")
	} else {
		cardGateway = gateway.NewStripeGateway()
		appLog.Info("Using Stripe card gateway")
	}

	var settingsStore settings.Store
	var customerRepo repository.CustomerRepository
	if db != nil {
		settingsStore = settings.NewPostgresStore(db)
		customerRepo = repository.NewPostgresCustomerRepository(db)
	} else {
		settingsStore = settings.NewMemoryStore()
		customerRepo = repository.NewMemoryCustomerRepository()
		appLog.Warn("Using in-memory settings and customers (data will not persist)")
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:            db,
		Redis:         redisClient,
		Gateway:       cardGateway,
		SettingsStore: settingsStore,
		CustomerRepo:  customerRepo,
		LocaleStore:   locale.NewMemoryStore(),
		ServiceConfig: &service.Config{
			Currency: cfg.Payment.Currency,
			StoreURL: cfg.Payment.StoreURL,
		},
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/capabilities", container.PaymentHandler.Capabilities)

		checkout := v1.Group("/checkout")
		{
			checkout.POST("/fee", container.PaymentHandler.AdditionalFee)
			if redisClient != nil {
				idem := middleware.Idempotency(middleware.DefaultIdempotencyConfig(redisClient.Client()))
				checkout.POST("/charge", idem, container.PaymentHandler.Charge)
			} else {
				checkout.POST("/charge", container.PaymentHandler.Charge)
			}
		}

		payments := v1.Group("/payments")
		{
			if redisClient != nil {
				idem := middleware.Idempotency(middleware.DefaultIdempotencyConfig(redisClient.Client()))
				payments.POST("/refund", idem, container.PaymentHandler.Refund)
			} else {
				payments.POST("/refund", container.PaymentHandler.Refund)
			}
			payments.POST("/:chargeId/capture", container.PaymentHandler.Capture)
			payments.POST("/:chargeId/void", container.PaymentHandler.Void)
		}
	}

	admin := router.Group("/admin/payment-stripe")
	{
		admin.GET("/configure", container.ConfigHandler.GetSettings)
		admin.POST("/configure", container.ConfigHandler.UpdateSettings)
		admin.POST("/install", container.ConfigHandler.Install)
		admin.POST("/uninstall", container.ConfigHandler.Uninstall)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		appLog.Info("Stripe payment service listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
}
