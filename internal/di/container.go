package di

import (
	"github.com/commercekit/payments-stripe/internal/fees"
	"github.com/commercekit/payments-stripe/internal/gateway"
	"github.com/commercekit/payments-stripe/internal/handler"
	"github.com/commercekit/payments-stripe/internal/locale"
	"github.com/commercekit/payments-stripe/internal/repository"
	"github.com/commercekit/payments-stripe/internal/service"
	"github.com/commercekit/payments-stripe/internal/settings"
	"github.com/commercekit/payments-stripe/pkg/database"
	"github.com/commercekit/payments-stripe/pkg/redis"
)

// Container holds all dependencies for the payment service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Collaborators
	Gateway       gateway.CardGateway
	SettingsStore settings.Store
	CustomerRepo  repository.CustomerRepository
	LocaleStore   locale.Store
	FeeCalculator fees.Calculator

	// Services
	PaymentService service.PaymentService

	// Handlers
	HealthHandler  *handler.HealthHandler
	PaymentHandler *handler.PaymentHandler
	ConfigHandler  *handler.ConfigHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB            *database.PostgresDB
	Redis         *redis.Client
	Gateway       gateway.CardGateway
	SettingsStore settings.Store
	CustomerRepo  repository.CustomerRepository
	LocaleStore   locale.Store
	ServiceConfig *service.Config
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:            cfg.DB,
		Redis:         cfg.Redis,
		Gateway:       cfg.Gateway,
		SettingsStore: cfg.SettingsStore,
		CustomerRepo:  cfg.CustomerRepo,
		LocaleStore:   cfg.LocaleStore,
		FeeCalculator: fees.NewStandardCalculator(),
	}

	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)

	c.PaymentService = service.NewPaymentService(
		c.Gateway,
		c.SettingsStore,
		c.CustomerRepo,
		c.LocaleStore,
		c.FeeCalculator,
		gateway.NewUUIDKeyIssuer(),
		cfg.ServiceConfig,
	)
	c.PaymentHandler = handler.NewPaymentHandler(c.PaymentService)
	c.ConfigHandler = handler.NewConfigHandler(c.SettingsStore, c.PaymentService)

	return c
}
