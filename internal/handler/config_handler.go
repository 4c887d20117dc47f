package handler

import (
	"errors"
	"strings"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/internal/dto"
	"github.com/commercekit/payments-stripe/internal/service"
	"github.com/commercekit/payments-stripe/internal/settings"
	"github.com/commercekit/payments-stripe/pkg/response"
	"github.com/gin-gonic/gin"
)

// ConfigHandler handles the admin configuration round trip and the
// install/uninstall lifecycle.
type ConfigHandler struct {
	settings       settings.Store
	paymentService service.PaymentService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(store settings.Store, paymentService service.PaymentService) *ConfigHandler {
	return &ConfigHandler{settings: store, paymentService: paymentService}
}

// GetSettings handles GET /admin/payment-stripe/configure.
func (h *ConfigHandler) GetSettings(c *gin.Context) {
	cfg, err := h.settings.Load(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			response.NotFound(c, "stripe integration is not installed")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{
		"settings": dto.SettingsModel{
			SecretKey:                 cfg.SecretKey,
			PublishableKey:            cfg.PublishableKey,
			AdditionalFee:             cfg.AdditionalFee,
			AdditionalFeeIsPercentage: cfg.AdditionalFeeIsPercentage,
		},
		"configuration_page_url": h.paymentService.ConfigurationPageURL(),
	})
}

// UpdateSettings handles POST /admin/payment-stripe/configure.
func (h *ConfigHandler) UpdateSettings(c *gin.Context) {
	var model dto.SettingsModel
	if err := c.ShouldBindJSON(&model); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if model.SecretKey != "" && !strings.HasPrefix(model.SecretKey, "sk_") {
		response.BadRequest(c, "secret key must start with sk_")
		return
	}
	if model.PublishableKey != "" && !strings.HasPrefix(model.PublishableKey, "pk_") {
		response.BadRequest(c, "publishable key must start with pk_")
		return
	}

	err := h.settings.Save(c.Request.Context(), &settings.Settings{
		SecretKey:                 model.SecretKey,
		PublishableKey:            model.PublishableKey,
		AdditionalFee:             model.AdditionalFee,
		AdditionalFeeIsPercentage: model.AdditionalFeeIsPercentage,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, model)
}

// Install handles POST /admin/payment-stripe/install.
func (h *ConfigHandler) Install(c *gin.Context) {
	if err := h.paymentService.Install(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"installed": true})
}

// Uninstall handles POST /admin/payment-stripe/uninstall.
func (h *ConfigHandler) Uninstall(c *gin.Context) {
	if err := h.paymentService.Uninstall(c.Request.Context()); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"uninstalled": true})
}
