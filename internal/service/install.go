package service

import (
	"context"
	"fmt"

	"github.com/commercekit/payments-stripe/internal/locale"
	"github.com/commercekit/payments-stripe/internal/settings"
	"github.com/commercekit/payments-stripe/pkg/logger"
)

// installResources are the admin-facing strings registered at install time.
// The token key resource doubles as the name under which the card token is
// filed into an order's custom values.
var installResources = map[string]string{
	locale.ResourceSecretKey:                "Secret key, live or test (starts with sk_)",
	locale.ResourcePublishableKey:           "Publishable key, live or test (starts with pk_)",
	locale.ResourceAdditionalFee:            "Additional fee",
	locale.ResourceAdditionalFeeHint:        "Enter additional fee to charge your customers.",
	locale.ResourceAdditionalFeePct:         "Additional fee. Use percentage",
	locale.ResourceAdditionalFeePctHint:     "Apply a percentage additional fee to the order total. If not enabled, a fixed value is used.",
	locale.ResourceTokenKey:                 "Stripe Token",
	locale.ResourcePaymentMethodDescription: "Pay by credit or debit card",
}

// Install writes default settings and registers the locale resources.
func (s *paymentServiceImpl) Install(ctx context.Context) error {
	if err := s.settings.Save(ctx, settings.Defaults()); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}

	for name, value := range installResources {
		s.locales.AddOrUpdate(name, value)
	}

	logger.L().Info("stripe payment integration installed")
	return nil
}

// Uninstall deletes the settings record and the registered resources.
func (s *paymentServiceImpl) Uninstall(ctx context.Context) error {
	if err := s.settings.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	for name := range installResources {
		s.locales.Delete(name)
	}

	logger.L().Info("stripe payment integration uninstalled")
	return nil
}
