// Package settings owns the merchant-level Stripe configuration record:
// API keys and the optional checkout surcharge. The record is written with
// defaults at install time, edited through the admin configure page and
// deleted at uninstall. Orchestration code loads it fresh per request and
// never caches it.
package settings

import "context"

// Settings is the configuration record for the Stripe integration.
type Settings struct {
	SecretKey                 string  `json:"secret_key"`
	PublishableKey            string  `json:"publishable_key"`
	AdditionalFee             float64 `json:"additional_fee"`
	AdditionalFeeIsPercentage bool    `json:"additional_fee_is_percentage"`
}

// Defaults returns the settings record written at install time.
func Defaults() *Settings {
	return &Settings{
		AdditionalFee:             0,
		AdditionalFeeIsPercentage: false,
	}
}

// Store persists the settings record.
type Store interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
	Delete(ctx context.Context) error
}
