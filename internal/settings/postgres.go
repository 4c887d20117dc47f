package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/pkg/database"
	"github.com/jackc/pgx/v5"
)

// PostgresStore implements Store on a single-row table.
//
//	CREATE TABLE IF NOT EXISTS stripe_settings (
//	    id                           SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
//	    secret_key                   TEXT NOT NULL DEFAULT '',
//	    publishable_key              TEXT NOT NULL DEFAULT '',
//	    additional_fee               NUMERIC(12, 2) NOT NULL DEFAULT 0,
//	    additional_fee_is_percentage BOOLEAN NOT NULL DEFAULT FALSE,
//	    updated_at                   TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	db *database.PostgresDB
}

// NewPostgresStore creates a PostgreSQL-backed settings store.
func NewPostgresStore(db *database.PostgresDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load reads the settings record.
func (s *PostgresStore) Load(ctx context.Context) (*Settings, error) {
	query := `
		SELECT secret_key, publishable_key, additional_fee, additional_fee_is_percentage
		FROM stripe_settings
		WHERE id = 1`

	var settings Settings
	err := s.db.QueryRow(ctx, query).Scan(
		&settings.SecretKey,
		&settings.PublishableKey,
		&settings.AdditionalFee,
		&settings.AdditionalFeeIsPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &settings, nil
}

// Save upserts the settings record.
func (s *PostgresStore) Save(ctx context.Context, settings *Settings) error {
	query := `
		INSERT INTO stripe_settings (id, secret_key, publishable_key, additional_fee, additional_fee_is_percentage, updated_at)
		VALUES (1, $1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			secret_key = EXCLUDED.secret_key,
			publishable_key = EXCLUDED.publishable_key,
			additional_fee = EXCLUDED.additional_fee,
			additional_fee_is_percentage = EXCLUDED.additional_fee_is_percentage,
			updated_at = NOW()`

	err := s.db.Exec(ctx, query,
		settings.SecretKey,
		settings.PublishableKey,
		settings.AdditionalFee,
		settings.AdditionalFeeIsPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// Delete removes the settings record.
func (s *PostgresStore) Delete(ctx context.Context) error {
	if err := s.db.Exec(ctx, `DELETE FROM stripe_settings WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return nil
}
