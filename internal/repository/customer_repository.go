package repository

import (
	"context"

	"github.com/commercekit/payments-stripe/internal/domain"
)

// CustomerRepository resolves customers from the order system, including the
// shipping address with its denormalized state/country references.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
