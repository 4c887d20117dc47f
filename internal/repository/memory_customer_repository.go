package repository

import (
	"context"
	"sync"

	"github.com/commercekit/payments-stripe/internal/domain"
)

// MemoryCustomerRepository implements CustomerRepository in memory. Used in
// tests and when the service runs without a database.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

// NewMemoryCustomerRepository creates an empty in-memory customer repository.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// Seed adds a customer.
func (r *MemoryCustomerRepository) Seed(customer *domain.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = customer
}

// GetByID retrieves a customer by its identifier.
func (r *MemoryCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}
