// Package locale manages the admin-facing resource strings the integration
// registers at install time. The charge flow also reads one resource: the
// display name under which the card token is filed into an order's custom
// values.
package locale

import "sync"

// Resource names registered by this integration.
const (
	ResourceSecretKey                = "payments.stripe.fields.secret_key"
	ResourcePublishableKey           = "payments.stripe.fields.publishable_key"
	ResourceAdditionalFee            = "payments.stripe.fields.additional_fee"
	ResourceAdditionalFeeHint        = "payments.stripe.fields.additional_fee.hint"
	ResourceAdditionalFeePct         = "payments.stripe.fields.additional_fee_percentage"
	ResourceAdditionalFeePctHint     = "payments.stripe.fields.additional_fee_percentage.hint"
	ResourceTokenKey                 = "payments.stripe.fields.token.key"
	ResourcePaymentMethodDescription = "payments.stripe.description"
)

// Store is the localization/resource collaborator.
type Store interface {
	Get(name string) string
	AddOrUpdate(name, value string)
	Delete(name string)
}

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	resources map[string]string
}

// NewMemoryStore creates an empty in-memory resource store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{resources: make(map[string]string)}
}

// Get returns the resource value, or the resource name itself when no value
// is registered, so lookups stay usable before install.
func (s *MemoryStore) Get(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.resources[name]; ok {
		return value
	}
	return name
}

// AddOrUpdate registers a resource value.
func (s *MemoryStore) AddOrUpdate(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[name] = value
}

// Delete removes a resource.
func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resources, name)
}
