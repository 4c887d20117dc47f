package settings

import (
	"context"
	"sync"

	"github.com/commercekit/payments-stripe/internal/domain"
)

// MemoryStore implements Store in memory. Used in tests and when the service
// runs without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	settings *Settings
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored settings.
func (s *MemoryStore) Load(ctx context.Context) (*Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	copied := *s.settings
	return &copied, nil
}

// Save stores a copy of the given settings.
func (s *MemoryStore) Save(ctx context.Context, settings *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *settings
	s.settings = &copied
	return nil
}

// Delete removes the stored settings.
func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = nil
	return nil
}
