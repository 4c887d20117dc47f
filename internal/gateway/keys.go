package gateway

import "github.com/google/uuid"

// KeyIssuer mints idempotency keys for outbound mutating gateway calls.
//
// Every call mints a fresh key, so the key only protects against
// network-level retries of the identical request. It does not deduplicate a
// user double-submitting the same logical charge; deriving the key from the
// order id and attempt number would close that gap.
type KeyIssuer interface {
	NewKey() string
}

// UUIDKeyIssuer issues random UUIDs as idempotency keys.
type UUIDKeyIssuer struct{}

// NewUUIDKeyIssuer creates a UUID-backed key issuer.
func NewUUIDKeyIssuer() *UUIDKeyIssuer {
	return &UUIDKeyIssuer{}
}

// NewKey returns a freshly generated, globally unique key.
func (i *UUIDKeyIssuer) NewKey() string {
	return uuid.New().String()
}
