package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenMissing means the checkout form did not carry a card token.
	ErrTokenMissing = errors.New("card token not received")

	// ErrTokenInvalid means a value was submitted as a card token but fails
	// the structural check.
	ErrTokenInvalid = errors.New("card token is not a valid payment token")

	// ErrCustomerNotFound means the customer identifier did not resolve.
	ErrCustomerNotFound = errors.New("customer cannot be loaded")

	// ErrIncompleteAddress means an address is missing its resolved
	// state/province or country reference.
	ErrIncompleteAddress = errors.New("address is missing state or country")

	// ErrNotAChargeID means a refund was requested against a reference that
	// is not a gateway charge id.
	ErrNotAChargeID = errors.New("not a charge id, refund cancelled")

	// ErrUnsupportedOperation is returned for capture, void and recurring
	// billing, which this integration does not implement.
	ErrUnsupportedOperation = errors.New("operation not supported by the stripe integration")

	// ErrSettingsNotFound means no settings record exists; the integration
	// has not been installed or was uninstalled.
	ErrSettingsNotFound = errors.New("payment settings not found")
)

// ChargeDeclinedError is returned when the gateway answers a charge with any
// terminal status other than succeeded.
type ChargeDeclinedError struct {
	Message string
}

func (e *ChargeDeclinedError) Error() string {
	return fmt.Sprintf("charge error: %s", e.Message)
}

// RefundFailedError is returned when the gateway answers a refund with a
// status that is neither succeeded nor pending.
type RefundFailedError struct {
	Status GatewayStatus
}

func (e *RefundFailedError) Error() string {
	return fmt.Sprintf("refund returned a status of %s", e.Status)
}
