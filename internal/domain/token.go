package domain

import "strings"

const (
	// PaymentTokenPrefix is the prefix Stripe puts on single-use card tokens
	// issued by the client-side widget.
	PaymentTokenPrefix = "tok_"

	// ChargeIDPrefix is the prefix Stripe puts on charge identifiers.
	ChargeIDPrefix = "ch_"
)

// IsPaymentToken performs a shallow structural check on a value before it is
// ever sent to the gateway as a charge source.
func IsPaymentToken(value string) bool {
	return value != "" && strings.HasPrefix(value, PaymentTokenPrefix)
}

// IsChargeID performs a shallow structural check on a value before it is ever
// sent to the gateway as a refund target.
func IsChargeID(value string) bool {
	return strings.HasPrefix(value, ChargeIDPrefix)
}
