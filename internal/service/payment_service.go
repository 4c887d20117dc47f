package service

import (
	"context"
	"net/url"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/internal/fees"
	"github.com/google/uuid"
)

// TokenFormField is the checkout form field carrying the card token issued by
// the client-side Stripe widget.
const TokenFormField = "stripeToken"

// ProcessPaymentRequest is a validated checkout submission: the order to
// charge and the custom values collected from the payment form.
type ProcessPaymentRequest struct {
	OrderGUID    uuid.UUID
	CustomerID   string
	OrderTotal   float64
	CustomValues map[string]string
}

// ProcessPaymentResult is the outcome of a successful charge.
type ProcessPaymentResult struct {
	NewPaymentStatus  domain.PaymentStatus
	TransactionID     string
	TransactionResult string
}

// RefundPaymentRequest asks for a full or partial refund of a prior charge.
// ChargeID is the transaction reference stored on the order at charge time.
type RefundPaymentRequest struct {
	ChargeID       string
	OrderTotal     float64
	AmountToRefund float64
}

// RefundPaymentResult is the outcome of a refund that the gateway accepted.
// Warnings carries non-fatal notes, such as a refund that has not settled.
type RefundPaymentResult struct {
	NewPaymentStatus domain.PaymentStatus
	IsPartial        bool
	Warnings         []string
}

// Config holds the per-deployment payment settings that are not merchant
// editable: the charge currency and the store URL the admin configuration
// page hangs off.
type Config struct {
	Currency string
	StoreURL string
}

// PaymentService is the payment-lifecycle orchestrator: it turns checkout
// submissions into charges, charges into refunds, and owns the integration's
// install/uninstall bookkeeping.
type PaymentService interface {
	ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error)
	RefundPayment(ctx context.Context, req *RefundPaymentRequest) (*RefundPaymentResult, error)

	// ValidatePaymentForm collects user-facing validation messages for a
	// checkout form submission. An empty slice means the form is valid.
	ValidatePaymentForm(form url.Values) []string

	// GetPaymentInfo extracts the card token from a submitted form into the
	// order's custom values, keyed by the localized token field name.
	GetPaymentInfo(form url.Values) map[string]string

	// AdditionalHandlingFee returns the merchant-configured surcharge for
	// the given cart.
	AdditionalHandlingFee(ctx context.Context, cart []fees.CartItem) (float64, error)

	// Capture, Void and ProcessRecurring exist so callers can distinguish
	// "not built" from "failed": each returns ErrUnsupportedOperation.
	Capture(ctx context.Context, chargeID string) error
	Void(ctx context.Context, chargeID string) error
	ProcessRecurring(ctx context.Context, req *ProcessPaymentRequest) error

	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error

	ConfigurationPageURL() string
	Capabilities() domain.Capabilities
}
