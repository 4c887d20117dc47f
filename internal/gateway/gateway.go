package gateway

import (
	"context"

	"github.com/commercekit/payments-stripe/internal/domain"
)

// RefundReason is the reason code sent with a refund.
type RefundReason string

const (
	RefundReasonRequestedByCustomer RefundReason = "requested_by_customer"
)

// RequestOptions carries the per-call credentials and idempotency key for one
// outbound mutating request. The secret key is read fresh from the settings
// store for every call; nothing is cached here.
type RequestOptions struct {
	APIKey         string
	IdempotencyKey string
}

// ShippingDetails is the shipping block attached to a charge when the
// customer has a shipping address on file.
type ShippingDetails struct {
	Address domain.MappedAddress
	Name    string
	Phone   string
}

// ChargeRequest describes a single charge attempt. Amount is in minor
// currency units. Immutable once constructed, one-to-one with one attempt.
type ChargeRequest struct {
	Amount      int64
	Currency    string
	Description string
	SourceToken string
	Shipping    *ShippingDetails
}

// ChargeResult is the gateway's answer to a charge attempt. Produced exactly
// once per successful round trip; interpretation into a payment status
// happens in the service layer.
type ChargeResult struct {
	ChargeID          string
	Status            domain.GatewayStatus
	FailureMessage    string
	SourceDescription string
}

// RefundRequest describes a full or partial refund of a prior charge. Amount
// is in minor currency units.
type RefundRequest struct {
	ChargeID string
	Amount   int64
	Reason   RefundReason
}

// RefundResult is the gateway's answer to a refund attempt.
type RefundResult struct {
	Status domain.GatewayStatus
}

// CardGateway is the remote card-payment gateway. Each method performs
// exactly one mutating remote call, authenticated and deduplicated via the
// supplied RequestOptions.
type CardGateway interface {
	CreateCharge(ctx context.Context, req *ChargeRequest, opts RequestOptions) (*ChargeResult, error)
	CreateRefund(ctx context.Context, req *RefundRequest, opts RequestOptions) (*RefundResult, error)
}
