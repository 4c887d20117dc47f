package gateway

import (
	"context"
	"fmt"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/commercekit/payments-stripe/internal/gateway"

// StripeGateway implements CardGateway against the Stripe API. A fresh API
// client is built per call from the RequestOptions, so the secret key is
// never cached between requests.
type StripeGateway struct {
	tracer trace.Tracer
}

// NewStripeGateway creates a new Stripe gateway.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{
		tracer: otel.Tracer(tracerName),
	}
}

func (g *StripeGateway) api(opts RequestOptions) (*client.API, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("stripe secret key is required")
	}
	sc := &client.API{}
	sc.Init(opts.APIKey, nil)
	return sc, nil
}

// CreateCharge submits one charge to Stripe and returns the raw outcome.
func (g *StripeGateway) CreateCharge(ctx context.Context, req *ChargeRequest, opts RequestOptions) (*ChargeResult, error) {
	if req == nil {
		return nil, fmt.Errorf("charge request is required")
	}

	ctx, span := g.tracer.Start(ctx, "stripe.charge.create",
		trace.WithAttributes(
			attribute.Int64("payment.amount_minor_units", req.Amount),
			attribute.String("payment.currency", req.Currency),
		))
	defer span.End()

	sc, err := g.api(opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
		Source:      &stripe.PaymentSourceSourceParams{Token: stripe.String(req.SourceToken)},
	}
	params.Context = ctx
	params.SetIdempotencyKey(opts.IdempotencyKey)

	if req.Shipping != nil {
		params.Shipping = &stripe.ShippingDetailsParams{
			Address: &stripe.AddressParams{
				Line1:      stripe.String(req.Shipping.Address.Line1),
				City:       stripe.String(req.Shipping.Address.City),
				State:      stripe.String(req.Shipping.Address.State),
				PostalCode: stripe.String(req.Shipping.Address.PostalCode),
				Country:    stripe.String(req.Shipping.Address.Country),
			},
			Name:  stripe.String(req.Shipping.Name),
			Phone: stripe.String(req.Shipping.Phone),
		}
	}

	ch, err := sc.Charges.New(params)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}

	span.SetAttributes(attribute.String("stripe.charge_status", string(ch.Status)))

	return &ChargeResult{
		ChargeID:          ch.ID,
		Status:            domain.GatewayStatus(ch.Status),
		FailureMessage:    ch.FailureMessage,
		SourceDescription: sourceDescription(ch),
	}, nil
}

// CreateRefund submits one refund to Stripe and returns the raw outcome.
func (g *StripeGateway) CreateRefund(ctx context.Context, req *RefundRequest, opts RequestOptions) (*RefundResult, error) {
	if req == nil {
		return nil, fmt.Errorf("refund request is required")
	}

	ctx, span := g.tracer.Start(ctx, "stripe.refund.create",
		trace.WithAttributes(
			attribute.Int64("payment.amount_minor_units", req.Amount),
		))
	defer span.End()

	sc, err := g.api(opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	params := &stripe.RefundParams{
		Charge: stripe.String(req.ChargeID),
		Amount: stripe.Int64(req.Amount),
		Reason: stripe.String(string(req.Reason)),
	}
	params.Context = ctx
	params.SetIdempotencyKey(opts.IdempotencyKey)

	rf, err := sc.Refunds.New(params)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	span.SetAttributes(attribute.String("stripe.refund_status", string(rf.Status)))

	return &RefundResult{Status: domain.GatewayStatus(rf.Status)}, nil
}

// sourceDescription names the funding source object of a charge for the
// human-readable transaction note, e.g. "card".
func sourceDescription(ch *stripe.Charge) string {
	if ch.Source == nil || ch.Source.Type == "" {
		return "card"
	}
	return string(ch.Source.Type)
}
