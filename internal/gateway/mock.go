package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/commercekit/payments-stripe/internal/domain"
)

// MockGateway implements CardGateway in memory. Used in tests and as the
// local-development gateway when no Stripe key is configured.
//
// By default every charge succeeds with a generated charge id and every
// refund succeeds. Tests script failures by setting the Next* fields.
type MockGateway struct {
	mu sync.Mutex

	// Scripted outcome for the next charge. Zero values mean success.
	NextChargeStatus   domain.GatewayStatus
	NextFailureMessage string

	// Scripted outcome for the next refund. Zero value means success.
	NextRefundStatus domain.GatewayStatus

	// Err is returned verbatim from both calls when set, simulating a
	// transport failure before any gateway decision.
	Err error

	chargeSeq int

	// Recorded requests, in order, with the options they were sent with.
	ChargeRequests []*ChargeRequest
	ChargeOptions  []RequestOptions
	RefundRequests []*RefundRequest
	RefundOptions  []RequestOptions
}

// NewMockGateway creates a mock gateway where everything succeeds.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// CreateCharge records the request and returns the scripted outcome.
func (g *MockGateway) CreateCharge(ctx context.Context, req *ChargeRequest, opts RequestOptions) (*ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}

	g.ChargeRequests = append(g.ChargeRequests, req)
	g.ChargeOptions = append(g.ChargeOptions, opts)
	g.chargeSeq++

	status := g.NextChargeStatus
	if status == "" {
		status = domain.GatewayStatusSucceeded
	}

	return &ChargeResult{
		ChargeID:          fmt.Sprintf("%smock_%d", domain.ChargeIDPrefix, g.chargeSeq),
		Status:            status,
		FailureMessage:    g.NextFailureMessage,
		SourceDescription: "card",
	}, nil
}

// CreateRefund records the request and returns the scripted outcome.
func (g *MockGateway) CreateRefund(ctx context.Context, req *RefundRequest, opts RequestOptions) (*RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}

	g.RefundRequests = append(g.RefundRequests, req)
	g.RefundOptions = append(g.RefundOptions, opts)

	status := g.NextRefundStatus
	if status == "" {
		status = domain.GatewayStatusSucceeded
	}

	return &RefundResult{Status: status}, nil
}
