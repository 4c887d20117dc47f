package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/internal/fees"
	"github.com/commercekit/payments-stripe/internal/gateway"
	"github.com/commercekit/payments-stripe/internal/locale"
	"github.com/commercekit/payments-stripe/internal/repository"
	"github.com/commercekit/payments-stripe/internal/settings"
	"github.com/commercekit/payments-stripe/pkg/logger"
	"go.uber.org/zap"
)

// paymentNote formats the description sent with each charge. The argument is
// the order GUID.
const paymentNote = "storefront order %s"

// paymentServiceImpl implements PaymentService. It holds no mutable state
// between calls: settings are loaded fresh from the store per request.
type paymentServiceImpl struct {
	gateway   gateway.CardGateway
	settings  settings.Store
	customers repository.CustomerRepository
	locales   locale.Store
	fees      fees.Calculator
	keys      gateway.KeyIssuer
	config    *Config
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	gw gateway.CardGateway,
	settingsStore settings.Store,
	customers repository.CustomerRepository,
	locales locale.Store,
	feeCalc fees.Calculator,
	keys gateway.KeyIssuer,
	config *Config,
) PaymentService {
	if config == nil {
		config = &Config{Currency: "usd"}
	}
	if keys == nil {
		keys = gateway.NewUUIDKeyIssuer()
	}

	return &paymentServiceImpl{
		gateway:   gw,
		settings:  settingsStore,
		customers: customers,
		locales:   locales,
		fees:      feeCalc,
		keys:      keys,
		config:    config,
	}
}

// requestOptions loads the secret key fresh from the settings store and mints
// a new idempotency key for one outbound mutating call.
func (s *paymentServiceImpl) requestOptions(ctx context.Context) (gateway.RequestOptions, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return gateway.RequestOptions{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return gateway.RequestOptions{
		APIKey:         cfg.SecretKey,
		IdempotencyKey: s.keys.NewKey(),
	}, nil
}

// ProcessPayment converts a validated checkout submission into a settled or
// failed charge. Exactly one mutating remote call is made per invocation.
func (s *paymentServiceImpl) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*ProcessPaymentResult, error) {
	tokenKey := s.locales.Get(locale.ResourceTokenKey)
	token, ok := req.CustomValues[tokenKey]
	if !ok || token == "" {
		return nil, domain.ErrTokenMissing
	}
	if !domain.IsPaymentToken(token) {
		return nil, domain.ErrTokenInvalid
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	chargeReq := &gateway.ChargeRequest{
		Amount:      domain.ToMinorUnits(req.OrderTotal),
		Currency:    s.config.Currency,
		Description: fmt.Sprintf(paymentNote, req.OrderGUID),
		SourceToken: token,
	}

	if customer.ShippingAddress != nil {
		mapped, err := domain.MapAddress(customer.ShippingAddress)
		if err != nil {
			return nil, err
		}
		chargeReq.Shipping = &gateway.ShippingDetails{
			Address: *mapped,
			Name:    customer.ShippingAddress.FullName(),
			Phone:   customer.ShippingAddress.PhoneNumber,
		}
	}

	opts, err := s.requestOptions(ctx)
	if err != nil {
		return nil, err
	}

	charge, err := s.gateway.CreateCharge(ctx, chargeReq, opts)
	if err != nil {
		return nil, err
	}

	switch charge.Status {
	case domain.GatewayStatusSucceeded:
		logger.L().Info("charge succeeded",
			zap.String("order_guid", req.OrderGUID.String()),
			zap.String("charge_id", charge.ChargeID))
		return &ProcessPaymentResult{
			NewPaymentStatus: domain.PaymentStatusPaid,
			TransactionID:    charge.ChargeID,
			TransactionResult: fmt.Sprintf("Transaction was processed by using %s. Status is %s",
				charge.SourceDescription, charge.Status),
		}, nil
	default:
		// Anything else, including "pending", is treated as a declined
		// charge: only settled charges mark an order as paid.
		logger.L().Warn("charge declined",
			zap.String("order_guid", req.OrderGUID.String()),
			zap.String("gateway_status", string(charge.Status)),
			zap.String("failure_message", charge.FailureMessage))
		return nil, &domain.ChargeDeclinedError{Message: charge.FailureMessage}
	}
}

// RefundPayment requests a full or partial refund against a prior charge.
func (s *paymentServiceImpl) RefundPayment(ctx context.Context, req *RefundPaymentRequest) (*RefundPaymentResult, error) {
	if !domain.IsChargeID(req.ChargeID) {
		return nil, fmt.Errorf("refund error: %q: %w", req.ChargeID, domain.ErrNotAChargeID)
	}

	remaining := req.OrderTotal - req.AmountToRefund
	isPartial := remaining > 0

	opts, err := s.requestOptions(ctx)
	if err != nil {
		return nil, err
	}

	refund, err := s.gateway.CreateRefund(ctx, &gateway.RefundRequest{
		ChargeID: req.ChargeID,
		Amount:   domain.ToMinorUnits(req.AmountToRefund),
		Reason:   gateway.RefundReasonRequestedByCustomer,
	}, opts)
	if err != nil {
		return nil, err
	}

	switch refund.Status {
	case domain.GatewayStatusSucceeded:
		status := domain.PaymentStatusRefunded
		if isPartial {
			status = domain.PaymentStatusPartiallyRefunded
		}
		logger.L().Info("refund succeeded",
			zap.String("charge_id", req.ChargeID),
			zap.Bool("partial", isPartial))
		return &RefundPaymentResult{
			NewPaymentStatus: status,
			IsPartial:        isPartial,
		}, nil
	case domain.GatewayStatusPending:
		logger.L().Warn("refund pending", zap.String("charge_id", req.ChargeID))
		return &RefundPaymentResult{
			NewPaymentStatus: domain.PaymentStatusPending,
			IsPartial:        isPartial,
			Warnings:         []string{"refund accepted but has not settled yet"},
		}, nil
	default:
		return nil, &domain.RefundFailedError{Status: refund.Status}
	}
}

// ValidatePaymentForm collects user-facing validation messages. These are
// shown inline at checkout, not raised as errors.
func (s *paymentServiceImpl) ValidatePaymentForm(form url.Values) []string {
	var errors []string

	token := form.Get(TokenFormField)
	if !domain.IsPaymentToken(token) {
		errors = append(errors, "Token was not supplied or invalid")
	}

	return errors
}

// GetPaymentInfo files the submitted card token into the order's custom
// values under the localized token field name.
func (s *paymentServiceImpl) GetPaymentInfo(form url.Values) map[string]string {
	customValues := make(map[string]string)

	if token := form.Get(TokenFormField); token != "" {
		customValues[s.locales.Get(locale.ResourceTokenKey)] = token
	}

	return customValues
}

// AdditionalHandlingFee delegates to the fee calculator with the merchant's
// configured fee.
func (s *paymentServiceImpl) AdditionalHandlingFee(ctx context.Context, cart []fees.CartItem) (float64, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}
	return s.fees.AdditionalFee(cart, cfg.AdditionalFee, cfg.AdditionalFeeIsPercentage), nil
}

// Capture is not supported: charges are captured immediately.
func (s *paymentServiceImpl) Capture(ctx context.Context, chargeID string) error {
	return domain.ErrUnsupportedOperation
}

// Void is not supported.
func (s *paymentServiceImpl) Void(ctx context.Context, chargeID string) error {
	return domain.ErrUnsupportedOperation
}

// ProcessRecurring is not supported.
func (s *paymentServiceImpl) ProcessRecurring(ctx context.Context, req *ProcessPaymentRequest) error {
	return domain.ErrUnsupportedOperation
}

// ConfigurationPageURL returns the admin route for editing settings.
func (s *paymentServiceImpl) ConfigurationPageURL() string {
	return s.config.StoreURL + "/admin/payment-stripe/configure"
}

// Capabilities reports which payment operations the integration supports.
func (s *paymentServiceImpl) Capabilities() domain.Capabilities {
	return domain.SupportedCapabilities()
}
