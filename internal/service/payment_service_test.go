package service

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/commercekit/payments-stripe/internal/domain"
	"github.com/commercekit/payments-stripe/internal/fees"
	"github.com/commercekit/payments-stripe/internal/gateway"
	"github.com/commercekit/payments-stripe/internal/locale"
	"github.com/commercekit/payments-stripe/internal/repository"
	"github.com/commercekit/payments-stripe/internal/settings"
	"github.com/google/uuid"
)

type testEnv struct {
	svc       PaymentService
	gw        *gateway.MockGateway
	settings  *settings.MemoryStore
	customers *repository.MemoryCustomerRepository
	locales   *locale.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		gw:        gateway.NewMockGateway(),
		settings:  settings.NewMemoryStore(),
		customers: repository.NewMemoryCustomerRepository(),
		locales:   locale.NewMemoryStore(),
	}
	env.svc = NewPaymentService(
		env.gw, env.settings, env.customers, env.locales,
		fees.NewStandardCalculator(), gateway.NewUUIDKeyIssuer(),
		&Config{Currency: "usd", StoreURL: "https://shop.example.com"},
	)

	if err := env.svc.Install(context.Background()); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if err := env.settings.Save(context.Background(), &settings.Settings{
		SecretKey:      "sk_test_abc",
		PublishableKey: "pk_test_abc",
	}); err != nil {
		t.Fatalf("Save settings failed: %v", err)
	}

	env.customers.Seed(&domain.Customer{
		ID:    "cust-001",
		Email: "ada@example.com",
		ShippingAddress: &domain.Address{
			FirstName:     "Ada",
			LastName:      "Lovelace",
			Line1:         "1 Analytical Way",
			City:          "Portland",
			ZipPostalCode: "97201",
			PhoneNumber:   "555-0100",
			StateProvince: &domain.StateProvince{Abbreviation: "OR"},
			Country:       &domain.Country{ThreeLetterISOCode: "USA"},
		},
	})
	env.customers.Seed(&domain.Customer{ID: "cust-002", Email: "no-shipping@example.com"})

	return env
}

func (e *testEnv) chargeRequest(total float64, token string) *ProcessPaymentRequest {
	customValues := make(map[string]string)
	if token != "" {
		customValues[e.locales.Get(locale.ResourceTokenKey)] = token
	}
	return &ProcessPaymentRequest{
		OrderGUID:    uuid.New(),
		CustomerID:   "cust-001",
		OrderTotal:   total,
		CustomValues: customValues,
	}
}

func TestProcessPaymentSucceeded(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(49.99, "tok_abc"))
	if err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}

	if result.NewPaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("NewPaymentStatus = %q, want paid", result.NewPaymentStatus)
	}
	if result.TransactionID == "" {
		t.Error("TransactionID is empty")
	}
	if result.TransactionResult == "" {
		t.Error("TransactionResult is empty")
	}

	if len(env.gw.ChargeRequests) != 1 {
		t.Fatalf("gateway received %d charge requests, want 1", len(env.gw.ChargeRequests))
	}
	sent := env.gw.ChargeRequests[0]
	if sent.Amount != 4999 {
		t.Errorf("charge amount = %d minor units, want 4999", sent.Amount)
	}
	if sent.Currency != "usd" {
		t.Errorf("charge currency = %q, want usd", sent.Currency)
	}
	if sent.SourceToken != "tok_abc" {
		t.Errorf("charge source token = %q", sent.SourceToken)
	}

	opts := env.gw.ChargeOptions[0]
	if opts.APIKey != "sk_test_abc" {
		t.Errorf("charge api key = %q, want the stored secret key", opts.APIKey)
	}
	if opts.IdempotencyKey == "" {
		t.Error("charge idempotency key is empty")
	}
}

func TestProcessPaymentMapsShippingAddress(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc")); err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}

	shipping := env.gw.ChargeRequests[0].Shipping
	if shipping == nil {
		t.Fatal("charge has no shipping block")
	}
	if shipping.Address.State != "OR" || shipping.Address.Country != "USA" {
		t.Errorf("mapped address = %+v", shipping.Address)
	}
	if shipping.Name != "Ada Lovelace" {
		t.Errorf("shipping name = %q", shipping.Name)
	}
	if shipping.Phone != "555-0100" {
		t.Errorf("shipping phone = %q", shipping.Phone)
	}
}

func TestProcessPaymentNoShippingAddress(t *testing.T) {
	env := newTestEnv(t)

	req := env.chargeRequest(10.00, "tok_abc")
	req.CustomerID = "cust-002"

	if _, err := env.svc.ProcessPayment(context.Background(), req); err != nil {
		t.Fatalf("ProcessPayment returned error: %v", err)
	}
	if env.gw.ChargeRequests[0].Shipping != nil {
		t.Error("charge has a shipping block for a customer without one")
	}
}

func TestProcessPaymentTokenMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, ""))
	if !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("error = %v, want ErrTokenMissing", err)
	}
	if len(env.gw.ChargeRequests) != 0 {
		t.Error("gateway was called despite missing token")
	}
}

func TestProcessPaymentTokenInvalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "card_4242"))
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("error = %v, want ErrTokenInvalid", err)
	}
	if len(env.gw.ChargeRequests) != 0 {
		t.Error("gateway was called despite invalid token")
	}
}

func TestProcessPaymentCustomerNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := env.chargeRequest(10.00, "tok_abc")
	req.CustomerID = "cust-missing"

	_, err := env.svc.ProcessPayment(context.Background(), req)
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("error = %v, want ErrCustomerNotFound", err)
	}
	if len(env.gw.ChargeRequests) != 0 {
		t.Error("gateway was called despite unknown customer")
	}
}

func TestProcessPaymentDeclined(t *testing.T) {
	env := newTestEnv(t)
	env.gw.NextChargeStatus = domain.GatewayStatusFailed
	env.gw.NextFailureMessage = "card_declined"

	_, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc"))

	var declined *domain.ChargeDeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("error = %v, want ChargeDeclinedError", err)
	}
	if declined.Message != "card_declined" {
		t.Errorf("declined message = %q", declined.Message)
	}
}

func TestProcessPaymentPendingIsDeclined(t *testing.T) {
	// Only settled charges mark an order as paid.
	env := newTestEnv(t)
	env.gw.NextChargeStatus = domain.GatewayStatusPending

	_, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc"))

	var declined *domain.ChargeDeclinedError
	if !errors.As(err, &declined) {
		t.Fatalf("error = %v, want ChargeDeclinedError", err)
	}
}

func TestProcessPaymentNotInstalled(t *testing.T) {
	env := newTestEnv(t)
	if err := env.settings.Delete(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc"))
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		t.Fatalf("error = %v, want ErrSettingsNotFound", err)
	}
	if len(env.gw.ChargeRequests) != 0 {
		t.Error("gateway was called without settings")
	}
}

func TestRefundFull(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.RefundPayment(context.Background(), &RefundPaymentRequest{
		ChargeID:       "ch_1",
		OrderTotal:     100.00,
		AmountToRefund: 100.00,
	})
	if err != nil {
		t.Fatalf("RefundPayment returned error: %v", err)
	}

	if result.NewPaymentStatus != domain.PaymentStatusRefunded {
		t.Errorf("NewPaymentStatus = %q, want refunded", result.NewPaymentStatus)
	}
	if result.IsPartial {
		t.Error("full refund reported as partial")
	}

	sent := env.gw.RefundRequests[0]
	if sent.Amount != 10000 {
		t.Errorf("refund amount = %d minor units, want 10000", sent.Amount)
	}
	if sent.Reason != gateway.RefundReasonRequestedByCustomer {
		t.Errorf("refund reason = %q", sent.Reason)
	}
}

func TestRefundPartial(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.svc.RefundPayment(context.Background(), &RefundPaymentRequest{
		ChargeID:       "ch_1",
		OrderTotal:     100.00,
		AmountToRefund: 40.00,
	})
	if err != nil {
		t.Fatalf("RefundPayment returned error: %v", err)
	}

	if result.NewPaymentStatus != domain.PaymentStatusPartiallyRefunded {
		t.Errorf("NewPaymentStatus = %q, want partially_refunded", result.NewPaymentStatus)
	}
	if !result.IsPartial {
		t.Error("partial refund not reported as partial")
	}
	if env.gw.RefundRequests[0].Amount != 4000 {
		t.Errorf("refund amount = %d minor units, want 4000", env.gw.RefundRequests[0].Amount)
	}
}

func TestRefundPending(t *testing.T) {
	env := newTestEnv(t)
	env.gw.NextRefundStatus = domain.GatewayStatusPending

	result, err := env.svc.RefundPayment(context.Background(), &RefundPaymentRequest{
		ChargeID:       "ch_1",
		OrderTotal:     100.00,
		AmountToRefund: 100.00,
	})
	if err != nil {
		t.Fatalf("RefundPayment returned error: %v", err)
	}

	if result.NewPaymentStatus != domain.PaymentStatusPending {
		t.Errorf("NewPaymentStatus = %q, want pending", result.NewPaymentStatus)
	}
	if len(result.Warnings) == 0 {
		t.Error("pending refund carries no warning")
	}
}

func TestRefundFailedStatus(t *testing.T) {
	env := newTestEnv(t)
	env.gw.NextRefundStatus = domain.GatewayStatusFailed

	_, err := env.svc.RefundPayment(context.Background(), &RefundPaymentRequest{
		ChargeID:       "ch_1",
		OrderTotal:     100.00,
		AmountToRefund: 100.00,
	})

	var failed *domain.RefundFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("error = %v, want RefundFailedError", err)
	}
	if failed.Status != domain.GatewayStatusFailed {
		t.Errorf("failed status = %q", failed.Status)
	}
}

func TestRefundRejectsNonChargeID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RefundPayment(context.Background(), &RefundPaymentRequest{
		ChargeID:       "cus_99",
		OrderTotal:     100.00,
		AmountToRefund: 100.00,
	})
	if !errors.Is(err, domain.ErrNotAChargeID) {
		t.Fatalf("error = %v, want ErrNotAChargeID", err)
	}
	if len(env.gw.RefundRequests) != 0 {
		t.Error("gateway was called with a non-charge reference")
	}
}

func TestIdempotencyKeysAreFreshPerCall(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		if _, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc")); err != nil {
			t.Fatalf("ProcessPayment returned error: %v", err)
		}
	}

	k1, k2 := env.gw.ChargeOptions[0].IdempotencyKey, env.gw.ChargeOptions[1].IdempotencyKey
	if k1 == "" || k2 == "" || k1 == k2 {
		t.Errorf("idempotency keys not fresh per call: %q, %q", k1, k2)
	}
}

func TestSettingsAreReadFreshPerCall(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc")); err != nil {
		t.Fatal(err)
	}

	if err := env.settings.Save(context.Background(), &settings.Settings{SecretKey: "sk_test_rotated"}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.ProcessPayment(context.Background(), env.chargeRequest(10.00, "tok_abc")); err != nil {
		t.Fatal(err)
	}

	if env.gw.ChargeOptions[1].APIKey != "sk_test_rotated" {
		t.Errorf("second charge used key %q, want the rotated key", env.gw.ChargeOptions[1].APIKey)
	}
}

func TestValidatePaymentForm(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		form      url.Values
		wantCount int
	}{
		{"valid token", url.Values{TokenFormField: {"tok_abc"}}, 0},
		{"missing token", url.Values{}, 1},
		{"invalid token", url.Values{TokenFormField: {"4242424242424242"}}, 1},
	}

	for _, tt := range tests {
		if got := env.svc.ValidatePaymentForm(tt.form); len(got) != tt.wantCount {
			t.Errorf("%s: got %d messages %v, want %d", tt.name, len(got), got, tt.wantCount)
		}
	}
}

func TestGetPaymentInfo(t *testing.T) {
	env := newTestEnv(t)

	customValues := env.svc.GetPaymentInfo(url.Values{TokenFormField: {"tok_abc"}})
	if customValues[env.locales.Get(locale.ResourceTokenKey)] != "tok_abc" {
		t.Errorf("custom values = %v, token not filed under the localized key", customValues)
	}

	if got := env.svc.GetPaymentInfo(url.Values{}); len(got) != 0 {
		t.Errorf("custom values for empty form = %v, want none", got)
	}
}

func TestAdditionalHandlingFee(t *testing.T) {
	env := newTestEnv(t)
	cart := []fees.CartItem{{UnitPrice: 50.00, Quantity: 2}}

	if err := env.settings.Save(context.Background(), &settings.Settings{AdditionalFee: 2.50}); err != nil {
		t.Fatal(err)
	}
	fee, err := env.svc.AdditionalHandlingFee(context.Background(), cart)
	if err != nil {
		t.Fatal(err)
	}
	if fee != 2.50 {
		t.Errorf("flat fee = %v, want 2.50", fee)
	}

	if err := env.settings.Save(context.Background(), &settings.Settings{AdditionalFee: 10, AdditionalFeeIsPercentage: true}); err != nil {
		t.Fatal(err)
	}
	fee, err = env.svc.AdditionalHandlingFee(context.Background(), cart)
	if err != nil {
		t.Fatal(err)
	}
	if fee != 10.00 {
		t.Errorf("percentage fee = %v, want 10.00", fee)
	}
}

func TestUnsupportedOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.svc.Capture(ctx, "ch_1"); !errors.Is(err, domain.ErrUnsupportedOperation) {
		t.Errorf("Capture error = %v, want ErrUnsupportedOperation", err)
	}
	if err := env.svc.Void(ctx, "ch_1"); !errors.Is(err, domain.ErrUnsupportedOperation) {
		t.Errorf("Void error = %v, want ErrUnsupportedOperation", err)
	}
	if err := env.svc.ProcessRecurring(ctx, env.chargeRequest(10.00, "tok_abc")); !errors.Is(err, domain.ErrUnsupportedOperation) {
		t.Errorf("ProcessRecurring error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestInstallUninstall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Install ran in newTestEnv; uninstall removes the record and resources.
	if err := env.svc.Uninstall(ctx); err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}
	if _, err := env.settings.Load(ctx); !errors.Is(err, domain.ErrSettingsNotFound) {
		t.Errorf("settings still present after uninstall: %v", err)
	}
	if got := env.locales.Get(locale.ResourceTokenKey); got != locale.ResourceTokenKey {
		t.Errorf("token key resource still registered after uninstall: %q", got)
	}

	if err := env.svc.Install(ctx); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	loaded, err := env.settings.Load(ctx)
	if err != nil {
		t.Fatalf("settings missing after install: %v", err)
	}
	if loaded.AdditionalFee != 0 || loaded.AdditionalFeeIsPercentage {
		t.Errorf("installed defaults = %+v", loaded)
	}
	if got := env.locales.Get(locale.ResourceTokenKey); got != "Stripe Token" {
		t.Errorf("token key resource = %q after install", got)
	}
}

func TestConfigurationPageURL(t *testing.T) {
	env := newTestEnv(t)
	want := "https://shop.example.com/admin/payment-stripe/configure"
	if got := env.svc.ConfigurationPageURL(); got != want {
		t.Errorf("ConfigurationPageURL() = %q, want %q", got, want)
	}
}

func TestCapabilities(t *testing.T) {
	env := newTestEnv(t)
	caps := env.svc.Capabilities()

	if caps.Capture || caps.Void || caps.Recurring {
		t.Errorf("unsupported operations reported as supported: %+v", caps)
	}
	if !caps.Refund || !caps.PartialRefund {
		t.Errorf("refund support missing: %+v", caps)
	}
}
