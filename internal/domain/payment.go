package domain

// PaymentStatus represents the order payment status driven by this service.
// The surrounding order system owns the stored value; this service only
// reports the new status after a charge or refund settles.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentStatusRefunded          PaymentStatus = "refunded"
)

// GatewayStatus is the status string Stripe reports on charge and refund
// objects. Values outside the known set are carried through verbatim so the
// caller can surface them; every switch over this type needs a default arm.
type GatewayStatus string

const (
	GatewayStatusSucceeded GatewayStatus = "succeeded"
	GatewayStatusPending   GatewayStatus = "pending"
	GatewayStatusFailed    GatewayStatus = "failed"
)

// Capabilities describes which payment operations this integration supports.
// Capture, void and recurring billing are deliberately unsupported.
type Capabilities struct {
	Capture       bool `json:"capture"`
	Refund        bool `json:"refund"`
	PartialRefund bool `json:"partial_refund"`
	Void          bool `json:"void"`
	Recurring     bool `json:"recurring"`
}

// SupportedCapabilities returns the capability set of the Stripe integration.
func SupportedCapabilities() Capabilities {
	return Capabilities{
		Capture:       false,
		Refund:        true,
		PartialRefund: true,
		Void:          false,
		Recurring:     false,
	}
}
