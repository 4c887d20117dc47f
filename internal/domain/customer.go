package domain

// Customer is the slice of the order system's customer record this service
// needs: an identity and an optional shipping address with denormalized
// state/country references.
type Customer struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
}
