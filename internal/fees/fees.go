// Package fees computes the merchant-configured checkout surcharge.
package fees

import "github.com/commercekit/payments-stripe/internal/domain"

// CartItem is the slice of a shopping cart line this package needs.
type CartItem struct {
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Calculator is the fee-computation collaborator. The gateway-facing order
// total must reflect the fee before charge construction.
type Calculator interface {
	AdditionalFee(cart []CartItem, fee float64, isPercentage bool) float64
}

// StandardCalculator applies the fee as a flat amount or as a percentage of
// the cart subtotal, rounded to whole cents.
type StandardCalculator struct{}

// NewStandardCalculator creates the default fee calculator.
func NewStandardCalculator() *StandardCalculator {
	return &StandardCalculator{}
}

// AdditionalFee returns the surcharge for the given cart.
func (c *StandardCalculator) AdditionalFee(cart []CartItem, fee float64, isPercentage bool) float64 {
	if fee <= 0 {
		return 0
	}
	if !isPercentage {
		return fee
	}

	var subtotal float64
	for _, item := range cart {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return domain.FromMinorUnits(domain.ToMinorUnits(subtotal * fee / 100))
}
