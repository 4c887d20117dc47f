package fees

import "testing"

func TestAdditionalFee(t *testing.T) {
	calc := NewStandardCalculator()
	cart := []CartItem{
		{UnitPrice: 19.99, Quantity: 2},
		{UnitPrice: 5.00, Quantity: 1},
	}

	tests := []struct {
		name         string
		fee          float64
		isPercentage bool
		want         float64
	}{
		{"zero fee", 0, false, 0},
		{"zero percentage", 0, true, 0},
		{"negative fee", -1, false, 0},
		{"flat fee", 3.50, false, 3.50},
		{"percentage of subtotal", 10, true, 4.50}, // 44.98 * 10% rounded to cents
		{"flat ignores cart", 3.50, false, 3.50},
	}

	for _, tt := range tests {
		if got := calc.AdditionalFee(cart, tt.fee, tt.isPercentage); got != tt.want {
			t.Errorf("%s: AdditionalFee = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAdditionalFeePercentageEmptyCart(t *testing.T) {
	calc := NewStandardCalculator()
	if got := calc.AdditionalFee(nil, 10, true); got != 0 {
		t.Errorf("AdditionalFee on empty cart = %v, want 0", got)
	}
}
