package domain

import "testing"

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{49.99, 4999},
		{100.00, 10000},
		{0.01, 1},
		{0.005, 1}, // rounds, never truncates
		{19.998, 2000},
		{1234567.89, 123456789},
	}

	for _, tt := range tests {
		if got := ToMinorUnits(tt.amount); got != tt.want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	// Amounts already expressed to two decimal places survive the round trip.
	amounts := []float64{0, 0.01, 0.99, 49.99, 100.00, 9999.95}
	for _, a := range amounts {
		got := FromMinorUnits(ToMinorUnits(a))
		if ToMinorUnits(got) != ToMinorUnits(a) {
			t.Errorf("round trip of %v changed value: got %v", a, got)
		}
	}
}
