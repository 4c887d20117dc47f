package domain

import "math"

// ToMinorUnits converts an amount in decimal currency units to the smallest
// currency unit the gateway expects. Fractional cents are rounded away, never
// truncated.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts a minor-unit amount back to decimal currency units.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}
