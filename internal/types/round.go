package types

import "github.com/shopspring/decimal"

// Output rounding contract: monetary values carry 2 decimal places, pip
// distances 1, percentages 2. Every component rounds through these helpers
// so serialized output stays uniform across the engine.

// RoundMoney rounds a monetary value to 2 decimal places.
func RoundMoney(v float64) float64 {
	return roundTo(v, 2)
}

// RoundPips rounds a pip distance to 1 decimal place.
func RoundPips(v float64) float64 {
	return roundTo(v, 1)
}

// RoundPercent rounds a percentage to 2 decimal places.
func RoundPercent(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int32) float64 {
	// Exact zero short-circuits so a negative zero never reaches the output.
	if v == 0 {
		return 0
	}

	out, _ := decimal.NewFromFloat(v).Round(places).Float64()

	return out
}
