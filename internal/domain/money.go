package domain

import (
	"fmt"
	"math"
)

// DollarsToCents converts a dollar amount to the integer cents every
// balance and price in the simulator is kept in. Amounts carrying
// sub-cent precision are rejected, not silently rounded.
func DollarsToCents(dollars float64) (int64, error) {
	// Scale by 1000 and round before inspecting the ones place: float64
	// keeps 1.10 as 1099.999.../1000, and a genuine third decimal digit
	// survives the rounding as a non-zero remainder.
	if math.Mod(math.Round(dollars*1000), 10) != 0 {
		return 0, fmt.Errorf("monetary values must have at most 2 decimal places")
	}
	return int64(math.Round(dollars * 100)), nil
}

// CentsToDollars converts cents back to dollars for display.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100.0
}
