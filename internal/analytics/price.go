package analytics

import "github.com/shopspring/decimal"

// PriceChange returns the absolute and percentage move from previous to current.
// The percentage is 0 when previous is 0.
func PriceChange(current, previous float64) (change, changePercent float64) {
	change = current - previous
	if previous == 0 {
		return change, 0
	}
	return change, change / previous * 100
}

// Percent converts a provider fraction (0.15) to percent (15); absent or zero is 0
func Percent(fraction *float64) float64 {
	if fraction == nil || *fraction == 0 {
		return 0
	}
	return *fraction * 100
}

// Round2 rounds half-to-even at two decimals on the shortest decimal
// representation of v
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}

// Round2Ptr is Round2 for optional values
func Round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round2(*v)
	return &r
}
