package analytics

import "math"

// TradingDaysPerYear annualizes daily statistics
const TradingDaysPerYear = 252

// DailyReturns returns simple returns close[i]/close[i-1] - 1 for i >= 1.
// Pairs with a non-positive prior close are skipped.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			continue
		}
		returns = append(returns, closes[i]/prev-1)
	}
	return returns
}

// SharpeRatio is the annualized mean/stddev of daily returns with a zero
// risk-free rate. Defined as 0 with fewer than two returns or zero variance.
func SharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	std := sampleStdDev(returns)
	if std <= 0 || math.IsNaN(std) {
		return 0
	}

	return mean(returns) / std * math.Sqrt(TradingDaysPerYear)
}

// AnnualizedVolatility is the annualized stddev of daily returns in percent.
// 0 when the sample standard deviation is undefined (fewer than two returns).
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	return sampleStdDev(returns) * math.Sqrt(TradingDaysPerYear) * 100
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
