package market

import (
	"strings"

	"github.com/wonny/stockgrade/internal/provider"
)

// DefaultSP500Limit is the list size served when no limit is given
const DefaultSP500Limit = 50

// DefaultTimeframe is used when a detail request names none
const DefaultTimeframe = "1M"

// SP500Symbols is the built-in large-cap universe, in serving order
var SP500Symbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK.B", "JPM", "JNJ",
	"V", "PG", "UNH", "HD", "MA", "DIS", "PYPL", "ADBE", "NFLX", "CRM",
	"INTC", "CMCSA", "PFE", "TMO", "ABT", "COST", "PEP", "CSCO", "ACN", "DHR",
	"VZ", "NKE", "TXN", "QCOM", "NEE", "WMT", "MRK", "PM", "UNP", "HON",
	"IBM", "SPGI", "LOW", "AMGN", "CAT", "GS", "AXP", "BA", "MMM", "GE",
	"XOM", "CVX", "COP", "SLB", "EOG",
}

// Index is a tracked market index
type Index struct {
	Symbol string
	Name   string
}

// Indices are the tracked indices, in serving order
var Indices = []Index{
	{Symbol: "^GSPC", Name: "S&P 500"},
	{Symbol: "^IXIC", Name: "NASDAQ 100"},
	{Symbol: "^DJI", Name: "Dow Jones"},
}

// timeframePeriods maps API timeframes to provider lookbacks
var timeframePeriods = map[string]provider.Period{
	"1D": provider.Period1Day,
	"1W": provider.Period5Days,
	"1M": provider.Period1Month,
	"3M": provider.Period3Months,
	"1Y": provider.Period1Year,
	"5Y": provider.Period5Years,
}

// PeriodFor returns the provider lookback for a timeframe; unknown values get one month
func PeriodFor(timeframe string) provider.Period {
	if p, ok := timeframePeriods[timeframe]; ok {
		return p
	}
	return provider.Period1Month
}

// IsKnownTimeframe reports whether timeframe has its own lookback
func IsKnownTimeframe(timeframe string) bool {
	_, ok := timeframePeriods[timeframe]
	return ok
}

// NormalizeSymbol trims and upper-cases a ticker
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// SP500Universe returns the first limit symbols of the built-in list
func SP500Universe(limit int) []string {
	if limit < 0 {
		limit = 0
	}
	if limit > len(SP500Symbols) {
		limit = len(SP500Symbols)
	}
	return SP500Symbols[:limit]
}
