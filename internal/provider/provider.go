package provider

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSymbolNotFound is returned when the provider does not know the symbol
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoData is returned when the provider answered without usable data
	ErrNoData = errors.New("no data returned")
)

// Period is a history lookback understood by the provider
type Period string

const (
	Period1Day    Period = "1d"
	Period2Days   Period = "2d"
	Period5Days   Period = "5d"
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period1Year   Period = "1y"
	Period5Years  Period = "5y"
)

// Fundamentals is the per-symbol quote and ratio sheet.
// Pointer fields are nil when the provider omits them; ratios stay in provider
// units (ROE/ROA/dividend yield as fractions).
type Fundamentals struct {
	Symbol   string
	LongName string
	Sector   string

	MarketCap     *float64
	PreviousClose *float64
	Volume        *int64

	TrailingPE       *float64
	TrailingEPS      *float64
	DividendRate     *float64
	DividendYield    *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64

	ReturnOnEquity *float64
	ReturnOnAssets *float64
	CurrentRatio   *float64
	DebtToEquity   *float64
	PEGRatio       *float64
	Beta           *float64
}

// Bar is one daily OHLCV bar
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Provider is the market data source.
// Implementations may be slow, partial or failing per symbol.
type Provider interface {
	// FetchQuoteInfo returns the fundamentals sheet for symbol
	FetchQuoteInfo(ctx context.Context, symbol string) (*Fundamentals, error)

	// FetchHistory returns daily bars for period, oldest first
	FetchHistory(ctx context.Context, symbol string, period Period) ([]Bar, error)
}

// Closes extracts the close series from bars
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
