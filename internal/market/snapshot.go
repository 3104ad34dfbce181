package market

import (
	"time"

	"github.com/wonny/stockgrade/internal/analytics"
	"github.com/wonny/stockgrade/internal/grading"
	"github.com/wonny/stockgrade/internal/provider"
)

// buildSnapshot assembles a snapshot from fundamentals and at least one bar
func buildSnapshot(symbol string, info *provider.Fundamentals, bars []provider.Bar) StockSnapshot {
	current := bars[len(bars)-1].Close
	previous := valueOr(info.PreviousClose, current)
	change, changePercent := analytics.PriceChange(current, previous)

	companyName := info.LongName
	if companyName == "" {
		companyName = symbol
	}
	sector := info.Sector
	if sector == "" {
		sector = "Unknown"
	}

	var volume int64
	if info.Volume != nil {
		volume = *info.Volume
	}

	return StockSnapshot{
		Symbol:        symbol,
		CompanyName:   companyName,
		Sector:        sector,
		MarketCap:     valueOr(info.MarketCap, 0),
		CurrentPrice:  analytics.Round2(current),
		Change:        analytics.Round2(change),
		ChangePercent: analytics.Round2(changePercent),
		Volume:        volume,
		PE:            info.TrailingPE,
		EPS:           info.TrailingEPS,
		Dividend:      valueOr(info.DividendRate, 0),
		DividendYield: analytics.Percent(info.DividendYield),
		High52Week:    info.FiftyTwoWeekHigh,
		Low52Week:     info.FiftyTwoWeekLow,
	}
}

// buildDetail derives metrics and the grade from fundamentals and history.
// The grade uses the unrounded Sharpe ratio.
func buildDetail(symbol, timeframe string, info *provider.Fundamentals, bars []provider.Bar) (StockDetail, grading.Inputs, grading.Result) {
	returns := analytics.DailyReturns(provider.Closes(bars))
	sharpe := analytics.SharpeRatio(returns)
	volatility := analytics.AnnualizedVolatility(returns)

	inputs := grading.Inputs{
		SharpeRatio:  sharpe,
		ROE:          analytics.Percent(info.ReturnOnEquity),
		PEGRatio:     valueOr(info.PEGRatio, 0),
		CurrentRatio: valueOr(info.CurrentRatio, 0),
		DebtToEquity: valueOr(info.DebtToEquity, 0),
	}
	result := grading.Grade(inputs)

	snapshot := buildSnapshot(symbol, info, bars)

	detail := StockDetail{
		StockSnapshot: snapshot,
		Grade:         result.Grade,
		Score:         result.Score,
		Metrics: Metrics{
			Symbol:        symbol,
			MarketCap:     snapshot.MarketCap,
			PE:            info.TrailingPE,
			PEG:           inputs.PEGRatio,
			EPS:           info.TrailingEPS,
			ROE:           inputs.ROE,
			ROA:           analytics.Percent(info.ReturnOnAssets),
			CurrentRatio:  inputs.CurrentRatio,
			DebtToEquity:  inputs.DebtToEquity,
			DividendYield: snapshot.DividendYield,
			Beta:          valueOr(info.Beta, 1),
			SharpeRatio:   analytics.Round2(sharpe),
			Volatility:    analytics.Round2(volatility),
		},
		ChartData: ChartData{
			Symbol:    symbol,
			Timeframe: timeframe,
			Data:      chartPoints(bars),
		},
	}

	return detail, inputs, result
}

func chartPoints(bars []provider.Bar) []ChartPoint {
	points := make([]ChartPoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, ChartPoint{
			Date:   b.Time.Format(time.RFC3339),
			Open:   analytics.Round2(b.Open),
			High:   analytics.Round2(b.High),
			Low:    analytics.Round2(b.Low),
			Close:  analytics.Round2(b.Close),
			Volume: b.Volume,
		})
	}
	return points
}

// buildIndex computes the move between the last two closes
func buildIndex(index Index, bars []provider.Bar) IndexSnapshot {
	latest := bars[len(bars)-1].Close
	prior := bars[len(bars)-2].Close
	change, changePercent := analytics.PriceChange(latest, prior)

	return IndexSnapshot{
		Symbol:        index.Symbol,
		Name:          index.Name,
		Price:         analytics.Round2(latest),
		Change:        analytics.Round2(change),
		ChangePercent: analytics.Round2(changePercent),
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
