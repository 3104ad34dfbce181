package market

import "fmt"

// Cache keys. Identical inputs always produce identical keys.
const IndicesKey = "market_indices"

// SP500Key is the cache key of the S&P 500 list for limit
func SP500Key(limit int) string {
	return fmt.Sprintf("sp500_stocks_%d", limit)
}

// StockKey is the cache key of a detail payload
func StockKey(symbol, timeframe string) string {
	return fmt.Sprintf("stock_data_%s_%s", symbol, timeframe)
}
