package market

// StockSnapshot is the per-symbol quote served by the list and detail endpoints
type StockSnapshot struct {
	Symbol        string   `json:"symbol"`
	CompanyName   string   `json:"companyName"`
	Sector        string   `json:"sector"`
	MarketCap     float64  `json:"marketCap"`
	CurrentPrice  float64  `json:"currentPrice"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"changePercent"`
	Volume        int64    `json:"volume"`
	PE            *float64 `json:"pe"`
	EPS           *float64 `json:"eps"`
	Dividend      float64  `json:"dividend"`
	DividendYield float64  `json:"dividendYield"` // percent
	High52Week    *float64 `json:"high52Week"`
	Low52Week     *float64 `json:"low52Week"`
}

// Metrics are the derived financial metrics of a detail response.
// ROE, ROA, dividend yield and volatility are percentages.
type Metrics struct {
	Symbol        string   `json:"symbol"`
	MarketCap     float64  `json:"marketCap"`
	PE            *float64 `json:"pe"`
	PEG           float64  `json:"peg"`
	EPS           *float64 `json:"eps"`
	ROE           float64  `json:"roe"`
	ROA           float64  `json:"roa"`
	CurrentRatio  float64  `json:"currentRatio"`
	DebtToEquity  float64  `json:"debtToEquity"`
	DividendYield float64  `json:"dividendYield"`
	Beta          float64  `json:"beta"`
	SharpeRatio   float64  `json:"sharpeRatio"`
	Volatility    float64  `json:"volatility"`
}

// ChartPoint is one daily bar
type ChartPoint struct {
	Date   string  `json:"date"` // ISO-8601
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// ChartData is the price history of a detail response, oldest first
type ChartData struct {
	Symbol    string       `json:"symbol"`
	Timeframe string       `json:"timeframe"`
	Data      []ChartPoint `json:"data"`
}

// StockDetail is a snapshot with grade, metrics and chart
type StockDetail struct {
	StockSnapshot
	Grade     string    `json:"grade"`
	Score     int       `json:"score"`
	Metrics   Metrics   `json:"metrics"`
	ChartData ChartData `json:"chartData"`
}

// IndexSnapshot is the latest move of a market index
type IndexSnapshot struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}
