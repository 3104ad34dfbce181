package yahoo

import (
	"encoding/json"
	"strconv"
)

// apiError is the error envelope shared by chart and quoteSummary
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// chartResponse is the v8 chart payload
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

// chartQuote holds parallel OHLCV arrays; entries are null for halted sessions
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// quoteSummaryResponse is the v10 quoteSummary payload
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price struct {
		LongName                   string   `json:"longName"`
		ShortName                  string   `json:"shortName"`
		MarketCap                  rawValue `json:"marketCap"`
		RegularMarketPreviousClose rawValue `json:"regularMarketPreviousClose"`
		RegularMarketVolume        rawValue `json:"regularMarketVolume"`
	} `json:"price"`

	SummaryDetail struct {
		PreviousClose    rawValue `json:"previousClose"`
		Volume           rawValue `json:"volume"`
		MarketCap        rawValue `json:"marketCap"`
		TrailingPE       rawValue `json:"trailingPE"`
		DividendRate     rawValue `json:"dividendRate"`
		DividendYield    rawValue `json:"dividendYield"`
		FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
		Beta             rawValue `json:"beta"`
	} `json:"summaryDetail"`

	DefaultKeyStatistics struct {
		TrailingEps rawValue `json:"trailingEps"`
		PegRatio    rawValue `json:"pegRatio"`
		Beta        rawValue `json:"beta"`
	} `json:"defaultKeyStatistics"`

	FinancialData struct {
		ReturnOnEquity rawValue `json:"returnOnEquity"`
		ReturnOnAssets rawValue `json:"returnOnAssets"`
		CurrentRatio   rawValue `json:"currentRatio"`
		DebtToEquity   rawValue `json:"debtToEquity"`
	} `json:"financialData"`

	AssetProfile struct {
		Sector string `json:"sector"`
	} `json:"assetProfile"`
}

// rawValue decodes Yahoo's {"raw": x, "fmt": "..."} wrapper.
// Empty objects and non-numeric raws ("Infinity") decode to nil.
type rawValue struct {
	Raw *float64
}

func (v *rawValue) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Raw json.RawMessage `json:"raw"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		// Plain numbers show up in a few modules
		if f, perr := strconv.ParseFloat(string(data), 64); perr == nil {
			v.Raw = &f
		}
		return nil
	}

	if len(wrapper.Raw) == 0 || string(wrapper.Raw) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(wrapper.Raw, &f); err != nil {
		return nil
	}
	v.Raw = &f
	return nil
}

// first returns the first non-nil value
func first(values ...rawValue) *float64 {
	for _, v := range values {
		if v.Raw != nil {
			return v.Raw
		}
	}
	return nil
}
