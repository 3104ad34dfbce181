package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/wonny/stockgrade/internal/provider"
	"github.com/wonny/stockgrade/pkg/config"
	"github.com/wonny/stockgrade/pkg/httputil"
	"github.com/wonny/stockgrade/pkg/logger"
)

const quoteSummaryModules = "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"

// Client handles communication with Yahoo Finance
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	cookieURL  string

	mu    sync.Mutex
	crumb string
}

var _ provider.Provider = (*Client)(nil)

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, cfg config.ProviderConfig, log *logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	cookieURL := cfg.CookieURL
	if cookieURL == "" {
		cookieURL = "https://fc.yahoo.com"
	}

	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookieURL:  cookieURL,
	}
}

// ToYahooSymbol converts a ticker to Yahoo's notation (BRK.B -> BRK-B)
func ToYahooSymbol(symbol string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(symbol)), ".", "-")
}

// FetchHistory fetches daily bars for the period, oldest first.
// Sessions without a close are dropped.
func (c *Client) FetchHistory(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	params := url.Values{}
	params.Set("range", string(period))
	params.Set("interval", "1d")
	params.Set("includePrePost", "false")

	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ToYahooSymbol(symbol)), params.Encode())

	var resp chartResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, c.mapError(symbol, err)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, resultError(symbol, resp.Chart.Error)
	}

	return parseChart(resp.Chart.Result[0]), nil
}

// FetchQuoteInfo fetches the fundamentals sheet
func (c *Client) FetchQuoteInfo(ctx context.Context, symbol string) (*provider.Fundamentals, error) {
	crumb, err := c.getCrumb(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain crumb: %w", err)
	}

	params := url.Values{}
	params.Set("modules", quoteSummaryModules)
	params.Set("crumb", crumb)

	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(ToYahooSymbol(symbol)), params.Encode())

	var resp quoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, c.mapError(symbol, err)
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return nil, resultError(symbol, resp.QuoteSummary.Error)
	}

	return toFundamentals(symbol, resp.QuoteSummary.Result[0]), nil
}

// getCrumb returns the session crumb, performing the cookie handshake once
func (c *Client) getCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	// The cookie endpoint answers 404 but sets the session cookie
	resp, err := c.httpClient.Get(ctx, c.cookieURL, nil)
	if err != nil {
		return "", fmt.Errorf("cookie request failed: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	resp, err = c.httpClient.Get(ctx, c.baseURL+"/v1/test/getcrumb", map[string]string{"Accept": "text/plain"})
	if err != nil {
		return "", fmt.Errorf("crumb request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("failed to read crumb: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || crumb == "" {
		return "", fmt.Errorf("unexpected crumb response: status %d", resp.StatusCode)
	}

	c.crumb = crumb
	return crumb, nil
}

// resetCrumb forces a new handshake on the next quote request
func (c *Client) resetCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

// mapError translates HTTP failures to provider sentinels
func (c *Client) mapError(symbol string, err error) error {
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", symbol, provider.ErrSymbolNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			c.resetCrumb()
			c.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"status": statusErr.StatusCode,
			}).Warn("Yahoo rejected session, crumb reset")
		}
	}
	return fmt.Errorf("yahoo request for %s failed: %w", symbol, err)
}

func resultError(symbol string, apiErr *apiError) error {
	if apiErr != nil && strings.EqualFold(apiErr.Code, "Not Found") {
		return fmt.Errorf("%s: %w", symbol, provider.ErrSymbolNotFound)
	}
	if apiErr != nil {
		return fmt.Errorf("%s: %s: %w", symbol, apiErr.Description, provider.ErrNoData)
	}
	return fmt.Errorf("%s: %w", symbol, provider.ErrNoData)
}

// parseChart converts parallel chart arrays into bars dated at exchange midnight
func parseChart(result chartResult) []provider.Bar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	loc := time.UTC
	if result.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(result.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	bars := make([]provider.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closePrice := at(quote.Close, i)
		if closePrice == nil {
			continue
		}

		t := time.Unix(ts, 0).In(loc)
		bar := provider.Bar{
			Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Open:  valueOr(at(quote.Open, i), *closePrice),
			High:  valueOr(at(quote.High, i), *closePrice),
			Low:   valueOr(at(quote.Low, i), *closePrice),
			Close: *closePrice,
		}
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = int64(*v)
		}
		bars = append(bars, bar)
	}

	return bars
}

func toFundamentals(symbol string, r quoteSummaryResult) *provider.Fundamentals {
	f := &provider.Fundamentals{
		Symbol:   symbol,
		LongName: r.Price.LongName,
		Sector:   r.AssetProfile.Sector,

		MarketCap:     first(r.SummaryDetail.MarketCap, r.Price.MarketCap),
		PreviousClose: first(r.SummaryDetail.PreviousClose, r.Price.RegularMarketPreviousClose),

		TrailingPE:       r.SummaryDetail.TrailingPE.Raw,
		TrailingEPS:      r.DefaultKeyStatistics.TrailingEps.Raw,
		DividendRate:     r.SummaryDetail.DividendRate.Raw,
		DividendYield:    r.SummaryDetail.DividendYield.Raw,
		FiftyTwoWeekHigh: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  r.SummaryDetail.FiftyTwoWeekLow.Raw,

		ReturnOnEquity: r.FinancialData.ReturnOnEquity.Raw,
		ReturnOnAssets: r.FinancialData.ReturnOnAssets.Raw,
		CurrentRatio:   r.FinancialData.CurrentRatio.Raw,
		DebtToEquity:   r.FinancialData.DebtToEquity.Raw,
		PEGRatio:       r.DefaultKeyStatistics.PegRatio.Raw,
		Beta:           first(r.SummaryDetail.Beta, r.DefaultKeyStatistics.Beta),
	}

	if v := first(r.SummaryDetail.Volume, r.Price.RegularMarketVolume); v != nil {
		volume := int64(*v)
		f.Volume = &volume
	}

	return f
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
