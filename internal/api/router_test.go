package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/stockgrade/internal/api/handlers"
	"github.com/wonny/stockgrade/internal/gradelog"
	"github.com/wonny/stockgrade/internal/market"
	"github.com/wonny/stockgrade/pkg/logger"
)

type fakeService struct {
	mu sync.Mutex

	stocks    []market.StockSnapshot
	detail    market.StockDetail
	indices   []market.IndexSnapshot
	listErr   error
	detailErr error
	indexErr  error

	gotLimit     int
	gotSymbol    string
	gotTimeframe string
	indexCalls   int
}

func (f *fakeService) SP500(_ context.Context, limit int) ([]market.StockSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotLimit = limit
	return f.stocks, f.listErr
}

func (f *fakeService) StockDetail(_ context.Context, symbol, timeframe string) (market.StockDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotSymbol = symbol
	f.gotTimeframe = timeframe
	return f.detail, f.detailErr
}

func (f *fakeService) Indices(context.Context) ([]market.IndexSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexCalls++
	return f.indices, f.indexErr
}

type fakeHistory struct {
	entries  []gradelog.Entry
	gotLimit int
}

func (f *fakeHistory) List(_ context.Context, _ string, limit int) ([]gradelog.Entry, error) {
	f.gotLimit = limit
	return f.entries, nil
}

type fakeProbe struct {
	enabled bool
	err     error
}

func (p fakeProbe) Enabled() bool              { return p.enabled }
func (p fakeProbe) Ping(context.Context) error { return p.err }

func newTestRouter(svc *fakeService, history handlers.GradeHistory) http.Handler {
	log := logger.NewNop()
	return NewRouter(Handlers{
		System: handlers.NewSystemHandler(fakeProbe{enabled: true}),
		Stocks: handlers.NewStockHandler(svc, log),
		Market: handlers.NewMarketHandler(svc, log),
		Grades: handlers.NewGradeHandler(history, log),
		Stream: handlers.NewStreamHandler(svc, 20*time.Millisecond, log),
	}, []string{"*"}, log)
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestRoot(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeService{}, nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"AI Investment Assistant API","version":"1.0.0"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeService{}, nil), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["cache"])

	_, err := time.Parse(time.RFC3339Nano, body["timestamp"])
	assert.NoError(t, err)
}

func TestSP500(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantLimit  int
		wantDetail string
	}{
		{"default limit", "/stocks/sp500", http.StatusOK, 50, ""},
		{"explicit limit", "/stocks/sp500?limit=5", http.StatusOK, 5, ""},
		{"not a number", "/stocks/sp500?limit=abc", http.StatusBadRequest, 0, "limit must be an integer"},
		{"zero", "/stocks/sp500?limit=0", http.StatusBadRequest, 0, "limit must be at least 1"},
		{"too large", "/stocks/sp500?limit=501", http.StatusBadRequest, 0, "limit must be at most 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{stocks: []market.StockSnapshot{{Symbol: "AAPL"}}}
			rec := doGet(t, newTestRouter(svc, nil), tt.target)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
				return
			}
			assert.Equal(t, tt.wantLimit, svc.gotLimit)
			assert.Contains(t, rec.Body.String(), `"symbol":"AAPL"`)
		})
	}
}

func TestSP500_EmptyListIsArray(t *testing.T) {
	svc := &fakeService{stocks: []market.StockSnapshot{}}
	rec := doGet(t, newTestRouter(svc, nil), "/stocks/sp500")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestSP500_Error(t *testing.T) {
	svc := &fakeService{listErr: errors.New("provider down")}
	rec := doGet(t, newTestRouter(svc, nil), "/stocks/sp500")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error fetching S&P 500 data: provider down", decodeDetail(t, rec))
}

func TestStockDetail(t *testing.T) {
	svc := &fakeService{detail: market.StockDetail{
		StockSnapshot: market.StockSnapshot{Symbol: "AAPL", CompanyName: "Apple Inc."},
		Grade:         "B",
		Score:         72,
		ChartData:     market.ChartData{Symbol: "AAPL", Timeframe: "1M", Data: []market.ChartPoint{}},
	}}
	rec := doGet(t, newTestRouter(svc, nil), "/stocks/AAPL")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", svc.gotSymbol)
	assert.Equal(t, "1M", svc.gotTimeframe, "timeframe defaults to 1M")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Apple Inc.", body["companyName"])
	assert.Equal(t, "B", body["grade"])
	assert.Equal(t, 72.0, body["score"])
	assert.Contains(t, body, "metrics")
	assert.Contains(t, body, "chartData")
	assert.Nil(t, body["pe"])
}

func TestStockDetail_Timeframe(t *testing.T) {
	svc := &fakeService{}
	rec := doGet(t, newTestRouter(svc, nil), "/stocks/BRK.B?timeframe=2W")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BRK.B", svc.gotSymbol)
	assert.Equal(t, "2W", svc.gotTimeframe)
}

func TestStockDetail_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"not found", "/stocks/ZZZZ", fmt.Errorf("ZZZZ: %w", market.ErrNotFound), http.StatusNotFound, "Stock not found"},
		{"upstream failure", "/stocks/AAPL", errors.New("timeout"), http.StatusInternalServerError, "Error fetching stock data: timeout"},
		{"invalid symbol", "/stocks/AA$PL", nil, http.StatusBadRequest, `invalid symbol "AA$PL"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{detailErr: tt.err}
			rec := doGet(t, newTestRouter(svc, nil), tt.target)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
		})
	}
}

func TestIndices(t *testing.T) {
	svc := &fakeService{indices: []market.IndexSnapshot{{Symbol: "^GSPC", Name: "S&P 500", Price: 4850, Change: 50, ChangePercent: 1.04}}}
	rec := doGet(t, newTestRouter(svc, nil), "/market/indices")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"symbol":"^GSPC","name":"S&P 500","price":4850,"change":50,"changePercent":1.04}]`, rec.Body.String())
}

func TestIndices_Error(t *testing.T) {
	svc := &fakeService{indexErr: errors.New("boom")}
	rec := doGet(t, newTestRouter(svc, nil), "/market/indices")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error fetching market indices: boom", decodeDetail(t, rec))
}

func TestGradeHistory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rec := doGet(t, newTestRouter(&fakeService{}, nil), "/stocks/AAPL/grades")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		history := &fakeHistory{entries: []gradelog.Entry{{Symbol: "AAPL", Score: 72, Grade: "B"}}}
		rec := doGet(t, newTestRouter(&fakeService{}, history), "/stocks/aapl/grades?limit=7")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 7, history.gotLimit)
		assert.Contains(t, rec.Body.String(), `"grade":"B"`)
	})

	t.Run("limit out of range", func(t *testing.T) {
		history := &fakeHistory{}
		rec := doGet(t, newTestRouter(&fakeService{}, history), "/stocks/AAPL/grades?limit=1000")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	h := newTestRouter(&fakeService{}, nil)

	rec := doGet(t, h, "/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()

	newTestRouter(&fakeService{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	rec := doGet(t, newTestRouter(&fakeService{}, nil), "/nope/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeDetail(t, rec))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := doGet(t, h, "/")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", decodeDetail(t, rec))
}

func TestStreamIndices(t *testing.T) {
	svc := &fakeService{indices: []market.IndexSnapshot{{Symbol: "^DJI", Name: "Dow Jones", Price: 38000}}}
	srv := httptest.NewServer(newTestRouter(svc, nil))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/indices"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	// Initial frame plus at least one tick
	for i := 0; i < 2; i++ {
		var update handlers.IndexUpdate
		require.NoError(t, conn.ReadJSON(&update))
		assert.Equal(t, "indices", update.Type)
		require.Len(t, update.Data, 1)
		assert.Equal(t, "^DJI", update.Data[0].Symbol)
	}
}
