package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wonny/stockgrade/pkg/config"
	"github.com/wonny/stockgrade/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:      "development",
		LogLevel: "error",
		Provider: config.ProviderConfig{
			Timeout:   2 * time.Second,
			RateLimit: 50,
		},
	}
}

func TestNew(t *testing.T) {
	client := New(testConfig(), logger.NewNop())
	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.httpClient.Timeout != 2*time.Second {
		t.Errorf("Expected timeout=2s, got %v", client.httpClient.Timeout)
	}

	if client.localLimiter == nil {
		t.Error("Expected local rate limiter to be initialized")
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(&config.Config{}, logger.NewNop())

	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout=10s, got %v", client.httpClient.Timeout)
	}
}

func TestNewWithTimeout(t *testing.T) {
	timeout := 5 * time.Second
	client := NewWithTimeout(testConfig(), logger.NewNop(), timeout)

	if client.httpClient.Timeout != timeout {
		t.Errorf("Expected timeout=%v, got %v", timeout, client.httpClient.Timeout)
	}
}

func TestGet_SetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("Expected default user agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("X-Extra") != "1" {
			t.Errorf("Expected custom header to be forwarded")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := New(testConfig(), logger.NewNop())

	resp, err := client.Get(context.Background(), server.URL, map[string]string{"X-Extra": "1"})
	if err != nil {
		t.Fatalf("GET request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"AAPL","price":175.43}`))
	}))
	defer server.Close()

	client := New(testConfig(), logger.NewNop())

	var out struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	if err := client.GetJSON(context.Background(), server.URL, &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}

	if out.Symbol != "AAPL" || out.Price != 175.43 {
		t.Errorf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_StatusErrorIsNotRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`busy`))
	}))
	defer server.Close()

	client := New(testConfig(), logger.NewNop())

	var out map[string]interface{}
	err := client.GetJSON(context.Background(), server.URL, &out)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", statusErr.StatusCode)
	}
	if statusErr.Body != "busy" {
		t.Errorf("Expected body to be captured, got %q", statusErr.Body)
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", got)
	}
}

func TestGet_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewWithTimeout(testConfig(), logger.NewNop(), 50*time.Millisecond)

	_, err := client.Get(context.Background(), server.URL, nil)
	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
}

func TestGet_CancelledContext(t *testing.T) {
	client := New(testConfig(), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Get(ctx, "http://127.0.0.1:1", nil); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
