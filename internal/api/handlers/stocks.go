package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/wonny/stockgrade/internal/market"
	"github.com/wonny/stockgrade/pkg/logger"
)

// MarketService is the cached market data read path
type MarketService interface {
	SP500(ctx context.Context, limit int) ([]market.StockSnapshot, error)
	StockDetail(ctx context.Context, symbol, timeframe string) (market.StockDetail, error)
	Indices(ctx context.Context) ([]market.IndexSnapshot, error)
}

// StockHandler handles stock list and detail endpoints
// ⭐ SSOT: 종목 API 핸들러는 이 구조체에서만
type StockHandler struct {
	service  MarketService
	validate *validator.Validate
	logger   *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service MarketService, log *logger.Logger) *StockHandler {
	return &StockHandler{
		service:  service,
		validate: newValidator(),
		logger:   log,
	}
}

// GetSP500 returns snapshots of the built-in large-cap list
// GET /stocks/sp500?limit=50
func (h *StockHandler) GetSP500(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := intParam(r.URL.Query(), "limit", market.DefaultSP500Limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := listQuery{Limit: limit}
	if err := h.validate.Struct(query); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	stocks, err := h.service.SP500(ctx, query.Limit)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).WithField("limit", query.Limit).Error("Failed to get S&P 500 list")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching S&P 500 data: %s", err))
		return
	}

	respondJSON(w, http.StatusOK, stocks)
}

// GetStock returns the graded detail of one symbol
// GET /stocks/{symbol}?timeframe=1M
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := detailQuery{
		Symbol:    mux.Vars(r)["symbol"],
		Timeframe: r.URL.Query().Get("timeframe"),
	}
	if query.Timeframe == "" {
		query.Timeframe = market.DefaultTimeframe
	}

	if err := h.validate.Struct(query); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	detail, err := h.service.StockDetail(ctx, query.Symbol, query.Timeframe)
	if errors.Is(err, market.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Stock not found")
		return
	}
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).WithFields(map[string]interface{}{
			"symbol":    query.Symbol,
			"timeframe": query.Timeframe,
		}).Error("Failed to get stock detail")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching stock data: %s", err))
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
