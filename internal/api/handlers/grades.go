package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/wonny/stockgrade/internal/gradelog"
	"github.com/wonny/stockgrade/internal/market"
	"github.com/wonny/stockgrade/pkg/logger"
)

// GradeHistory lists recorded grades
type GradeHistory interface {
	List(ctx context.Context, symbol string, limit int) ([]gradelog.Entry, error)
}

// GradeHandler serves the grade history of a symbol
type GradeHandler struct {
	history  GradeHistory // nil when no database is configured
	validate *validator.Validate
	logger   *logger.Logger
}

// NewGradeHandler creates a new grade history handler; history may be nil
func NewGradeHandler(history GradeHistory, log *logger.Logger) *GradeHandler {
	return &GradeHandler{
		history:  history,
		validate: newValidator(),
		logger:   log,
	}
}

// GetHistory returns recorded grades, newest first
// GET /stocks/{symbol}/grades?limit=30
func (h *GradeHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "Grade history is not enabled")
		return
	}

	limit, err := intParam(r.URL.Query(), "limit", gradelog.DefaultListLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := historyQuery{
		Symbol: mux.Vars(r)["symbol"],
		Limit:  limit,
	}
	if err := h.validate.Struct(query); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	symbol := market.NormalizeSymbol(query.Symbol)
	entries, err := h.history.List(ctx, symbol, query.Limit)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).WithField("symbol", symbol).Error("Failed to list grade history")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching grade history: %s", err))
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
