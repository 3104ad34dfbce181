package handlers

import (
	"fmt"
	"net/http"

	"github.com/wonny/stockgrade/pkg/logger"
)

// MarketHandler handles market index endpoints
type MarketHandler struct {
	service MarketService
	logger  *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service MarketService, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		service: service,
		logger:  log,
	}
}

// GetIndices returns the tracked index snapshots
// GET /market/indices
func (h *MarketHandler) GetIndices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	indices, err := h.service.Indices(ctx)
	if err != nil {
		h.logger.WithContext(ctx).WithError(err).Error("Failed to get market indices")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching market indices: %s", err))
		return
	}

	respondJSON(w, http.StatusOK, indices)
}
