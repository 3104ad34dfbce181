package handlers

import (
	"context"
	"net/http"
	"time"
)

// ServiceName and ServiceVersion identify the API on GET /
const (
	ServiceName    = "AI Investment Assistant API"
	ServiceVersion = "1.0.0"
)

// CacheProbe reports cache store availability
type CacheProbe interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// SystemHandler serves identity and health
type SystemHandler struct {
	cache CacheProbe
	now   func() time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(cache CacheProbe) *SystemHandler {
	return &SystemHandler{
		cache: cache,
		now:   time.Now,
	}
}

// Root returns the service identity
// GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": ServiceName,
		"version": ServiceVersion,
	})
}

// Health reports liveness. A cache outage is reported but does not make the
// service unhealthy, since reads fall through to the provider.
// GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": h.now().Format(time.RFC3339Nano),
		"cache":     h.cacheStatus(r.Context()),
	})
}

func (h *SystemHandler) cacheStatus(ctx context.Context) string {
	if h.cache == nil || !h.cache.Enabled() {
		return "disabled"
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
