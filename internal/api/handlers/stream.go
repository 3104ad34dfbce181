package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/stockgrade/internal/market"
	"github.com/wonny/stockgrade/pkg/logger"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// IndexUpdate is one frame of the index stream
type IndexUpdate struct {
	Type      string                 `json:"type"`
	Data      []market.IndexSnapshot `json:"data,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// StreamHandler pushes index snapshots over WebSocket
type StreamHandler struct {
	service  MarketService
	interval time.Duration
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewStreamHandler creates a new index stream handler
func NewStreamHandler(service MarketService, interval time.Duration, log *logger.Logger) *StreamHandler {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return &StreamHandler{
		service:  service,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// StreamIndices sends the indices right away and then every interval until the peer leaves
// GET /ws/indices
func (h *StreamHandler) StreamIndices(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Read pump: only control frames are expected; any error ends the stream
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updates := time.NewTicker(h.interval)
	defer updates.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	if !h.push(ctx, conn) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-updates.C:
			if !h.push(ctx, conn) {
				return
			}
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push writes one frame and reports whether the connection is still usable
func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn) bool {
	update := IndexUpdate{
		Type:      "indices",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	indices, err := h.service.Indices(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("Index stream fetch failed")
		update.Type = "error"
		update.Error = err.Error()
	} else {
		update.Data = indices
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(update) == nil
}
