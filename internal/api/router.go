package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/wonny/stockgrade/internal/api/handlers"
	"github.com/wonny/stockgrade/pkg/logger"
)

// Handlers groups every endpoint handler the router serves
type Handlers struct {
	System *handlers.SystemHandler
	Stocks *handlers.StockHandler
	Market *handlers.MarketHandler
	Grades *handlers.GradeHandler
	Stream *handlers.StreamHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, allowedOrigins []string, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.System.Root).Methods("GET")
	r.HandleFunc("/health", h.System.Health).Methods("GET")

	// /stocks/sp500 must be registered before /stocks/{symbol}
	r.HandleFunc("/stocks/sp500", h.Stocks.GetSP500).Methods("GET")
	r.HandleFunc("/stocks/{symbol}/grades", h.Grades.GetHistory).Methods("GET")
	r.HandleFunc("/stocks/{symbol}", h.Stocks.GetStock).Methods("GET")

	r.HandleFunc("/market/indices", h.Market.GetIndices).Methods("GET")

	if h.Stream != nil {
		r.HandleFunc("/ws/indices", h.Stream.StreamIndices).Methods("GET")
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return newCORS(allowedOrigins).Handler(r)
}

// newCORS mirrors the permissive browser policy of the public API
func newCORS(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
}
