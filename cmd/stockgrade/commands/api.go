package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/stockgrade/internal/api"
	"github.com/wonny/stockgrade/internal/api/handlers"
	"github.com/wonny/stockgrade/internal/scheduler"
	"github.com/wonny/stockgrade/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API server and, unless disabled, the cache warm job.

Endpoints:
  GET  /                          - Service identity
  GET  /health                    - Health check
  GET  /stocks/sp500?limit=50     - S&P 500 snapshots
  GET  /stocks/{symbol}?timeframe - Graded stock detail
  GET  /stocks/{symbol}/grades    - Grade history (requires DATABASE_URL)
  GET  /market/indices            - Market indices
  GET  /ws/indices                - Index stream (WebSocket)

Example:
  go run ./cmd/stockgrade api
  go run ./cmd/stockgrade api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
	noWarm  bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default PORT or 8000)")
	apiCmd.Flags().BoolVar(&noWarm, "no-warm", false, "disable the cache warm job")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Wire dependencies
	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.log

	// 3. Handlers
	var history handlers.GradeHistory
	if a.history != nil {
		history = a.history
	}

	router := api.NewRouter(api.Handlers{
		System: handlers.NewSystemHandler(a.redis),
		Stocks: handlers.NewStockHandler(a.service, log),
		Market: handlers.NewMarketHandler(a.service, log),
		Grades: handlers.NewGradeHandler(history, log),
		Stream: handlers.NewStreamHandler(a.service, cfg.StreamInterval, log),
	}, cfg.CORSAllowedOrigins, log)

	// 4. Cache warm job
	if cfg.Warm.Enabled && !noWarm {
		sched := scheduler.New(log, 2*time.Minute)
		if err := sched.AddJob(jobs.NewCacheWarmJob(a.service, cfg.Warm.Schedule, log)); err != nil {
			return fmt.Errorf("schedule cache warm: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 5. Server with graceful shutdown
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.WithField("port", cfg.Port).Info("API server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
