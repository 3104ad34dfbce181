package commands

import (
	"context"
	"fmt"

	"github.com/wonny/stockgrade/internal/cache"
	"github.com/wonny/stockgrade/internal/gradelog"
	"github.com/wonny/stockgrade/internal/market"
	"github.com/wonny/stockgrade/internal/provider/yahoo"
	"github.com/wonny/stockgrade/pkg/config"
	"github.com/wonny/stockgrade/pkg/database"
	"github.com/wonny/stockgrade/pkg/httputil"
	"github.com/wonny/stockgrade/pkg/logger"
	"github.com/wonny/stockgrade/pkg/redis"
)

// app holds the wired dependencies shared by the api and warm commands
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	redis   *redis.Client
	db      *database.DB
	history *gradelog.Repository
	service *market.Service
}

// buildApp wires cache, provider and the optional grade history.
// An unreachable Redis degrades to an in-process cache; a failing database
// disables grade history. Neither stops the service.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log}

	// 1. Cache store
	var store cache.Store
	redisClient, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-process cache")
		redisClient = &redis.Client{}
	}
	a.redis = redisClient

	if redisClient.Enabled() {
		store = redis.NewStore(redisClient, cfg.Cache.Prefix)
		log.Info("Connected to Redis")
	} else {
		store = cache.NewMemoryStore()
	}

	// 2. Provider
	httpClient := httputil.New(cfg, log)
	if redisClient.Enabled() {
		httpClient.WithRateLimiter(redis.NewRateLimiter(redisClient, cfg.Cache.Prefix), redis.YahooRateLimit(cfg.Provider.RateLimit))
	}
	yahooClient := yahoo.NewClient(httpClient, cfg.Provider, log)

	// 3. Service
	a.service = market.NewService(yahooClient, cache.NewAside(store, log), cfg, log)

	// 4. Grade history (optional)
	if cfg.Database.Enabled() {
		if err := a.openHistory(ctx); err != nil {
			log.WithError(err).Warn("Grade history disabled")
		}
	}

	return a, nil
}

func (a *app) openHistory(ctx context.Context) error {
	db, err := database.New(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Migrate(ctx, gradelog.Migrations(), a.log); err != nil {
		db.Close()
		return err
	}

	a.db = db
	a.history = gradelog.NewRepository(db.Pool)
	a.service.WithJournal(a.history)
	a.log.Info("Grade history enabled")

	return nil
}

// Close releases connections
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
