package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/stockgrade/internal/cache"
	"github.com/wonny/stockgrade/internal/grading"
	"github.com/wonny/stockgrade/internal/provider"
	"github.com/wonny/stockgrade/pkg/config"
	"github.com/wonny/stockgrade/pkg/logger"
)

// ErrNotFound is returned when the provider has no history for a symbol
var ErrNotFound = errors.New("stock not found")

// GradeJournal records freshly computed grades
type GradeJournal interface {
	Record(ctx context.Context, symbol, timeframe string, in grading.Inputs, res grading.Result) error
}

// Service serves stock lists, stock details and index snapshots through the cache
// ⭐ SSOT: 시장 데이터 조회(캐시 경유)는 여기서만
type Service struct {
	provider    provider.Provider
	cache       *cache.Aside
	logger      *logger.Logger
	ttl         config.CacheConfig
	concurrency int
	journal     GradeJournal
}

// NewService creates a new market data service
func NewService(p provider.Provider, aside *cache.Aside, cfg *config.Config, log *logger.Logger) *Service {
	concurrency := cfg.Provider.BatchConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Service{
		provider:    p,
		cache:       aside,
		logger:      log,
		ttl:         cfg.Cache,
		concurrency: concurrency,
	}
}

// WithJournal enables grade history recording
func (s *Service) WithJournal(j GradeJournal) *Service {
	s.journal = j
	return s
}

// SP500 returns snapshots for the first limit symbols of the built-in list.
// Symbols that fail are logged and left out; order is preserved.
func (s *Service) SP500(ctx context.Context, limit int) ([]StockSnapshot, error) {
	return cache.Fetch(ctx, s.cache, SP500Key(limit), s.ttl.SP500TTL, func(ctx context.Context) ([]StockSnapshot, error) {
		return s.computeSP500(ctx, limit)
	})
}

// StockDetail returns the graded detail of symbol for timeframe.
// Unknown timeframes use a one month lookback and are echoed back as given.
func (s *Service) StockDetail(ctx context.Context, symbol, timeframe string) (StockDetail, error) {
	symbol = NormalizeSymbol(symbol)

	return cache.Fetch(ctx, s.cache, StockKey(symbol, timeframe), s.ttl.StockTTL, func(ctx context.Context) (StockDetail, error) {
		return s.computeDetail(ctx, symbol, timeframe)
	})
}

// Indices returns snapshots of the tracked indices, skipping those with fewer than two bars
func (s *Service) Indices(ctx context.Context) ([]IndexSnapshot, error) {
	return cache.Fetch(ctx, s.cache, IndicesKey, s.ttl.IndicesTTL, s.computeIndices)
}

// Warm recomputes the default list and the indices and overwrites their cache entries
func (s *Service) Warm(ctx context.Context) error {
	start := time.Now()

	stocks, err := cache.Refresh(ctx, s.cache, SP500Key(DefaultSP500Limit), s.ttl.SP500TTL, func(ctx context.Context) ([]StockSnapshot, error) {
		return s.computeSP500(ctx, DefaultSP500Limit)
	})
	if err != nil {
		return fmt.Errorf("warm sp500: %w", err)
	}

	indices, err := cache.Refresh(ctx, s.cache, IndicesKey, s.ttl.IndicesTTL, s.computeIndices)
	if err != nil {
		return fmt.Errorf("warm indices: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"stocks":   len(stocks),
		"indices":  len(indices),
		"duration": time.Since(start).String(),
	}).Info("Cache warmed")

	return nil
}

func (s *Service) computeSP500(ctx context.Context, limit int) ([]StockSnapshot, error) {
	symbols := SP500Universe(limit)

	return collect(ctx, s, symbols, func(ctx context.Context, symbol string) (StockSnapshot, error) {
		info, err := s.provider.FetchQuoteInfo(ctx, symbol)
		if err != nil {
			return StockSnapshot{}, err
		}
		bars, err := s.provider.FetchHistory(ctx, symbol, provider.Period1Day)
		if err != nil {
			return StockSnapshot{}, err
		}
		if len(bars) == 0 {
			return StockSnapshot{}, provider.ErrNoData
		}
		return buildSnapshot(symbol, info, bars), nil
	})
}

func (s *Service) computeDetail(ctx context.Context, symbol, timeframe string) (StockDetail, error) {
	if !IsKnownTimeframe(timeframe) {
		s.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"symbol":    symbol,
			"timeframe": timeframe,
		}).Debug("Unknown timeframe, using one month lookback")
	}

	bars, err := s.provider.FetchHistory(ctx, symbol, PeriodFor(timeframe))
	if errors.Is(err, provider.ErrSymbolNotFound) || (err == nil && len(bars) == 0) {
		return StockDetail{}, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}
	if err != nil {
		return StockDetail{}, fmt.Errorf("history: %w", err)
	}

	info, err := s.provider.FetchQuoteInfo(ctx, symbol)
	if err != nil {
		return StockDetail{}, fmt.Errorf("quote info: %w", err)
	}

	detail, inputs, result := buildDetail(symbol, timeframe, info, bars)

	if s.journal != nil {
		if err := s.journal.Record(ctx, symbol, timeframe, inputs, result); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithField("symbol", symbol).Warn("Failed to record grade")
		}
	}

	return detail, nil
}

func (s *Service) computeIndices(ctx context.Context) ([]IndexSnapshot, error) {
	symbols := make([]string, len(Indices))
	names := make(map[string]Index, len(Indices))
	for i, idx := range Indices {
		symbols[i] = idx.Symbol
		names[idx.Symbol] = idx
	}

	return collect(ctx, s, symbols, func(ctx context.Context, symbol string) (IndexSnapshot, error) {
		bars, err := s.provider.FetchHistory(ctx, symbol, provider.Period2Days)
		if err != nil {
			return IndexSnapshot{}, err
		}
		if len(bars) < 2 {
			return IndexSnapshot{}, fmt.Errorf("%d bars: %w", len(bars), provider.ErrNoData)
		}
		return buildIndex(names[symbol], bars), nil
	})
}

// itemResult is the outcome of one symbol in a batch
type itemResult[T any] struct {
	value T
	err   error
}

// collect fetches every symbol with bounded concurrency and returns the
// successes in input order. Failures are logged and dropped; only a
// cancelled context fails the batch, so a partial list is never cached for it.
func collect[T any](ctx context.Context, s *Service, symbols []string, fetch func(ctx context.Context, symbol string) (T, error)) ([]T, error) {
	results := make([]itemResult[T], len(symbols))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, symbol := range symbols {
		g.Go(func() error {
			value, err := fetch(ctx, symbol)
			results[i] = itemResult[T]{value: value, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(symbols))
	for i, r := range results {
		if r.err != nil {
			s.logger.WithContext(ctx).WithError(r.err).WithField("symbol", symbols[i]).Warn("Fetch failed, skipping symbol")
			continue
		}
		out = append(out, r.value)
	}

	return out, nil
}
