package jobs

import (
	"context"

	"github.com/wonny/stockgrade/pkg/logger"
)

// Warmer recomputes hot cache entries
type Warmer interface {
	Warm(ctx context.Context) error
}

// CacheWarmJob refreshes the default stock list and the indices
type CacheWarmJob struct {
	warmer   Warmer
	schedule string
	logger   *logger.Logger
}

// NewCacheWarmJob creates a new cache warm job
func NewCacheWarmJob(warmer Warmer, schedule string, log *logger.Logger) *CacheWarmJob {
	if schedule == "" {
		schedule = "0 */5 * * * *"
	}

	return &CacheWarmJob{
		warmer:   warmer,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *CacheWarmJob) Name() string {
	return "cache_warm"
}

// Schedule returns the cron schedule (every 5 minutes by default)
func (j *CacheWarmJob) Schedule() string {
	return j.schedule
}

// Run executes the cache warm
func (j *CacheWarmJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled cache warm")
	return j.warmer.Warm(ctx)
}
