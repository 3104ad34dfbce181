package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/stockgrade/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	err      error
	runs     int32
	deadline bool
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	atomic.AddInt32(&j.runs, 1)
	_, j.deadline = ctx.Deadline()
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.NewNop(), time.Second)

	require.NoError(t, s.AddJob(&countingJob{name: "warm", schedule: "0 */5 * * * *"}))

	err := s.AddJob(&countingJob{name: "warm", schedule: "0 */5 * * * *"})
	assert.Error(t, err, "duplicate names are rejected")

	err = s.AddJob(&countingJob{name: "bad", schedule: "not a schedule"})
	assert.Error(t, err)

	assert.Equal(t, []string{"warm"}, s.GetAllJobs())
}

func TestRunNow(t *testing.T) {
	s := New(logger.NewNop(), time.Second)
	job := &countingJob{name: "warm", schedule: "@hourly"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunNow(context.Background(), "warm"))

	assert.Equal(t, int32(1), atomic.LoadInt32(&job.runs))
	assert.True(t, job.deadline, "runs are bounded by the scheduler timeout")

	history, err := s.GetJobHistory("warm")
	require.NoError(t, err)
	latest, ok := history.Latest()
	require.True(t, ok)
	assert.True(t, latest.Success)
}

func TestRunNow_FailureIsNotRetried(t *testing.T) {
	s := New(logger.NewNop(), time.Second)
	job := &countingJob{name: "warm", schedule: "@hourly", err: errors.New("provider down")}
	require.NoError(t, s.AddJob(job))

	err := s.RunNow(context.Background(), "warm")
	require.Error(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&job.runs))

	history, err := s.GetJobHistory("warm")
	require.NoError(t, err)
	latest, _ := history.Latest()
	assert.False(t, latest.Success)
	assert.Equal(t, "provider down", latest.Error)
	assert.Equal(t, 0.0, history.SuccessRate())
}

func TestRunNow_UnknownJob(t *testing.T) {
	s := New(logger.NewNop(), time.Second)
	assert.Error(t, s.RunNow(context.Background(), "missing"))
}

func TestRemoveJob(t *testing.T) {
	s := New(logger.NewNop(), time.Second)
	require.NoError(t, s.AddJob(&countingJob{name: "warm", schedule: "@hourly"}))

	require.NoError(t, s.RemoveJob("warm"))
	assert.Empty(t, s.GetAllJobs())
	assert.Error(t, s.RemoveJob("warm"))
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	_, ok := h.Latest()
	assert.False(t, ok)

	for i := 0; i < historySize+10; i++ {
		h.AddResult(JobResult{JobName: "warm", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, historySize)
	assert.InDelta(t, 0.5, h.SuccessRate(), 1e-9)
}
