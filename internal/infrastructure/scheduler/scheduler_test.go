package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingExecutor records executed jobs for assertions
type recordingExecutor struct {
	mu       sync.Mutex
	executed []*Job
	err      error
}

func (e *recordingExecutor) Execute(ctx context.Context, job *Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executed = append(e.executed, job)
	return e.err
}

func (e *recordingExecutor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.executed)
}

func testConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:           true,
		MaxConcurrentJobs: 2,
		JobTimeout:        time.Second,
		RetryAttempts:     0,
		RetryDelay:        time.Millisecond,
	}
}

func TestJob_Lifecycle(t *testing.T) {
	job := NewJob(JobTypeFeedSync, 3)

	assert.Equal(t, JobStatusPending, job.Status)
	assert.NotEqual(t, "", job.ID.String())

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Complete()
	assert.Equal(t, JobStatusSuccess, job.Status)
	require.NotNil(t, job.CompletedAt)
}

func TestJob_Retry(t *testing.T) {
	job := NewJob(JobTypeFeedSync, 2)
	job.Start()
	job.Fail("feed unreachable")

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	require.NotNil(t, job.NextRetryAt)

	job.Start()
	job.Fail("feed unreachable")
	job.ScheduleRetry(time.Minute)

	job.Start()
	job.Fail("feed unreachable")
	assert.False(t, job.ShouldRetry(), "retries exhausted")
}

func TestScheduler_ExecutesSubmittedJobs(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(testConfig(), executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.ScheduleFeedSync("https://feeds.example.com/products.xml", 100))
	require.NoError(t, s.ScheduleOrphanCheck())

	assert.Eventually(t, func() bool {
		return executor.count() == 2
	}, time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	executor.mu.Lock()
	defer executor.mu.Unlock()
	types := map[JobType]bool{}
	for _, job := range executor.executed {
		types[job.Type] = true
		assert.Equal(t, JobStatusSuccess, job.Status)
	}
	assert.True(t, types[JobTypeFeedSync])
	assert.True(t, types[JobTypeOrphanCheck])
}

func TestScheduler_SubmitToStoppedScheduler(t *testing.T) {
	s := NewScheduler(testConfig(), &recordingExecutor{}, zap.NewNop())

	err := s.SubmitJob(NewJob(JobTypeFeedSync, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_FailedJobMarkedFailed(t *testing.T) {
	executor := &recordingExecutor{err: errors.New("boom")}
	s := NewScheduler(testConfig(), executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	job := NewJob(JobTypeFeedSync, 0)
	require.NoError(t, s.SubmitJob(job))

	assert.Eventually(t, func() bool {
		return executor.count() == 1
	}, time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.Error)
}

func TestScheduler_StartIdempotent(t *testing.T) {
	s := NewScheduler(testConfig(), &recordingExecutor{}, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, s.Stop(stopCtx))
}

func TestSyncTrigger_SubmitsOnStart(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(testConfig(), executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	trigger := NewSyncTrigger(SyncTriggerConfig{
		SyncInterval: time.Hour,
		RunOnStart:   true,
	}, s, zap.NewNop())

	require.NoError(t, trigger.Start(ctx))

	assert.Eventually(t, func() bool {
		return executor.count() == 1
	}, time.Second, 10*time.Millisecond)

	trigger.Stop()

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	executor.mu.Lock()
	defer executor.mu.Unlock()
	require.Len(t, executor.executed, 1)
	assert.Equal(t, JobTypeFeedSync, executor.executed[0].Type)
	assert.Equal(t, "", executor.executed[0].FeedURL)
}
