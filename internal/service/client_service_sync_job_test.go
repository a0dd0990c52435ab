package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/models"
)

// spySyncService counts Sync calls without doing any work.
type spySyncService struct {
	calls atomic.Int64
	err   error
}

func (s *spySyncService) Sync(_ context.Context, _ models.ProgressSink) (models.SyncResult, error) {
	s.calls.Add(1)
	return models.SyncResult{Success: s.err == nil}, s.err
}

func (s *spySyncService) GetCachedStories(_ context.Context) ([]models.Story, error) {
	return nil, nil
}

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())
	require.NotNil(t, job)

	var _ ClientSyncJob = job
}

func TestClientSyncJob_Start_RunsSyncOnTicker(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "expected several ticks, got %d", got)
}

func TestClientSyncJob_Stop_HaltsTicker(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	job.Stop()

	countAtStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, countAtStop, spy.calls.Load(), "no ticks may fire after Stop")
}

func TestClientSyncJob_Stop_IsIdempotent(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())

	// Stop before Start and double Stop must both be no-ops.
	job.Stop()
	job.Start(context.Background(), time.Hour)
	job.Stop()
	job.Stop()
}

func TestClientSyncJob_Start_StopsPreviousJob(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(2))
}

func TestClientSyncJob_ContextCancelStopsTicker(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(15 * time.Millisecond)

	countAfterCancel := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, countAfterCancel, spy.calls.Load())

	job.Stop()
}
