package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/mock"
)

// newFastFetcher builds a retryingFetcher with a millisecond backoff so
// retry tests do not sleep for real.
func newFastFetcher(cache *mock.MockCacheStore, maxRetries uint64) *retryingFetcher {
	return &retryingFetcher{
		cache:      cache,
		maxRetries: maxRetries,
		baseDelay:  time.Millisecond,
		logger:     logger.Nop(),
	}
}

func TestRetryingFetcher_SucceedsFirstAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock.NewMockCacheStore(ctrl)
	fetcher := newFastFetcher(cache, 2)

	cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").
		Return("/cache/images/a.png", nil)

	localPath, err := fetcher.Fetch(context.Background(), "/dl/a", "images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/cache/images/a.png", localPath)
}

func TestRetryingFetcher_RetriesRetryableFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock.NewMockCacheStore(ctrl)
	fetcher := newFastFetcher(cache, 2)

	transient := &adapter.FetchError{Kind: adapter.FetchServer, Err: errors.New("503 service unavailable")}

	gomock.InOrder(
		cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("", transient),
		cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("", transient),
		cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("/cache/images/a.png", nil),
	)

	localPath, err := fetcher.Fetch(context.Background(), "/dl/a", "images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/cache/images/a.png", localPath)
}

func TestRetryingFetcher_PermanentFailureDoesNotRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock.NewMockCacheStore(ctrl)
	fetcher := newFastFetcher(cache, 2)

	permanent := &adapter.FetchError{Kind: adapter.FetchPermanent, Err: errors.New("404 not found")}

	// Exactly one attempt: a permanent classification short-circuits.
	cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("", permanent)

	_, err := fetcher.Fetch(context.Background(), "/dl/a", "images/a.png")
	require.Error(t, err)

	var fetchErr *adapter.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, adapter.FetchPermanent, fetchErr.Kind)
}

func TestRetryingFetcher_ExhaustsRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock.NewMockCacheStore(ctrl)
	fetcher := newFastFetcher(cache, 1)

	transient := &adapter.FetchError{Kind: adapter.FetchConnection, Err: errors.New("connection reset")}

	// maxRetries 1 means two attempts total.
	cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("", transient).Times(2)

	_, err := fetcher.Fetch(context.Background(), "/dl/a", "images/a.png")
	require.Error(t, err)
	assert.True(t, adapter.IsRetryable(err))
}

func TestRetryingFetcher_ExpiredURLIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock.NewMockCacheStore(ctrl)
	fetcher := newFastFetcher(cache, 2)

	expired := &adapter.FetchError{Kind: adapter.FetchURLExpired, Err: errors.New("403 forbidden")}

	gomock.InOrder(
		cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("", expired),
		cache.EXPECT().DownloadAndCacheAsset(gomock.Any(), "/dl/a", "images/a.png").Return("/cache/images/a.png", nil),
	)

	localPath, err := fetcher.Fetch(context.Background(), "/dl/a", "images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/cache/images/a.png", localPath)
}

func TestNewRetryingFetcher_DefaultsRetries(t *testing.T) {
	fetcher := NewRetryingFetcher(nil, -1, logger.Nop()).(*retryingFetcher)
	assert.Equal(t, uint64(defaultFetchRetries), fetcher.maxRetries)
}
