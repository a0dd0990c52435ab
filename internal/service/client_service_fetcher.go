package service

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/store"
)

const (
	defaultFetchRetries   = 2
	fetchBackoffBaseDelay = 500 * time.Millisecond
)

// retryingFetcher downloads one asset into the cache with bounded
// exponential backoff. Only failures classified as retryable by the adapter
// consume retries; a permanent failure surfaces immediately.
type retryingFetcher struct {
	cache      store.CacheStore
	maxRetries uint64
	baseDelay  time.Duration

	logger *logger.Logger
}

func NewRetryingFetcher(cache store.CacheStore, maxRetries int, logger *logger.Logger) AssetFetcher {
	if maxRetries < 0 {
		maxRetries = defaultFetchRetries
	}

	return &retryingFetcher{
		cache:      cache,
		maxRetries: uint64(maxRetries),
		baseDelay:  fetchBackoffBaseDelay,
		logger:     logger,
	}
}

// Fetch downloads the asset at path via its signed URL and returns the
// local file path. On exhaustion the last underlying error is returned.
func (f *retryingFetcher) Fetch(ctx context.Context, signedURL string, path string) (string, error) {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(f.maxRetries, retry.NewExponential(f.baseDelay))

	var localPath string
	attempt := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		cached, downloadErr := f.cache.DownloadAndCacheAsset(ctx, signedURL, path)
		if downloadErr != nil {
			if adapter.IsRetryable(downloadErr) {
				log.Warn().
					Str("func", "retryingFetcher.Fetch").
					Str("path", path).
					Int("attempt", attempt).
					Err(downloadErr).
					Msg("retryable asset download failure")
				return retry.RetryableError(downloadErr)
			}

			log.Err(downloadErr).
				Str("func", "retryingFetcher.Fetch").
				Str("path", path).
				Int("attempt", attempt).
				Msg("permanent asset download failure")
			return downloadErr
		}

		localPath = cached
		return nil
	})
	if err != nil {
		return "", err
	}

	return localPath, nil
}
