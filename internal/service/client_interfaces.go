package service

import (
	"context"
	"time"

	"github.com/telltale-app/storysync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientSyncService drives the client cache towards the authority's current
// content set.
type ClientSyncService interface {
	// Sync runs one full sync pass: version probe, cache validation, delta
	// fetch, batched URL resolution, asset downloads, and per-story atomic
	// commits. At most one pass runs at a time per process; a concurrent
	// caller joins the in-flight pass and receives its eventual result.
	//
	// Expected failure modes (unreachable authority, per-story download
	// failures) are reported inside the returned [models.SyncResult]; the
	// error return is reserved for local invariant violations such as an
	// unreadable cache.
	Sync(ctx context.Context, sink models.ProgressSink) (models.SyncResult, error)

	// GetCachedStories returns the locally cached story set, the content
	// served while offline.
	GetCachedStories(ctx context.Context) ([]models.Story, error)
}

// AssetFetcher downloads a single asset into the cache, retrying retryable
// transport failures with exponential backoff.
type AssetFetcher interface {
	// Fetch returns the local file path of the cached asset.
	Fetch(ctx context.Context, signedURL string, path string) (string, error)
}

// URLResolver turns asset paths into signed download URLs, batching the
// authority round-trips.
type URLResolver interface {
	// Resolve returns a path-keyed map of issued URLs plus the list of
	// paths the authority could not resolve.
	Resolve(ctx context.Context, paths []string) (map[string]models.SignedURLEntry, []string, error)
}

// ClientSyncJob is a background worker that runs sync passes on a ticker.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
