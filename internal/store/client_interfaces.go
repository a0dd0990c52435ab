package store

import (
	"context"

	"github.com/telltale-app/storysync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// AssetDownloader fetches raw asset bytes from a signed URL. Implemented by
// the HTTP adapter; declared here so the cache does not depend on it.
type AssetDownloader interface {
	DownloadAsset(ctx context.Context, signedURL string) ([]byte, error)
}

// CacheStore is the local cache capability surface consumed by the sync
// orchestrator. Stories become visible to readers only through
// [CacheStore.UpdateStories], so a story with missing assets is never
// observable half-written.
type CacheStore interface {
	HasAsset(ctx context.Context, path string) bool
	DownloadAndCacheAsset(ctx context.Context, signedURL string, path string) (string, error)
	GetStories(ctx context.Context) ([]models.Story, error)
	UpdateStories(ctx context.Context, stories ...models.Story) error
	RemoveStories(ctx context.Context, storyIDs ...string) error
	CheckDiskSpaceForSync(estimatedBytes int64) error
	ValidateAllAssets(ctx context.Context) ([]string, error)
	GetSyncState(ctx context.Context) (models.ClientSyncState, error)
	SetSyncState(ctx context.Context, state models.ClientSyncState) error
	GetStoryChecksums(ctx context.Context) (map[string]string, error)
}

// CheckpointStore persists the resumable sync checkpoint between passes.
type CheckpointStore interface {
	Load(ctx context.Context) (*models.SyncCheckpoint, error)
	Save(ctx context.Context, checkpoint models.SyncCheckpoint) error
	Clear(ctx context.Context) error
}
