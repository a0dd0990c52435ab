package store

import (
	"context"
	"fmt"

	"github.com/telltale-app/storysync/internal/config"
	"github.com/telltale-app/storysync/internal/logger"
)

// ClientStorages groups the client-side storage implementations into a
// single value that can be passed around the service layer.
type ClientStorages struct {
	// Cache is the SQLite-backed local cache of story documents and asset
	// files.
	Cache CacheStore

	// Checkpoint persists the resumable sync checkpoint between passes.
	Checkpoint CheckpointStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It opens (and if necessary creates) the local
// SQLite database, bootstraps the cache schema, and wires the cache and
// checkpoint stores on top of the shared connection.
//
// The downloader is the transport used by [CacheStore.DownloadAndCacheAsset]
// to pull asset bytes from signed URLs.
func NewClientStorages(cfg config.ClientConfig, downloader AssetDownloader, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		Cache:      NewLocalCacheStore(db, downloader, cfg.Sync.AssetDir, logger),
		Checkpoint: NewCheckpointStore(db, logger),
	}, nil
}
