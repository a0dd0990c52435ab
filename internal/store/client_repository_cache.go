package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/telltale-app/storysync/internal/assets"
	"github.com/telltale-app/storysync/internal/checksum"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/models"
)

var ErrInsufficientDiskSpace = errors.New("insufficient disk space for sync")

const syncStateID = "current"

// localCacheStore is the SQLite-backed implementation of [CacheStore].
// Asset bytes live on disk under assetDir; the assets table records each
// cached file's logical path, location and content hash so that
// [localCacheStore.ValidateAllAssets] can detect corruption offline.
type localCacheStore struct {
	*DB
	downloader AssetDownloader
	assetDir   string
	logger     *logger.Logger
}

// NewLocalCacheStore constructs a [CacheStore] backed by the provided
// SQLite connection. Downloaded assets are written under assetDir.
func NewLocalCacheStore(db *DB, downloader AssetDownloader, assetDir string, logger *logger.Logger) CacheStore {
	return &localCacheStore{
		DB:         db,
		downloader: downloader,
		assetDir:   assetDir,
		logger:     logger,
	}
}

// HasAsset reports whether the asset is cached and its file still exists.
// The presence check always consults the filesystem: a recorded row whose
// file has vanished does not count as present.
func (l *localCacheStore) HasAsset(ctx context.Context, path string) bool {
	var localPath, storedHash string

	err := l.DB.QueryRowContext(ctx, getCachedAsset, path).Scan(&localPath, &storedHash)
	if err != nil {
		return false
	}

	info, statErr := os.Stat(localPath)
	if statErr != nil || info.IsDir() {
		return false
	}

	return true
}

// DownloadAndCacheAsset fetches the asset bytes from its signed URL, writes
// them under the cache directory and records the content hash. Returns the
// local file path on success.
func (l *localCacheStore) DownloadAndCacheAsset(ctx context.Context, signedURL string, path string) (string, error) {
	log := logger.FromContext(ctx)

	if err := assets.ValidatePath(path); err != nil {
		log.Warn().
			Str("func", "localCacheStore.DownloadAndCacheAsset").
			Str("path", path).
			Msg("rejected asset path")
		return "", err
	}

	data, downloadErr := l.downloader.DownloadAsset(ctx, signedURL)
	if downloadErr != nil {
		log.Err(downloadErr).
			Str("func", "localCacheStore.DownloadAndCacheAsset").
			Str("path", path).
			Msg("failed to download asset")
		return "", downloadErr
	}

	localPath := filepath.Join(l.assetDir, filepath.FromSlash(path))

	if mkdirErr := os.MkdirAll(filepath.Dir(localPath), 0o755); mkdirErr != nil {
		log.Err(mkdirErr).
			Str("func", "localCacheStore.DownloadAndCacheAsset").
			Str("path", path).
			Msg("failed to create cache directory")
		return "", fmt.Errorf("failed to create cache directory for %s: %w", path, mkdirErr)
	}

	if writeErr := os.WriteFile(localPath, data, 0o644); writeErr != nil {
		log.Err(writeErr).
			Str("func", "localCacheStore.DownloadAndCacheAsset").
			Str("path", path).
			Msg("failed to write cached asset")
		return "", fmt.Errorf("failed to write cached asset %s: %w", path, writeErr)
	}

	_, execErr := l.DB.ExecContext(ctx, upsertCachedAsset,
		path,
		localPath,
		checksum.File(data),
		len(data),
		time.Now().UnixMilli(),
	)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "localCacheStore.DownloadAndCacheAsset").
			Str("path", path).
			Msg("failed to record cached asset")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	log.Debug().
		Str("func", "localCacheStore.DownloadAndCacheAsset").
		Str("path", path).
		Int("size", len(data)).
		Msg("asset cached")

	return localPath, nil
}

// GetStories returns every cached story document.
func (l *localCacheStore) GetStories(ctx context.Context) ([]models.Story, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := l.DB.QueryContext(ctx, getCachedStories)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "localCacheStore.GetStories").
			Msg("failed to query cached stories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	stories := make([]models.Story, 0, 50)

	for rows.Next() {
		var payload []byte
		if scanErr := rows.Scan(&payload); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localCacheStore.GetStories").
				Msg("failed to scan cached story row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		var story models.Story
		if unmarshalErr := json.Unmarshal(payload, &story); unmarshalErr != nil {
			log.Err(unmarshalErr).
				Str("func", "localCacheStore.GetStories").
				Msg("failed to unmarshal cached story payload")
			return nil, fmt.Errorf("%w: %w", ErrUnmarshallingStory, unmarshalErr)
		}

		stories = append(stories, story)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localCacheStore.GetStories").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return stories, nil
}

// GetStoryChecksums returns the cached story IDs mapped to their
// last-synced checksums. This is the client side of delta resolution.
func (l *localCacheStore) GetStoryChecksums(ctx context.Context) (map[string]string, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := l.DB.QueryContext(ctx, getCachedStoryChecksums)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "localCacheStore.GetStoryChecksums").
			Msg("failed to query cached story checksums")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	checksums := make(map[string]string)

	for rows.Next() {
		var storyID, sum string
		if scanErr := rows.Scan(&storyID, &sum); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localCacheStore.GetStoryChecksums").
				Msg("failed to scan checksum row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		checksums[storyID] = sum
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localCacheStore.GetStoryChecksums").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return checksums, nil
}

// UpdateStories upserts the given fully-downloaded stories in a single
// transaction. The orchestrator calls this once per committed story, so a
// story either appears with all its fields or not at all.
func (l *localCacheStore) UpdateStories(ctx context.Context, stories ...models.Story) error {
	log := logger.FromContext(ctx)

	if len(stories) == 0 {
		return nil
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localCacheStore.UpdateStories").
			Int("stories_count", len(stories)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()

	for _, story := range stories {
		payload, marshalErr := json.Marshal(story)
		if marshalErr != nil {
			log.Err(marshalErr).
				Str("func", "localCacheStore.UpdateStories").
				Str("story_id", story.ID).
				Msg("failed to marshal story payload")
			return fmt.Errorf("%w: %w", ErrMarshallingStory, marshalErr)
		}

		_, execErr := tx.ExecContext(ctx, upsertCachedStory,
			story.ID,
			story.Title,
			story.Category,
			story.Version,
			story.Checksum,
			payload,
			now,
		)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "localCacheStore.UpdateStories").
				Str("story_id", story.ID).
				Msg("failed to upsert cached story")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localCacheStore.UpdateStories").
			Int("stories_count", len(stories)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// RemoveStories deletes the given story documents from the cache. Cached
// asset files are left in place; assets can be shared between stories and
// orphans are cheap compared to a wrong delete.
func (l *localCacheStore) RemoveStories(ctx context.Context, storyIDs ...string) error {
	log := logger.FromContext(ctx)

	if len(storyIDs) == 0 {
		return nil
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localCacheStore.RemoveStories").
			Int("stories_count", len(storyIDs)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, storyID := range storyIDs {
		if _, execErr := tx.ExecContext(ctx, deleteCachedStory, storyID); execErr != nil {
			log.Err(execErr).
				Str("func", "localCacheStore.RemoveStories").
				Str("story_id", storyID).
				Msg("failed to delete cached story")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "localCacheStore.RemoveStories").
			Int("stories_count", len(storyIDs)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "localCacheStore.RemoveStories").
		Int("stories_count", len(storyIDs)).
		Msg("removed cached stories")

	return nil
}

// CheckDiskSpaceForSync fails with [ErrInsufficientDiskSpace] when the
// filesystem holding the asset cache has fewer free bytes than estimated.
func (l *localCacheStore) CheckDiskSpaceForSync(estimatedBytes int64) error {
	if estimatedBytes <= 0 {
		return nil
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(l.assetDir, &stat); err != nil {
		// cannot measure, let the downloads fail on their own if space runs out
		return nil
	}

	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < estimatedBytes {
		return fmt.Errorf("%w: need %d bytes, %d available", ErrInsufficientDiskSpace, estimatedBytes, available)
	}

	return nil
}

// ValidateAllAssets re-hashes every cached asset file against its recorded
// checksum. Missing or corrupted files are evicted from the assets table and
// returned so the orchestrator re-downloads them.
func (l *localCacheStore) ValidateAllAssets(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := l.DB.QueryContext(ctx, getAllCachedAssets)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "localCacheStore.ValidateAllAssets").
			Msg("failed to query cached assets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	type cachedAsset struct {
		path      string
		localPath string
		sha256    string
	}

	all := make([]cachedAsset, 0, 100)

	for rows.Next() {
		var asset cachedAsset
		if scanErr := rows.Scan(&asset.path, &asset.localPath, &asset.sha256); scanErr != nil {
			log.Err(scanErr).
				Str("func", "localCacheStore.ValidateAllAssets").
				Msg("failed to scan cached asset row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		all = append(all, asset)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "localCacheStore.ValidateAllAssets").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	corrupted := make([]string, 0)

	for _, asset := range all {
		data, readErr := os.ReadFile(asset.localPath)
		if readErr == nil && checksum.File(data) == asset.sha256 {
			continue
		}

		corrupted = append(corrupted, asset.path)

		if _, execErr := l.DB.ExecContext(ctx, deleteCachedAsset, asset.path); execErr != nil {
			log.Err(execErr).
				Str("func", "localCacheStore.ValidateAllAssets").
				Str("path", asset.path).
				Msg("failed to evict corrupted asset record")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}
	}

	if len(corrupted) > 0 {
		log.Warn().
			Str("func", "localCacheStore.ValidateAllAssets").
			Int("corrupted_count", len(corrupted)).
			Msg("found corrupted or missing cached assets")
	}

	return corrupted, nil
}

// GetSyncState reads the locally believed sync state. A client that has
// never synced gets the zero state (server version 0).
func (l *localCacheStore) GetSyncState(ctx context.Context) (models.ClientSyncState, error) {
	log := logger.FromContext(ctx)

	var state models.ClientSyncState
	var lastUpdated int64

	err := l.DB.QueryRowContext(ctx, getSyncState, syncStateID).Scan(
		&state.ServerVersion,
		&state.AssetVersion,
		&lastUpdated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ClientSyncState{}, nil
		}

		log.Err(err).
			Str("func", "localCacheStore.GetSyncState").
			Msg("failed to read sync state")
		return models.ClientSyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	state.LastUpdated = time.UnixMilli(lastUpdated)

	return state, nil
}

// SetSyncState overwrites the locally believed sync state.
func (l *localCacheStore) SetSyncState(ctx context.Context, state models.ClientSyncState) error {
	log := logger.FromContext(ctx)

	_, execErr := l.DB.ExecContext(ctx, upsertSyncState,
		syncStateID,
		state.ServerVersion,
		state.AssetVersion,
		state.LastUpdated.UnixMilli(),
	)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "localCacheStore.SetSyncState").
			Int("server_version", state.ServerVersion).
			Msg("failed to write sync state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	return nil
}
