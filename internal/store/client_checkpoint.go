package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/models"
)

const checkpointKey = "sync_checkpoint"

// checkpointStore persists the resumable sync checkpoint as a JSON blob
// under a fixed key in the client kv table.
type checkpointStore struct {
	*DB
	logger *logger.Logger
}

// NewCheckpointStore constructs a [CheckpointStore] backed by the provided
// SQLite connection.
func NewCheckpointStore(db *DB, logger *logger.Logger) CheckpointStore {
	return &checkpointStore{
		DB:     db,
		logger: logger,
	}
}

// Load returns the stored checkpoint, or nil when none exists. An expired
// checkpoint is cleared and reported as absent; resuming stale work would
// download against a world that has moved on.
func (c *checkpointStore) Load(ctx context.Context) (*models.SyncCheckpoint, error) {
	log := logger.FromContext(ctx)

	var value string

	err := c.DB.QueryRowContext(ctx, getKV, checkpointKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		log.Err(err).
			Str("func", "checkpointStore.Load").
			Msg("failed to read checkpoint")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var checkpoint models.SyncCheckpoint
	if unmarshalErr := json.Unmarshal([]byte(value), &checkpoint); unmarshalErr != nil {
		log.Warn().
			Str("func", "checkpointStore.Load").
			Msg("discarding unreadable checkpoint")
		return nil, c.Clear(ctx)
	}

	if checkpoint.Expired(time.Now()) {
		log.Info().
			Str("func", "checkpointStore.Load").
			Int("server_version", checkpoint.ServerVersion).
			Msg("discarding expired checkpoint")
		return nil, c.Clear(ctx)
	}

	return &checkpoint, nil
}

// Save overwrites the stored checkpoint.
func (c *checkpointStore) Save(ctx context.Context, checkpoint models.SyncCheckpoint) error {
	log := logger.FromContext(ctx)

	value, marshalErr := json.Marshal(checkpoint)
	if marshalErr != nil {
		log.Err(marshalErr).
			Str("func", "checkpointStore.Save").
			Msg("failed to marshal checkpoint")
		return fmt.Errorf("failed to marshal checkpoint: %w", marshalErr)
	}

	if _, execErr := c.DB.ExecContext(ctx, upsertKV, checkpointKey, string(value)); execErr != nil {
		log.Err(execErr).
			Str("func", "checkpointStore.Save").
			Int("server_version", checkpoint.ServerVersion).
			Msg("failed to write checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	log.Debug().
		Str("func", "checkpointStore.Save").
		Int("server_version", checkpoint.ServerVersion).
		Int("pending", len(checkpoint.PendingStoryIDs)).
		Int("completed", len(checkpoint.CompletedStoryIDs)).
		Msg("checkpoint saved")

	return nil
}

// Clear removes the stored checkpoint. Clearing an absent checkpoint is not
// an error.
func (c *checkpointStore) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if _, execErr := c.DB.ExecContext(ctx, deleteKV, checkpointKey); execErr != nil {
		log.Err(execErr).
			Str("func", "checkpointStore.Clear").
			Msg("failed to clear checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	return nil
}
