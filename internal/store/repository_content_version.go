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

// contentVersionRepository is the PostgreSQL-backed implementation of
// [ContentVersionRepository]. The table holds a single row keyed by
// [models.ContentVersionID]; the per-story checksum index is stored as JSONB.
type contentVersionRepository struct {
	*DB
	logger *logger.Logger
}

// NewContentVersionRepository constructs a [ContentVersionRepository] backed
// by the provided database connection and logger.
func NewContentVersionRepository(db *DB, logger *logger.Logger) ContentVersionRepository {
	return &contentVersionRepository{
		DB:     db,
		logger: logger,
	}
}

// GetContentVersion reads the singleton counter row.
//
// Returns [ErrContentVersionNotFound] when the row has never been written;
// callers bootstrap a fresh counter in that case.
func (c *contentVersionRepository) GetContentVersion(ctx context.Context) (models.ContentVersion, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetContentVersionQuery(models.ContentVersionID)
	if err != nil {
		log.Err(err).
			Str("func", "contentVersionRepository.GetContentVersion").
			Msg("failed to build query")
		return models.ContentVersion{}, err
	}

	var version models.ContentVersion
	var lastUpdated int64
	var checksumsJSON []byte

	queryErr := c.DB.QueryRowContext(ctx, query, args...).Scan(
		&version.ID,
		&version.Version,
		&version.TotalStories,
		&lastUpdated,
		&checksumsJSON,
	)
	if queryErr != nil {
		if errors.Is(queryErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "contentVersionRepository.GetContentVersion").
				Msg("content version row not found")
			return models.ContentVersion{}, ErrContentVersionNotFound
		}

		log.Err(queryErr).
			Str("func", "contentVersionRepository.GetContentVersion").
			Msg("failed to scan content version row")
		return models.ContentVersion{}, fmt.Errorf("%w: %w", ErrScanningRow, queryErr)
	}

	version.LastUpdated = time.UnixMilli(lastUpdated)
	version.Checksums = make(map[string]string)
	if len(checksumsJSON) > 0 {
		if unmarshalErr := json.Unmarshal(checksumsJSON, &version.Checksums); unmarshalErr != nil {
			log.Err(unmarshalErr).
				Str("func", "contentVersionRepository.GetContentVersion").
				Msg("failed to unmarshal checksum index")
			return models.ContentVersion{}, fmt.Errorf("%w: %w", ErrScanningRow, unmarshalErr)
		}
	}

	return version, nil
}

// SaveContentVersion upserts the singleton counter row.
func (c *contentVersionRepository) SaveContentVersion(ctx context.Context, version models.ContentVersion) (models.ContentVersion, error) {
	log := logger.FromContext(ctx)

	checksumsJSON, marshalErr := json.Marshal(version.Checksums)
	if marshalErr != nil {
		log.Err(marshalErr).
			Str("func", "contentVersionRepository.SaveContentVersion").
			Msg("failed to marshal checksum index")
		return models.ContentVersion{}, fmt.Errorf("%w: %w", ErrMarshallingStory, marshalErr)
	}

	query, args, err := buildUpsertContentVersionQuery(version.ID, version.Version, version.TotalStories, version.LastUpdated.UnixMilli(), checksumsJSON)
	if err != nil {
		log.Err(err).
			Str("func", "contentVersionRepository.SaveContentVersion").
			Msg("failed to build query")
		return models.ContentVersion{}, err
	}

	if _, execErr := c.DB.ExecContext(ctx, query, args...); execErr != nil {
		classification := c.errorClassificator.Classify(execErr)
		log.Err(execErr).
			Str("func", "contentVersionRepository.SaveContentVersion").
			Int("version", version.Version).
			Str("classification", classification.String()).
			Msg("failed to upsert content version")
		return models.ContentVersion{}, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	log.Info().
		Str("func", "contentVersionRepository.SaveContentVersion").
		Int("version", version.Version).
		Int("total_stories", version.TotalStories).
		Msg("content version saved")

	return version, nil
}
