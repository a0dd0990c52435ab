package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/models"
)

// storyRepository is the PostgreSQL-backed implementation of
// [StoryRepository]. Story pages are persisted as a single JSONB column;
// catalog-level fields (title, category, version, checksum) live in plain
// columns so that delta resolution never has to decode page payloads.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (story_id, story count, etc.).
type storyRepository struct {
	*DB
	logger *logger.Logger
}

// NewStoryRepository constructs a [StoryRepository] backed by the provided
// database connection and logger.
func NewStoryRepository(db *DB, logger *logger.Logger) StoryRepository {
	return &storyRepository{
		DB:     db,
		logger: logger,
	}
}

// GetStory retrieves a single story by its identifier.
//
// Returns [ErrStoryNotFound] when no row matches.
func (s *storyRepository) GetStory(ctx context.Context, storyID string) (models.Story, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetStoriesQuery(storyID)
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.GetStory").
			Str("story_id", storyID).
			Msg("failed to build query")
		return models.Story{}, err
	}

	row := s.DB.QueryRowContext(ctx, query, args...)

	story, scanErr := scanStory(row)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "storyRepository.GetStory").
				Str("story_id", storyID).
				Msg("story not found")
			return models.Story{}, ErrStoryNotFound
		}

		log.Err(scanErr).
			Str("func", "storyRepository.GetStory").
			Str("story_id", storyID).
			Msg("failed to scan story row")
		return models.Story{}, scanErr
	}

	return story, nil
}

// GetStories retrieves the stories whose identifiers are listed.
//
// Missing identifiers are silently skipped; the caller compares the
// returned set against the requested one when completeness matters.
func (s *storyRepository) GetStories(ctx context.Context, storyIDs ...string) ([]models.Story, error) {
	log := logger.FromContext(ctx)

	if len(storyIDs) == 0 {
		return []models.Story{}, nil
	}

	query, args, err := buildGetStoriesQuery(storyIDs...)
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.GetStories").
			Int("story_ids_count", len(storyIDs)).
			Msg("failed to build query")
		return nil, err
	}

	return s.queryStories(ctx, "storyRepository.GetStories", query, args...)
}

// GetAllStories retrieves the entire story catalog ordered by story ID.
func (s *storyRepository) GetAllStories(ctx context.Context) ([]models.Story, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetStoriesQuery()
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.GetAllStories").
			Msg("failed to build query")
		return nil, err
	}

	return s.queryStories(ctx, "storyRepository.GetAllStories", query, args...)
}

// GetStoriesByCategory retrieves the stories filed under the given category,
// ordered by story ID. An unknown category yields an empty slice.
func (s *storyRepository) GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetStoriesByCategoryQuery(category)
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.GetStoriesByCategory").
			Str("category", category).
			Msg("failed to build query")
		return nil, err
	}

	return s.queryStories(ctx, "storyRepository.GetStoriesByCategory", query, args...)
}

// SaveStory inserts a new story. The server-assigned created_at and
// updated_at timestamps are written back into the returned value.
func (s *storyRepository) SaveStory(ctx context.Context, story models.Story) (models.Story, error) {
	log := logger.FromContext(ctx)

	pagesJSON, marshalErr := json.Marshal(story.Pages)
	if marshalErr != nil {
		log.Err(marshalErr).
			Str("func", "storyRepository.SaveStory").
			Str("story_id", story.ID).
			Msg("failed to marshal story pages")
		return models.Story{}, fmt.Errorf("%w: %w", ErrMarshallingStory, marshalErr)
	}

	query, args, err := buildInsertStoryQuery(story.ID, story.Title, story.Category, story.Description, story.Version, story.CoverImage, story.Available, story.Checksum, pagesJSON)
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.SaveStory").
			Str("story_id", story.ID).
			Msg("failed to build query")
		return models.Story{}, err
	}

	queryErr := s.DB.QueryRowContext(ctx, query, args...).Scan(&story.CreatedAt, &story.UpdatedAt)
	if queryErr != nil {
		classification := s.errorClassificator.Classify(queryErr)
		log.Err(queryErr).
			Str("func", "storyRepository.SaveStory").
			Str("story_id", story.ID).
			Str("classification", classification.String()).
			Msg("failed to insert story")
		return models.Story{}, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}

	log.Info().
		Str("func", "storyRepository.SaveStory").
		Str("story_id", story.ID).
		Int("pages", len(story.Pages)).
		Msg("story saved")

	return story, nil
}

// UpdateStory overwrites an existing story row.
//
// Returns [ErrStoryNotFound] when the story does not exist.
func (s *storyRepository) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	log := logger.FromContext(ctx)

	pagesJSON, marshalErr := json.Marshal(story.Pages)
	if marshalErr != nil {
		log.Err(marshalErr).
			Str("func", "storyRepository.UpdateStory").
			Str("story_id", story.ID).
			Msg("failed to marshal story pages")
		return models.Story{}, fmt.Errorf("%w: %w", ErrMarshallingStory, marshalErr)
	}

	query, args, err := buildUpdateStoryQuery(story.ID, story.Title, story.Category, story.Description, story.Version, story.CoverImage, story.Available, story.Checksum, pagesJSON)
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.UpdateStory").
			Str("story_id", story.ID).
			Msg("failed to build query")
		return models.Story{}, err
	}

	queryErr := s.DB.QueryRowContext(ctx, query, args...).Scan(&story.CreatedAt, &story.UpdatedAt)
	if queryErr != nil {
		if errors.Is(queryErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "storyRepository.UpdateStory").
				Str("story_id", story.ID).
				Msg("story not found")
			return models.Story{}, ErrStoryNotFound
		}

		log.Err(queryErr).
			Str("func", "storyRepository.UpdateStory").
			Str("story_id", story.ID).
			Msg("failed to update story")
		return models.Story{}, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}

	return story, nil
}

// DeleteStory removes a story row.
//
// Returns [ErrStoryNotFound] when the story does not exist, so the caller
// can keep the checksum index consistent with what was actually removed.
func (s *storyRepository) DeleteStory(ctx context.Context, storyID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteStoryQuery(storyID)
	if err != nil {
		log.Err(err).
			Str("func", "storyRepository.DeleteStory").
			Str("story_id", storyID).
			Msg("failed to build query")
		return err
	}

	result, execErr := s.DB.ExecContext(ctx, query, args...)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "storyRepository.DeleteStory").
			Str("story_id", storyID).
			Msg("failed to delete story")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		log.Err(affectedErr).
			Str("func", "storyRepository.DeleteStory").
			Str("story_id", storyID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, affectedErr)
	}

	if affected == 0 {
		log.Warn().
			Str("func", "storyRepository.DeleteStory").
			Str("story_id", storyID).
			Msg("story not found")
		return ErrStoryNotFound
	}

	log.Info().
		Str("func", "storyRepository.DeleteStory").
		Str("story_id", storyID).
		Msg("story deleted")

	return nil
}

// queryStories runs a multi-row story query and scans the result set.
func (s *storyRepository) queryStories(ctx context.Context, funcName string, query string, args ...any) ([]models.Story, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := s.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", funcName).
			Msg("failed to execute query for getting stories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	stories := make([]models.Story, 0, 50)

	for rows.Next() {
		story, scanErr := scanStory(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan story row")
			return nil, scanErr
		}

		stories = append(stories, story)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return stories, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (models.Story, error) {
	var story models.Story
	var pagesJSON []byte

	scanErr := row.Scan(
		&story.ID,
		&story.Title,
		&story.Category,
		&story.Description,
		&story.Version,
		&story.CoverImage,
		&story.Available,
		&story.Checksum,
		&pagesJSON,
		&story.CreatedAt,
		&story.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Story{}, scanErr
		}
		return models.Story{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	if len(pagesJSON) > 0 {
		if unmarshalErr := json.Unmarshal(pagesJSON, &story.Pages); unmarshalErr != nil {
			return models.Story{}, fmt.Errorf("%w: %w", ErrUnmarshallingStory, unmarshalErr)
		}
	}

	return story, nil
}
