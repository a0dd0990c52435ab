package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/telltale-app/storysync/internal/checksum"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/store"
	"github.com/telltale-app/storysync/models"
)

// contentService owns the authority story catalog. Every write keeps the
// singleton content version record in lock-step with the story table: the
// checksum map always reflects exactly the live story set, and the version
// counter bumps by one per mutation.
type contentService struct {
	stories  store.StoryRepository
	versions store.ContentVersionRepository

	logger *logger.Logger
}

func NewContentService(stories store.StoryRepository, versions store.ContentVersionRepository, logger *logger.Logger) ContentService {
	return &contentService{
		stories:  stories,
		versions: versions,
		logger:   logger,
	}
}

// GetContentVersion returns the current version record, bootstrapping the
// initial one the first time the authority runs.
func (c *contentService) GetContentVersion(ctx context.Context) (models.ContentVersion, error) {
	version, err := c.versions.GetContentVersion(ctx)
	if err != nil {
		if errors.Is(err, store.ErrContentVersionNotFound) {
			return c.versions.SaveContentVersion(ctx, models.NewContentVersion())
		}
		return models.ContentVersion{}, err
	}

	return version, nil
}

// ResolveDelta compares the client's checksum map against the authority's
// current one and returns exactly the stories whose checksum differs plus
// the ids the client holds that no longer exist. The comparison needs no
// per-client state, only the request payload.
func (c *contentService) ResolveDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error) {
	log := logger.FromContext(ctx)

	if req.ClientVersion == nil {
		return models.DeltaSyncResponse{}, fmt.Errorf("%w: clientVersion", ErrMissingRequiredField)
	}
	if req.LastSyncTimestamp == nil {
		return models.DeltaSyncResponse{}, fmt.Errorf("%w: lastSyncTimestamp", ErrMissingRequiredField)
	}
	if req.StoryChecksums == nil {
		return models.DeltaSyncResponse{}, fmt.Errorf("%w: storyChecksums", ErrMissingRequiredField)
	}

	version, err := c.GetContentVersion(ctx)
	if err != nil {
		return models.DeltaSyncResponse{}, err
	}

	changedIDs := make([]string, 0, len(version.Checksums))
	for storyID := range version.Checksums {
		if version.HasChanged(storyID, req.StoryChecksums[storyID]) {
			changedIDs = append(changedIDs, storyID)
		}
	}

	deletedIDs := make([]string, 0)
	for storyID := range req.StoryChecksums {
		if _, live := version.Checksums[storyID]; !live {
			deletedIDs = append(deletedIDs, storyID)
		}
	}

	changed, err := c.stories.GetStories(ctx, changedIDs...)
	if err != nil {
		return models.DeltaSyncResponse{}, err
	}

	log.Info().
		Str("func", "contentService.ResolveDelta").
		Int("client_version", *req.ClientVersion).
		Int("server_version", version.Version).
		Int("changed", len(changed)).
		Int("deleted", len(deletedIDs)).
		Msg("delta resolved")

	return models.DeltaSyncResponse{
		ServerVersion:   version.Version,
		AssetVersion:    version.Version,
		Stories:         changed,
		DeletedStoryIDs: deletedIDs,
		StoryChecksums:  version.Checksums,
		TotalStories:    version.TotalStories,
		UpdatedCount:    len(changed),
		LastUpdated:     version.LastUpdated.UnixMilli(),
	}, nil
}

func (c *contentService) GetStory(ctx context.Context, storyID string) (models.Story, error) {
	if storyID == "" {
		return models.Story{}, fmt.Errorf("%w: storyId", ErrValidationNoStoryID)
	}

	return c.stories.GetStory(ctx, storyID)
}

func (c *contentService) GetAllStories(ctx context.Context) ([]models.Story, error) {
	return c.stories.GetAllStories(ctx)
}

// GetStoriesByCategory lists the stories filed under a category.
func (c *contentService) GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category", ErrValidationNoCategory)
	}

	return c.stories.GetStoriesByCategory(ctx, category)
}

// SaveStory creates a new story. The content checksum is computed here, not
// trusted from the caller, and the version record is updated in the same
// call so readers never observe a story without its index entry.
func (c *contentService) SaveStory(ctx context.Context, story models.Story) (models.Story, error) {
	if story.ID == "" {
		return models.Story{}, fmt.Errorf("%w: storyId", ErrValidationNoStoryID)
	}

	story.Checksum = checksum.Story(story)

	saved, err := c.stories.SaveStory(ctx, story)
	if err != nil {
		return models.Story{}, err
	}

	if err = c.recordChecksum(ctx, saved.ID, saved.Checksum); err != nil {
		return models.Story{}, err
	}

	return saved, nil
}

// UpdateStory overwrites an existing story, recomputing its checksum and
// bumping the global version.
func (c *contentService) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	if story.ID == "" {
		return models.Story{}, fmt.Errorf("%w: storyId", ErrValidationNoStoryID)
	}

	story.Checksum = checksum.Story(story)

	updated, err := c.stories.UpdateStory(ctx, story)
	if err != nil {
		return models.Story{}, err
	}

	if err = c.recordChecksum(ctx, updated.ID, updated.Checksum); err != nil {
		return models.Story{}, err
	}

	return updated, nil
}

// DeleteStory removes a story and drops it from the checksum index, which
// is how clients learn about the deletion on their next delta.
func (c *contentService) DeleteStory(ctx context.Context, storyID string) error {
	if storyID == "" {
		return fmt.Errorf("%w: storyId", ErrValidationNoStoryID)
	}

	if err := c.stories.DeleteStory(ctx, storyID); err != nil {
		return err
	}

	version, err := c.GetContentVersion(ctx)
	if err != nil {
		return err
	}

	version.RemoveChecksum(storyID)

	_, err = c.versions.SaveContentVersion(ctx, version)
	return err
}

func (c *contentService) recordChecksum(ctx context.Context, storyID, sum string) error {
	version, err := c.GetContentVersion(ctx)
	if err != nil {
		return err
	}

	version.SetChecksum(storyID, sum)

	_, err = c.versions.SaveContentVersion(ctx, version)
	return err
}
