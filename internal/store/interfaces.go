package store

import (
	"context"

	"github.com/telltale-app/storysync/models"
)

// StoryRepository is the authority-side persistence surface for story content.
type StoryRepository interface {
	GetStory(ctx context.Context, storyID string) (models.Story, error)
	GetStories(ctx context.Context, storyIDs ...string) ([]models.Story, error)
	GetAllStories(ctx context.Context) ([]models.Story, error)
	GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error)
	SaveStory(ctx context.Context, story models.Story) (models.Story, error)
	UpdateStory(ctx context.Context, story models.Story) (models.Story, error)
	DeleteStory(ctx context.Context, storyID string) error
}

// ContentVersionRepository persists the singleton version counter and its
// per-story checksum index.
type ContentVersionRepository interface {
	GetContentVersion(ctx context.Context) (models.ContentVersion, error)
	SaveContentVersion(ctx context.Context, version models.ContentVersion) (models.ContentVersion, error)
}

// AssetStore serves raw asset bytes referenced by story content.
type AssetStore interface {
	Open(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) bool
	Put(ctx context.Context, path string, data []byte) error
}
