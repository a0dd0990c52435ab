package service

import (
	"context"

	"github.com/telltale-app/storysync/models"
)

// ContentService is the authority-side story catalog: read/write operations
// plus delta resolution against a client's checksum map.
type ContentService interface {
	GetContentVersion(ctx context.Context) (models.ContentVersion, error)
	ResolveDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error)

	GetStory(ctx context.Context, storyID string) (models.Story, error)
	GetAllStories(ctx context.Context) ([]models.Story, error)
	GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error)
	SaveStory(ctx context.Context, story models.Story) (models.Story, error)
	UpdateStory(ctx context.Context, story models.Story) (models.Story, error)
	DeleteStory(ctx context.Context, storyID string) error
}

// AssetURLService issues and verifies time-limited asset download URLs and
// serves the underlying bytes.
type AssetURLService interface {
	IssueURL(ctx context.Context, path string) (models.SignedURLResponse, error)
	IssueURLs(ctx context.Context, paths []string) (models.BatchURLsResponse, error)
	OpenAsset(ctx context.Context, path string, token string) ([]byte, error)
}
