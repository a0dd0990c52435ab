package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/service"
	"github.com/telltale-app/storysync/models"
)

// ─────────────────────────────────────────────
// Mocks
// ─────────────────────────────────────────────

// mockContentService implements service.ContentService with pluggable
// functions; unset functions return zero values.
type mockContentService struct {
	getVersionFn   func(ctx context.Context) (models.ContentVersion, error)
	resolveDeltaFn func(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error)
	getStoryFn     func(ctx context.Context, storyID string) (models.Story, error)
	getAllFn       func(ctx context.Context) ([]models.Story, error)
	getByCatFn     func(ctx context.Context, category string) ([]models.Story, error)
	saveFn         func(ctx context.Context, story models.Story) (models.Story, error)
	updateFn       func(ctx context.Context, story models.Story) (models.Story, error)
	deleteFn       func(ctx context.Context, storyID string) error
}

func (m *mockContentService) GetContentVersion(ctx context.Context) (models.ContentVersion, error) {
	if m.getVersionFn != nil {
		return m.getVersionFn(ctx)
	}
	return models.ContentVersion{}, nil
}

func (m *mockContentService) ResolveDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error) {
	if m.resolveDeltaFn != nil {
		return m.resolveDeltaFn(ctx, req)
	}
	return models.DeltaSyncResponse{}, nil
}

func (m *mockContentService) GetStory(ctx context.Context, storyID string) (models.Story, error) {
	if m.getStoryFn != nil {
		return m.getStoryFn(ctx, storyID)
	}
	return models.Story{}, nil
}

func (m *mockContentService) GetAllStories(ctx context.Context) ([]models.Story, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockContentService) GetStoriesByCategory(ctx context.Context, category string) ([]models.Story, error) {
	if m.getByCatFn != nil {
		return m.getByCatFn(ctx, category)
	}
	return nil, nil
}

func (m *mockContentService) SaveStory(ctx context.Context, story models.Story) (models.Story, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, story)
	}
	return story, nil
}

func (m *mockContentService) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, story)
	}
	return story, nil
}

func (m *mockContentService) DeleteStory(ctx context.Context, storyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, storyID)
	}
	return nil
}

// mockAssetURLService implements service.AssetURLService.
type mockAssetURLService struct {
	issueFn      func(ctx context.Context, path string) (models.SignedURLResponse, error)
	issueBatchFn func(ctx context.Context, paths []string) (models.BatchURLsResponse, error)
	openFn       func(ctx context.Context, path string, token string) ([]byte, error)
}

func (m *mockAssetURLService) IssueURL(ctx context.Context, path string) (models.SignedURLResponse, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, path)
	}
	return models.SignedURLResponse{}, nil
}

func (m *mockAssetURLService) IssueURLs(ctx context.Context, paths []string) (models.BatchURLsResponse, error) {
	if m.issueBatchFn != nil {
		return m.issueBatchFn(ctx, paths)
	}
	return models.BatchURLsResponse{}, nil
}

func (m *mockAssetURLService) OpenAsset(ctx context.Context, path string, token string) ([]byte, error) {
	if m.openFn != nil {
		return m.openFn(ctx, path, token)
	}
	return nil, nil
}

func newTestHandler(content service.ContentService, assetURLs service.AssetURLService) *Handler {
	return NewHandler(
		&service.Services{
			ContentService:  content,
			AssetURLService: assetURLs,
		},
		logger.Nop(),
	)
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(&mockContentService{}, &mockAssetURLService{})
	require.NotNil(t, h)
	require.NotNil(t, h.services)
}
