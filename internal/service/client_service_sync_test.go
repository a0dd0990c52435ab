// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Telltale Labs

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/mock"
	"github.com/telltale-app/storysync/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type syncMocks struct {
	adapter    *mock.MockAuthorityAdapter
	cache      *mock.MockCacheStore
	checkpoint *mock.MockCheckpointStore
	urls       *mock.MockURLResolver
	fetcher    *mock.MockAssetFetcher
}

func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller, concurrency int) (*clientSyncService, syncMocks) {
	t.Helper()

	m := syncMocks{
		adapter:    mock.NewMockAuthorityAdapter(ctrl),
		cache:      mock.NewMockCacheStore(ctrl),
		checkpoint: mock.NewMockCheckpointStore(ctrl),
		urls:       mock.NewMockURLResolver(ctrl),
		fetcher:    mock.NewMockAssetFetcher(ctrl),
	}

	svc := NewClientSyncService(m.adapter, m.cache, m.checkpoint, m.urls, m.fetcher, concurrency, logger.Nop()).(*clientSyncService)

	return svc, m
}

// phaseRecorder collects every phase a pass reports, in order.
type phaseRecorder struct {
	mu     sync.Mutex
	phases []models.SyncPhase
}

func (r *phaseRecorder) sink(p models.SyncProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, p.Phase)
}

func (r *phaseRecorder) saw(phase models.SyncPhase) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.phases {
		if p == phase {
			return true
		}
	}
	return false
}

func storyWithAssets(id string, assetPaths ...string) models.Story {
	story := models.Story{ID: id, Title: "Story " + id, Category: "bedtime", Version: 1, Available: true}
	if len(assetPaths) > 0 {
		story.CoverImage = assetPaths[0]
	}
	for i, path := range assetPaths[1:] {
		story.Pages = append(story.Pages, models.StoryPage{
			PageNumber:      i + 1,
			BackgroundImage: path,
		})
	}
	return story
}

func urlEntries(paths ...string) map[string]models.SignedURLEntry {
	entries := make(map[string]models.SignedURLEntry, len(paths))
	for _, path := range paths {
		entries[path] = models.SignedURLEntry{
			Path:      path,
			SignedURL: "/api/assets/download?path=" + path + "&token=tok",
			ExpiresAt: time.Now().Add(15 * time.Minute).UnixMilli(),
		}
	}
	return entries
}

func offlineErr() error {
	return &adapter.FetchError{Kind: adapter.FetchConnection, Err: errors.New("dial tcp: connection refused")}
}

// ─────────────────────────────────────────────
// Short-circuit outcomes
// ─────────────────────────────────────────────

func TestClientSyncService_Sync_OfflineServesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 2}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{}, offlineErr())

	rec := &phaseRecorder{}
	result, err := svc.Sync(ctx, rec.sink)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.FromCache)
	assert.False(t, result.WasSkipped)
	assert.Zero(t, result.AssetsDownloaded)
	assert.Empty(t, result.Errors)
	assert.True(t, rec.saw(models.PhaseCheckingVersion))
	assert.True(t, rec.saw(models.PhaseComplete))
}

func TestClientSyncService_Sync_UpToDateSkips(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 3}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 3}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)

	rec := &phaseRecorder{}
	result, err := svc.Sync(ctx, rec.sink)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.WasSkipped)
	assert.False(t, result.FromCache)
	assert.True(t, rec.saw(models.PhaseValidatingCache))
	assert.True(t, rec.saw(models.PhaseComplete))
}

func TestClientSyncService_Sync_VersionProbeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	// A non-offline probe failure (e.g. a 400) fails the pass instead of
	// serving from cache.
	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).
		Return(models.ContentVersionResponse{}, &adapter.FetchError{Kind: adapter.FetchPermanent, Err: errors.New("bad request")})

	rec := &phaseRecorder{}
	result, err := svc.Sync(ctx, rec.sink)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.False(t, result.FromCache)
	assert.Len(t, result.Errors, 1)
	assert.True(t, rec.saw(models.PhaseFailed))
}

// ─────────────────────────────────────────────
// Full pass
// ─────────────────────────────────────────────

func TestClientSyncService_Sync_FullPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	story := storyWithAssets("forest", "images/forest-cover.png", "images/forest-bg.png")

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 1}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 2}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error) {
			require.NotNil(t, req.ClientVersion)
			assert.Equal(t, 1, *req.ClientVersion)
			return models.DeltaSyncResponse{
				ServerVersion:  2,
				AssetVersion:   2,
				Stories:        []models.Story{story},
				StoryChecksums: map[string]string{"forest": "abc"},
			}, nil
		})
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().CheckDiskSpaceForSync(int64(1)*estimatedBytesPerStory).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.cache.EXPECT().HasAsset(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), []string{"images/forest-cover.png", "images/forest-bg.png"}).
		Return(urlEntries("images/forest-cover.png", "images/forest-bg.png"), nil, nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/forest-cover.png").Return("/cache/images/forest-cover.png", nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/forest-bg.png").Return("/cache/images/forest-bg.png", nil)
	m.cache.EXPECT().UpdateStories(gomock.Any(), story).Return(nil)
	m.cache.EXPECT().SetSyncState(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, state models.ClientSyncState) error {
			assert.Equal(t, 2, state.ServerVersion)
			assert.Equal(t, 2, state.AssetVersion)
			return nil
		})
	m.checkpoint.EXPECT().Clear(gomock.Any()).Return(nil)

	rec := &phaseRecorder{}
	result, err := svc.Sync(ctx, rec.sink)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.StoriesUpdated)
	assert.Equal(t, 2, result.AssetsDownloaded)
	assert.Zero(t, result.AssetsFailed)
	assert.Empty(t, result.Errors)

	for _, phase := range []models.SyncPhase{
		models.PhaseCheckingVersion,
		models.PhaseValidatingCache,
		models.PhaseFetchingDelta,
		models.PhaseResolvingAssetURLs,
		models.PhaseDownloadingAssets,
		models.PhaseCommitting,
		models.PhaseComplete,
	} {
		assert.True(t, rec.saw(phase), "missing phase %s", phase)
	}
}

func TestClientSyncService_Sync_FailedAssetLeavesStoryUncommitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	good := storyWithAssets("forest", "images/forest-cover.png")
	bad := storyWithAssets("ocean", "images/ocean-cover.png")

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 1}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 2}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion: 2,
		AssetVersion:  2,
		Stories:       []models.Story{good, bad},
	}, nil)
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().CheckDiskSpaceForSync(gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.cache.EXPECT().HasAsset(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(urlEntries("images/forest-cover.png", "images/ocean-cover.png"), nil, nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/forest-cover.png").Return("/cache/images/forest-cover.png", nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/ocean-cover.png").
		Return("", fmt.Errorf("asset not found"))

	// Only the healthy story commits; SetSyncState and Clear must not run.
	m.cache.EXPECT().UpdateStories(gomock.Any(), good).Return(nil)

	rec := &phaseRecorder{}
	result, err := svc.Sync(ctx, rec.sink)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.StoriesUpdated)
	assert.Equal(t, 1, result.AssetsDownloaded)
	assert.Equal(t, 1, result.AssetsFailed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "ocean")
	assert.True(t, rec.saw(models.PhaseFailed))
}

func TestClientSyncService_Sync_DeletionsBeforeDownloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	story := storyWithAssets("forest", "images/forest-cover.png")

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 1}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 2}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{"old-story": "zzz"}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion:   2,
		Stories:         []models.Story{story},
		DeletedStoryIDs: []string{"old-story"},
	}, nil)
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(nil, nil)

	removed := m.cache.EXPECT().RemoveStories(gomock.Any(), "old-story").Return(nil)

	m.cache.EXPECT().CheckDiskSpaceForSync(gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.cache.EXPECT().HasAsset(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(urlEntries("images/forest-cover.png"), nil, nil).
		After(removed)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/forest-cover.png").Return("/cache/images/forest-cover.png", nil)
	m.cache.EXPECT().UpdateStories(gomock.Any(), story).Return(nil)
	m.cache.EXPECT().SetSyncState(gomock.Any(), gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Clear(gomock.Any()).Return(nil)

	result, err := svc.Sync(ctx, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.StoriesDeleted)
	assert.Equal(t, 1, result.StoriesUpdated)
}

func TestClientSyncService_Sync_InsufficientDiskSpace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	story := storyWithAssets("forest", "images/forest-cover.png")

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 1}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion: 1,
		Stories:       []models.Story{story},
	}, nil)
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().CheckDiskSpaceForSync(gomock.Any()).Return(errors.New("insufficient disk space for sync"))

	rec := &phaseRecorder{}
	result, err := svc.Sync(ctx, rec.sink)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "disk space")
	assert.True(t, rec.saw(models.PhaseFailed))
	assert.False(t, rec.saw(models.PhaseDownloadingAssets))
}

// ─────────────────────────────────────────────
// Checkpoint resume
// ─────────────────────────────────────────────

func TestClientSyncService_Sync_ResumesFromCheckpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	stories := make([]models.Story, 0, 5)
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		stories = append(stories, storyWithAssets(id, "images/"+id+".png"))
	}

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 1}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 2}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion: 2,
		Stories:       stories,
	}, nil)

	// An interrupted pass towards the same version already committed s1 and
	// s2, so only the remaining three are processed again.
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(&models.SyncCheckpoint{
		ServerVersion:     2,
		PendingStoryIDs:   []string{"s3", "s4", "s5"},
		CompletedStoryIDs: []string{"s1", "s2"},
		CreatedAt:         time.Now().Add(-time.Minute),
		ExpiresAt:         time.Now().Add(models.CheckpointTTL),
	}, nil)

	m.cache.EXPECT().CheckDiskSpaceForSync(int64(3)*estimatedBytesPerStory).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(4)
	m.cache.EXPECT().HasAsset(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), []string{"images/s3.png", "images/s4.png", "images/s5.png"}).
		Return(urlEntries("images/s3.png", "images/s4.png", "images/s5.png"), nil, nil)

	for _, id := range []string{"s3", "s4", "s5"} {
		m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/"+id+".png").Return("/cache/images/"+id+".png", nil)
	}
	m.cache.EXPECT().UpdateStories(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	m.cache.EXPECT().SetSyncState(gomock.Any(), gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Clear(gomock.Any()).Return(nil)

	result, err := svc.Sync(ctx, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.StoriesUpdated)
	assert.Equal(t, 3, result.AssetsDownloaded)
}

func TestClientSyncService_Sync_DiscardsCheckpointFromOtherVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	story := storyWithAssets("forest", "images/forest-cover.png")

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 1}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 3}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion: 3,
		Stories:       []models.Story{story},
	}, nil)

	// Checkpoint targets version 2 but the authority moved on to 3: the
	// pass drops it and processes everything from scratch.
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(&models.SyncCheckpoint{
		ServerVersion:     2,
		CompletedStoryIDs: []string{"forest"},
		ExpiresAt:         time.Now().Add(models.CheckpointTTL),
	}, nil)
	staleClear := m.checkpoint.EXPECT().Clear(gomock.Any()).Return(nil)

	m.cache.EXPECT().CheckDiskSpaceForSync(gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.cache.EXPECT().HasAsset(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(urlEntries("images/forest-cover.png"), nil, nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/forest-cover.png").Return("/cache/images/forest-cover.png", nil)
	m.cache.EXPECT().UpdateStories(gomock.Any(), story).Return(nil)
	m.cache.EXPECT().SetSyncState(gomock.Any(), gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Clear(gomock.Any()).Return(nil).After(staleClear)

	result, err := svc.Sync(ctx, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.StoriesUpdated)
}

// ─────────────────────────────────────────────
// Cache repair
// ─────────────────────────────────────────────

func TestClientSyncService_Sync_CorruptedAssetsForceRepair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	cached := storyWithAssets("forest", "images/forest-cover.png")

	// Versions match, but a cached asset failed validation: the pass still
	// runs and re-downloads the corrupted file's story.
	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 3}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 3}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return([]string{"images/forest-cover.png"}, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{"forest": "abc"}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion:  3,
		StoryChecksums: map[string]string{"forest": "abc"},
	}, nil)
	m.cache.EXPECT().GetStories(gomock.Any()).Return([]models.Story{cached}, nil)
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().CheckDiskSpaceForSync(gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.cache.EXPECT().HasAsset(gomock.Any(), "images/forest-cover.png").Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), []string{"images/forest-cover.png"}).
		Return(urlEntries("images/forest-cover.png"), nil, nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), "images/forest-cover.png").Return("/cache/images/forest-cover.png", nil)
	m.cache.EXPECT().UpdateStories(gomock.Any(), cached).Return(nil)
	m.cache.EXPECT().SetSyncState(gomock.Any(), gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Clear(gomock.Any()).Return(nil)

	result, err := svc.Sync(ctx, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.WasSkipped)
	assert.Equal(t, 1, result.StoriesUpdated)
	assert.Equal(t, 1, result.AssetsDownloaded)
}

func TestClientSyncService_Sync_UnresolvableAssetFailsStory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	story := storyWithAssets("forest", "images/forest-cover.png")

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).Return(models.ContentVersionResponse{Version: 1}, nil)
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().GetStoryChecksums(gomock.Any()).Return(map[string]string{}, nil)
	m.adapter.EXPECT().GetDelta(gomock.Any(), gomock.Any()).Return(models.DeltaSyncResponse{
		ServerVersion: 1,
		Stories:       []models.Story{story},
	}, nil)
	m.checkpoint.EXPECT().Load(gomock.Any()).Return(nil, nil)
	m.cache.EXPECT().CheckDiskSpaceForSync(gomock.Any()).Return(nil)
	m.checkpoint.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	m.cache.EXPECT().HasAsset(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	m.urls.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(map[string]models.SignedURLEntry{}, []string{"images/forest-cover.png"}, nil)

	result, err := svc.Sync(ctx, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Zero(t, result.StoriesUpdated)
	assert.Equal(t, 1, result.AssetsFailed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no signed url")
}

// ─────────────────────────────────────────────
// Single-flight
// ─────────────────────────────────────────────

func TestClientSyncService_Sync_ConcurrentCallerJoinsInFlightPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	release := make(chan struct{})

	m.cache.EXPECT().GetSyncState(gomock.Any()).Return(models.ClientSyncState{ServerVersion: 7}, nil)
	m.adapter.EXPECT().GetContentVersion(gomock.Any()).
		DoAndReturn(func(context.Context) (models.ContentVersionResponse, error) {
			<-release
			return models.ContentVersionResponse{Version: 7}, nil
		})
	m.cache.EXPECT().ValidateAllAssets(gomock.Any()).Return(nil, nil)

	var (
		wg           sync.WaitGroup
		leaderResult models.SyncResult
		joinerResult models.SyncResult
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		leaderResult, _ = svc.Sync(ctx, nil)
	}()

	// Wait for the leader to own the pass before the second caller arrives.
	require.Eventually(t, func() bool { return svc.running.Load() }, time.Second, time.Millisecond)

	joinerRec := &phaseRecorder{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		joinerResult, _ = svc.Sync(ctx, joinerRec.sink)
	}()

	// Let the joiner report before the leader finishes the pass.
	require.Eventually(t, func() bool { return joinerRec.saw(models.PhaseAlreadyRunning) }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	// One pass ran (every expectation above allows a single call) and both
	// callers saw its result.
	assert.True(t, leaderResult.WasSkipped)
	assert.Equal(t, leaderResult, joinerResult)
}

func TestClientSyncService_GetCachedStories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestSyncSvc(t, ctrl, 1)
	ctx := context.Background()

	want := []models.Story{storyWithAssets("forest", "images/forest-cover.png")}
	m.cache.EXPECT().GetStories(gomock.Any()).Return(want, nil)

	got, err := svc.GetCachedStories(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
