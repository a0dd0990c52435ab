// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Telltale Labs

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/assets"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/store"
	"github.com/telltale-app/storysync/models"
)

// estimatedBytesPerStory is the disk-space heuristic used before downloads
// start: a story's page images plus cover rarely exceed a few megabytes.
const estimatedBytesPerStory int64 = 5 << 20

// syncKey is the singleflight key; there is only ever one kind of pass.
const syncKey = "sync"

// clientSyncService drives the local cache towards the authority's current
// content set. At most one pass runs per process: concurrent callers join
// the in-flight pass through singleflight and share its result.
type clientSyncService struct {
	adapter    adapter.AuthorityAdapter
	cache      store.CacheStore
	checkpoint store.CheckpointStore
	urls       URLResolver
	fetcher    AssetFetcher

	concurrency int

	group   singleflight.Group
	running atomic.Bool

	logger *logger.Logger
}

func NewClientSyncService(
	authorityAdapter adapter.AuthorityAdapter,
	cache store.CacheStore,
	checkpoint store.CheckpointStore,
	urls URLResolver,
	fetcher AssetFetcher,
	concurrency int,
	logger *logger.Logger,
) ClientSyncService {
	return &clientSyncService{
		adapter:     authorityAdapter,
		cache:       cache,
		checkpoint:  checkpoint,
		urls:        urls,
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

// progressReporter serializes sink callbacks so a caller's sink never runs
// concurrently with itself, regardless of download fan-out.
type progressReporter struct {
	mu   sync.Mutex
	sink models.ProgressSink
}

func (p *progressReporter) report(progress models.SyncProgress) {
	if p.sink == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink(progress)
}

// Sync runs one sync pass, or joins the pass already in flight. A joiner is
// told so through a PhaseAlreadyRunning progress event and then receives
// the shared result of the leader's pass.
func (s *clientSyncService) Sync(ctx context.Context, sink models.ProgressSink) (models.SyncResult, error) {
	if s.running.Load() && sink != nil {
		sink(models.SyncProgress{
			Phase:   models.PhaseAlreadyRunning,
			Message: "joining in-flight sync pass",
		})
	}

	v, err, shared := s.group.Do(syncKey, func() (interface{}, error) {
		s.running.Store(true)
		defer s.running.Store(false)

		return s.runPass(ctx, sink)
	})

	result, ok := v.(models.SyncResult)
	if !ok {
		return models.SyncResult{}, err
	}

	if shared {
		logger.FromContext(ctx).Debug().
			Str("func", "clientSyncService.Sync").
			Msg("shared result of in-flight sync pass")
	}

	return result, err
}

// GetCachedStories returns the locally cached story set.
func (s *clientSyncService) GetCachedStories(ctx context.Context) ([]models.Story, error) {
	return s.cache.GetStories(ctx)
}

// runPass executes the full pass state machine. Expected failures land in
// the result's Errors slice; a returned error means the local cache itself
// is unusable.
func (s *clientSyncService) runPass(ctx context.Context, sink models.ProgressSink) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	progress := &progressReporter{sink: sink}

	var result models.SyncResult

	state, err := s.cache.GetSyncState(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read sync state: %w", err)
	}

	progress.report(models.SyncProgress{Phase: models.PhaseCheckingVersion})

	remote, err := s.adapter.GetContentVersion(ctx)
	if err != nil {
		if adapter.IsOffline(err) {
			log.Warn().
				Str("func", "clientSyncService.runPass").
				Err(err).
				Msg("authority unreachable, serving cached content")

			result.Success = true
			result.FromCache = true
			progress.report(models.SyncProgress{Phase: models.PhaseComplete, Message: "offline, serving cached content"})
			return result, nil
		}

		result.Errors = append(result.Errors, fmt.Sprintf("version probe failed: %v", err))
		progress.report(models.SyncProgress{Phase: models.PhaseFailed})
		return result, nil
	}

	progress.report(models.SyncProgress{Phase: models.PhaseValidatingCache})

	corrupted, err := s.cache.ValidateAllAssets(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to validate cached assets: %w", err)
	}

	if remote.Version == state.ServerVersion && len(corrupted) == 0 {
		log.Debug().
			Str("func", "clientSyncService.runPass").
			Int("version", state.ServerVersion).
			Msg("already up to date")

		result.Success = true
		result.WasSkipped = true
		progress.report(models.SyncProgress{Phase: models.PhaseComplete, Message: "already up to date"})
		return result, nil
	}

	progress.report(models.SyncProgress{Phase: models.PhaseFetchingDelta})

	clientChecksums, err := s.cache.GetStoryChecksums(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read cached story checksums: %w", err)
	}

	clientVersion := state.ServerVersion
	lastSync := state.LastUpdated.UnixMilli()

	delta, err := s.adapter.GetDelta(ctx, models.DeltaSyncRequest{
		ClientVersion:     &clientVersion,
		LastSyncTimestamp: &lastSync,
		StoryChecksums:    clientChecksums,
	})
	if err != nil {
		if adapter.IsOffline(err) {
			result.Success = true
			result.FromCache = true
			progress.report(models.SyncProgress{Phase: models.PhaseComplete, Message: "offline, serving cached content"})
			return result, nil
		}

		result.Errors = append(result.Errors, fmt.Sprintf("delta fetch failed: %v", err))
		progress.report(models.SyncProgress{Phase: models.PhaseFailed})
		return result, nil
	}

	workList, err := s.buildWorkList(ctx, delta, corrupted)
	if err != nil {
		return result, err
	}

	// A checkpoint from an interrupted pass towards the same authority
	// version lets finished stories be skipped on resume. Any other
	// checkpoint is stale and dropped.
	checkpoint, err := s.checkpoint.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load sync checkpoint: %w", err)
	}
	if checkpoint != nil && checkpoint.ServerVersion != remote.Version {
		if clearErr := s.checkpoint.Clear(ctx); clearErr != nil {
			log.Warn().
				Str("func", "clientSyncService.runPass").
				Err(clearErr).
				Msg("failed to clear stale sync checkpoint")
		}
		checkpoint = nil
	}
	if checkpoint != nil {
		completed := make(map[string]struct{}, len(checkpoint.CompletedStoryIDs))
		for _, id := range checkpoint.CompletedStoryIDs {
			completed[id] = struct{}{}
		}

		remaining := workList[:0]
		for _, story := range workList {
			if _, done := completed[story.ID]; !done {
				remaining = append(remaining, story)
			}
		}
		workList = remaining

		log.Info().
			Str("func", "clientSyncService.runPass").
			Int("completed", len(checkpoint.CompletedStoryIDs)).
			Int("remaining", len(workList)).
			Msg("resuming interrupted sync pass")
	}

	// Deletions first: they free space and can never depend on downloads.
	if len(delta.DeletedStoryIDs) > 0 {
		if removeErr := s.cache.RemoveStories(ctx, delta.DeletedStoryIDs...); removeErr != nil {
			return result, fmt.Errorf("failed to remove deleted stories: %w", removeErr)
		}
		result.StoriesDeleted = len(delta.DeletedStoryIDs)
	}

	if len(workList) > 0 {
		if spaceErr := s.cache.CheckDiskSpaceForSync(int64(len(workList)) * estimatedBytesPerStory); spaceErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("insufficient disk space: %v", spaceErr))
			progress.report(models.SyncProgress{Phase: models.PhaseFailed})
			return result, nil
		}

		if checkpoint == nil {
			now := time.Now()
			checkpoint = &models.SyncCheckpoint{
				ServerVersion:  remote.Version,
				AssetVersion:   delta.AssetVersion,
				StoryChecksums: delta.StoryChecksums,
				CreatedAt:      now,
				ExpiresAt:      now.Add(models.CheckpointTTL),
			}
		}
		checkpoint.PendingStoryIDs = storyIDs(workList)
		if saveErr := s.checkpoint.Save(ctx, *checkpoint); saveErr != nil {
			return result, fmt.Errorf("failed to save sync checkpoint: %w", saveErr)
		}

		s.downloadAndCommit(ctx, workList, checkpoint, progress, &result)
	}

	if len(result.Errors) > 0 {
		log.Error().
			Str("func", "clientSyncService.runPass").
			Int("errors", len(result.Errors)).
			Msg("sync pass finished with errors, local version not advanced")

		progress.report(models.SyncProgress{Phase: models.PhaseFailed})
		return result, nil
	}

	// Zero errors: the cache now fully reflects the authority version, so
	// the local state may advance and the checkpoint is spent.
	newState := models.ClientSyncState{
		ServerVersion: remote.Version,
		AssetVersion:  delta.AssetVersion,
		LastUpdated:   time.Now(),
	}
	if stateErr := s.cache.SetSyncState(ctx, newState); stateErr != nil {
		return result, fmt.Errorf("failed to advance sync state: %w", stateErr)
	}
	if clearErr := s.checkpoint.Clear(ctx); clearErr != nil {
		log.Warn().
			Str("func", "clientSyncService.runPass").
			Err(clearErr).
			Msg("failed to clear sync checkpoint after successful pass")
	}

	result.Success = true
	progress.report(models.SyncProgress{Phase: models.PhaseComplete})

	log.Info().
		Str("func", "clientSyncService.runPass").
		Int("server_version", remote.Version).
		Int("stories_updated", result.StoriesUpdated).
		Int("stories_deleted", result.StoriesDeleted).
		Int("assets_downloaded", result.AssetsDownloaded).
		Msg("sync pass complete")

	return result, nil
}

// buildWorkList combines the delta's changed stories with cached stories
// that own a corrupted asset, deduplicated and with deleted ids excluded.
func (s *clientSyncService) buildWorkList(ctx context.Context, delta models.DeltaSyncResponse, corrupted []string) ([]models.Story, error) {
	deleted := make(map[string]struct{}, len(delta.DeletedStoryIDs))
	for _, id := range delta.DeletedStoryIDs {
		deleted[id] = struct{}{}
	}

	workList := make([]models.Story, 0, len(delta.Stories))
	inWork := make(map[string]struct{}, len(delta.Stories))
	for _, story := range delta.Stories {
		if _, gone := deleted[story.ID]; gone {
			continue
		}
		if _, ok := inWork[story.ID]; ok {
			continue
		}
		inWork[story.ID] = struct{}{}
		workList = append(workList, story)
	}

	if len(corrupted) == 0 {
		return workList, nil
	}

	corruptedSet := make(map[string]struct{}, len(corrupted))
	for _, path := range corrupted {
		corruptedSet[path] = struct{}{}
	}

	cached, err := s.cache.GetStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached stories: %w", err)
	}

	for _, story := range cached {
		if _, ok := inWork[story.ID]; ok {
			continue
		}
		if _, gone := deleted[story.ID]; gone {
			continue
		}

		for _, path := range assets.Locate(story) {
			if _, bad := corruptedSet[path]; bad {
				inWork[story.ID] = struct{}{}
				workList = append(workList, story)
				break
			}
		}
	}

	return workList, nil
}

// downloadAndCommit resolves signed URLs for every missing asset, downloads
// them, and commits each story atomically once all of its assets are local.
// Failures are recorded in result.Errors and never abort the other stories.
func (s *clientSyncService) downloadAndCommit(
	ctx context.Context,
	workList []models.Story,
	checkpoint *models.SyncCheckpoint,
	progress *progressReporter,
	result *models.SyncResult,
) {
	log := logger.FromContext(ctx)

	// Gather the unique missing paths across the whole work set so URL
	// resolution is batched once, not per story.
	missing := make([]string, 0)
	seen := make(map[string]struct{})
	for _, story := range workList {
		for _, path := range assets.Locate(story) {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}

			if s.cache.HasAsset(ctx, path) {
				result.AssetsSkipped++
				continue
			}
			missing = append(missing, path)
		}
	}

	progress.report(models.SyncProgress{
		Phase:       models.PhaseResolvingAssetURLs,
		AssetsTotal: len(missing),
	})

	resolved := make(map[string]models.SignedURLEntry)
	unresolvable := make(map[string]struct{})
	if len(missing) > 0 {
		urls, failed, err := s.urls.Resolve(ctx, missing)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("signed url resolution failed: %v", err))
			return
		}
		resolved = urls
		for _, path := range failed {
			unresolvable[path] = struct{}{}
		}
	}

	assetsTotal := len(missing)

	var mu sync.Mutex

	processStory := func(ctx context.Context, story models.Story) {
		downloaded := 0

		for _, path := range assets.Locate(story) {
			if s.cache.HasAsset(ctx, path) {
				continue
			}

			if _, bad := unresolvable[path]; bad {
				mu.Lock()
				result.AssetsFailed++
				result.Errors = append(result.Errors, fmt.Sprintf("story %s: no signed url for asset %s", story.ID, path))
				mu.Unlock()
				return
			}

			entry, ok := resolved[path]
			if !ok {
				mu.Lock()
				result.AssetsFailed++
				result.Errors = append(result.Errors, fmt.Sprintf("story %s: no signed url for asset %s", story.ID, path))
				mu.Unlock()
				return
			}

			if _, fetchErr := s.fetcher.Fetch(ctx, entry.SignedURL, path); fetchErr != nil {
				mu.Lock()
				result.AssetsFailed++
				result.Errors = append(result.Errors, fmt.Sprintf("story %s: failed to download asset %s: %v", story.ID, path, fetchErr))
				mu.Unlock()
				return
			}
			downloaded++

			mu.Lock()
			result.AssetsDownloaded++
			done := result.AssetsDownloaded
			mu.Unlock()

			progress.report(models.SyncProgress{
				Phase:       models.PhaseDownloadingAssets,
				StoryID:     story.ID,
				AssetsDone:  done,
				AssetsTotal: assetsTotal,
			})
		}

		// Every asset is local: the story may become visible. The commit,
		// counter updates, and checkpoint write share one critical section
		// so a resume never sees a committed story missing from the
		// checkpoint's completed set because of interleaving.
		progress.report(models.SyncProgress{Phase: models.PhaseCommitting, StoryID: story.ID})

		mu.Lock()
		defer mu.Unlock()

		if commitErr := s.cache.UpdateStories(ctx, story); commitErr != nil {
			result.AssetsFailed += downloaded
			result.Errors = append(result.Errors, fmt.Sprintf("story %s: failed to commit: %v", story.ID, commitErr))
			return
		}
		result.StoriesUpdated++

		checkpoint.MarkCompleted(story.ID)
		if saveErr := s.checkpoint.Save(ctx, *checkpoint); saveErr != nil {
			log.Warn().
				Str("func", "clientSyncService.downloadAndCommit").
				Str("story_id", story.ID).
				Err(saveErr).
				Msg("failed to persist sync checkpoint after commit")
		}
	}

	progress.report(models.SyncProgress{
		Phase:       models.PhaseDownloadingAssets,
		AssetsTotal: assetsTotal,
	})

	if s.concurrency < 2 {
		for _, story := range workList {
			processStory(ctx, story)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, story := range workList {
		story := story
		g.Go(func() error {
			processStory(gctx, story)
			return nil
		})
	}
	_ = g.Wait()
}

func storyIDs(stories []models.Story) []string {
	ids := make([]string, 0, len(stories))
	for _, story := range stories {
		ids = append(ids, story.ID)
	}
	return ids
}
