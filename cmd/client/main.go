package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/config"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/service"
	"github.com/telltale-app/storysync/internal/store"
	"github.com/telltale-app/storysync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("storysync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	authorityAdapter := adapter.NewHTTPAuthorityAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.BaseURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	storages, err := store.NewClientStorages(*cfg, authorityAdapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating client storages")
	}

	services := service.NewClientServices(storages, authorityAdapter, *cfg, log)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	result, err := services.SyncService.Sync(ctx, func(p models.SyncProgress) {
		log.Info().
			Str("phase", string(p.Phase)).
			Int("assets_done", p.AssetsDone).
			Int("assets_total", p.AssetsTotal).
			Str("story_id", p.StoryID).
			Msg("sync progress")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error running initial sync")
	}

	log.Info().
		Bool("success", result.Success).
		Bool("from_cache", result.FromCache).
		Bool("was_skipped", result.WasSkipped).
		Int("stories_updated", result.StoriesUpdated).
		Int("stories_deleted", result.StoriesDeleted).
		Int("assets_downloaded", result.AssetsDownloaded).
		Int("errors", len(result.Errors)).
		Msg("initial sync finished")

	// keep the cache fresh in the background until we are told to stop
	services.SyncJob.Start(ctx, 0)
	defer services.SyncJob.Stop()

	<-ctx.Done()
	log.Info().Msg("shutting down client")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
