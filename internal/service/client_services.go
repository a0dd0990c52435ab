package service

import (
	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/config"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/store"
)

type ClientServices struct {
	URLResolver  URLResolver
	AssetFetcher AssetFetcher
	SyncService  ClientSyncService
	SyncJob      ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, authorityAdapter adapter.AuthorityAdapter, cfg config.ClientConfig, logger *logger.Logger) *ClientServices {
	urls := NewBatchURLResolver(authorityAdapter, cfg.Sync.URLBatchSize, logger)
	fetcher := NewRetryingFetcher(storages.Cache, cfg.Sync.MaxRetries, logger)
	syncSvc := NewClientSyncService(
		authorityAdapter,
		storages.Cache,
		storages.Checkpoint,
		urls,
		fetcher,
		cfg.Sync.Concurrency,
		logger,
	)

	return &ClientServices{
		URLResolver:  urls,
		AssetFetcher: fetcher,
		SyncService:  syncSvc,
		SyncJob:      NewClientSyncJob(syncSvc, logger),
	}
}
