package service

import (
	"github.com/telltale-app/storysync/internal/config"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/store"
)

type Services struct {
	ContentService  ContentService
	AssetURLService AssetURLService
}

func NewServices(storages *store.Storages, cfg config.ServerConfig, logger *logger.Logger) *Services {
	return &Services{
		ContentService:  NewContentService(storages.StoryRepository, storages.ContentVersionRepository, logger),
		AssetURLService: NewAssetURLService(storages.AssetStore, cfg.App, logger),
	}
}
