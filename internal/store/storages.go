package store

import "github.com/telltale-app/storysync/internal/logger"

// Storages bundles the authority-side persistence implementations handed
// to the service layer.
type Storages struct {
	StoryRepository          StoryRepository
	ContentVersionRepository ContentVersionRepository
	AssetStore               AssetStore
}

func NewStorages(db *DB, assetDir string, log *logger.Logger) *Storages {
	return &Storages{
		StoryRepository:          NewStoryRepository(db, log),
		ContentVersionRepository: NewContentVersionRepository(db, log),
		AssetStore:               NewFileAssetStore(assetDir, log),
	}
}
