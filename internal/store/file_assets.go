package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/telltale-app/storysync/internal/assets"
	"github.com/telltale-app/storysync/internal/logger"
)

// fileAssetStore serves story media from a directory on the local
// filesystem. Asset paths are logical (e.g. "images/forest/page1.png") and
// are validated against the allowed prefixes before touching the disk, so a
// crafted path can never escape the root directory.
type fileAssetStore struct {
	root   string
	logger *logger.Logger
}

// NewFileAssetStore constructs an [AssetStore] rooted at dir.
func NewFileAssetStore(dir string, logger *logger.Logger) AssetStore {
	return &fileAssetStore{
		root:   dir,
		logger: logger,
	}
}

// Open reads the full contents of the asset at the given logical path.
//
// Returns [assets.ErrInvalidPath] for paths outside the allowed namespaces
// and [ErrAssetNotFound] when the file does not exist.
func (f *fileAssetStore) Open(ctx context.Context, path string) ([]byte, error) {
	log := logger.FromContext(ctx)

	if err := assets.ValidatePath(path); err != nil {
		log.Warn().
			Str("func", "fileAssetStore.Open").
			Str("path", path).
			Msg("rejected asset path")
		return nil, err
	}

	data, readErr := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(path)))
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			log.Warn().
				Str("func", "fileAssetStore.Open").
				Str("path", path).
				Msg("asset not found")
			return nil, ErrAssetNotFound
		}

		log.Err(readErr).
			Str("func", "fileAssetStore.Open").
			Str("path", path).
			Msg("failed to read asset file")
		return nil, fmt.Errorf("failed to read asset %s: %w", path, readErr)
	}

	return data, nil
}

// Exists reports whether an asset is present at the given logical path.
// Invalid paths are treated as absent.
func (f *fileAssetStore) Exists(ctx context.Context, path string) bool {
	if err := assets.ValidatePath(path); err != nil {
		return false
	}

	info, statErr := os.Stat(filepath.Join(f.root, filepath.FromSlash(path)))
	if statErr != nil {
		return false
	}

	return !info.IsDir()
}

// Put writes asset bytes at the given logical path, creating intermediate
// directories as needed.
func (f *fileAssetStore) Put(ctx context.Context, path string, data []byte) error {
	log := logger.FromContext(ctx)

	if err := assets.ValidatePath(path); err != nil {
		log.Warn().
			Str("func", "fileAssetStore.Put").
			Str("path", path).
			Msg("rejected asset path")
		return err
	}

	target := filepath.Join(f.root, filepath.FromSlash(path))

	if mkdirErr := os.MkdirAll(filepath.Dir(target), 0o755); mkdirErr != nil {
		log.Err(mkdirErr).
			Str("func", "fileAssetStore.Put").
			Str("path", path).
			Msg("failed to create asset directory")
		return fmt.Errorf("failed to create directory for asset %s: %w", path, mkdirErr)
	}

	if writeErr := os.WriteFile(target, data, 0o644); writeErr != nil {
		log.Err(writeErr).
			Str("func", "fileAssetStore.Put").
			Str("path", path).
			Msg("failed to write asset file")
		return fmt.Errorf("failed to write asset %s: %w", path, writeErr)
	}

	return nil
}
