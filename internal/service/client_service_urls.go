package service

import (
	"context"

	"github.com/telltale-app/storysync/internal/adapter"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/models"
)

// defaultURLBatchSize is the fixed batch size for signed-URL resolution.
const defaultURLBatchSize = 50

// batchURLResolver amortizes signed-URL issuance: N asset paths cost
// ceil(N/batchSize) round-trips instead of N. Downloads themselves still
// happen per asset.
type batchURLResolver struct {
	adapter   adapter.AuthorityAdapter
	batchSize int

	logger *logger.Logger
}

func NewBatchURLResolver(authorityAdapter adapter.AuthorityAdapter, batchSize int, logger *logger.Logger) URLResolver {
	if batchSize <= 0 {
		batchSize = defaultURLBatchSize
	}

	return &batchURLResolver{
		adapter:   authorityAdapter,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Resolve issues signed URLs for every path, splitting the request into
// fixed-size batches. Exactly batchSize paths produce exactly one request;
// batchSize+1 produce two, the second carrying a single path.
func (b *batchURLResolver) Resolve(ctx context.Context, paths []string) (map[string]models.SignedURLEntry, []string, error) {
	log := logger.FromContext(ctx)

	resolved := make(map[string]models.SignedURLEntry, len(paths))
	failed := make([]string, 0)

	for start := 0; start < len(paths); start += b.batchSize {
		end := start + b.batchSize
		if end > len(paths) {
			end = len(paths)
		}

		batch, err := b.adapter.ResolveAssetURLs(ctx, paths[start:end])
		if err != nil {
			log.Err(err).
				Str("func", "batchURLResolver.Resolve").
				Int("batch_start", start).
				Int("batch_size", end-start).
				Msg("failed to resolve url batch")
			return nil, nil, err
		}

		for _, entry := range batch.URLs {
			resolved[entry.Path] = entry
		}
		failed = append(failed, batch.Failed...)
	}

	log.Debug().
		Str("func", "batchURLResolver.Resolve").
		Int("paths", len(paths)).
		Int("resolved", len(resolved)).
		Int("failed", len(failed)).
		Msg("asset urls resolved")

	return resolved, failed, nil
}
