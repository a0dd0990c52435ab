// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Telltale Labs

// Package adapter provides transport-layer abstractions for communicating
// with the story authority.
//
// The primary abstraction is [AuthorityAdapter], which decouples the sync
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPAuthorityAdapter]).
//
// Transport failures are wrapped in [FetchError] values carrying a
// [FetchErrorKind] classification so the retry policy can distinguish
// retryable faults (expired URLs, connection loss, timeouts, DNS failures,
// 5xx responses) from permanent ones without string matching.
package adapter

import (
	"context"

	"github.com/telltale-app/storysync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/authority_adapter_mock.go -package=mock

// AuthorityAdapter defines transport-agnostic communication with the story
// authority. Implementations are responsible for serialisation and for
// mapping transport-level errors to classified [FetchError] values.
type AuthorityAdapter interface {
	// GetContentVersion fetches the authority's current content version
	// record. This is the cheap probe issued at the start of every sync
	// pass; an offline-classified error here short-circuits the pass into
	// serve-from-cache.
	GetContentVersion(ctx context.Context) (models.ContentVersionResponse, error)

	// GetDelta posts the client's version and checksum map and returns the
	// stories that changed, the ids that were deleted, and the authority's
	// full current checksum map.
	GetDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error)

	// ResolveAssetURL issues a time-limited download URL for a single asset
	// path.
	ResolveAssetURL(ctx context.Context, path string) (models.SignedURLResponse, error)

	// ResolveAssetURLs issues time-limited download URLs for a batch of
	// asset paths in one round-trip. The batch is sent as-is; splitting
	// into fixed-size batches is the caller's concern.
	ResolveAssetURLs(ctx context.Context, paths []string) (models.BatchURLsResponse, error)

	// DownloadAsset fetches raw asset bytes from a previously issued signed
	// URL.
	DownloadAsset(ctx context.Context, signedURL string) ([]byte, error)
}
