package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/telltale-app/storysync/internal/assets"
	"github.com/telltale-app/storysync/internal/config"
	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/store"
	"github.com/telltale-app/storysync/models"
)

// assetURLService signs time-limited download URLs with an HMAC token bound
// to the asset path, so an issued URL grants access to exactly one asset for
// a bounded window and nothing else.
type assetURLService struct {
	assetStore store.AssetStore
	signKey    []byte
	ttl        time.Duration

	logger *logger.Logger
}

type assetTokenClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

func NewAssetURLService(assetStore store.AssetStore, cfg config.App, logger *logger.Logger) AssetURLService {
	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &assetURLService{
		assetStore: assetStore,
		signKey:    []byte(cfg.URLSignKey),
		ttl:        ttl,
		logger:     logger,
	}
}

// IssueURL issues a signed download URL for a single asset path.
//
// Returns [assets.ErrInvalidPath] for paths outside the allowed namespaces
// and [store.ErrAssetNotFound] when no bytes exist at the path.
func (a *assetURLService) IssueURL(ctx context.Context, path string) (models.SignedURLResponse, error) {
	signed, _, err := a.issue(ctx, path)
	if err != nil {
		return models.SignedURLResponse{}, err
	}

	return models.SignedURLResponse{Path: path, SignedURL: signed}, nil
}

// IssueURLs issues signed URLs for a batch of paths in one call. Paths that
// are invalid or have no stored bytes land in Failed instead of failing the
// whole batch; the sum of URLs and Failed always equals the request size.
func (a *assetURLService) IssueURLs(ctx context.Context, paths []string) (models.BatchURLsResponse, error) {
	log := logger.FromContext(ctx)

	if len(paths) == 0 {
		return models.BatchURLsResponse{}, ErrValidationNoAssetPaths
	}

	response := models.BatchURLsResponse{
		URLs:   make([]models.SignedURLEntry, 0, len(paths)),
		Failed: make([]string, 0),
	}

	for _, path := range paths {
		signed, expiresAt, err := a.issue(ctx, path)
		if err != nil {
			response.Failed = append(response.Failed, path)
			continue
		}

		response.URLs = append(response.URLs, models.SignedURLEntry{
			Path:      path,
			SignedURL: signed,
			ExpiresAt: expiresAt.UnixMilli(),
		})
	}

	log.Info().
		Str("func", "assetURLService.IssueURLs").
		Int("requested", len(paths)).
		Int("issued", len(response.URLs)).
		Int("failed", len(response.Failed)).
		Msg("batch urls issued")

	return response, nil
}

// OpenAsset verifies the token against the requested path and returns the
// asset bytes.
func (a *assetURLService) OpenAsset(ctx context.Context, path string, token string) ([]byte, error) {
	if err := a.verify(path, token); err != nil {
		return nil, err
	}

	return a.assetStore.Open(ctx, path)
}

func (a *assetURLService) issue(ctx context.Context, path string) (string, time.Time, error) {
	log := logger.FromContext(ctx)

	if err := assets.ValidatePath(path); err != nil {
		log.Warn().
			Str("func", "assetURLService.issue").
			Str("path", path).
			Msg("rejected asset path")
		return "", time.Time{}, err
	}

	if !a.assetStore.Exists(ctx, path) {
		return "", time.Time{}, store.ErrAssetNotFound
	}

	expiresAt := time.Now().Add(a.ttl)

	claims := assetTokenClaims{
		Path: path,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signKey)
	if err != nil {
		log.Err(err).
			Str("func", "assetURLService.issue").
			Str("path", path).
			Msg("failed to sign asset token")
		return "", time.Time{}, fmt.Errorf("failed to sign asset token: %w", err)
	}

	signed := fmt.Sprintf("/api/assets/download?path=%s&token=%s", url.QueryEscape(path), token)

	return signed, expiresAt, nil
}

func (a *assetURLService) verify(path string, tokenString string) error {
	claims := &assetTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.signKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrSignedURLExpired
		}
		return fmt.Errorf("%w: %w", ErrSignedURLInvalid, err)
	}

	if !token.Valid || claims.Path != path {
		return ErrSignedURLInvalid
	}

	return nil
}
