package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/telltale-app/storysync/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpAuthorityAdapter struct {
	client *resty.Client
}

func NewHTTPAuthorityAdapter(cfg HTTPClientConfig) AuthorityAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpAuthorityAdapter{client: cli}
}

func (h *httpAuthorityAdapter) GetContentVersion(ctx context.Context) (models.ContentVersionResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/stories/version")
	if err != nil {
		return models.ContentVersionResponse{}, fmt.Errorf("content version request: %w", classifyTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ContentVersionResponse{}, err
	}

	var version models.ContentVersionResponse
	if err = json.Unmarshal(resp.Body(), &version); err != nil {
		return models.ContentVersionResponse{}, fmt.Errorf("decode content version response: %w", err)
	}

	return version, nil
}

func (h *httpAuthorityAdapter) GetDelta(ctx context.Context, req models.DeltaSyncRequest) (models.DeltaSyncResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/stories/delta")
	if err != nil {
		return models.DeltaSyncResponse{}, fmt.Errorf("delta request: %w", classifyTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeltaSyncResponse{}, err
	}

	var delta models.DeltaSyncResponse
	if err = json.Unmarshal(resp.Body(), &delta); err != nil {
		return models.DeltaSyncResponse{}, fmt.Errorf("decode delta response: %w", err)
	}

	return delta, nil
}

func (h *httpAuthorityAdapter) ResolveAssetURL(ctx context.Context, path string) (models.SignedURLResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("path", path).
		Get("/api/assets/url")
	if err != nil {
		return models.SignedURLResponse{}, fmt.Errorf("asset url request: %w", classifyTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SignedURLResponse{}, err
	}

	var signed models.SignedURLResponse
	if err = json.Unmarshal(resp.Body(), &signed); err != nil {
		return models.SignedURLResponse{}, fmt.Errorf("decode asset url response: %w", err)
	}

	return signed, nil
}

func (h *httpAuthorityAdapter) ResolveAssetURLs(ctx context.Context, paths []string) (models.BatchURLsResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.BatchURLsRequest{Paths: paths}).
		Post("/api/assets/urls")
	if err != nil {
		return models.BatchURLsResponse{}, fmt.Errorf("batch asset urls request: %w", classifyTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchURLsResponse{}, err
	}

	var batch models.BatchURLsResponse
	if err = json.Unmarshal(resp.Body(), &batch); err != nil {
		return models.BatchURLsResponse{}, fmt.Errorf("decode batch asset urls response: %w", err)
	}

	return batch, nil
}

// DownloadAsset fetches from an absolute signed URL, bypassing the
// configured base URL.
func (h *httpAuthorityAdapter) DownloadAsset(ctx context.Context, signedURL string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(signedURL)
	if err != nil {
		return nil, fmt.Errorf("asset download request: %w", classifyTransportError(err))
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	return classifyStatusCode(resp.StatusCode(), body)
}
