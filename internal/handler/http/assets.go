package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/service"
	"github.com/telltale-app/storysync/internal/utils"
	"github.com/telltale-app/storysync/models"
)

func (h *Handler) resolveAssetURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, r, fmt.Errorf("%w: path", service.ErrMissingRequiredField))
		return
	}

	signedURL, err := h.services.AssetURLService.IssueURL(ctx, path)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveAssetURL").Str("path", path).Msg("error issuing signed url")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, signedURL, http.StatusOK)
}

func (h *Handler) resolveAssetURLs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var batchRequest models.BatchURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&batchRequest); err != nil {
		log.Err(err).Str("func", "*Handler.resolveAssetURLs").Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidParameter)
		return
	}

	batch, err := h.services.AssetURLService.IssueURLs(ctx, batchRequest.Paths)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveAssetURLs").Int("paths", len(batchRequest.Paths)).Msg("error issuing signed urls")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, batch, http.StatusOK)
}

func (h *Handler) downloadAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	path := r.URL.Query().Get("path")
	token := r.URL.Query().Get("token")
	if path == "" || token == "" {
		writeError(w, r, fmt.Errorf("%w: path, token", service.ErrMissingRequiredField))
		return
	}

	data, err := h.services.AssetURLService.OpenAsset(ctx, path, token)
	if err != nil {
		log.Err(err).Str("func", "*Handler.downloadAsset").Str("path", path).Msg("error opening asset")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}
