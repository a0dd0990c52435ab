package http

import (
	"net/http"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/utils"
	"github.com/telltale-app/storysync/models"
)

func (h *Handler) getContentVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	version, err := h.services.ContentService.GetContentVersion(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getContentVersion").Msg("error getting content version")
		writeError(w, r, err)
		return
	}

	response := models.ContentVersionResponse{
		ID:           version.ID,
		Version:      version.Version,
		AssetVersion: version.Version,
		LastUpdated:  version.LastUpdated.UnixMilli(),
		Checksums:    version.Checksums,
		TotalStories: version.TotalStories,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
