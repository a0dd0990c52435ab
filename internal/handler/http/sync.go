package http

import (
	"encoding/json"
	"net/http"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/service"
	"github.com/telltale-app/storysync/internal/utils"
	"github.com/telltale-app/storysync/models"
)

func (h *Handler) resolveDelta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var deltaRequest models.DeltaSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&deltaRequest); err != nil {
		log.Err(err).Str("func", "*Handler.resolveDelta").Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidParameter)
		return
	}

	delta, err := h.services.ContentService.ResolveDelta(ctx, deltaRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveDelta").Msg("error resolving content delta")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, delta, http.StatusOK)
}
