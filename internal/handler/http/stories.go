package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/telltale-app/storysync/internal/logger"
	"github.com/telltale-app/storysync/internal/service"
	"github.com/telltale-app/storysync/internal/utils"
	"github.com/telltale-app/storysync/models"
)

func (h *Handler) getAllStories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	stories, err := h.services.ContentService.GetAllStories(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getAllStories").Msg("error getting stories")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stories, http.StatusOK)
}

func (h *Handler) getStoriesByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	category := chi.URLParam(r, "category")
	if category == "" {
		writeError(w, r, service.ErrValidationNoCategory)
		return
	}

	stories, err := h.services.ContentService.GetStoriesByCategory(ctx, category)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStoriesByCategory").Str("category", category).Msg("error getting stories by category")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stories, http.StatusOK)
}

func (h *Handler) getStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	storyID := chi.URLParam(r, "storyID")
	if storyID == "" {
		writeError(w, r, service.ErrValidationNoStoryID)
		return
	}

	story, err := h.services.ContentService.GetStory(ctx, storyID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStory").Str("story_id", storyID).Msg("error getting story")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, story, http.StatusOK)
}

func (h *Handler) createStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var story models.Story
	if err := json.NewDecoder(r.Body).Decode(&story); err != nil {
		log.Err(err).Str("func", "*Handler.createStory").Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidParameter)
		return
	}

	saved, err := h.services.ContentService.SaveStory(ctx, story)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createStory").Str("story_id", story.ID).Msg("error saving story")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) updateStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	storyID := chi.URLParam(r, "storyID")
	if storyID == "" {
		writeError(w, r, service.ErrValidationNoStoryID)
		return
	}

	var story models.Story
	if err := json.NewDecoder(r.Body).Decode(&story); err != nil {
		log.Err(err).Str("func", "*Handler.updateStory").Msg("Invalid JSON was passed")
		writeError(w, r, service.ErrInvalidParameter)
		return
	}
	story.ID = storyID

	updated, err := h.services.ContentService.UpdateStory(ctx, story)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateStory").Str("story_id", storyID).Msg("error updating story")
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteStory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	storyID := chi.URLParam(r, "storyID")
	if storyID == "" {
		writeError(w, r, service.ErrValidationNoStoryID)
		return
	}

	if err := h.services.ContentService.DeleteStory(ctx, storyID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteStory").Str("story_id", storyID).Msg("error deleting story")
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
