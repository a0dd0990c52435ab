package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/telltale-app/storysync/internal/assets"
	"github.com/telltale-app/storysync/internal/service"
	"github.com/telltale-app/storysync/internal/store"
	"github.com/telltale-app/storysync/internal/utils"
	"github.com/telltale-app/storysync/models"
)

var errorStatusMap = map[error]int{
	service.ErrMissingRequiredField:   http.StatusBadRequest,
	service.ErrInvalidParameter:       http.StatusBadRequest,
	service.ErrValidationNoStoryID:    http.StatusBadRequest,
	service.ErrValidationNoCategory:   http.StatusBadRequest,
	service.ErrValidationNoAssetPaths: http.StatusBadRequest,
	service.ErrSignedURLExpired:       http.StatusForbidden,
	service.ErrSignedURLInvalid:       http.StatusForbidden,

	assets.ErrInvalidPath: http.StatusBadRequest,

	store.ErrStoryNotFound:          http.StatusNotFound,
	store.ErrContentVersionNotFound: http.StatusNotFound,
	store.ErrAssetNotFound:          http.StatusNotFound,
	store.ErrStoryAlreadyExists:     http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrMarshallingStory:     http.StatusInternalServerError,
	store.ErrUnmarshallingStory:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// codeFromError maps an error to the stable machine-readable code carried in
// the response body. Clients branch on the code, never the message.
func codeFromError(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingRequiredField),
		errors.Is(err, service.ErrValidationNoStoryID),
		errors.Is(err, service.ErrValidationNoCategory),
		errors.Is(err, service.ErrValidationNoAssetPaths):
		return models.ErrCodeMissingRequiredField
	case errors.Is(err, service.ErrInvalidParameter),
		errors.Is(err, service.ErrSignedURLExpired),
		errors.Is(err, service.ErrSignedURLInvalid),
		errors.Is(err, assets.ErrInvalidPath):
		return models.ErrCodeInvalidParameter
	case errors.Is(err, store.ErrStoryNotFound),
		errors.Is(err, store.ErrContentVersionNotFound),
		errors.Is(err, store.ErrAssetNotFound):
		return models.ErrCodeNotFound
	case errors.Is(err, store.ErrExecutingQuery),
		errors.Is(err, store.ErrBeginningTransaction),
		errors.Is(err, store.ErrCommitingTransaction),
		errors.Is(err, store.ErrExecutingStatement):
		return models.ErrCodeStorageUnavailable
	default:
		return models.ErrCodeInternalServerError
	}
}

// writeError sends the stable error envelope with the status mapped from
// the error chain.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	response := models.ErrorResponse{
		Success:   false,
		ErrorCode: codeFromError(err),
		Error:     err.Error(),
		Path:      r.URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: w.Header().Get(traceIDHeader),
	}

	utils.WriteJSON(w, response, statusFromError(err))
}
