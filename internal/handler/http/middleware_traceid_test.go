package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telltale-app/storysync/internal/logger"
)

func TestWithTraceID_GeneratesWhenAbsent(t *testing.T) {
	h := newTestHandler(&mockContentService{}, &mockAssetURLService{})

	var handlerRan bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		// The request-scoped logger must be installed by the middleware.
		require.NotNil(t, logger.FromRequest(r))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stories/version", nil)
	rec := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rec, req)

	assert.True(t, handlerRan)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestWithTraceID_PropagatesIncomingHeader(t *testing.T) {
	const incoming = "trace-abc-123"

	h := newTestHandler(&mockContentService{}, &mockAssetURLService{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/stories/version", nil)
	req.Header.Set(traceIDHeader, incoming)
	rec := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rec, req)

	assert.Equal(t, incoming, rec.Header().Get(traceIDHeader))
}

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK) // ignored: header already written
	n, err := w.Write([]byte("short and stout"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, w.status)
	assert.Equal(t, n, w.size)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestResponseWriter_ImplicitOKOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.status)
}
