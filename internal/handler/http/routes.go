package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Route("/stories", func(r chi.Router) {
			r.Get("/version", h.getContentVersion)
			r.Post("/delta", h.resolveDelta)

			r.Get("/", h.getAllStories)
			r.Get("/category/{category}", h.getStoriesByCategory)
			r.Post("/", h.createStory)
			r.Get("/{storyID}", h.getStory)
			r.Put("/{storyID}", h.updateStory)
			r.Delete("/{storyID}", h.deleteStory)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/url", h.resolveAssetURL)
			r.Post("/urls", h.resolveAssetURLs)
			r.Get("/download", h.downloadAsset)
		})
	})

	return router
}
