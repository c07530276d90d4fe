package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the flashcard endpoints on r.
func RegisterRoutes(r chi.Router, h *FlashcardHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/flashcards/parse", h.Parse)
		r.Post("/flashcards/generate", h.Generate)
		r.Post("/flashcards/export", h.ExportCards)

		r.Route("/flashcard-sets", func(r chi.Router) {
			r.Post("/", h.CreateSet)
			r.Get("/", h.ListSets)
			r.Get("/{id}", h.GetSet)
			r.Delete("/{id}", h.DeleteSet)
			r.Get("/{id}/export", h.ExportSet)
		})
	})
}
