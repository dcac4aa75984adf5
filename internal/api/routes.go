package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/decks", s.handleListDecks)
	r.Post("/decks", s.handleCreateDeck)
	r.Delete("/decks/{id}", s.handleDeleteDeck)
	r.Get("/decks/{id}/cards", s.handleGetCards)
	r.Get("/decks/{id}/due", s.handleGetDueCards)
	r.Post("/decks/{id}/cards", s.handleCreateCard)
	r.Get("/decks/{id}/export", s.handleExportDeck)
	r.Post("/decks/import", s.handleImportDeck)

	r.Put("/cards/{id}", s.handleUpdateCard)
	r.Delete("/cards/{id}", s.handleDeleteCard)
	r.Post("/cards/{id}/review", s.handleReviewCard)
	r.Get("/cards/{id}/history", s.handleCardHistory)

	r.Post("/suggest", s.handleSuggestCards)

	return r
}
