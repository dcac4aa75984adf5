package api

import (
	"io"
	"net/http"

	"github.com/mbellotti/cardbox/internal/errors"
)

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	doc, err := s.BundleService.ExportDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="deck.json"`)
	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	limit := s.MaxImportBytes
	if limit <= 0 {
		limit = 64 << 20
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read request body"))
		return
	}
	if int64(len(raw)) > limit {
		handleError(w, r, errors.NewBadRequestError("bundle exceeds the size limit"))
		return
	}

	deck, err := s.BundleService.ImportBundle(r.Context(), raw)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}
