package api

import (
	"net/http"
	"strings"

	"github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/logger"
)

type suggestRequest struct {
	Prompt string `json:"prompt"`
}

// handleSuggestCards asks the generative collaborator for proposed
// front/back pairs. Nothing is persisted; accepted suggestions come back
// through the normal card-creation endpoint.
func (s *Server) handleSuggestCards(w http.ResponseWriter, r *http.Request) {
	if s.Generator == nil {
		handleError(w, r, errors.NewBadRequestError("card suggestions are not configured"))
		return
	}

	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		handleError(w, r, errors.NewValidationError("prompt", "must not be empty"))
		return
	}

	suggestions, err := s.Generator.SuggestCards(r.Context(), req.Prompt)
	if err != nil {
		logger.FromContext(r.Context()).Error("suggestion generation failed: %v", err)
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
