package api

import (
	"net/http"

	"github.com/mbellotti/cardbox/internal/bundle"
	"github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/models"
)

type cardContentRequest struct {
	FrontText  string  `json:"front_text"`
	FrontImage *string `json:"front_image"` // base64, optional
	BackText   string  `json:"back_text"`
	BackImage  *string `json:"back_image"` // base64, optional
}

func (c cardContentRequest) decodeImages() (front, back []byte, err error) {
	front, err = bundle.DecodeImage(c.FrontImage)
	if err != nil {
		return nil, nil, errors.NewBadRequestError("front_image is not valid base64")
	}
	back, err = bundle.DecodeImage(c.BackImage)
	if err != nil {
		return nil, nil, errors.NewBadRequestError("back_image is not valid base64")
	}
	return front, back, nil
}

type reviewRequest struct {
	Rating int `json:"rating"`
}

func (s *Server) handleGetCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.CardService.GetCards(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cards": toCardResponses(cards)})
}

func (s *Server) handleGetDueCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.CardService.GetDueCards(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cards": toCardResponses(cards)})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardContentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	front, back, err := req.decodeImages()
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), deckID, req.FrontText, front, req.BackText, back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCardResponse(*card))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardContentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	front, back, err := req.decodeImages()
	if err != nil {
		handleError(w, r, err)
		return
	}

	card := models.Card{
		ID:         id,
		FrontText:  req.FrontText,
		FrontImage: front,
		BackText:   req.BackText,
		BackImage:  back,
	}
	if err := s.CardService.UpdateCard(r.Context(), card); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.ReviewCard(r.Context(), id, models.Rating(req.Rating))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCardResponse(*card))
}

func (s *Server) handleCardHistory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logs, err := s.CardService.CardHistory(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"reviews": logs})
}
