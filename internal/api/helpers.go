package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mbellotti/cardbox/internal/bundle"
	"github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("id must be a number")
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

// cardResponse is a card with its images base64-encoded for transport.
type cardResponse struct {
	models.Card
	FrontImage *string `json:"front_image"`
	BackImage  *string `json:"back_image"`
}

func toCardResponse(c models.Card) cardResponse {
	return cardResponse{
		Card:       c,
		FrontImage: bundle.EncodeImage(c.FrontImage),
		BackImage:  bundle.EncodeImage(c.BackImage),
	}
}

func toCardResponses(cards []models.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}
