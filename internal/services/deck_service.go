package services

import (
	"context"
	"strings"
	"time"

	"github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, name, description string) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id int64) error
	ListDecks(ctx context.Context) ([]models.DeckSummary, error)
}

type deckService struct {
	decks repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository) DeckService {
	return &deckService{decks: decks}
}

func (s *deckService) CreateDeck(ctx context.Context, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: name=%s", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	deck := models.Deck{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.decks.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewPersistenceError("create deck", err)
	}
	deck.ID = id

	log.Info("deck created: id=%d, name=%s", deck.ID, deck.Name)
	return &deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d", id)

	// Deleting a missing deck is a deliberate no-op to keep caller flows
	// simple; the cascade removes cards and their review logs.
	if err := s.decks.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewPersistenceError("delete deck", err)
	}
	return nil
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks")

	decks, err := s.decks.List(ctx, time.Now().UTC())
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewPersistenceError("list decks", err)
	}
	return decks, nil
}
