package services

import (
	"context"
	"strings"
	"time"

	"github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/repository"
	"github.com/mbellotti/cardbox/internal/srs"
)

// CardService handles card content and review business logic
type CardService interface {
	CreateCard(ctx context.Context, deckID int64, frontText string, frontImage []byte, backText string, backImage []byte) (*models.Card, error)
	GetCards(ctx context.Context, deckID int64) ([]models.Card, error)
	GetDueCards(ctx context.Context, deckID int64) ([]models.Card, error)
	UpdateCard(ctx context.Context, card models.Card) error
	DeleteCard(ctx context.Context, id int64) error
	ReviewCard(ctx context.Context, cardID int64, rating models.Rating) (*models.Card, error)
	CardHistory(ctx context.Context, cardID int64) ([]models.ReviewLog, error)
}

type cardService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	logs  repository.ReviewLogRepository
}

// NewCardService creates a new CardService
func NewCardService(decks repository.DeckRepository, cards repository.CardRepository, logs repository.ReviewLogRepository) CardService {
	return &cardService{decks: decks, cards: cards, logs: logs}
}

// hasContent reports whether one side of a card carries text or an image.
func hasContent(text string, image []byte) bool {
	return strings.TrimSpace(text) != "" || len(image) > 0
}

func (s *cardService) CreateCard(ctx context.Context, deckID int64, frontText string, frontImage []byte, backText string, backImage []byte) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", deckID)

	if !hasContent(frontText, frontImage) {
		return nil, errors.NewValidationError("front", "card front needs text or an image")
	}
	if !hasContent(backText, backImage) {
		return nil, errors.NewValidationError("back", "card back needs text or an image")
	}

	// The deck reference is checked here; the storage engine alone would
	// accept an orphan insert until the next FK check.
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return nil, errors.NewPersistenceError("create card", err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	now := time.Now().UTC()
	card := models.Card{
		DeckID:     deckID,
		FrontText:  frontText,
		FrontImage: frontImage,
		BackText:   backText,
		BackImage:  backImage,
		// New cards are immediately due.
		DueAt:         now,
		IntervalDays:  0,
		EaseFactor:    models.DefaultEaseFactor,
		TimesReviewed: 0,
		CreatedAt:     now,
	}
	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewPersistenceError("create card", err)
	}
	card.ID = id

	log.Info("card created: id=%d, deck_id=%d", card.ID, deckID)
	return &card, nil
}

func (s *cardService) GetCards(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting cards: deck_id=%d", deckID)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}

	cards, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewPersistenceError("get cards", err)
	}
	return cards, nil
}

func (s *cardService) GetDueCards(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting due cards: deck_id=%d", deckID)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}

	cards, err := s.cards.ListDue(ctx, deckID, time.Now().UTC())
	if err != nil {
		log.Error("failed to list due cards: %v", err)
		return nil, errors.NewPersistenceError("get due cards", err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, card models.Card) error {
	log := logger.FromContext(ctx)
	log.Debug("updating card content: id=%d", card.ID)

	if !hasContent(card.FrontText, card.FrontImage) {
		return errors.NewValidationError("front", "card front needs text or an image")
	}
	if !hasContent(card.BackText, card.BackImage) {
		return errors.NewValidationError("back", "card back needs text or an image")
	}

	existing, err := s.cards.Get(ctx, card.ID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return errors.NewPersistenceError("update card", err)
	}
	if existing == nil {
		return errors.NewNotFoundError("card", card.ID)
	}

	// Only content travels through this path; scheduling state belongs to
	// ReviewCard alone.
	if err := s.cards.UpdateContent(ctx, card); err != nil {
		log.Error("failed to update card: %v", err)
		return errors.NewPersistenceError("update card", err)
	}
	return nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	if err := s.cards.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewPersistenceError("delete card", err)
	}
	return nil
}

func (s *cardService) ReviewCard(ctx context.Context, cardID int64, rating models.Rating) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: card_id=%d, rating=%d", cardID, rating)

	if !rating.Valid() {
		return nil, errors.NewValidationError("rating", "must be between 1 (again) and 4 (easy)")
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return nil, errors.NewPersistenceError("review card", err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	now := time.Now().UTC()
	updated := srs.ApplyReview(*card, rating, now)

	log.Debug("applied review: new interval=%d days, ease=%.2f", updated.IntervalDays, updated.EaseFactor)

	reviewLog := models.ReviewLog{
		CardID:     cardID,
		Rating:     rating,
		ReviewedAt: now,
	}
	if err := s.cards.SaveReview(ctx, updated, reviewLog); err != nil {
		log.Error("failed to save review: %v", err)
		return nil, errors.NewPersistenceError("review card", err)
	}

	log.Info("card reviewed: id=%d, rating=%s, due=%s", cardID, rating, updated.DueAt.Format(time.RFC3339))
	return &updated, nil
}

func (s *cardService) CardHistory(ctx context.Context, cardID int64) ([]models.ReviewLog, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review history: card_id=%d", cardID)

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return nil, errors.NewPersistenceError("card history", err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	logs, err := s.logs.ListByCard(ctx, cardID)
	if err != nil {
		log.Error("failed to list review logs: %v", err)
		return nil, errors.NewPersistenceError("card history", err)
	}
	return logs, nil
}

func (s *cardService) requireDeck(ctx context.Context, deckID int64) error {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return errors.NewPersistenceError("load deck", err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}
