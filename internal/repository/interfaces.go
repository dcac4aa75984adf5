package repository

import (
	"context"
	"time"

	"github.com/mbellotti/cardbox/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id int64) (*models.Deck, error)
	// List returns all decks, newest first, annotated with card counts
	// computed against now.
	List(ctx context.Context, now time.Time) ([]models.DeckSummary, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	// InsertWithCards creates a deck and its cards in one transaction.
	// Nothing is persisted if any insert fails.
	InsertWithCards(ctx context.Context, deck models.Deck, cards []models.Card) (int64, error)
	// Delete removes the deck, its cards, and their review logs. Deleting a
	// missing id is a no-op.
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles card data access
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.Card, error)
	ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	// ListDue returns cards of the deck with due_at <= now, ordered by
	// ascending due_at.
	ListDue(ctx context.Context, deckID int64, now time.Time) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	// UpdateContent replaces text and image fields only; scheduling state
	// is never touched by this method.
	UpdateContent(ctx context.Context, card models.Card) error
	// SaveReview persists the card's new scheduling state and appends the
	// review log in one transaction.
	SaveReview(ctx context.Context, card models.Card, log models.ReviewLog) error
	// Delete removes the card and its review logs. Deleting a missing id
	// is a no-op.
	Delete(ctx context.Context, id int64) error
}

// ReviewLogRepository handles review history access
type ReviewLogRepository interface {
	ListByCard(ctx context.Context, cardID int64) ([]models.ReviewLog, error)
}
