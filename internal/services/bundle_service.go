package services

import (
	"context"
	"time"

	"github.com/mbellotti/cardbox/internal/bundle"
	"github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/repository"
)

// importSuffix is appended to imported deck names so an import never
// collides with the deck it was exported from.
const importSuffix = " (imported)"

// BundleService translates between portable deck bundles and the store
type BundleService interface {
	// ExportDeck builds a bundle for the deck. Scheduling state is
	// deliberately omitted: imported cards always start fresh.
	ExportDeck(ctx context.Context, id int64) (*bundle.Document, error)
	// ImportBundle materializes a bundle as a new deck in one transaction.
	ImportBundle(ctx context.Context, raw []byte) (*models.Deck, error)
}

type bundleService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
}

// NewBundleService creates a new BundleService
func NewBundleService(decks repository.DeckRepository, cards repository.CardRepository) BundleService {
	return &bundleService{decks: decks, cards: cards}
}

func (s *bundleService) ExportDeck(ctx context.Context, id int64) (*bundle.Document, error) {
	log := logger.FromContext(ctx)
	log.Debug("exporting deck: id=%d", id)

	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return nil, errors.NewPersistenceError("export deck", err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}

	cards, err := s.cards.ListByDeck(ctx, id)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewPersistenceError("export deck", err)
	}

	payloads := make([]bundle.CardPayload, 0, len(cards))
	for _, c := range cards {
		payloads = append(payloads, bundle.CardPayload{
			FrontText:  c.FrontText,
			BackText:   c.BackText,
			FrontImage: bundle.EncodeImage(c.FrontImage),
			BackImage:  bundle.EncodeImage(c.BackImage),
		})
	}

	doc := &bundle.Document{
		Name:        deck.Name,
		Description: deck.Description,
		Version:     bundle.Version,
		ExportedAt:  time.Now().UTC().UnixMilli(),
		Cards:       payloads,
	}

	log.Info("deck exported: id=%d, cards=%d", id, len(payloads))
	return doc, nil
}

func (s *bundleService) ImportBundle(ctx context.Context, raw []byte) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing bundle: %d bytes", len(raw))

	doc, err := bundle.Parse(raw)
	if err != nil {
		log.Warn("rejected bundle: %v", err)
		return nil, errors.NewFormatError(err.Error(), err)
	}

	now := time.Now().UTC()
	cards := make([]models.Card, 0, len(doc.Cards))
	for i, p := range doc.Cards {
		frontImage, err := bundle.DecodeImage(p.FrontImage)
		if err != nil {
			return nil, errors.NewFormatError("card front image is not valid base64", err)
		}
		backImage, err := bundle.DecodeImage(p.BackImage)
		if err != nil {
			return nil, errors.NewFormatError("card back image is not valid base64", err)
		}
		if !hasContent(p.FrontText, frontImage) || !hasContent(p.BackText, backImage) {
			log.Warn("rejected bundle: card %d has an empty side", i)
			return nil, errors.NewFormatError("every card needs content on both sides", nil)
		}

		// Imported cards get fresh default scheduling state.
		cards = append(cards, models.Card{
			FrontText:     p.FrontText,
			FrontImage:    frontImage,
			BackText:      p.BackText,
			BackImage:     backImage,
			DueAt:         now,
			IntervalDays:  0,
			EaseFactor:    models.DefaultEaseFactor,
			TimesReviewed: 0,
			CreatedAt:     now,
		})
	}

	deck := models.Deck{
		Name:        doc.Name + importSuffix,
		Description: doc.Description,
		CreatedAt:   now,
	}
	id, err := s.decks.InsertWithCards(ctx, deck, cards)
	if err != nil {
		log.Error("failed to import bundle: %v", err)
		return nil, errors.NewPersistenceError("import bundle", err)
	}
	deck.ID = id

	log.Info("bundle imported: deck_id=%d, name=%s, cards=%d", id, deck.Name, len(cards))
	return &deck, nil
}
