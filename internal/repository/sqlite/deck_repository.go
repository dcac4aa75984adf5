package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, now time.Time) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks with counts")

	// Counts are derived from current card state at query time, not cached.
	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, d.name, d.description, d.created_at,
       COUNT(c.id) AS total_cards,
       COALESCE(SUM(CASE WHEN c.due_at <= ? THEN 1 ELSE 0 END), 0) AS due_cards,
       COALESCE(SUM(CASE WHEN c.times_reviewed = 0 THEN 1 ELSE 0 END), 0) AS new_cards,
       COALESCE(SUM(CASE WHEN c.times_reviewed > 0 THEN 1 ELSE 0 END), 0) AS learned_cards
FROM decks d
LEFT JOIN cards c ON c.deck_id = d.id
GROUP BY d.id
ORDER BY d.created_at DESC, d.id DESC
`, now)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.DeckSummary
	for rows.Next() {
		var d models.DeckSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt,
			&d.TotalCards, &d.DueCards, &d.NewCards, &d.LearnedCards); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}

	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: name=%s", deck.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (name, description, created_at)
VALUES (?, ?, ?)
`, deck.Name, deck.Description, deck.CreatedAt)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) InsertWithCards(ctx context.Context, deck models.Deck, cards []models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck with %d cards: name=%s", len(cards), deck.Name)

	var deckID int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO decks (name, description, created_at)
VALUES (?, ?, ?)
`, deck.Name, deck.Description, deck.CreatedAt)
		if err != nil {
			return err
		}
		deckID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO cards (deck_id, front_text, front_image, back_text, back_image, due_at, interval_days, ease_factor, times_reviewed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			if _, err := stmt.ExecContext(ctx, deckID, c.FrontText, c.FrontImage, c.BackText, c.BackImage,
				c.DueAt, c.IntervalDays, c.EaseFactor, c.TimesReviewed, c.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert deck with cards: %v", err)
		return 0, err
	}
	log.Debug("deck inserted with cards: id=%d", deckID)
	return deckID, nil
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck and owned data: id=%d", id)

	// Explicit deletes rather than relying on FK cascade alone, so the
	// whole removal is one transaction regardless of pragma state.
	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM review_logs
WHERE card_id IN (SELECT id FROM cards WHERE deck_id = ?)
`, id); err != nil {
			log.Error("failed to delete review logs for deck %d: %v", id, err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE deck_id = ?`, id); err != nil {
			log.Error("failed to delete cards for deck %d: %v", id, err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id); err != nil {
			log.Error("failed to delete deck %d: %v", id, err)
			return err
		}
		return nil
	})
}
