package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/repository"
)

var cardColumns = []string{
	"id", "deck_id", "front_text", "front_image", "back_text", "back_image",
	"due_at", "interval_days", "ease_factor", "times_reviewed", "created_at",
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func scanCard(row interface{ Scan(...any) error }) (models.Card, error) {
	var c models.Card
	err := row.Scan(&c.ID, &c.DeckID, &c.FrontText, &c.FrontImage, &c.BackText, &c.BackImage,
		&c.DueAt, &c.IntervalDays, &c.EaseFactor, &c.TimesReviewed, &c.CreatedAt)
	return c, err
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	query, args, err := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d", deckID)

	query := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("created_at ASC", "id ASC")

	return r.queryCards(ctx, query)
}

func (r *cardRepository) ListDue(ctx context.Context, deckID int64, now time.Time) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing due cards: deck_id=%d", deckID)

	query := sqlBuilder.Select(cardColumns...).
		From("cards").
		Where(squirrel.Eq{"deck_id": deckID}).
		Where(squirrel.LtOrEq{"due_at": now}).
		OrderBy("due_at ASC", "id ASC")

	return r.queryCards(ctx, query)
}

func (r *cardRepository) queryCards(ctx context.Context, query squirrel.SelectBuilder) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front_text, front_image, back_text, back_image, due_at, interval_days, ease_factor, times_reviewed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.FrontText, c.FrontImage, c.BackText, c.BackImage, c.DueAt, c.IntervalDays, c.EaseFactor, c.TimesReviewed, c.CreatedAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) UpdateContent(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card content: id=%d", c.ID)

	// Scheduling columns are deliberately absent here.
	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET front_text = ?, front_image = ?, back_text = ?, back_image = ?
WHERE id = ?
`, c.FrontText, c.FrontImage, c.BackText, c.BackImage, c.ID)
	if err != nil {
		log.Error("failed to update card content: %v", err)
	}
	return err
}

func (r *cardRepository) SaveReview(ctx context.Context, c models.Card, reviewLog models.ReviewLog) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("saving review: card_id=%d, rating=%s, interval=%d, ease=%.2f",
		c.ID, reviewLog.Rating, c.IntervalDays, c.EaseFactor)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
UPDATE cards
SET due_at = ?, interval_days = ?, ease_factor = ?, times_reviewed = ?
WHERE id = ?
`, c.DueAt, c.IntervalDays, c.EaseFactor, c.TimesReviewed, c.ID); err != nil {
			log.Error("failed to update card scheduling: %v", err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO review_logs (card_id, rating, reviewed_at)
VALUES (?, ?, ?)
`, reviewLog.CardID, reviewLog.Rating, reviewLog.ReviewedAt); err != nil {
			log.Error("failed to insert review log: %v", err)
			return err
		}
		return nil
	})
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card and review logs: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_logs WHERE card_id = ?`, id); err != nil {
			log.Error("failed to delete review logs for card %d: %v", id, err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
			log.Error("failed to delete card %d: %v", id, err)
			return err
		}
		return nil
	})
}
