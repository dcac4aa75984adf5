package sqlite

import (
	"context"
	"database/sql"

	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/repository"
)

type reviewLogRepository struct {
	db *sql.DB
}

// NewReviewLogRepository creates a new ReviewLogRepository implementation
func NewReviewLogRepository(db *sql.DB) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) ListByCard(ctx context.Context, cardID int64) ([]models.ReviewLog, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")
	log.Debug("listing review logs: card_id=%d", cardID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, rating, reviewed_at
FROM review_logs
WHERE card_id = ?
ORDER BY reviewed_at ASC, id ASC
`, cardID)
	if err != nil {
		log.Error("failed to query review logs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var logs []models.ReviewLog
	for rows.Next() {
		var l models.ReviewLog
		if err := rows.Scan(&l.ID, &l.CardID, &l.Rating, &l.ReviewedAt); err != nil {
			log.Error("failed to scan review log row: %v", err)
			return nil, err
		}
		logs = append(logs, l)
	}
	log.Debug("found %d review logs", len(logs))
	return logs, rows.Err()
}
