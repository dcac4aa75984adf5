package models

import "time"

// Scheduling defaults for a freshly created card. A new card is immediately
// due: interval 0 days, ease factor 2.5, never reviewed.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

type Card struct {
	ID            int64     `json:"id"`
	DeckID        int64     `json:"deck_id"`
	FrontText     string    `json:"front_text"`
	FrontImage    []byte    `json:"-"`
	BackText      string    `json:"back_text"`
	BackImage     []byte    `json:"-"`
	DueAt         time.Time `json:"due_at"`
	IntervalDays  int       `json:"interval_days"`
	EaseFactor    float64   `json:"ease_factor"`
	TimesReviewed int       `json:"times_reviewed"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsNew reports whether the card has never been reviewed.
func (c Card) IsNew() bool {
	return c.TimesReviewed == 0
}

// IsDue reports whether the card is eligible for review at t.
func (c Card) IsDue(t time.Time) bool {
	return !c.DueAt.After(t)
}
