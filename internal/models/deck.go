package models

import "time"

type Deck struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeckSummary is a deck annotated with counts derived from current card
// state. The counts are computed at query time, never cached.
type DeckSummary struct {
	Deck
	TotalCards   int `json:"total_cards"`
	DueCards     int `json:"due_cards"`
	NewCards     int `json:"new_cards"`
	LearnedCards int `json:"learned_cards"`
}
