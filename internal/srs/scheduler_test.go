package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellotti/cardbox/internal/models"
	"github.com/mbellotti/cardbox/internal/srs"
)

func newCard() models.Card {
	return models.Card{
		EaseFactor:   models.DefaultEaseFactor,
		IntervalDays: 0,
	}
}

func TestApplyReview_Again(t *testing.T) {
	now := time.Now()
	card := newCard()
	card.IntervalDays = 10
	card.TimesReviewed = 3

	updated := srs.ApplyReview(card, models.RatingAgain, now)

	assert.Equal(t, 0, updated.IntervalDays, "failed card resets to interval 0")
	assert.InDelta(t, 2.3, updated.EaseFactor, 1e-9, "ease drops by 0.2")
	assert.Equal(t, 4, updated.TimesReviewed, "reviews increment even on failure")
	assert.True(t, updated.DueAt.Equal(now), "interval 0 means due immediately")
}

func TestApplyReview_AgainOnNewCard(t *testing.T) {
	now := time.Now()
	updated := srs.ApplyReview(newCard(), models.RatingAgain, now)

	assert.Equal(t, 0, updated.IntervalDays)
	assert.Equal(t, 1, updated.TimesReviewed)
	assert.True(t, updated.IsDue(now), "brand-new card rated Again is crammable")
}

func TestApplyReview_FirstReview(t *testing.T) {
	now := time.Now()

	for _, rating := range []models.Rating{models.RatingHard, models.RatingGood, models.RatingEasy} {
		updated := srs.ApplyReview(newCard(), rating, now)
		assert.Equal(t, 1, updated.IntervalDays, "first passing review is 1 day (%s)", rating)
		assert.Equal(t, 1, updated.TimesReviewed)
		assert.True(t, updated.DueAt.Equal(now.Add(24*time.Hour)))
	}
}

func TestApplyReview_SecondReview(t *testing.T) {
	now := time.Now()
	card := newCard()
	card.TimesReviewed = 1
	card.IntervalDays = 1

	updated := srs.ApplyReview(card, models.RatingGood, now)

	assert.Equal(t, 6, updated.IntervalDays, "second passing review is 6 days")
	assert.Equal(t, 2, updated.TimesReviewed)
}

func TestApplyReview_IntervalGrowth(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		ease     float64
		reviews  int
		rating   models.Rating
		expected int
	}{
		{"good multiplies by old ease", 6, 2.5, 2, models.RatingGood, 15},
		{"rounding is half away from zero", 3, 2.5, 2, models.RatingGood, 8}, // 7.5 -> 8
		{"easy uses pre-update ease", 10, 2.5, 5, models.RatingEasy, 25},
		{"hard still grows the interval", 10, 2.5, 5, models.RatingHard, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := newCard()
			card.IntervalDays = tt.interval
			card.EaseFactor = tt.ease
			card.TimesReviewed = tt.reviews

			updated := srs.ApplyReview(card, tt.rating, time.Now())
			assert.Equal(t, tt.expected, updated.IntervalDays)
		})
	}
}

func TestApplyReview_EaseAdjustment(t *testing.T) {
	now := time.Now()
	card := newCard()
	card.TimesReviewed = 2
	card.IntervalDays = 6

	hard := srs.ApplyReview(card, models.RatingHard, now)
	assert.InDelta(t, 2.36, hard.EaseFactor, 1e-9, "hard: q=3, delta=-0.14")

	good := srs.ApplyReview(card, models.RatingGood, now)
	assert.InDelta(t, 2.5, good.EaseFactor, 1e-9, "good: q=4, delta=0")

	easy := srs.ApplyReview(card, models.RatingEasy, now)
	assert.InDelta(t, 2.6, easy.EaseFactor, 1e-9, "easy: q=5, delta=+0.1")
}

func TestApplyReview_EaseFloor(t *testing.T) {
	card := newCard()
	card.EaseFactor = models.MinEaseFactor
	card.IntervalDays = 10
	card.TimesReviewed = 4

	for i := 0; i < 10; i++ {
		card = srs.ApplyReview(card, models.RatingAgain, time.Now())
		assert.GreaterOrEqual(t, card.EaseFactor, models.MinEaseFactor)
	}

	// The floor also applies after a Hard review on a low-ease card.
	card.EaseFactor = 1.35
	card = srs.ApplyReview(card, models.RatingHard, time.Now())
	assert.GreaterOrEqual(t, card.EaseFactor, models.MinEaseFactor)
}

func TestApplyReview_NoEaseCeiling(t *testing.T) {
	card := newCard()
	card.TimesReviewed = 2
	card.IntervalDays = 6

	// Ease grows without bound under repeated Easy ratings.
	for i := 0; i < 50; i++ {
		card = srs.ApplyReview(card, models.RatingEasy, time.Now())
	}
	assert.Greater(t, card.EaseFactor, 7.0)
}

func TestApplyReview_GoodProgression(t *testing.T) {
	// Concrete progression: new card reviewed Good three times.
	now := time.Now()
	card := newCard()

	card = srs.ApplyReview(card, models.RatingGood, now)
	require.Equal(t, 1, card.IntervalDays)
	require.InDelta(t, 2.5, card.EaseFactor, 1e-9)
	require.Equal(t, 1, card.TimesReviewed)
	require.True(t, card.DueAt.Equal(now.Add(24*time.Hour)))

	now = card.DueAt
	card = srs.ApplyReview(card, models.RatingGood, now)
	require.Equal(t, 6, card.IntervalDays)
	require.Equal(t, 2, card.TimesReviewed)

	now = card.DueAt
	card = srs.ApplyReview(card, models.RatingGood, now)
	require.Equal(t, 15, card.IntervalDays, "round(6 * 2.5)")
	require.Equal(t, 3, card.TimesReviewed)
}

func TestApplyReview_InputNotMutated(t *testing.T) {
	card := newCard()
	card.IntervalDays = 10
	card.TimesReviewed = 2

	_ = srs.ApplyReview(card, models.RatingGood, time.Now())

	assert.Equal(t, 10, card.IntervalDays)
	assert.Equal(t, 2, card.TimesReviewed)
}
