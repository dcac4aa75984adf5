package srs

import (
	"math"
	"time"

	"github.com/mbellotti/cardbox/internal/models"
)

// ApplyReview advances a card's scheduling state using an SM-2 variant.
// It is pure: the updated card is returned and the input is not modified.
// now is the review timestamp and becomes the base for the next due date.
//
// Rating semantics: 1=Again, 2=Hard, 3=Good, 4=Easy. A failed card
// (Again) resets the interval to 0 days and is due immediately, so it can
// be crammed in the same session. TimesReviewed increments on every
// review, including failures.
func ApplyReview(card models.Card, rating models.Rating, now time.Time) models.Card {
	if rating == models.RatingAgain {
		card.IntervalDays = 0
		card.EaseFactor = math.Max(models.MinEaseFactor, card.EaseFactor-0.2)
	} else {
		// Interval depends on how many reviews the card has survived so
		// far, using the ease factor from before this review.
		switch card.TimesReviewed {
		case 0:
			card.IntervalDays = 1
		case 1:
			card.IntervalDays = 6
		default:
			card.IntervalDays = roundHalfAway(float64(card.IntervalDays) * card.EaseFactor)
		}
		card.EaseFactor = math.Max(models.MinEaseFactor, card.EaseFactor+easeDelta(rating))
	}

	card.TimesReviewed++
	card.DueAt = now.Add(time.Duration(card.IntervalDays) * 24 * time.Hour)
	return card
}

// easeDelta maps a passing rating onto an SM-2 quality value
// (Hard=3, Good=4, Easy=5) and returns the ease adjustment
// 0.1 - (5-q)*(0.08 + (5-q)*0.02).
func easeDelta(rating models.Rating) float64 {
	q := float64(rating) + 1
	return 0.1 - (5-q)*(0.08+(5-q)*0.02)
}

// roundHalfAway rounds half away from zero, so 7.5 becomes 8.
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}
