package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mbellotti/cardbox/internal/errors"
	"github.com/mbellotti/cardbox/internal/models"
)

func TestCreateCard_Defaults(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)

	before := time.Now().UTC()
	card, err := cards.CreateCard(ctx, deck.ID, "question", nil, "answer", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, card.IntervalDays)
	assert.Equal(t, models.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, 0, card.TimesReviewed)
	assert.True(t, card.IsNew())
	assert.False(t, card.DueAt.Before(before), "new card is due at creation time")

	due, err := cards.GetDueCards(ctx, deck.ID)
	require.NoError(t, err)
	assert.Len(t, due, 1, "new card is immediately due")
}

func TestCreateCard_MissingDeck(t *testing.T) {
	_, cards, _ := newServices(t)

	_, err := cards.CreateCard(context.Background(), 404, "q", nil, "a", nil)
	assertErrorCode(t, err, apperrors.ErrCodeNotFound)
}

func TestCreateCard_NoContent(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)

	_, err = cards.CreateCard(ctx, deck.ID, "  ", nil, "a", nil)
	assertErrorCode(t, err, apperrors.ErrCodeValidation)

	_, err = cards.CreateCard(ctx, deck.ID, "q", nil, "", nil)
	assertErrorCode(t, err, apperrors.ErrCodeValidation)

	// An image alone is valid content for a side.
	_, err = cards.CreateCard(ctx, deck.ID, "", []byte{0x01}, "a", nil)
	assert.NoError(t, err)
}

func TestUpdateCard_ContentOnly(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)
	card, err := cards.CreateCard(ctx, deck.ID, "q", nil, "a", nil)
	require.NoError(t, err)

	reviewed, err := cards.ReviewCard(ctx, card.ID, models.RatingGood)
	require.NoError(t, err)

	edit := *reviewed
	edit.FrontText = "edited"
	edit.BackImage = []byte{0x02}
	require.NoError(t, cards.UpdateCard(ctx, edit))

	listed, err := cards.GetCards(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "edited", listed[0].FrontText)
	assert.Equal(t, []byte{0x02}, listed[0].BackImage)
	assert.Equal(t, reviewed.IntervalDays, listed[0].IntervalDays, "scheduling untouched by edit")
	assert.Equal(t, reviewed.TimesReviewed, listed[0].TimesReviewed)
}

func TestUpdateCard_Missing(t *testing.T) {
	_, cards, _ := newServices(t)

	err := cards.UpdateCard(context.Background(), models.Card{ID: 404, FrontText: "q", BackText: "a"})
	assertErrorCode(t, err, apperrors.ErrCodeNotFound)
}

func TestDeleteCard_Idempotent(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)
	card, err := cards.CreateCard(ctx, deck.ID, "q", nil, "a", nil)
	require.NoError(t, err)

	require.NoError(t, cards.DeleteCard(ctx, card.ID))
	assert.NoError(t, cards.DeleteCard(ctx, card.ID))

	listed, err := cards.GetCards(ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestReviewCard_GoodProgression(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)
	card, err := cards.CreateCard(ctx, deck.ID, "q", nil, "a", nil)
	require.NoError(t, err)

	first, err := cards.ReviewCard(ctx, card.ID, models.RatingGood)
	require.NoError(t, err)
	assert.Equal(t, 1, first.IntervalDays)
	assert.InDelta(t, 2.5, first.EaseFactor, 1e-9)
	assert.Equal(t, 1, first.TimesReviewed)

	second, err := cards.ReviewCard(ctx, card.ID, models.RatingGood)
	require.NoError(t, err)
	assert.Equal(t, 6, second.IntervalDays)
	assert.Equal(t, 2, second.TimesReviewed)

	// The card is now scheduled out; it must not appear in the due list.
	due, err := cards.GetDueCards(ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, due)

	history, err := cards.CardHistory(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.RatingGood, history[0].Rating)
	assert.Equal(t, models.RatingGood, history[1].Rating)
}

func TestReviewCard_AgainStaysDue(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)
	card, err := cards.CreateCard(ctx, deck.ID, "q", nil, "a", nil)
	require.NoError(t, err)

	failed, err := cards.ReviewCard(ctx, card.ID, models.RatingAgain)
	require.NoError(t, err)
	assert.Equal(t, 0, failed.IntervalDays)
	assert.InDelta(t, 2.3, failed.EaseFactor, 1e-9)
	assert.Equal(t, 1, failed.TimesReviewed)

	due, err := cards.GetDueCards(ctx, deck.ID)
	require.NoError(t, err)
	assert.Len(t, due, 1, "failed card is immediately due again")
}

func TestReviewCard_InvalidRating(t *testing.T) {
	decks, cards, _ := newServices(t)
	ctx := context.Background()

	deck, err := decks.CreateDeck(ctx, "deck", "")
	require.NoError(t, err)
	card, err := cards.CreateCard(ctx, deck.ID, "q", nil, "a", nil)
	require.NoError(t, err)

	for _, rating := range []models.Rating{0, 5, -1} {
		_, err := cards.ReviewCard(ctx, card.ID, rating)
		assertErrorCode(t, err, apperrors.ErrCodeValidation)
	}

	history, err := cards.CardHistory(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "no log appended for rejected ratings")
}

func TestReviewCard_Missing(t *testing.T) {
	_, cards, _ := newServices(t)

	_, err := cards.ReviewCard(context.Background(), 404, models.RatingGood)
	assertErrorCode(t, err, apperrors.ErrCodeNotFound)
}
