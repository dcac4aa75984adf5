package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mbellotti/cardbox/internal/suggest"
)

// MockGenerator is a mock implementation of suggest.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) SuggestCards(ctx context.Context, prompt string) ([]suggest.Suggestion, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]suggest.Suggestion), args.Error(1)
}
