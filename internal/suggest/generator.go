// Package suggest turns a free-text prompt into proposed front/back card
// pairs using an external generative model. The rest of the system treats
// it as a collaborator: accepted pairs enter the store only through the
// normal card-creation operation.
package suggest

import "context"

// Suggestion is one proposed card pair. Nothing is persisted until the
// user accepts it.
type Suggestion struct {
	FrontText string `json:"front_text"`
	BackText  string `json:"back_text"`
}

// Generator produces card suggestions from a text prompt.
type Generator interface {
	SuggestCards(ctx context.Context, prompt string) ([]Suggestion, error)
}
