// Package bundle defines the portable deck document used for export and
// import, together with the binary-safe image codec. A bundle carries one
// deck's content only; scheduling state never travels with it, so imported
// cards always start fresh.
package bundle

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Version is the current bundle document version.
const Version = 1

// CardPayload is one card's content inside a bundle. Images are
// base64-encoded; nil means no image.
type CardPayload struct {
	FrontText  string  `json:"front_text"`
	BackText   string  `json:"back_text"`
	FrontImage *string `json:"front_image" validate:"omitempty,base64"`
	BackImage  *string `json:"back_image" validate:"omitempty,base64"`
}

// Document is a deck bundle.
type Document struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Version     int           `json:"version"`
	ExportedAt  int64         `json:"exported_at"`
	Cards       []CardPayload `json:"cards" validate:"dive"`
}

var validate = validator.New()

// Parse decodes and validates a bundle document. It rejects documents that
// are not valid JSON or that lack the name or cards keys; a present but
// empty cards array is a valid, empty deck.
func Parse(raw []byte) (*Document, error) {
	// Key presence is checked on the raw message because an absent array
	// and an empty one decode identically into a slice.
	var probe struct {
		Name  json.RawMessage `json:"name"`
		Cards json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if probe.Name == nil {
		return nil, fmt.Errorf("parse bundle: missing required key %q", "name")
	}
	if probe.Cards == nil {
		return nil, fmt.Errorf("parse bundle: missing required key %q", "cards")
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate bundle: %w", err)
	}
	return &doc, nil
}

// Marshal serializes a bundle document to JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}
