// Package api exposes the study core over a small JSON HTTP surface. It is
// presentation glue only: every operation goes through the services, and
// nothing here touches storage directly.
package api

import (
	"github.com/mbellotti/cardbox/internal/services"
	"github.com/mbellotti/cardbox/internal/suggest"
)

// Server bundles the dependencies the HTTP handlers need.
type Server struct {
	DeckService   services.DeckService
	CardService   services.CardService
	BundleService services.BundleService
	// Generator is optional; suggestion endpoints report the feature as
	// unavailable when it is nil.
	Generator suggest.Generator
	// MaxImportBytes caps the size of an uploaded bundle document.
	MaxImportBytes int64
}
