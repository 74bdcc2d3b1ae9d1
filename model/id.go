package model

import "github.com/google/uuid"

// NewID generates a unique identifier for a document, slide, or element.
// Identifiers are regenerated on every parse and carry no meaning beyond
// uniqueness within the containing slide; cross-parse identity comes from
// position and content signatures instead.
func NewID() string {
	return uuid.NewString()
}
