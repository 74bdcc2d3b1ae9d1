// Package model provides the normalized in-memory representation of a
// presentation deck.
//
// This package defines the user-facing data structures produced by parsing
// a PPTX package and consumed by export, text extraction, and signature
// computation. All parsing operations ultimately produce these types,
// making them the primary API for working with deck content.
//
// # Document Structure
//
// The [Document] type represents a complete deck with metadata, theme,
// canvas dimensions in pixels, and an ordered list of slides:
//
//	doc := model.NewDocument()
//	doc.Name = "Quarterly Review"
//	doc.AddSlide(slide)
//
// Each [Slide] holds a background, an optional speaker-note text, and an
// ordered list of [Element] values. Paint order is list order: an element's
// ZIndex always equals its position at parse time.
//
// # Elements
//
// All slide content implements the [Element] interface. The concrete types
// form a closed set:
//
//   - [Text] - a text box with paragraphs and runs
//   - [Shape] - a geometric shape with fill, stroke, and optional text
//   - [Image] - an embedded picture payload
//
// # Identity
//
// Identifiers are regenerated on every parse via [NewID] and are unique
// within a slide, but they are NOT stable across independent parses of the
// same package. Consumers that need cross-parse identity must rely on slide
// position plus content signatures, never on raw identifiers.
package model
