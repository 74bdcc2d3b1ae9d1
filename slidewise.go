// Package slidewise provides a fluent API for reading, inspecting, and
// writing PowerPoint (.pptx) presentations.
//
// Basic usage:
//
//	text, warnings, err := slidewise.Open("deck.pptx").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidewise.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := slidewise.Open("deck.pptx").
//	    Slides(1, 2, 3).
//	    IncludeNotes().
//	    Text()
//
// For direct access to the document model, use Document(); for lower-level
// control the pptx package is also available.
package slidewise

import (
	"github.com/slidewise/slidewise/format"
	"github.com/slidewise/slidewise/pptx"
)

// Open opens a presentation file and returns a Deck for fluent
// configuration. The file is not read until a terminal operation runs.
//
// Example:
//
//	text, warnings, err := slidewise.Open("deck.pptx").Text()
func Open(filename string) *Deck {
	return &Deck{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates a Deck from an in-memory package buffer. The name is a
// display hint used for the document name; it may be empty.
//
// Example:
//
//	data, _ := os.ReadFile("deck.pptx")
//	doc, warnings, err := slidewise.FromBytes(data, "deck.pptx").Document()
func FromBytes(data []byte, name string) *Deck {
	d := &Deck{
		data:    data,
		name:    name,
		options: defaultOptions(),
	}
	if f := format.DetectBytes(data); f != format.PPTX {
		d.err = pptx.ErrPackageUnreadable
	}
	return d
}

// FromReader creates a Deck from an already-parsed pptx.Reader.
//
// Example:
//
//	r, err := pptx.Open("deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	text, warnings, err := slidewise.FromReader(r).Text()
func FromReader(r *pptx.Reader) *Deck {
	return &Deck{
		reader:       r,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := slidewise.Must(slidewise.Open("deck.pptx").SlideCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	text := slidewise.MustText(slidewise.Open("deck.pptx").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
