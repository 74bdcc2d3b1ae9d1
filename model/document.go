package model

import (
	"strings"
	"time"
)

// Document represents a complete parsed deck.
type Document struct {
	ID       string
	Name     string // Display name, usually the source file name
	Width    float64
	Height   float64
	Theme    *Theme
	Slides   []*Slide
	Metadata Metadata
}

// Metadata contains document-level information from the package properties.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	Creator  string // Generating application
	Created  time.Time
	Modified time.Time
}

// NewDocument creates a new empty document with a fresh identifier and the
// default theme.
func NewDocument() *Document {
	return &Document{
		ID:     NewID(),
		Theme:  DefaultTheme(),
		Slides: make([]*Slide, 0),
	}
}

// AddSlide appends a slide and assigns its position index.
func (d *Document) AddSlide(s *Slide) {
	s.Index = len(d.Slides)
	d.Slides = append(d.Slides, s)
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int {
	return len(d.Slides)
}

// GetSlide returns the slide at the given zero-based index, or nil when out
// of range.
func (d *Document) GetSlide(index int) *Slide {
	if index < 0 || index >= len(d.Slides) {
		return nil
	}
	return d.Slides[index]
}

// ExtractText returns all slide text concatenated, slides separated by
// blank lines.
func (d *Document) ExtractText() string {
	var parts []string
	for _, s := range d.Slides {
		if t := s.ExtractText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Slide is one slide: a background, an ordered element list, and optional
// speaker notes. Element z-order is exactly list order.
type Slide struct {
	ID         string
	Index      int    // Zero-based position, stable proxy for identity across re-imports
	Layout     string // Layout part reference, informational only
	Background Fill
	Elements   []Element
	Notes      string
}

// NewSlide creates an empty slide with a fresh identifier and a plain
// white background.
func NewSlide() *Slide {
	return &Slide{
		ID:         NewID(),
		Background: SolidFill(RGB(255, 255, 255)),
		Elements:   make([]Element, 0),
	}
}

// AddElement appends an element and keeps its z-index consistent with list
// position.
func (s *Slide) AddElement(e Element) {
	switch el := e.(type) {
	case *Text:
		el.ZOrder = len(s.Elements)
	case *Shape:
		el.ZOrder = len(s.Elements)
	case *Image:
		el.ZOrder = len(s.Elements)
	}
	s.Elements = append(s.Elements, e)
}

// ExtractText returns the slide's visible text in element order.
func (s *Slide) ExtractText() string {
	var parts []string
	for _, e := range s.Elements {
		switch el := e.(type) {
		case *Text:
			if t := el.ExtractText(); t != "" {
				parts = append(parts, t)
			}
		case *Shape:
			if t := el.ExtractText(); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Title returns the text of the first title-role text element, or "".
func (s *Slide) Title() string {
	for _, e := range s.Elements {
		t, ok := e.(*Text)
		if !ok {
			continue
		}
		if t.Body.Placeholder == "title" || t.Body.Placeholder == "ctrTitle" {
			return t.ExtractText()
		}
	}
	return ""
}
