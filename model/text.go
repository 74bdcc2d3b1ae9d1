package model

import "strings"

// Alignment represents horizontal paragraph alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// VerticalAlignment represents vertical text anchoring within a box.
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// Insets holds text box padding in pixels.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Run is a span of text with uniform character formatting.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Font      string  // Font family, empty means theme minor font
	Size      float64 // Points, 0 means inherited
	Color     Color
}

// Paragraph is an ordered list of runs with paragraph-level formatting.
type Paragraph struct {
	Runs        []Run
	Alignment   Alignment
	LineHeight  float64 // Multiple of single spacing, 0 means default
	SpaceBefore float64 // Points
	SpaceAfter  float64 // Points
	Level       int     // Indent/bullet level, 0-8
	Bullet      bool
	BulletChar  string
	Numbered    bool
}

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// TextBody is the rich-text content of a text box or shape. The same
// structure serves both Text elements and text embedded in shapes.
type TextBody struct {
	Paragraphs    []Paragraph
	VerticalAlign VerticalAlignment
	Insets        Insets
	WordWrap      bool
	Columns       int
	Placeholder   string // Placeholder role tag ("title", "body", ...), empty if none
}

// PlainText returns all paragraph text joined with newlines, skipping
// empty paragraphs.
func (tb *TextBody) PlainText() string {
	var parts []string
	for i := range tb.Paragraphs {
		if t := tb.Paragraphs[i].Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// IsEmpty reports whether the body contains no non-empty run text.
func (tb *TextBody) IsEmpty() bool {
	for i := range tb.Paragraphs {
		for _, r := range tb.Paragraphs[i].Runs {
			if strings.TrimSpace(r.Text) != "" {
				return false
			}
		}
	}
	return true
}
