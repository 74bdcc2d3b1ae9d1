package model

import (
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
		ok   bool
	}{
		{"six digit", "FF8000", Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, true},
		{"lowercase", "ff8000", Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, true},
		{"leading hash", "#FF8000", Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, true},
		{"eight digit argb", "80FF8000", Color{A: 0x80, R: 0xFF, G: 0x80, B: 0x00}, true},
		{"too short", "F80", Color{}, false},
		{"not hex", "GGGGGG", Color{}, false},
		{"empty", "", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseHex(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	if got := RGB(0xFF, 0x80, 0x00).Hex(); got != "FF8000" {
		t.Errorf("Hex() = %q, want FF8000", got)
	}
}

func TestColorIsZero(t *testing.T) {
	if !(Color{}).IsZero() {
		t.Error("zero value should report IsZero")
	}
	if RGB(0, 0, 0).IsZero() {
		t.Error("opaque black is not the zero value")
	}
}

func TestGeometry(t *testing.T) {
	g := NewGeometry(10, 20, 100, 50)

	if g.Right() != 110 || g.Bottom() != 70 {
		t.Errorf("Right/Bottom = %v/%v, want 110/70", g.Right(), g.Bottom())
	}
	if g.Area() != 5000 {
		t.Errorf("Area() = %v, want 5000", g.Area())
	}
	if c := g.Center(); c.X != 60 || c.Y != 45 {
		t.Errorf("Center() = %+v, want (60, 45)", c)
	}

	if !g.Contains(Point{X: 50, Y: 40}) {
		t.Error("Contains should include interior points")
	}
	if g.Contains(Point{X: 5, Y: 40}) {
		t.Error("Contains should exclude exterior points")
	}

	overlapping := NewGeometry(100, 60, 50, 50)
	if !g.Intersects(overlapping) {
		t.Error("overlapping rectangles should intersect")
	}
	disjoint := NewGeometry(500, 500, 10, 10)
	if g.Intersects(disjoint) {
		t.Error("disjoint rectangles should not intersect")
	}
}

func TestThemeColor(t *testing.T) {
	theme := DefaultTheme()

	if got := theme.Color(SlotAccent1); got != RGB(0x44, 0x72, 0xC4) {
		t.Errorf("accent1 = %+v", got)
	}

	// Out-of-range slots fall back to the Dark1 color.
	if got := theme.Color(ColorSlot(99)); got != theme.Color(SlotDark1) {
		t.Errorf("out-of-range slot = %+v, want dark1", got)
	}
}

func TestDocumentAddSlide(t *testing.T) {
	doc := NewDocument()
	for i := 0; i < 3; i++ {
		doc.AddSlide(NewSlide())
	}

	if doc.SlideCount() != 3 {
		t.Fatalf("SlideCount() = %d, want 3", doc.SlideCount())
	}
	for i, s := range doc.Slides {
		if s.Index != i {
			t.Errorf("slide %d has Index %d", i, s.Index)
		}
	}

	if doc.GetSlide(1) != doc.Slides[1] {
		t.Error("GetSlide(1) did not return the second slide")
	}
	if doc.GetSlide(-1) != nil || doc.GetSlide(3) != nil {
		t.Error("out-of-range GetSlide should return nil")
	}
}

func TestSlideAddElement(t *testing.T) {
	s := NewSlide()
	a := &Shape{Box: Box{ElementID: NewID()}, Kind: ShapeEllipse}
	b := &Shape{Box: Box{ElementID: NewID()}, Kind: ShapeEllipse}
	s.AddElement(a)
	s.AddElement(b)

	if a.ZIndex() != 0 || b.ZIndex() != 1 {
		t.Errorf("z-indices = %d, %d, want 0, 1", a.ZIndex(), b.ZIndex())
	}
}

func textWith(content string) *Text {
	return &Text{
		Box: Box{ElementID: NewID()},
		Body: TextBody{
			Paragraphs: []Paragraph{{Runs: []Run{{Text: content}}}},
		},
	}
}

func TestSlideExtractText(t *testing.T) {
	s := NewSlide()
	s.AddElement(textWith("first"))
	s.AddElement(textWith("second"))

	got := s.ExtractText()
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("ExtractText() = %q", got)
	}
}

func TestSlideTitle(t *testing.T) {
	s := NewSlide()
	s.AddElement(textWith("not the title"))

	title := textWith("Heading")
	title.Body.Placeholder = "title"
	s.AddElement(title)

	if got := s.Title(); got != "Heading" {
		t.Errorf("Title() = %q, want %q", got, "Heading")
	}

	empty := NewSlide()
	if got := empty.Title(); got != "" {
		t.Errorf("Title() on empty slide = %q, want empty", got)
	}
}

func TestParagraphText(t *testing.T) {
	p := Paragraph{Runs: []Run{{Text: "Hello, "}, {Text: "world"}}}
	if got := p.Text(); got != "Hello, world" {
		t.Errorf("Text() = %q", got)
	}
}

func TestTextBodyPlainText(t *testing.T) {
	tb := TextBody{
		Paragraphs: []Paragraph{
			{Runs: []Run{{Text: "line one"}}},
			{},
			{Runs: []Run{{Text: "line two"}}},
		},
	}
	if got := tb.PlainText(); got != "line one\nline two" {
		t.Errorf("PlainText() = %q", got)
	}
}

func TestTextBodyIsEmpty(t *testing.T) {
	empty := TextBody{Paragraphs: []Paragraph{{}, {Runs: []Run{{Text: "  "}}}}}
	if !empty.IsEmpty() {
		t.Error("whitespace-only body should be empty")
	}

	full := TextBody{Paragraphs: []Paragraph{{Runs: []Run{{Text: "x"}}}}}
	if full.IsEmpty() {
		t.Error("body with text should not be empty")
	}
}

func TestShapeExtractText(t *testing.T) {
	s := &Shape{Box: Box{ElementID: NewID()}, Kind: ShapeEllipse}
	if got := s.ExtractText(); got != "" {
		t.Errorf("textless shape ExtractText() = %q", got)
	}

	s.Text = &TextBody{Paragraphs: []Paragraph{{Runs: []Run{{Text: "inside"}}}}}
	if got := s.ExtractText(); got != "inside" {
		t.Errorf("ExtractText() = %q", got)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}
