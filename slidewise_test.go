package slidewise

import (
	"errors"
	"strings"
	"testing"

	"github.com/slidewise/slidewise/model"
	"github.com/slidewise/slidewise/pptx"
	"github.com/slidewise/slidewise/signature"
)

// fixtureBytes builds a three-slide package by constructing a document and
// serializing it, so the whole test exercises the writer and reader pair.
func fixtureBytes(t *testing.T) []byte {
	t.Helper()

	doc := model.NewDocument()
	doc.Name = "fixture"
	doc.Width = 960
	doc.Height = 720

	addSlide := func(title, body string) *model.Slide {
		s := model.NewSlide()
		s.AddElement(&model.Text{
			Box: model.Box{
				ElementID: model.NewID(),
				Geom:      model.Geometry{X: 48, Y: 28.8, Width: 864, Height: 120},
			},
			Body: model.TextBody{
				Placeholder: "title",
				WordWrap:    true,
				Columns:     1,
				Paragraphs:  []model.Paragraph{{Runs: []model.Run{{Text: title}}}},
			},
		})
		s.AddElement(&model.Text{
			Box: model.Box{
				ElementID: model.NewID(),
				Geom:      model.Geometry{X: 48, Y: 168, Width: 864, Height: 400},
			},
			Body: model.TextBody{
				Placeholder: "body",
				WordWrap:    true,
				Columns:     1,
				Paragraphs: []model.Paragraph{
					{Runs: []model.Run{{Text: body}}, Bullet: true, BulletChar: "•"},
				},
			},
		})
		doc.AddSlide(s)
		return s
	}

	addSlide("Q1 Results", "Revenue up 10%")
	addSlide("Outlook", "Pipeline doubled")
	third := addSlide("Questions", "Thank you")
	third.Notes = "Leave time for discussion."

	data, err := pptx.Export(doc)
	if err != nil {
		t.Fatalf("building fixture: %v", err)
	}
	return data
}

func TestFromBytes_Document(t *testing.T) {
	doc, warnings, err := FromBytes(fixtureBytes(t), "fixture").Document()
	if err != nil {
		t.Fatalf("Document() failed: %v\n%s", err, FormatWarnings(warnings))
	}

	if doc.SlideCount() != 3 {
		t.Fatalf("SlideCount() = %d, want 3", doc.SlideCount())
	}
	if doc.Slides[0].Title() != "Q1 Results" {
		t.Errorf("first title = %q", doc.Slides[0].Title())
	}
	if doc.Slides[2].Notes != "Leave time for discussion." {
		t.Errorf("notes = %q", doc.Slides[2].Notes)
	}
}

func TestFromBytes_Garbage(t *testing.T) {
	_, _, err := FromBytes([]byte("not a presentation"), "bad").Document()
	if !errors.Is(err, pptx.ErrPackageUnreadable) {
		t.Errorf("Document() error = %v, want ErrPackageUnreadable", err)
	}
}

func TestDeck_Text(t *testing.T) {
	text, _, err := FromBytes(fixtureBytes(t), "fixture").Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}

	for _, want := range []string{"Q1 Results", "Revenue up 10%", "Outlook", "Thank you"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Leave time") {
		t.Error("notes should be excluded without IncludeNotes()")
	}
}

func TestDeck_TextWithSlideNumbers(t *testing.T) {
	text, _, err := FromBytes(fixtureBytes(t), "fixture").SlideNumbers().Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if !strings.Contains(text, "Slide 1\n") || !strings.Contains(text, "Slide 3\n") {
		t.Errorf("Text() missing slide number headers:\n%s", text)
	}
}

func TestDeck_TextWithNotes(t *testing.T) {
	text, _, err := FromBytes(fixtureBytes(t), "fixture").IncludeNotes().Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if !strings.Contains(text, "Leave time for discussion.") {
		t.Errorf("Text() missing notes:\n%s", text)
	}
}

func TestDeck_SlideSelection(t *testing.T) {
	deck := FromBytes(fixtureBytes(t), "fixture")

	text, _, err := deck.Slides(2).Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if !strings.Contains(text, "Outlook") {
		t.Errorf("selected slide missing:\n%s", text)
	}
	if strings.Contains(text, "Q1 Results") || strings.Contains(text, "Questions") {
		t.Errorf("unselected slides leaked:\n%s", text)
	}

	// Chaining clones: the base deck still sees every slide.
	full, _, err := deck.Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if !strings.Contains(full, "Q1 Results") {
		t.Error("base deck lost slides after a chained selection")
	}
}

func TestDeck_SlideRange(t *testing.T) {
	text, _, err := FromBytes(fixtureBytes(t), "fixture").SlideRange(2, 3).Text()
	if err != nil {
		t.Fatalf("Text() failed: %v", err)
	}
	if strings.Contains(text, "Q1 Results") {
		t.Error("slide 1 should be outside the range")
	}
	if !strings.Contains(text, "Outlook") || !strings.Contains(text, "Questions") {
		t.Errorf("range slides missing:\n%s", text)
	}
}

func TestDeck_SlideSelectionOutOfRange(t *testing.T) {
	_, _, err := FromBytes(fixtureBytes(t), "fixture").Slides(99).Text()
	if err == nil {
		t.Error("expected error for out-of-range slide selection")
	}
}

func TestDeck_SlideCount(t *testing.T) {
	n, err := FromBytes(fixtureBytes(t), "fixture").SlideCount()
	if err != nil {
		t.Fatalf("SlideCount() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("SlideCount() = %d, want 3", n)
	}
}

func TestDeck_Markdown(t *testing.T) {
	md, _, err := FromBytes(fixtureBytes(t), "fixture").IncludeNotes().Markdown()
	if err != nil {
		t.Fatalf("Markdown() failed: %v", err)
	}

	if !strings.Contains(md, "## Q1 Results") {
		t.Errorf("Markdown() missing title heading:\n%s", md)
	}
	if !strings.Contains(md, "- Revenue up 10%") {
		t.Errorf("Markdown() missing bullet item:\n%s", md)
	}
	if !strings.Contains(md, "> Leave time for discussion.") {
		t.Errorf("Markdown() missing notes blockquote:\n%s", md)
	}
	if strings.Count(md, "\n---\n") != 2 {
		t.Errorf("Markdown() should separate 3 slides with 2 rules:\n%s", md)
	}
}

func TestDeck_Export(t *testing.T) {
	data, _, err := FromBytes(fixtureBytes(t), "fixture").Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	doc, _, err := FromBytes(data, "reexported").Document()
	if err != nil {
		t.Fatalf("reparsing exported deck: %v", err)
	}
	if doc.SlideCount() != 3 {
		t.Errorf("SlideCount() = %d, want 3", doc.SlideCount())
	}
	if doc.Slides[0].Title() != "Q1 Results" {
		t.Errorf("title lost across export: %q", doc.Slides[0].Title())
	}
}

func TestDeck_Signatures(t *testing.T) {
	data := fixtureBytes(t)

	sigs, _, err := FromBytes(data, "fixture").Signatures()
	if err != nil {
		t.Fatalf("Signatures() failed: %v", err)
	}
	if len(sigs) != 3 {
		t.Fatalf("Signatures() = %d entries, want 3", len(sigs))
	}

	// A re-parse regenerates every internal identifier; signatures must
	// not notice.
	again, _, err := FromBytes(data, "fixture").Signatures()
	if err != nil {
		t.Fatalf("second Signatures() failed: %v", err)
	}
	for i := range sigs {
		if sigs[i].Hash != again[i].Hash {
			t.Errorf("slide %d hash changed across re-parse", i+1)
		}
		if sigs[i].Index != i {
			t.Errorf("signature %d has Index %d", i, sigs[i].Index)
		}
	}
}

func TestDeck_SignaturesSurviveExport(t *testing.T) {
	data := fixtureBytes(t)

	before, _, err := FromBytes(data, "fixture").Signatures()
	if err != nil {
		t.Fatalf("Signatures() failed: %v", err)
	}

	exported, _, err := FromBytes(data, "fixture").Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	after, _, err := FromBytes(exported, "fixture").Signatures()
	if err != nil {
		t.Fatalf("Signatures() on exported deck failed: %v", err)
	}

	for i := range before {
		if before[i].Hash != after[i].Hash {
			t.Errorf("slide %d signature changed across an export round trip", i+1)
		}
	}
}

func TestDeck_SignatureCompare(t *testing.T) {
	doc, _, err := FromBytes(fixtureBytes(t), "fixture").Document()
	if err != nil {
		t.Fatalf("Document() failed: %v", err)
	}

	stored := signature.Section("deck", doc.Slides)
	if got := signature.Compare(&stored, signature.Section("deck", doc.Slides)); got != signature.StatusUnchanged {
		t.Errorf("Compare() = %v, want unchanged", got)
	}

	doc.Slides[0].Elements[0].(*model.Text).Body.Paragraphs[0].Runs[0].Text = "Q2 Results"
	if got := signature.Compare(&stored, signature.Section("deck", doc.Slides)); got != signature.StatusChanged {
		t.Errorf("Compare() after edit = %v, want changed", got)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, _, err := Open("/nonexistent/deck.pptx").Document()
	if err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestMustText(t *testing.T) {
	text := MustText(FromBytes(fixtureBytes(t), "fixture").Text())
	if !strings.Contains(text, "Q1 Results") {
		t.Errorf("MustText() = %q", text)
	}
}

func TestMustText_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustText should panic on error")
		}
	}()
	MustText(FromBytes([]byte("garbage"), "bad").Text())
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: pptx.WarnSlideSkipped, Message: "slide2.xml missing"},
	}
	out := FormatWarnings(warnings)
	if !strings.Contains(out, string(pptx.WarnSlideSkipped)) || !strings.Contains(out, "slide2.xml missing") {
		t.Errorf("FormatWarnings() = %q", out)
	}
}
