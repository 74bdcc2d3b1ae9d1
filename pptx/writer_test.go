package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"math"
	"testing"

	"github.com/slidewise/slidewise/model"
)

// tinyPNG is a 1x1 transparent PNG used as embedded media in fixtures.
var tinyPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

// buildDocument assembles a document by hand the way an editor would,
// bypassing the reader.
func buildDocument() *model.Document {
	doc := model.NewDocument()
	doc.Name = "built"
	doc.Width = 960
	doc.Height = 720

	slide := model.NewSlide()
	slide.AddElement(&model.Text{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      model.Geometry{X: 48, Y: 28.8, Width: 864, Height: 120},
		},
		Body: model.TextBody{
			Placeholder: "title",
			WordWrap:    true,
			Columns:     1,
			Paragraphs: []model.Paragraph{
				{Runs: []model.Run{{Text: "Q1 Results", Size: 44, Bold: true}}},
			},
		},
	})
	slide.AddElement(&model.Shape{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      model.Geometry{X: 100, Y: 300, Width: 200, Height: 150, Rotation: 45},
		},
		Kind:   model.ShapeEllipse,
		Fill:   model.SolidFill(model.RGB(0xFF, 0x80, 0x00)),
		Stroke: model.Stroke{Color: model.RGB(0, 0, 0), Width: 2, Opacity: 1, Dash: model.DashDash},
	})
	slide.Notes = "Lead with the revenue number."
	doc.AddSlide(slide)
	return doc
}

func exportAndReparse(t *testing.T, doc *model.Document) *model.Document {
	t.Helper()
	data, err := Export(doc)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	r, err := NewReader(data, doc.Name)
	if err != nil {
		t.Fatalf("reparsing exported package failed: %v", err)
	}
	return r.Document()
}

func TestExport_PartLayout(t *testing.T) {
	data, err := Export(buildDocument())
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("exported bytes are not a zip: %v", err)
	}

	parts := make(map[string]bool)
	for _, f := range zr.File {
		parts[f.Name] = true
	}

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/notesSlides/notesSlide1.xml",
		"docProps/core.xml",
		"docProps/app.xml",
	}
	for _, p := range required {
		if !parts[p] {
			t.Errorf("exported package is missing %s", p)
		}
	}
}

func TestExport_RoundTrip(t *testing.T) {
	doc := buildDocument()
	got := exportAndReparse(t, doc)

	if got.SlideCount() != 1 {
		t.Fatalf("SlideCount() = %d, want 1", got.SlideCount())
	}
	if got.Width != doc.Width || got.Height != doc.Height {
		t.Errorf("canvas = %vx%v, want %vx%v", got.Width, got.Height, doc.Width, doc.Height)
	}

	slide := got.Slides[0]
	if len(slide.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(slide.Elements))
	}
	if slide.Notes != "Lead with the revenue number." {
		t.Errorf("Notes = %q", slide.Notes)
	}

	title, ok := slide.Elements[0].(*model.Text)
	if !ok {
		t.Fatalf("element 0 is %T, want *model.Text", slide.Elements[0])
	}
	if title.Body.PlainText() != "Q1 Results" {
		t.Errorf("title = %q", title.Body.PlainText())
	}
	run := title.Body.Paragraphs[0].Runs[0]
	if !run.Bold || run.Size != 44 {
		t.Errorf("run bold=%v size=%v, want bold 44pt", run.Bold, run.Size)
	}

	shape, ok := slide.Elements[1].(*model.Shape)
	if !ok {
		t.Fatalf("element 1 is %T, want *model.Shape", slide.Elements[1])
	}
	if shape.Kind != model.ShapeEllipse {
		t.Errorf("Kind = %v, want ellipse", shape.Kind)
	}
	if shape.Fill.Color != model.RGB(0xFF, 0x80, 0x00) {
		t.Errorf("Fill.Color = %+v", shape.Fill.Color)
	}
	if shape.Stroke.Dash != model.DashDash {
		t.Errorf("Stroke.Dash = %v, want dash", shape.Stroke.Dash)
	}

	for i, want := range []model.Geometry{
		doc.Slides[0].Elements[0].Geometry(),
		doc.Slides[0].Elements[1].Geometry(),
	} {
		g := slide.Elements[i].Geometry()
		if math.Abs(g.X-want.X) > 1 || math.Abs(g.Y-want.Y) > 1 ||
			math.Abs(g.Width-want.Width) > 1 || math.Abs(g.Height-want.Height) > 1 {
			t.Errorf("element %d geometry = %+v, want ~%+v", i, g, want)
		}
		if math.Abs(g.Rotation-want.Rotation) > 0.001 {
			t.Errorf("element %d rotation = %v, want %v", i, g.Rotation, want.Rotation)
		}
	}
}

func TestExport_RegeneratesIdentifiers(t *testing.T) {
	doc := buildDocument()
	got := exportAndReparse(t, doc)

	for i := range doc.Slides[0].Elements {
		before := doc.Slides[0].Elements[i].ID()
		after := got.Slides[0].Elements[i].ID()
		if before == after {
			t.Errorf("element %d kept identifier %q across export", i, before)
		}
	}
}

func TestExport_ImageRoundTrip(t *testing.T) {
	doc := buildDocument()
	doc.Slides[0].AddElement(&model.Image{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      model.Geometry{X: 500, Y: 400, Width: 96, Height: 96},
		},
		Data:        tinyPNG,
		ContentHash: contentHash(tinyPNG),
		Format:      "png",
	})

	got := exportAndReparse(t, doc)
	slide := got.Slides[0]
	if len(slide.Elements) != 3 {
		t.Fatalf("elements = %d, want 3", len(slide.Elements))
	}

	img, ok := slide.Elements[2].(*model.Image)
	if !ok {
		t.Fatalf("element 2 is %T, want *model.Image", slide.Elements[2])
	}
	if !bytes.Equal(img.Data, tinyPNG) {
		t.Error("image payload changed across export")
	}
	if img.ContentHash != contentHash(tinyPNG) {
		t.Errorf("ContentHash = %q, want payload hash", img.ContentHash)
	}
	if img.Format != "png" {
		t.Errorf("Format = %q, want png", img.Format)
	}
}

func TestExport_PaintOrderRoundTrip(t *testing.T) {
	// An image painted under a shape must re-parse in the same order, or
	// the overlap renders with the wrong element on top.
	doc := model.NewDocument()
	doc.Name = "layered"
	doc.Width = 960
	doc.Height = 720

	slide := model.NewSlide()
	slide.AddElement(&model.Image{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      model.Geometry{X: 100, Y: 100, Width: 96, Height: 96},
		},
		Data:        tinyPNG,
		ContentHash: contentHash(tinyPNG),
		Format:      "png",
	})
	slide.AddElement(&model.Shape{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      model.Geometry{X: 120, Y: 120, Width: 96, Height: 96},
		},
		Kind: model.ShapeEllipse,
		Fill: model.SolidFill(model.RGB(0xFF, 0, 0)),
	})
	doc.AddSlide(slide)

	got := exportAndReparse(t, doc)
	elements := got.Slides[0].Elements
	if len(elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(elements))
	}
	if _, ok := elements[0].(*model.Image); !ok {
		t.Errorf("element 0 is %T, want *model.Image painted first", elements[0])
	}
	if _, ok := elements[1].(*model.Shape); !ok {
		t.Errorf("element 1 is %T, want *model.Shape painted second", elements[1])
	}
	for i, e := range elements {
		if e.ZIndex() != i {
			t.Errorf("element %d has z-index %d", i, e.ZIndex())
		}
	}
}

func TestExport_MediaDeduplication(t *testing.T) {
	// The same payload on two slides exports as one media part.
	doc := buildDocument()
	second := model.NewSlide()
	for _, s := range []*model.Slide{doc.Slides[0], second} {
		s.AddElement(&model.Image{
			Box: model.Box{
				ElementID: model.NewID(),
				Geom:      model.Geometry{X: 10, Y: 10, Width: 96, Height: 96},
			},
			Data:        tinyPNG,
			ContentHash: contentHash(tinyPNG),
			Format:      "png",
		})
	}
	doc.AddSlide(second)

	data, err := Export(doc)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading exported zip: %v", err)
	}

	var mediaParts int
	for _, f := range zr.File {
		if len(f.Name) > 10 && f.Name[:10] == "ppt/media/" {
			mediaParts++
		}
	}
	if mediaParts != 1 {
		t.Errorf("media parts = %d, want 1 after deduplication", mediaParts)
	}
}

func TestExport_Validation(t *testing.T) {
	valid := buildDocument()

	noCanvas := buildDocument()
	noCanvas.Width = 0

	noSlides := model.NewDocument()
	noSlides.Width = 960
	noSlides.Height = 720

	negative := buildDocument()
	negative.Slides[0].AddElement(&model.Shape{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      model.Geometry{Width: -5, Height: 10},
		},
		Kind: model.ShapeEllipse,
		Fill: model.SolidFill(model.RGB(1, 2, 3)),
	})

	tests := []struct {
		name    string
		doc     *model.Document
		wantErr bool
	}{
		{"valid", valid, false},
		{"nil document", nil, true},
		{"zero canvas", noCanvas, true},
		{"no slides", noSlides, true},
		{"negative size", negative, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Export(tt.doc)
			if tt.wantErr {
				if !errors.Is(err, ErrExportFailed) {
					t.Errorf("Export() error = %v, want ErrExportFailed", err)
				}
			} else if err != nil {
				t.Errorf("Export() failed: %v", err)
			}
		})
	}
}

func TestExport_Metadata(t *testing.T) {
	doc := buildDocument()
	doc.Metadata.Title = "Quarterly Review"
	doc.Metadata.Author = "A. Author"
	doc.Metadata.Keywords = []string{"revenue", "q1"}

	got := exportAndReparse(t, doc)
	if got.Metadata.Title != "Quarterly Review" {
		t.Errorf("Title = %q", got.Metadata.Title)
	}
	if got.Metadata.Author != "A. Author" {
		t.Errorf("Author = %q", got.Metadata.Author)
	}
	if len(got.Metadata.Keywords) != 2 {
		t.Errorf("Keywords = %v", got.Metadata.Keywords)
	}
}

func TestExport_ThemeFonts(t *testing.T) {
	doc := buildDocument()
	doc.Theme = model.DefaultTheme()
	doc.Theme.MajorFont = "Georgia"
	doc.Theme.MinorFont = "Verdana"

	got := exportAndReparse(t, doc)
	if got.Theme.MajorFont != "Georgia" || got.Theme.MinorFont != "Verdana" {
		t.Errorf("fonts = %q/%q, want Georgia/Verdana", got.Theme.MajorFont, got.Theme.MinorFont)
	}
}

func TestExport_ParsedPackageRoundTrip(t *testing.T) {
	r, err := NewReader(minimalPPTX(t), "fixture")
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	got := exportAndReparse(t, r.Document())
	if got.ExtractText() != r.Document().ExtractText() {
		t.Errorf("text changed across export:\nbefore %q\nafter  %q",
			r.Document().ExtractText(), got.ExtractText())
	}
}

func TestMediaExtension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"png", "png"},
		{"jpeg", "jpeg"},
		{"gif", "gif"},
		{"bmp", "bmp"},
		{"webp", "webp"},
		{"", "png"},
		{"mystery", "png"},
	}

	for _, tt := range tests {
		if got := mediaExtension(tt.format); got != tt.want {
			t.Errorf("mediaExtension(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func BenchmarkExport(b *testing.B) {
	doc := buildDocument()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Export(doc); err != nil {
			b.Fatal(err)
		}
	}
}
