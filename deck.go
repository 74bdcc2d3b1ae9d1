package slidewise

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slidewise/slidewise/model"
	"github.com/slidewise/slidewise/ocr"
	"github.com/slidewise/slidewise/pptx"
	"github.com/slidewise/slidewise/signature"
)

// Deck provides a fluent interface for working with a presentation.
// Each configuration method returns a new Deck instance, making it safe
// for concurrent use and allowing method chaining.
type Deck struct {
	// Source (exactly one of filename/data/reader is the origin)
	filename string
	data     []byte
	name     string

	reader       *pptx.Reader
	readerOpened bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Deck with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (d *Deck) clone() *Deck {
	return &Deck{
		filename:     d.filename,
		data:         d.data,
		name:         d.name,
		reader:       d.reader,
		readerOpened: d.readerOpened,
		options:      d.options.clone(),
		err:          d.err,
	}
}

// ensureReader parses the source if not already parsed.
func (d *Deck) ensureReader() error {
	if d.readerOpened {
		return nil
	}

	switch {
	case d.filename != "":
		r, err := pptx.Open(d.filename)
		if err != nil {
			return err
		}
		d.reader = r
	case d.data != nil:
		r, err := pptx.NewReader(d.data, d.name)
		if err != nil {
			return err
		}
		d.reader = r
	default:
		return fmt.Errorf("no input specified")
	}

	d.readerOpened = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Deck instance)
// ============================================================================

// Slides specifies which slides to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	text, _, err := slidewise.Open("deck.pptx").Slides(1, 3, 5).Text()
func (d *Deck) Slides(slides ...int) *Deck {
	newDeck := d.clone()
	newDeck.options.slides = append(newDeck.options.slides, slides...)
	return newDeck
}

// SlideRange specifies a range of slides to extract (1-indexed, inclusive).
//
// Example:
//
//	text, _, err := slidewise.Open("deck.pptx").SlideRange(5, 10).Text()
func (d *Deck) SlideRange(start, end int) *Deck {
	newDeck := d.clone()
	for i := start; i <= end; i++ {
		newDeck.options.slides = append(newDeck.options.slides, i)
	}
	return newDeck
}

// IncludeNotes configures extraction to append each slide's speaker notes
// after its body text.
//
// Example:
//
//	text, _, err := slidewise.Open("deck.pptx").IncludeNotes().Text()
func (d *Deck) IncludeNotes() *Deck {
	newDeck := d.clone()
	newDeck.options.includeNotes = true
	return newDeck
}

// SlideNumbers configures extraction to prefix each slide's text with a
// "Slide N" marker.
//
// Example:
//
//	text, _, err := slidewise.Open("deck.pptx").SlideNumbers().Text()
func (d *Deck) SlideNumbers() *Deck {
	newDeck := d.clone()
	newDeck.options.slideNumbers = true
	return newDeck
}

// ExcludeFooters configures extraction to skip footer, date, and slide
// number placeholders.
//
// Example:
//
//	text, _, err := slidewise.Open("deck.pptx").ExcludeFooters().Text()
func (d *Deck) ExcludeFooters() *Deck {
	newDeck := d.clone()
	newDeck.options.excludeFooters = true
	return newDeck
}

// WithImageText configures extraction to run OCR on image elements and
// include the recognized text. The caller owns the client's lifecycle.
//
// Example:
//
//	client, _ := ocr.New()
//	defer client.Close()
//	text, _, err := slidewise.Open("deck.pptx").WithImageText(client).Text()
func (d *Deck) WithImageText(client *ocr.Client) *Deck {
	newDeck := d.clone()
	newDeck.options.ocrClient = client
	return newDeck
}

// ============================================================================
// Terminal Operations (execute and return results)
// ============================================================================

// Document parses the presentation and returns the document model.
//
// Returns the document, any warnings encountered during parsing, and an
// error if parsing failed. Warnings indicate non-fatal issues (e.g. a
// skipped slide) where parsing succeeded but results may be incomplete.
//
// Example:
//
//	doc, warnings, err := slidewise.Open("deck.pptx").Document()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", slidewise.FormatWarnings(warnings))
//	}
func (d *Deck) Document() (*model.Document, []Warning, error) {
	if d.err != nil {
		return nil, nil, d.err
	}
	if err := d.ensureReader(); err != nil {
		return nil, nil, err
	}
	return d.reader.Document(), d.reader.Warnings(), nil
}

// SlideCount returns the number of slides in the presentation.
//
// Example:
//
//	count, err := slidewise.Open("deck.pptx").SlideCount()
func (d *Deck) SlideCount() (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if err := d.ensureReader(); err != nil {
		return 0, err
	}
	return d.reader.Document().SlideCount(), nil
}

// Text extracts and returns plain text from the configured slides, in
// reading order (top to bottom, left to right).
//
// Example:
//
//	text, warnings, err := slidewise.Open("deck.pptx").IncludeNotes().Text()
func (d *Deck) Text() (string, []Warning, error) {
	doc, warnings, err := d.Document()
	if err != nil {
		return "", warnings, err
	}

	slides, err := d.resolveSlides(doc)
	if err != nil {
		return "", warnings, err
	}

	var result strings.Builder
	for i, s := range slides {
		if i > 0 && result.Len() > 0 {
			result.WriteString("\n\n")
		}
		if d.options.slideNumbers {
			result.WriteString(fmt.Sprintf("Slide %d\n", s.Index+1))
		}
		result.WriteString(d.slideText(s))
	}
	return result.String(), warnings, nil
}

// Markdown extracts content and returns it as a markdown-formatted string.
// Title placeholders become headings, bulleted paragraphs become list
// items, and speaker notes become blockquotes when notes are included.
//
// Example:
//
//	md, warnings, err := slidewise.Open("deck.pptx").IncludeNotes().Markdown()
func (d *Deck) Markdown() (string, []Warning, error) {
	doc, warnings, err := d.Document()
	if err != nil {
		return "", warnings, err
	}

	slides, err := d.resolveSlides(doc)
	if err != nil {
		return "", warnings, err
	}

	var result strings.Builder
	for i, s := range slides {
		if i > 0 && result.Len() > 0 {
			result.WriteString("\n\n---\n\n")
		}
		result.WriteString(d.slideMarkdown(s))
	}
	return result.String(), warnings, nil
}

// Export serializes the document back into package bytes. Any document
// mutations made between Document() and Export() are reflected in the
// output.
//
// Example:
//
//	data, warnings, err := slidewise.Open("deck.pptx").Export()
//	os.WriteFile("copy.pptx", data, 0644)
func (d *Deck) Export() ([]byte, []Warning, error) {
	doc, warnings, err := d.Document()
	if err != nil {
		return nil, warnings, err
	}
	data, err := pptx.Export(doc)
	if err != nil {
		return nil, warnings, err
	}
	return data, warnings, nil
}

// Signatures computes a content fingerprint for each configured slide.
// Signatures are stable across re-parses of identical bytes and change
// when slide content changes; see the signature package for comparison.
//
// Example:
//
//	sigs, warnings, err := slidewise.Open("deck.pptx").Signatures()
func (d *Deck) Signatures() ([]signature.SlideSignature, []Warning, error) {
	doc, warnings, err := d.Document()
	if err != nil {
		return nil, warnings, err
	}

	slides, err := d.resolveSlides(doc)
	if err != nil {
		return nil, warnings, err
	}

	sigs := make([]signature.SlideSignature, 0, len(slides))
	for _, s := range slides {
		sigs = append(sigs, signature.Slide(s))
	}
	return sigs, warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolveSlides converts 1-indexed slide numbers to slides and validates
// them. If no slides were specified, returns all slides.
func (d *Deck) resolveSlides(doc *model.Document) ([]*model.Slide, error) {
	if len(d.options.slides) == 0 {
		return doc.Slides, nil
	}

	seen := make(map[int]bool)
	var out []*model.Slide
	var indices []int
	for _, n := range d.options.slides {
		if n < 1 || n > len(doc.Slides) {
			return nil, fmt.Errorf("slide %d out of range (1-%d)", n, len(doc.Slides))
		}
		if !seen[n-1] {
			seen[n-1] = true
			indices = append(indices, n-1)
		}
	}
	sort.Ints(indices)
	for _, i := range indices {
		out = append(out, doc.Slides[i])
	}
	return out, nil
}

// footerRoles are placeholder roles skipped when ExcludeFooters is set.
var footerRoles = map[string]bool{
	"ftr":    true,
	"dt":     true,
	"sldNum": true,
}

// readingOrder returns a slide's elements sorted top to bottom, left to
// right.
func readingOrder(elements []model.Element) []model.Element {
	out := make([]model.Element, len(elements))
	copy(out, elements)
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := out[i].Geometry(), out[j].Geometry()
		if gi.Y != gj.Y {
			return gi.Y < gj.Y
		}
		return gi.X < gj.X
	})
	return out
}

func (d *Deck) slideText(s *model.Slide) string {
	var parts []string
	for _, e := range readingOrder(s.Elements) {
		if t := d.elementText(e); t != "" {
			parts = append(parts, t)
		}
	}
	if d.options.includeNotes && s.Notes != "" {
		parts = append(parts, s.Notes)
	}
	return strings.Join(parts, "\n")
}

func (d *Deck) elementText(e model.Element) string {
	switch el := e.(type) {
	case *model.Text:
		if d.options.excludeFooters && footerRoles[el.Body.Placeholder] {
			return ""
		}
		return el.Body.PlainText()
	case *model.Shape:
		return el.ExtractText()
	case *model.Image:
		if d.options.ocrClient == nil {
			return ""
		}
		text, err := d.options.ocrClient.RecognizeElement(el)
		if err != nil {
			return ""
		}
		return text
	default:
		return ""
	}
}

func (d *Deck) slideMarkdown(s *model.Slide) string {
	var result strings.Builder

	for _, e := range readingOrder(s.Elements) {
		var body *model.TextBody
		switch el := e.(type) {
		case *model.Text:
			if d.options.excludeFooters && footerRoles[el.Body.Placeholder] {
				continue
			}
			body = &el.Body
		case *model.Shape:
			body = el.Text
		case *model.Image:
			if d.options.ocrClient != nil {
				if text, err := d.options.ocrClient.RecognizeElement(el); err == nil && text != "" {
					if result.Len() > 0 {
						result.WriteString("\n\n")
					}
					result.WriteString(text)
				}
			}
			continue
		}
		if body == nil || body.IsEmpty() {
			continue
		}

		isTitle := body.Placeholder == "title" || body.Placeholder == "ctrTitle"
		for pi := range body.Paragraphs {
			p := &body.Paragraphs[pi]
			text := p.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			if result.Len() > 0 {
				result.WriteString("\n")
			}
			switch {
			case isTitle:
				result.WriteString("## " + text)
			case p.Numbered:
				result.WriteString(strings.Repeat("  ", p.Level) + "1. " + text)
			case p.Bullet:
				result.WriteString(strings.Repeat("  ", p.Level) + "- " + text)
			default:
				result.WriteString(text)
			}
		}
	}

	if d.options.includeNotes && s.Notes != "" {
		if result.Len() > 0 {
			result.WriteString("\n\n")
		}
		for i, line := range strings.Split(s.Notes, "\n") {
			if i > 0 {
				result.WriteString("\n")
			}
			result.WriteString("> " + line)
		}
	}

	return result.String()
}
