package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/slidewise/slidewise/model"
)

// Reader parses a PPTX package into a normalized document. All parsing
// happens during construction; afterwards the Reader only hands out the
// finished document and any warnings accumulated along the way.
type Reader struct {
	zr       *zip.Reader
	doc      *model.Document
	theme    *model.Theme
	presRels *relationshipsXML
	warnings []Warning
}

// Open reads and parses a PPTX file.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	name := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	return NewReader(data, name)
}

// NewReader parses a PPTX package from an in-memory byte buffer. The name
// is a display-name hint stored on the document.
func NewReader(data []byte, name string) (*Reader, error) {
	return NewReaderContext(context.Background(), data, name)
}

// NewReaderContext parses with a cooperative cancellation signal, checked
// between slides. On cancellation the partial result is discarded and
// ctx.Err() is returned.
func NewReaderContext(ctx context.Context, data []byte, name string) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageUnreadable, err)
	}

	r := &Reader{zr: zr}
	if err := r.parse(ctx, name); err != nil {
		return nil, err
	}
	return r, nil
}

// Document returns the parsed document.
func (r *Reader) Document() *model.Document {
	return r.doc
}

// Warnings returns the non-fatal issues encountered while parsing: skipped
// slides, dropped media, defaulted theme. Callers surface counts of
// degraded units, not raw internal errors.
func (r *Reader) Warnings() []Warning {
	return r.warnings
}

func (r *Reader) warn(code WarningCode, msg string) {
	r.warnings = append(r.warnings, Warning{Code: code, Message: msg})
}

// parse drives the full package parse: manifest, relationships, media,
// theme, slides in declared order, then metadata.
func (r *Reader) parse(ctx context.Context, name string) error {
	pres, err := r.parsePresentation()
	if err != nil {
		return err
	}

	doc := model.NewDocument()
	doc.Name = name

	if pres.SlideSz == nil || pres.SlideSz.Cx <= 0 || pres.SlideSz.Cy <= 0 {
		return fmt.Errorf("%w: canvas dimensions absent", ErrManifestMissing)
	}
	doc.Width = emuToPixels(pres.SlideSz.Cx)
	doc.Height = emuToPixels(pres.SlideSz.Cy)

	r.parsePresentationRels()
	mediaMap := r.extractMedia()
	r.theme = r.parseThemePart()
	doc.Theme = r.theme

	slideParts := r.slidePartsInOrder(pres)
	if len(slideParts) == 0 {
		return fmt.Errorf("%w: no slide parts declared", ErrManifestMissing)
	}

	for _, part := range slideParts {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := r.getFileContent(part)
		if err != nil {
			r.warn(WarnSlideSkipped, fmt.Sprintf("%s: %v", part, ErrSlidePartMissing))
			continue
		}

		rels := r.parsePartRels(part)
		slide, err := r.parseSlide(data, rels, mediaMap)
		if err != nil {
			r.warn(WarnSlideSkipped, fmt.Sprintf("%s: %v", part, err))
			continue
		}

		r.parseSlideNotes(rels, slide)
		doc.AddSlide(slide)
	}

	if len(doc.Slides) == 0 {
		return fmt.Errorf("%w: no slides could be parsed", ErrSlidePartMissing)
	}

	r.parseProperties(doc)
	r.doc = doc
	return nil
}

// decodeXML unmarshals a package part, tolerating non-UTF-8 encodings via
// the declared charset.
func decodeXML(data []byte, v interface{}) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec.Decode(v)
}

// getFileContent reads one part from the archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parsePresentation parses the root manifest.
func (r *Reader) parsePresentation() (*presentationXML, error) {
	data, err := r.getFileContent("ppt/presentation.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestMissing, err)
	}
	var pres presentationXML
	if err := decodeXML(data, &pres); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestMissing, err)
	}
	return &pres, nil
}

func (r *Reader) parsePresentationRels() {
	data, err := r.getFileContent("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return
	}
	rels := &relationshipsXML{}
	if err := decodeXML(data, rels); err != nil {
		return
	}
	r.presRels = rels
}

// parseThemePart locates and parses the theme, falling back to the
// built-in default when the part is absent or malformed. Never fatal.
func (r *Reader) parseThemePart() *model.Theme {
	target := "ppt/theme/theme1.xml"
	if r.presRels != nil {
		for _, rel := range r.presRels.Relationship {
			if rel.Type == relTypeTheme {
				target = resolvePartTarget("ppt", rel.Target)
				break
			}
		}
	}

	data, err := r.getFileContent(target)
	if err != nil {
		r.warn(WarnThemeDefault, fmt.Sprintf("%v: using default theme", ErrThemeMissing))
		return model.DefaultTheme()
	}
	theme, err := parseTheme(data)
	if err != nil {
		r.warn(WarnThemeDefault, fmt.Sprintf("theme unparseable: %v: using default theme", err))
		return model.DefaultTheme()
	}
	return theme
}

// slidePartsInOrder returns slide part paths in presentation order. The
// declared ordering in the manifest wins; packages without a usable slide
// id list fall back to the numeric order of the part names.
func (r *Reader) slidePartsInOrder(pres *presentationXML) []string {
	if pres.SlideIdList != nil && r.presRels != nil {
		parts := make([]string, 0, len(pres.SlideIdList.SlideId))
		for _, sid := range pres.SlideIdList.SlideId {
			rel := r.presRels.byID(sid.RID)
			if rel == nil {
				continue
			}
			parts = append(parts, resolvePartTarget("ppt", rel.Target))
		}
		if len(parts) > 0 {
			return parts
		}
	}

	var parts []string
	for _, f := range r.zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			parts = append(parts, f.Name)
		}
	}
	sort.Slice(parts, func(i, j int) bool {
		return extractSlideNumber(parts[i]) < extractSlideNumber(parts[j])
	})
	return parts
}

// extractSlideNumber extracts N from a path like "ppt/slides/slideN.xml".
func extractSlideNumber(p string) int {
	name := strings.TrimPrefix(p, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// resolvePartTarget resolves a relationship target relative to a base part
// directory.
func resolvePartTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "../") {
		return "ppt/" + strings.TrimPrefix(target, "../")
	}
	return path.Join(base, target)
}

// parsePartRels parses the relationships part beside a slide part.
func (r *Reader) parsePartRels(partPath string) *relationshipsXML {
	relsPath := path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")
	data, err := r.getFileContent(relsPath)
	if err != nil {
		return nil
	}
	rels := &relationshipsXML{}
	if err := decodeXML(data, rels); err != nil {
		return nil
	}
	return rels
}

// parseSlideNotes locates and parses a slide's speaker-notes part, if any.
func (r *Reader) parseSlideNotes(rels *relationshipsXML, slide *model.Slide) {
	if rels == nil {
		return
	}
	var target string
	for _, rel := range rels.Relationship {
		if rel.Type == relTypeNotesSlide || strings.Contains(rel.Type, "notesSlide") {
			target = resolvePartTarget("ppt/slides", rel.Target)
			break
		}
	}
	if target == "" {
		return
	}

	data, err := r.getFileContent(target)
	if err != nil {
		r.warn(WarnNotesDropped, fmt.Sprintf("%s: notes part missing", target))
		return
	}
	notes, err := parseNotes(data)
	if err != nil {
		r.warn(WarnNotesDropped, fmt.Sprintf("%s: %v", target, err))
		return
	}
	slide.Notes = notes
}

// parseProperties fills document metadata from the core and app property
// parts, defaulting to empty values and the current time on absence.
func (r *Reader) parseProperties(doc *model.Document) {
	now := time.Now()
	doc.Metadata.Created = now
	doc.Metadata.Modified = now

	if data, err := r.getFileContent("docProps/core.xml"); err == nil {
		var core corePropertiesXML
		if decodeXML(data, &core) == nil {
			doc.Metadata.Title = core.Title
			doc.Metadata.Author = core.Creator
			doc.Metadata.Subject = core.Subject
			if core.Keywords != "" {
				doc.Metadata.Keywords = splitKeywords(core.Keywords)
			}
			if t, err := time.Parse(time.RFC3339, core.Created); err == nil {
				doc.Metadata.Created = t
			}
			if t, err := time.Parse(time.RFC3339, core.Modified); err == nil {
				doc.Metadata.Modified = t
			}
		}
	}

	if data, err := r.getFileContent("docProps/app.xml"); err == nil {
		var app appPropertiesXML
		if decodeXML(data, &app) == nil {
			doc.Metadata.Creator = app.Application
		}
	}

	if doc.Name == "" && doc.Metadata.Title != "" {
		doc.Name = doc.Metadata.Title
	}
}

func splitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
