package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/slidewise/slidewise/model"
)

// Writer serializes a document back into a PPTX package. The mapping
// mirrors the reader in the opposite direction: pixels to EMUs, resolved
// colors to direct RGB values. Theme references are not round-tripped;
// direct colors are an accepted lossy simplification.
type Writer struct {
	doc *model.Document
	// Media payloads deduped by content hash, in first-use order.
	mediaOrder []string
	mediaIndex map[string]int // content hash -> 1-based media number
	mediaData  map[string][]byte
	mediaExt   map[string]string
}

// NewWriter creates a writer for a document.
func NewWriter(doc *model.Document) *Writer {
	return &Writer{
		doc:        doc,
		mediaIndex: make(map[string]int),
		mediaData:  make(map[string][]byte),
		mediaExt:   make(map[string]string),
	}
}

// Export serializes a document to package bytes.
func Export(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewWriter(doc).Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write validates the document and writes the complete package. Export
// succeeds for any document produced by the reader; documents mutated into
// an invalid state (non-positive canvas, negative element sizes) fail
// instead of emitting a package other readers reject.
func (w *Writer) Write(out io.Writer) error {
	if err := w.validate(); err != nil {
		return err
	}
	w.collectMedia()

	zw := zip.NewWriter(out)

	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writePresentation,
		w.writePresentationRels,
		w.writeTheme,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeSlides,
		w.writeNotesSlides,
		w.writeMedia,
		w.writeCoreProperties,
		w.writeAppProperties,
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			zw.Close()
			return fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func (w *Writer) validate() error {
	if w.doc == nil {
		return fmt.Errorf("%w: nil document", ErrExportFailed)
	}
	if w.doc.Width <= 0 || w.doc.Height <= 0 {
		return fmt.Errorf("%w: non-positive canvas dimensions %.0fx%.0f",
			ErrExportFailed, w.doc.Width, w.doc.Height)
	}
	if len(w.doc.Slides) == 0 {
		return fmt.Errorf("%w: document has no slides", ErrExportFailed)
	}
	for _, s := range w.doc.Slides {
		for _, e := range s.Elements {
			g := e.Geometry()
			if g.Width < 0 || g.Height < 0 {
				return fmt.Errorf("%w: slide %d element %s has negative size",
					ErrExportFailed, s.Index, e.ID())
			}
		}
	}
	return nil
}

// collectMedia assigns stable 1-based numbers to unique image payloads.
func (w *Writer) collectMedia() {
	for _, s := range w.doc.Slides {
		for _, e := range s.Elements {
			img, ok := e.(*model.Image)
			if !ok || len(img.Data) == 0 {
				continue
			}
			hash := img.ContentHash
			if hash == "" {
				hash = contentHash(img.Data)
			}
			if _, seen := w.mediaIndex[hash]; seen {
				continue
			}
			w.mediaOrder = append(w.mediaOrder, hash)
			w.mediaIndex[hash] = len(w.mediaOrder)
			w.mediaData[hash] = img.Data
			w.mediaExt[hash] = mediaExtension(img.Format)
		}
	}
}

// mediaNumber returns the assigned 1-based media number for an image, or 0
// when the image has no payload.
func (w *Writer) mediaNumber(img *model.Image) int {
	if len(img.Data) == 0 {
		return 0
	}
	hash := img.ContentHash
	if hash == "" {
		hash = contentHash(img.Data)
	}
	return w.mediaIndex[hash]
}

func mediaExtension(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "jpeg"
	case "gif":
		return "gif"
	case "bmp":
		return "bmp"
	case "tiff":
		return "tiff"
	case "webp":
		return "webp"
	default:
		return "png"
	}
}

func mediaContentType(ext string) string {
	switch ext {
	case "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// slideHasNotes reports whether the slide carries speaker notes.
func slideHasNotes(s *model.Slide) bool {
	return s.Notes != ""
}
