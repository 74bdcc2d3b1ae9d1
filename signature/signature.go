// Package signature derives deterministic content fingerprints from slides
// for change detection. Fingerprints depend only on slide content and
// position, never on element identifiers, which are regenerated on every
// parse. A stored fingerprint compared against a freshly computed one
// classifies a section as new, changed, or unchanged.
//
// The engine is stateless; persisting signatures across sessions is the
// caller's concern.
package signature

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/slidewise/slidewise/model"
)

// Status classifies a section against its stored signature.
type Status int

const (
	StatusUnchanged Status = iota
	StatusChanged
	StatusNew
)

func (s Status) String() string {
	switch s {
	case StatusChanged:
		return "changed"
	case StatusNew:
		return "new"
	default:
		return "unchanged"
	}
}

// SlideSignature is the fingerprint of a single slide.
type SlideSignature struct {
	Index int    `json:"index"`
	Hash  string `json:"hash"`
}

// SectionSignature is the fingerprint of a named slide range. The section
// hash covers the ordered member slide hashes plus the range membership,
// so reordering or moving slides between sections registers as a change.
type SectionSignature struct {
	SectionID  string           `json:"sectionId"`
	Hash       string           `json:"hash"`
	SlideCount int              `json:"slideCount"`
	Slides     []SlideSignature `json:"slides"`
}

// Field and record separators for hash input. Control characters cannot
// appear in slide text, so joined parts never collide across boundaries.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Slide computes the fingerprint of a slide.
func Slide(s *model.Slide) SlideSignature {
	var parts []string
	parts = append(parts, fmt.Sprintf("slide:%d", s.Index))
	parts = append(parts, backgroundPart(s.Background))

	for _, e := range orderedElements(s.Elements) {
		parts = append(parts, elementPart(e))
	}

	if s.Notes != "" {
		parts = append(parts, "notes:"+normText(s.Notes))
	}

	return SlideSignature{
		Index: s.Index,
		Hash:  hashString(strings.Join(parts, recordSep)),
	}
}

// Section computes the fingerprint of a named slide range. Slides are
// taken in the order given; the caller supplies the section's members.
func Section(sectionID string, slides []*model.Slide) SectionSignature {
	sig := SectionSignature{
		SectionID:  sectionID,
		SlideCount: len(slides),
		Slides:     make([]SlideSignature, 0, len(slides)),
	}

	var parts []string
	parts = append(parts, "section:"+sectionID)
	for _, s := range slides {
		ss := Slide(s)
		sig.Slides = append(sig.Slides, ss)
		parts = append(parts, fmt.Sprintf("%d%s%s", ss.Index, fieldSep, ss.Hash))
	}

	sig.Hash = hashString(strings.Join(parts, recordSep))
	return sig
}

// Compare classifies a fresh signature against a stored one. A nil stored
// signature means the section has never been fingerprinted.
func Compare(stored *SectionSignature, fresh SectionSignature) Status {
	if stored == nil {
		return StatusNew
	}
	if stored.Hash != fresh.Hash || stored.SlideCount != fresh.SlideCount {
		return StatusChanged
	}
	return StatusUnchanged
}

// orderedElements returns elements sorted by rounded position, type, and
// rounded area. Rounding to whole pixels keeps the order stable across
// parses that differ only in floating-point jitter; sorting removes any
// dependence on parse order or identifiers.
func orderedElements(elements []model.Element) []model.Element {
	out := make([]model.Element, len(elements))
	copy(out, elements)
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := out[i].Geometry(), out[j].Geometry()
		yi, yj := math.Round(gi.Y), math.Round(gj.Y)
		if yi != yj {
			return yi < yj
		}
		xi, xj := math.Round(gi.X), math.Round(gj.X)
		if xi != xj {
			return xi < xj
		}
		ti, tj := out[i].Type(), out[j].Type()
		if ti != tj {
			return ti < tj
		}
		return math.Round(gi.Area()) < math.Round(gj.Area())
	})
	return out
}

func elementPart(e model.Element) string {
	g := e.Geometry()
	head := fmt.Sprintf("%s%s%.0f,%.0f,%.0f,%.0f",
		e.Type(), fieldSep, math.Round(g.X), math.Round(g.Y),
		math.Round(g.Width), math.Round(g.Height))

	switch el := e.(type) {
	case *model.Text:
		return head + fieldSep + normText(el.Body.PlainText())
	case *model.Shape:
		part := head + fieldSep + el.Kind.String()
		if el.Text != nil {
			part += fieldSep + normText(el.Text.PlainText())
		}
		return part
	case *model.Image:
		return head + fieldSep + el.ContentHash
	default:
		return head
	}
}

func backgroundPart(bg model.Fill) string {
	switch bg.Kind {
	case model.FillSolid:
		return "bg:solid:" + bg.Color.Hex()
	case model.FillGradient:
		if bg.Gradient == nil || len(bg.Gradient.Stops) == 0 {
			return "bg:gradient"
		}
		stops := make([]string, 0, len(bg.Gradient.Stops))
		for _, s := range bg.Gradient.Stops {
			stops = append(stops, fmt.Sprintf("%.2f=%s", s.Position, s.Color.Hex()))
		}
		return "bg:gradient:" + strings.Join(stops, ",")
	default:
		return "bg:none"
	}
}

// normText applies Unicode NFC so text that differs only in composition
// form hashes identically.
func normText(s string) string {
	return norm.NFC.String(s)
}

func hashString(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}
