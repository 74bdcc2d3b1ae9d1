package pptx

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"path"
	"strings"

	// Register decoders so embedded media of any common format can be
	// sized via image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/slidewise/slidewise/model"
)

// media is one extracted package media payload, addressable by part path.
type media struct {
	name   string // Base file name inside the package
	data   []byte
	format string // Decoded format name, or extension-derived fallback
	width  float64
	height float64 // Intrinsic size in pixels at 96 DPI, 0 when unknown
	hash   string
}

// extractMedia collects every part under ppt/media/ into an addressable
// map keyed by part path.
func (r *Reader) extractMedia() map[string]*media {
	out := make(map[string]*media)
	for _, f := range r.zr.File {
		if !strings.HasPrefix(f.Name, "ppt/media/") {
			continue
		}
		data, err := r.getFileContent(f.Name)
		if err != nil {
			continue
		}
		m := &media{
			name: path.Base(f.Name),
			data: data,
			hash: contentHash(data),
		}
		if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			m.format = format
			m.width = float64(cfg.Width)
			m.height = float64(cfg.Height)
		} else {
			m.format = strings.TrimPrefix(path.Ext(f.Name), ".")
		}
		out[f.Name] = m
	}
	return out
}

// contentHash content-addresses a media payload.
func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// resolveMediaTarget normalizes a relationship target like
// "../media/image1.png" to its package part path.
func resolveMediaTarget(target string) string {
	if strings.HasPrefix(target, "../") {
		return "ppt/" + strings.TrimPrefix(target, "../")
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if !strings.HasPrefix(target, "ppt/") {
		return "ppt/slides/" + target
	}
	return target
}

// parsePicture resolves a picture element to its extracted media payload
// through the slide's relationships. A missing relationship or payload
// drops the element and returns nil.
func (r *Reader) parsePicture(pic *picXML, rels *relationshipsXML, mediaMap map[string]*media) *model.Image {
	rel := rels.byID(pic.BlipFill.Blip.Embed)
	if rel == nil {
		return nil
	}
	m, ok := mediaMap[resolveMediaTarget(rel.Target)]
	if !ok {
		return nil
	}

	geom, hasXfrm := parseTransform(pic.SpPr.Xfrm)
	if !hasXfrm && m.width > 0 {
		// No explicit transform: fall back to the payload's intrinsic size.
		geom = model.Geometry{Width: m.width, Height: m.height}
	}

	return &model.Image{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      geom,
		},
		Data:        m.data,
		ContentHash: m.hash,
		SourceName:  m.name,
		Format:      m.format,
	}
}
