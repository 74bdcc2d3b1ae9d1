package pptx

import (
	"fmt"

	"github.com/slidewise/slidewise/model"
)

// parseSlide assembles one slide from its part: background, then the
// ordered element list with groups recursively flattened, then the layout
// reference from the slide's relationships.
func (r *Reader) parseSlide(data []byte, rels *relationshipsXML, mediaMap map[string]*media) (*model.Slide, error) {
	var sx slideXML
	if err := decodeXML(data, &sx); err != nil {
		return nil, fmt.Errorf("parsing slide part: %w", err)
	}

	slide := model.NewSlide()
	slide.Background = r.parseBackground(sx.CSld.Bg)
	if rels != nil {
		for i := range rels.Relationship {
			if rels.Relationship[i].Type == relTypeSlideLayout {
				slide.Layout = rels.Relationship[i].Target
				break
			}
		}
	}

	r.parseShapeTree(&sx.CSld.SpTree, rels, mediaMap, slide)
	return slide, nil
}

// parseShapeTree walks a shape tree in document order, appending parsed
// elements to the slide. The children list preserves the source's
// interleaving of shapes, pictures, and groups, so the slide's element
// list order is the paint order: AddElement keeps each element's z-index
// equal to its list position.
func (r *Reader) parseShapeTree(tree *spTreeXML, rels *relationshipsXML, mediaMap map[string]*media, slide *model.Slide) {
	r.parseTreeChildren(tree.Children, rels, mediaMap, slide)
}

// parseGroupShape recursively descends a group container, flattening leaf
// shapes and pictures into the parent slide's single element list. Group
// transforms are not composed into child coordinates: children keep their
// group-local offsets as parsed. Known simplification, preserved as-is.
func (r *Reader) parseGroupShape(grp *grpSpXML, rels *relationshipsXML, mediaMap map[string]*media, slide *model.Slide) {
	r.parseTreeChildren(grp.Children, rels, mediaMap, slide)
}

func (r *Reader) parseTreeChildren(children []treeChildXML, rels *relationshipsXML, mediaMap map[string]*media, slide *model.Slide) {
	for i := range children {
		child := &children[i]
		switch {
		case child.Sp != nil:
			if el := parseShape(child.Sp, r.theme); el != nil {
				slide.AddElement(el)
			}
		case child.Pic != nil:
			if rels == nil {
				r.warn(WarnMediaDropped, "picture dropped: slide has no relationships part")
				continue
			}
			if img := r.parsePicture(child.Pic, rels, mediaMap); img != nil {
				slide.AddElement(img)
			} else {
				r.warn(WarnMediaDropped, fmt.Sprintf("picture dropped: %v", ErrMediaUnresolvable))
			}
		case child.GrpSp != nil:
			r.parseGroupShape(child.GrpSp, rels, mediaMap, slide)
		}
	}
}

// parseBackground resolves a slide background, defaulting to solid white.
func (r *Reader) parseBackground(bg *bgXML) model.Fill {
	if bg == nil || bg.BgPr == nil {
		return model.SolidFill(model.RGB(255, 255, 255))
	}
	switch {
	case bg.BgPr.SolidFill != nil:
		c := resolveColor(&bg.BgPr.SolidFill.Color, r.theme)
		return model.Fill{
			Kind:    model.FillSolid,
			Color:   c,
			Opacity: alphaFromMods(bg.BgPr.SolidFill.Color.Mods),
		}
	case bg.BgPr.GradFill != nil:
		return parseGradient(bg.BgPr.GradFill, r.theme)
	default:
		return model.SolidFill(model.RGB(255, 255, 255))
	}
}
