package pptx

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/slidewise/slidewise/model"
)

// presetForKind maps model shape kinds back to DrawingML preset names.
// Inverse of presetKinds for the kinds the model distinguishes; parsing a
// re-exported package yields the same kind.
var presetForKind = map[model.ShapeKind]string{
	model.ShapeRectangle:        "rect",
	model.ShapeRoundedRectangle: "roundRect",
	model.ShapeEllipse:          "ellipse",
	model.ShapeTriangle:         "triangle",
	model.ShapeDiamond:          "diamond",
	model.ShapePentagon:         "pentagon",
	model.ShapeHexagon:          "hexagon",
	model.ShapeStar5:            "star5",
	model.ShapeStar6:            "star6",
	model.ShapeArrow:            "rightArrow",
	model.ShapeChevron:          "chevron",
	model.ShapeLine:             "line",
	model.ShapeConnector:        "straightConnector1",
	model.ShapeCallout:          "wedgeRectCallout",
}

var dashNames = map[model.DashStyle]string{
	model.DashDot:      "dot",
	model.DashDash:     "dash",
	model.DashDashDot:  "dashDot",
	model.DashLongDash: "lgDash",
}

func (w *Writer) writeSlides(zw *zip.Writer) error {
	for i, s := range w.doc.Slides {
		num := i + 1
		content, imageRels := w.renderSlide(s)
		path := fmt.Sprintf("ppt/slides/slide%d.xml", num)
		if err := writeRawXMLToZip(zw, path, content); err != nil {
			return err
		}

		rels := xmlRelationships{
			Xmlns: nsPackageRels,
			Relationships: []xmlRelationship{
				{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
			},
		}
		for _, ir := range imageRels {
			rels.Relationships = append(rels.Relationships, xmlRelationship{
				ID:     ir.relID,
				Type:   relTypeImage,
				Target: fmt.Sprintf("../media/image%d.%s", ir.mediaNum, ir.ext),
			})
		}
		if slideHasNotes(s) {
			rels.Relationships = append(rels.Relationships, xmlRelationship{
				ID:     fmt.Sprintf("rId%d", 2+len(imageRels)),
				Type:   relTypeNotesSlide,
				Target: fmt.Sprintf("../notesSlides/notesSlide%d.xml", num),
			})
		}
		relsPath := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num)
		if err := writeXMLToZip(zw, relsPath, rels); err != nil {
			return err
		}
	}
	return nil
}

type imageRel struct {
	relID    string
	mediaNum int
	ext      string
}

// renderSlide emits the slide part and the image relationships its pics
// reference. Image rel ids start at rId2; rId1 is always the layout.
func (w *Writer) renderSlide(s *model.Slide) (string, []imageRel) {
	var sb strings.Builder
	var imageRels []imageRel

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`,
		nsDrawingML, nsRelationships, nsPresentationML))
	sb.WriteString(`<p:cSld>`)

	w.renderBackground(&sb, s.Background)

	sb.WriteString(`<p:spTree>`)
	sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)

	// Shape ids within a part start at 2; id 1 is the group container.
	shapeID := 2
	for _, e := range s.Elements {
		switch el := e.(type) {
		case *model.Text:
			w.renderTextElement(&sb, el, shapeID)
		case *model.Shape:
			w.renderShapeElement(&sb, el, shapeID)
		case *model.Image:
			num := w.mediaNumber(el)
			if num == 0 {
				continue
			}
			relID := fmt.Sprintf("rId%d", 2+len(imageRels))
			hash := el.ContentHash
			if hash == "" {
				hash = contentHash(el.Data)
			}
			imageRels = append(imageRels, imageRel{
				relID:    relID,
				mediaNum: num,
				ext:      w.mediaExt[hash],
			})
			w.renderImageElement(&sb, el, shapeID, relID)
		}
		shapeID++
	}

	sb.WriteString(`</p:spTree>`)
	sb.WriteString(`</p:cSld>`)
	sb.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	sb.WriteString(`</p:sld>`)

	return sb.String(), imageRels
}

func (w *Writer) renderBackground(sb *strings.Builder, bg model.Fill) {
	if bg.Kind == model.FillNone {
		return
	}
	sb.WriteString(`<p:bg><p:bgPr>`)
	renderFill(sb, bg)
	sb.WriteString(`<a:effectLst/></p:bgPr></p:bg>`)
}

func (w *Writer) renderTextElement(sb *strings.Builder, t *model.Text, shapeID int) {
	sb.WriteString(`<p:sp>`)
	renderNvSpPr(sb, shapeID, "TextBox "+fmt.Sprint(shapeID), t.Body.Placeholder, t.Lock)
	sb.WriteString(`<p:spPr>`)
	renderXfrm(sb, t.Geom)
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	sb.WriteString(`<a:noFill/>`)
	sb.WriteString(`</p:spPr>`)
	renderTextBody(sb, &t.Body)
	sb.WriteString(`</p:sp>`)
}

func (w *Writer) renderShapeElement(sb *strings.Builder, s *model.Shape, shapeID int) {
	preset := presetForKind[s.Kind]
	if preset == "" {
		preset = "rect"
	}

	sb.WriteString(`<p:sp>`)
	renderNvSpPr(sb, shapeID, "Shape "+fmt.Sprint(shapeID), "", s.Lock)
	sb.WriteString(`<p:spPr>`)
	renderXfrm(sb, s.Geom)
	sb.WriteString(fmt.Sprintf(`<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, preset))
	renderFill(sb, s.Fill)
	renderStroke(sb, s.Stroke)
	sb.WriteString(`</p:spPr>`)
	if s.Text != nil {
		renderTextBody(sb, s.Text)
	}
	sb.WriteString(`</p:sp>`)
}

func (w *Writer) renderImageElement(sb *strings.Builder, img *model.Image, shapeID int, relID string) {
	name := img.SourceName
	if name == "" {
		name = fmt.Sprintf("Picture %d", shapeID)
	}
	sb.WriteString(`<p:pic>`)
	sb.WriteString(`<p:nvPicPr>`)
	sb.WriteString(fmt.Sprintf(`<p:cNvPr id="%d" name="%s"/>`, shapeID, xmlEscape(name)))
	sb.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr>`)
	sb.WriteString(`<p:nvPr/>`)
	sb.WriteString(`</p:nvPicPr>`)
	sb.WriteString(fmt.Sprintf(`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID))
	sb.WriteString(`<p:spPr>`)
	renderXfrm(sb, img.Geom)
	sb.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	sb.WriteString(`</p:spPr>`)
	sb.WriteString(`</p:pic>`)
}

func renderNvSpPr(sb *strings.Builder, shapeID int, name, placeholder string, locked bool) {
	sb.WriteString(`<p:nvSpPr>`)
	sb.WriteString(fmt.Sprintf(`<p:cNvPr id="%d" name="%s"/>`, shapeID, xmlEscape(name)))
	if locked {
		sb.WriteString(`<p:cNvSpPr><a:spLocks noGrp="1" noMove="1" noResize="1"/></p:cNvSpPr>`)
	} else {
		sb.WriteString(`<p:cNvSpPr/>`)
	}
	if placeholder != "" {
		sb.WriteString(fmt.Sprintf(`<p:nvPr><p:ph type="%s"/></p:nvPr>`, placeholder))
	} else {
		sb.WriteString(`<p:nvPr/>`)
	}
	sb.WriteString(`</p:nvSpPr>`)
}

func renderXfrm(sb *strings.Builder, g model.Geometry) {
	if g.Rotation != 0 {
		sb.WriteString(fmt.Sprintf(`<a:xfrm rot="%d">`, degreesToAngle(g.Rotation)))
	} else {
		sb.WriteString(`<a:xfrm>`)
	}
	sb.WriteString(fmt.Sprintf(`<a:off x="%d" y="%d"/>`, pixelsToEMU(g.X), pixelsToEMU(g.Y)))
	sb.WriteString(fmt.Sprintf(`<a:ext cx="%d" cy="%d"/>`, pixelsToEMU(g.Width), pixelsToEMU(g.Height)))
	sb.WriteString(`</a:xfrm>`)
}

func renderFill(sb *strings.Builder, f model.Fill) {
	switch f.Kind {
	case model.FillSolid:
		sb.WriteString(`<a:solidFill>`)
		renderColor(sb, f.Color, f.Opacity)
		sb.WriteString(`</a:solidFill>`)
	case model.FillGradient:
		renderGradient(sb, f.Gradient)
	default:
		sb.WriteString(`<a:noFill/>`)
	}
}

func renderGradient(sb *strings.Builder, g *model.Gradient) {
	if g == nil || len(g.Stops) == 0 {
		sb.WriteString(`<a:noFill/>`)
		return
	}
	sb.WriteString(`<a:gradFill><a:gsLst>`)
	for _, stop := range g.Stops {
		pos := int64(stop.Position * 100000)
		sb.WriteString(fmt.Sprintf(`<a:gs pos="%d">`, pos))
		renderColor(sb, stop.Color, 1.0)
		sb.WriteString(`</a:gs>`)
	}
	sb.WriteString(`</a:gsLst>`)
	sb.WriteString(fmt.Sprintf(`<a:lin ang="%d" scaled="1"/>`, degreesToAngle(g.Angle)))
	sb.WriteString(`</a:gradFill>`)
}

func renderStroke(sb *strings.Builder, st model.Stroke) {
	if st.Width <= 0 {
		sb.WriteString(`<a:ln><a:noFill/></a:ln>`)
		return
	}
	sb.WriteString(fmt.Sprintf(`<a:ln w="%d">`, pixelsToEMU(st.Width)))
	sb.WriteString(`<a:solidFill>`)
	renderColor(sb, st.Color, st.Opacity)
	sb.WriteString(`</a:solidFill>`)
	if name, ok := dashNames[st.Dash]; ok {
		sb.WriteString(fmt.Sprintf(`<a:prstDash val="%s"/>`, name))
	}
	sb.WriteString(`</a:ln>`)
}

// renderColor emits a direct RGB color, with an alpha modifier when the
// effective opacity is below fully opaque.
func renderColor(sb *strings.Builder, c model.Color, opacity float64) {
	alpha := opacity
	if c.A < 255 {
		alpha *= float64(c.A) / 255.0
	}
	if alpha > 0 && alpha < 1.0 {
		sb.WriteString(fmt.Sprintf(`<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`,
			c.Hex(), int64(alpha*100000)))
		return
	}
	sb.WriteString(fmt.Sprintf(`<a:srgbClr val="%s"/>`, c.Hex()))
}

var anchorNames = map[model.VerticalAlignment]string{
	model.VAlignTop:    "t",
	model.VAlignMiddle: "ctr",
	model.VAlignBottom: "b",
}

var alignNames = map[model.Alignment]string{
	model.AlignLeft:    "l",
	model.AlignCenter:  "ctr",
	model.AlignRight:   "r",
	model.AlignJustify: "just",
}

func renderTextBody(sb *strings.Builder, body *model.TextBody) {
	sb.WriteString(`<p:txBody>`)

	sb.WriteString(`<a:bodyPr`)
	if !body.WordWrap {
		sb.WriteString(` wrap="none"`)
	}
	sb.WriteString(fmt.Sprintf(` lIns="%d" tIns="%d" rIns="%d" bIns="%d"`,
		pixelsToEMU(body.Insets.Left), pixelsToEMU(body.Insets.Top),
		pixelsToEMU(body.Insets.Right), pixelsToEMU(body.Insets.Bottom)))
	if a := anchorNames[body.VerticalAlign]; a != "t" {
		sb.WriteString(fmt.Sprintf(` anchor="%s"`, a))
	}
	if body.Columns > 1 {
		sb.WriteString(fmt.Sprintf(` numCol="%d"`, body.Columns))
	}
	sb.WriteString(`/>`)
	sb.WriteString(`<a:lstStyle/>`)

	for i := range body.Paragraphs {
		renderParagraph(sb, &body.Paragraphs[i])
	}
	if len(body.Paragraphs) == 0 {
		sb.WriteString(`<a:p><a:endParaRPr/></a:p>`)
	}

	sb.WriteString(`</p:txBody>`)
}

func renderParagraph(sb *strings.Builder, p *model.Paragraph) {
	sb.WriteString(`<a:p>`)

	sb.WriteString(`<a:pPr`)
	if p.Level > 0 {
		sb.WriteString(fmt.Sprintf(` lvl="%d"`, p.Level))
	}
	if a := alignNames[p.Alignment]; a != "l" {
		sb.WriteString(fmt.Sprintf(` algn="%s"`, a))
	}
	sb.WriteString(`>`)
	if p.LineHeight > 0 {
		sb.WriteString(fmt.Sprintf(`<a:lnSpc><a:spcPct val="%d"/></a:lnSpc>`, int64(p.LineHeight*100000)))
	}
	if p.SpaceBefore > 0 {
		sb.WriteString(fmt.Sprintf(`<a:spcBef><a:spcPts val="%d"/></a:spcBef>`, int64(p.SpaceBefore*100)))
	}
	if p.SpaceAfter > 0 {
		sb.WriteString(fmt.Sprintf(`<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, int64(p.SpaceAfter*100)))
	}
	switch {
	case p.Numbered:
		sb.WriteString(`<a:buAutoNum type="arabicPeriod"/>`)
	case p.Bullet:
		ch := p.BulletChar
		if ch == "" {
			ch = "•"
		}
		sb.WriteString(fmt.Sprintf(`<a:buChar char="%s"/>`, xmlEscape(ch)))
	default:
		sb.WriteString(`<a:buNone/>`)
	}
	sb.WriteString(`</a:pPr>`)

	for i := range p.Runs {
		renderRun(sb, &p.Runs[i])
	}

	sb.WriteString(`</a:p>`)
}

func renderRun(sb *strings.Builder, r *model.Run) {
	sb.WriteString(`<a:r>`)

	sb.WriteString(`<a:rPr lang="en-US"`)
	if r.Size > 0 {
		sb.WriteString(fmt.Sprintf(` sz="%d"`, int64(r.Size*100)))
	}
	if r.Bold {
		sb.WriteString(` b="1"`)
	}
	if r.Italic {
		sb.WriteString(` i="1"`)
	}
	if r.Underline {
		sb.WriteString(` u="sng"`)
	}
	if r.Strike {
		sb.WriteString(` strike="sngStrike"`)
	}
	sb.WriteString(`>`)
	if !r.Color.IsZero() {
		sb.WriteString(`<a:solidFill>`)
		renderColor(sb, r.Color, 1.0)
		sb.WriteString(`</a:solidFill>`)
	}
	if r.Font != "" {
		sb.WriteString(fmt.Sprintf(`<a:latin typeface="%s"/>`, xmlEscape(r.Font)))
	}
	sb.WriteString(`</a:rPr>`)

	sb.WriteString(`<a:t>` + xmlEscape(r.Text) + `</a:t>`)
	sb.WriteString(`</a:r>`)
}

func (w *Writer) writeNotesSlides(zw *zip.Writer) error {
	for i, s := range w.doc.Slides {
		if !slideHasNotes(s) {
			continue
		}
		num := i + 1

		var sb strings.Builder
		sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
		sb.WriteString(fmt.Sprintf(`<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`,
			nsDrawingML, nsRelationships, nsPresentationML))
		sb.WriteString(`<p:cSld><p:spTree>`)
		sb.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
		sb.WriteString(`<p:sp>`)
		sb.WriteString(`<p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>`)
		sb.WriteString(`<p:spPr/>`)
		sb.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)
		for _, line := range strings.Split(s.Notes, "\n") {
			sb.WriteString(`<a:p><a:r><a:rPr lang="en-US"/><a:t>` + xmlEscape(line) + `</a:t></a:r></a:p>`)
		}
		sb.WriteString(`</p:txBody>`)
		sb.WriteString(`</p:sp>`)
		sb.WriteString(`</p:spTree></p:cSld>`)
		sb.WriteString(`</p:notes>`)

		path := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", num)
		if err := writeRawXMLToZip(zw, path, sb.String()); err != nil {
			return err
		}

		rels := xmlRelationships{
			Xmlns: nsPackageRels,
			Relationships: []xmlRelationship{
				{ID: "rId1", Type: relTypeSlide, Target: fmt.Sprintf("../slides/slide%d.xml", num)},
			},
		}
		relsPath := fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", num)
		if err := writeXMLToZip(zw, relsPath, rels); err != nil {
			return err
		}
	}
	return nil
}
