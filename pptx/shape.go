package pptx

import (
	"github.com/slidewise/slidewise/model"
)

// presetKinds is the closed mapping from preset geometry tags to modeled
// shape kinds. Unrecognized presets fall back to rectangle.
var presetKinds = map[string]model.ShapeKind{
	"rect":                  model.ShapeRectangle,
	"roundRect":             model.ShapeRoundedRectangle,
	"snip1Rect":             model.ShapeRectangle,
	"ellipse":               model.ShapeEllipse,
	"triangle":              model.ShapeTriangle,
	"rtTriangle":            model.ShapeTriangle,
	"diamond":               model.ShapeDiamond,
	"pentagon":              model.ShapePentagon,
	"hexagon":               model.ShapeHexagon,
	"star5":                 model.ShapeStar5,
	"star6":                 model.ShapeStar6,
	"rightArrow":            model.ShapeArrow,
	"leftArrow":             model.ShapeArrow,
	"upArrow":               model.ShapeArrow,
	"downArrow":             model.ShapeArrow,
	"chevron":               model.ShapeChevron,
	"homePlate":             model.ShapeChevron,
	"line":                  model.ShapeLine,
	"straightConnector1":    model.ShapeConnector,
	"bentConnector2":        model.ShapeConnector,
	"bentConnector3":        model.ShapeConnector,
	"curvedConnector3":      model.ShapeConnector,
	"wedgeRectCallout":      model.ShapeCallout,
	"wedgeRoundRectCallout": model.ShapeCallout,
	"wedgeEllipseCallout":   model.ShapeCallout,
	"callout1":              model.ShapeCallout,
	"callout2":              model.ShapeCallout,
}

// placeholderGeometryEMU is the fixed default geometry, in EMUs, for
// placeholder roles whose transform is inherited from a layout the parser
// does not resolve. Values match the stock title-slide and title-and-body
// layouts of a 9144000x6858000 canvas.
var placeholderGeometryEMU = map[string]struct{ x, y, cx, cy int64 }{
	"title":    {457200, 274638, 8229600, 1143000},
	"ctrTitle": {685800, 2130425, 7772400, 1470025},
	"subTitle": {1371600, 3886200, 6400800, 1752600},
	"body":     {457200, 1600200, 8229600, 4525963},
}

// placeholderDefaultGeometry returns the role-specific default geometry in
// pixels, and whether the role has one.
func placeholderDefaultGeometry(role string) (model.Geometry, bool) {
	g, ok := placeholderGeometryEMU[role]
	if !ok {
		return model.Geometry{}, false
	}
	return model.Geometry{
		X:      emuToPixels(g.x),
		Y:      emuToPixels(g.y),
		Width:  emuToPixels(g.cx),
		Height: emuToPixels(g.cy),
	}, true
}

// parseShape parses a raw shape node into either a Text element or a Shape
// element, or nil when the shape is a structurally empty placeholder with
// no visual contribution.
func parseShape(sp *spXML, theme *model.Theme) model.Element {
	geom, hasXfrm := parseTransform(sp.SpPr.Xfrm)
	role := placeholderRole(sp)
	if !hasXfrm {
		if g, ok := placeholderDefaultGeometry(role); ok {
			geom = g
		}
	}

	kind := model.ShapeRectangle
	if sp.SpPr.PrstGeom != nil {
		if k, ok := presetKinds[sp.SpPr.PrstGeom.Prst]; ok {
			kind = k
		}
	}

	hasStyle := sp.Style != nil
	fill := parseFill(&sp.SpPr, hasStyle, theme)
	stroke := parseStroke(sp.SpPr.Ln, theme)

	var body *model.TextBody
	if sp.TxBody != nil {
		parsed := parseTextBody(sp.TxBody, theme)
		parsed.Placeholder = role
		body = &parsed
	}
	hasText := body != nil && !body.IsEmpty()

	// Visually and semantically empty: no fill, no stroke, no text, no
	// style reference. Empty slide-number, date, and footer placeholders
	// land here.
	if !hasText && fill.Kind == model.FillNone && stroke.Width == 0 && !hasStyle {
		return nil
	}

	locked := isLocked(sp)

	// Classification: the source format uses the same construct for true
	// shapes-with-text and plain text boxes. Placeholder roles with text,
	// plain rectangles with text, and invisible boxes with text become Text
	// elements so editors offer text affordances. Decorative rectangles
	// holding incidental text will classify as Text too; this ambiguity is
	// deliberate and preserved.
	if hasText && isTextLike(role, kind, fill, stroke) {
		return &model.Text{
			Box: model.Box{
				ElementID: model.NewID(),
				Geom:      geom,
				Lock:      locked,
			},
			Body: *body,
		}
	}

	return &model.Shape{
		Box: model.Box{
			ElementID: model.NewID(),
			Geom:      geom,
			Lock:      locked,
		},
		Kind:   kind,
		Fill:   fill,
		Stroke: stroke,
		Text:   body,
	}
}

// isTextLike implements the text-vs-shape heuristic for shapes that carry
// non-empty text: recognized placeholder roles, plain rectangles, and
// invisible boxes are text boxes in practice.
func isTextLike(role string, kind model.ShapeKind, fill model.Fill, stroke model.Stroke) bool {
	switch role {
	case "title", "ctrTitle", "subTitle", "body":
		return true
	}
	if kind == model.ShapeRectangle {
		return true
	}
	return fill.Kind == model.FillNone && stroke.Width == 0
}

// parseTransform converts an optional transform into pixel geometry.
func parseTransform(x *xfrmXML) (model.Geometry, bool) {
	if x == nil || x.Off == nil || x.Ext == nil {
		return model.Geometry{}, false
	}
	return model.Geometry{
		X:        emuToPixels(x.Off.X),
		Y:        emuToPixels(x.Off.Y),
		Width:    emuToPixels(x.Ext.Cx),
		Height:   emuToPixels(x.Ext.Cy),
		Rotation: angleToDegrees(x.Rot),
	}, true
}

func placeholderRole(sp *spXML) string {
	if sp.NvSpPr.NvPr.Ph == nil {
		return ""
	}
	return sp.NvSpPr.NvPr.Ph.Type
}

func isLocked(sp *spXML) bool {
	l := sp.NvSpPr.CNvSpPr.SpLocks
	if l == nil {
		return false
	}
	return l.NoMove == 1 || l.NoResize == 1 || l.NoSelect == 1
}

// parseFill resolves a shape's fill. An explicit noFill wins; explicit
// solid and gradient fills resolve against the theme; a shape with no fill
// tag but a style reference inherits from the theme style, which is
// approximated with a visible neutral fill so the shape is not invisible
// by omission.
func parseFill(sp *spPrXML, hasStyle bool, theme *model.Theme) model.Fill {
	switch {
	case sp.NoFill != nil:
		return model.Fill{Kind: model.FillNone}
	case sp.SolidFill != nil:
		c := resolveColor(&sp.SolidFill.Color, theme)
		return model.Fill{
			Kind:    model.FillSolid,
			Color:   c,
			Opacity: alphaFromMods(sp.SolidFill.Color.Mods),
		}
	case sp.GradFill != nil:
		return parseGradient(sp.GradFill, theme)
	case hasStyle:
		return model.SolidFill(theme.Color(model.SlotAccent1))
	default:
		return model.Fill{Kind: model.FillNone}
	}
}

func parseGradient(g *gradFillXML, theme *model.Theme) model.Fill {
	grad := &model.Gradient{}
	if g.Lin != nil {
		grad.Angle = angleToDegrees(g.Lin.Ang)
	}
	if g.GsLst != nil {
		for i := range g.GsLst.Gs {
			gs := &g.GsLst.Gs[i]
			grad.Stops = append(grad.Stops, model.GradientStop{
				Position: float64(gs.Pos) / 100000,
				Color:    resolveColor(&gs.Color, theme),
			})
		}
	}

	fill := model.Fill{Kind: model.FillGradient, Opacity: 1.0, Gradient: grad}
	if len(grad.Stops) > 0 {
		fill.Color = grad.Stops[0].Color
	} else {
		fill.Color = neutralColor
	}
	return fill
}

// parseStroke resolves a shape outline, defaulting to a zero-width
// invisible stroke.
func parseStroke(ln *lnXML, theme *model.Theme) model.Stroke {
	if ln == nil || ln.NoFill != nil {
		return model.Stroke{Opacity: 1.0}
	}

	stroke := model.Stroke{
		Color:   neutralColor,
		Opacity: 1.0,
		Dash:    model.DashSolid,
	}
	if ln.SolidFill != nil {
		stroke.Color = resolveColor(&ln.SolidFill.Color, theme)
		stroke.Opacity = alphaFromMods(ln.SolidFill.Color.Mods)
	}
	if ln.W > 0 {
		stroke.Width = emuToPixels(ln.W)
	} else if ln.SolidFill != nil {
		// An outline with a color but no width renders at the format's
		// hairline default.
		stroke.Width = emuToPixels(emuPerPixel)
	}
	if ln.PrstDash != nil {
		stroke.Dash = parseDashStyle(ln.PrstDash.Val)
	}
	return stroke
}
