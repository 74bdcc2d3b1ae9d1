package model

// ElementType represents the variant of a slide element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeText
	ElementTypeShape
	ElementTypeImage
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "Text"
	case ElementTypeShape:
		return "Shape"
	case ElementTypeImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Element is the interface implemented by all slide content. The concrete
// types are Text, Shape, and Image; the set is closed and parse/export
// mappings switch exhaustively over it.
type Element interface {
	Type() ElementType
	ID() string
	Geometry() Geometry
	ZIndex() int
	Locked() bool
}

// Box carries the attributes common to every element variant. Variants
// embed it by value.
type Box struct {
	ElementID string
	Geom      Geometry
	Lock      bool
	ZOrder    int // Kept equal to list position at parse time
}

func (b *Box) ID() string         { return b.ElementID }
func (b *Box) Geometry() Geometry { return b.Geom }
func (b *Box) ZIndex() int        { return b.ZOrder }
func (b *Box) Locked() bool       { return b.Lock }

// ShapeKind is the closed set of modeled shape geometries.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeRoundedRectangle
	ShapeEllipse
	ShapeTriangle
	ShapeDiamond
	ShapePentagon
	ShapeHexagon
	ShapeStar5
	ShapeStar6
	ShapeArrow
	ShapeChevron
	ShapeLine
	ShapeConnector
	ShapeCallout
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRoundedRectangle:
		return "roundedRectangle"
	case ShapeEllipse:
		return "ellipse"
	case ShapeTriangle:
		return "triangle"
	case ShapeDiamond:
		return "diamond"
	case ShapePentagon:
		return "pentagon"
	case ShapeHexagon:
		return "hexagon"
	case ShapeStar5:
		return "star5"
	case ShapeStar6:
		return "star6"
	case ShapeArrow:
		return "arrow"
	case ShapeChevron:
		return "chevron"
	case ShapeLine:
		return "line"
	case ShapeConnector:
		return "connector"
	case ShapeCallout:
		return "callout"
	default:
		return "rectangle"
	}
}

// FillKind represents the kind of a fill or background.
type FillKind int

const (
	FillNone FillKind = iota
	FillSolid
	FillGradient
)

// GradientStop is one color stop along a gradient.
type GradientStop struct {
	Position float64 // 0.0 to 1.0
	Color    Color
}

// Gradient describes a linear gradient fill.
type Gradient struct {
	Angle float64 // Clockwise degrees from horizontal
	Stops []GradientStop
}

// Fill describes how a shape interior or slide background is painted.
type Fill struct {
	Kind     FillKind
	Color    Color   // Solid fill color
	Opacity  float64 // 0.0 to 1.0, 1.0 when fully opaque
	Gradient *Gradient
}

// SolidFill creates an opaque solid fill.
func SolidFill(c Color) Fill {
	return Fill{Kind: FillSolid, Color: c, Opacity: 1.0}
}

// DashStyle represents a stroke dash pattern.
type DashStyle int

const (
	DashSolid DashStyle = iota
	DashDot
	DashDash
	DashDashDot
	DashLongDash
)

// Stroke describes a shape outline. A zero-width stroke is invisible.
type Stroke struct {
	Color   Color
	Width   float64 // Pixels
	Dash    DashStyle
	Opacity float64
}

// Text is a text box element.
type Text struct {
	Box
	Body TextBody
}

func (t *Text) Type() ElementType { return ElementTypeText }

// ExtractText returns the box's plain text.
func (t *Text) ExtractText() string { return t.Body.PlainText() }

// Shape is a geometric shape element with optional embedded text.
type Shape struct {
	Box
	Kind   ShapeKind
	Fill   Fill
	Stroke Stroke
	Text   *TextBody // nil when the shape carries no text
}

func (s *Shape) Type() ElementType { return ElementTypeShape }

// ExtractText returns the embedded text, if any.
func (s *Shape) ExtractText() string {
	if s.Text == nil {
		return ""
	}
	return s.Text.PlainText()
}

// Image is an embedded picture element. Data holds the raw encoded payload
// (PNG, JPEG, ...); ContentHash is a content address over that payload so
// identical pictures dedupe and signatures avoid rehashing pixels.
type Image struct {
	Box
	Data        []byte
	ContentHash string
	SourceName  string // Original file name inside the package
	Format      string // "png", "jpeg", ...
}

func (i *Image) Type() ElementType { return ElementTypeImage }
