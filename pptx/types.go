// Package pptx implements the bidirectional codec between PPTX (Office
// Open XML Presentation) packages and the normalized deck model.
package pptx

import "encoding/xml"

// XML namespaces used in PPTX packages.
const (
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels    = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"
)

// Relationship types and content types referenced while reading and writing.
const (
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
)

// presentationXML represents the ppt/presentation.xml manifest.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"` // Width in EMUs
	Cy int64 `xml:"cy,attr"` // Height in EMUs
}

// relationshipsXML represents .rels files.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func (r *relationshipsXML) byID(id string) *relationshipXML {
	if r == nil {
		return nil
	}
	for i := range r.Relationship {
		if r.Relationship[i].ID == id {
			return &r.Relationship[i]
		}
	}
	return nil
}

// slideXML represents a ppt/slides/slide*.xml part.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	Bg     *bgXML    `xml:"bg"`
	SpTree spTreeXML `xml:"spTree"`
}

type bgXML struct {
	BgPr *bgPrXML `xml:"bgPr"`
}

type bgPrXML struct {
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	GradFill  *gradFillXML  `xml:"gradFill"`
}

// spTreeXML is the shape tree containing all shapes on a slide. Children
// are kept in document order because the format paints elements in the
// order they appear: decoding shapes and pictures into separate slices
// would lose the z-ordering of interleaved kinds.
type spTreeXML struct {
	Children []treeChildXML
}

// treeChildXML is one shape-tree child. Exactly one field is set.
type treeChildXML struct {
	Sp    *spXML
	Pic   *picXML
	GrpSp *grpSpXML
}

// decodeTreeChild decodes a recognized shape-tree child element, or skips
// it and returns a zero child.
func decodeTreeChild(d *xml.Decoder, el xml.StartElement) (treeChildXML, error) {
	switch el.Name.Local {
	case "sp":
		var sp spXML
		if err := d.DecodeElement(&sp, &el); err != nil {
			return treeChildXML{}, err
		}
		return treeChildXML{Sp: &sp}, nil
	case "pic":
		var pic picXML
		if err := d.DecodeElement(&pic, &el); err != nil {
			return treeChildXML{}, err
		}
		return treeChildXML{Pic: &pic}, nil
	case "grpSp":
		var grp grpSpXML
		if err := d.DecodeElement(&grp, &el); err != nil {
			return treeChildXML{}, err
		}
		return treeChildXML{GrpSp: &grp}, nil
	default:
		return treeChildXML{}, d.Skip()
	}
}

// decodeTreeChildren consumes a container's tokens up to its end element,
// collecting recognized children in document order.
func decodeTreeChildren(d *xml.Decoder) ([]treeChildXML, error) {
	var children []treeChildXML
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			child, err := decodeTreeChild(d, el)
			if err != nil {
				return nil, err
			}
			if child != (treeChildXML{}) {
				children = append(children, child)
			}
		case xml.EndElement:
			return children, nil
		}
	}
}

func (t *spTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	children, err := decodeTreeChildren(d)
	if err != nil {
		return err
	}
	t.Children = children
	return nil
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	SpPr   spPrXML    `xml:"spPr"`
	Style  *styleXML  `xml:"style"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr   cNvPrXML   `xml:"cNvPr"`
	CNvSpPr cNvSpPrXML `xml:"cNvSpPr"`
	NvPr    nvPrXML    `xml:"nvPr"`
}

type cNvSpPrXML struct {
	SpLocks *spLocksXML `xml:"spLocks"`
}

type spLocksXML struct {
	NoMove   int `xml:"noMove,attr"`
	NoResize int `xml:"noResize,attr"`
	NoSelect int `xml:"noSelect,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

type phXML struct {
	Type string `xml:"type,attr"` // title, ctrTitle, subTitle, body, ftr, dt, sldNum, ...
	Idx  string `xml:"idx,attr"`
}

// spPrXML holds shape visual properties: transform, preset geometry, fill
// and outline.
type spPrXML struct {
	Xfrm      *xfrmXML      `xml:"xfrm"`
	PrstGeom  *prstGeomXML  `xml:"prstGeom"`
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	GradFill  *gradFillXML  `xml:"gradFill"`
	Ln        *lnXML        `xml:"ln"`
}

type xfrmXML struct {
	Rot   int64   `xml:"rot,attr"` // 1/60000 degree units
	FlipH int     `xml:"flipH,attr"`
	FlipV int     `xml:"flipV,attr"`
	Off   *offXML `xml:"off"`
	Ext   *extXML `xml:"ext"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type prstGeomXML struct {
	Prst string `xml:"prst,attr"`
}

// styleXML marks a shape that inherits its appearance from a theme style.
// Only its presence matters to the parser.
type styleXML struct {
	FillRef *styleRefXML `xml:"fillRef"`
	LnRef   *styleRefXML `xml:"lnRef"`
}

type styleRefXML struct {
	Idx       string        `xml:"idx,attr"`
	SchemeClr *schemeClrXML `xml:"schemeClr"`
}

// Fill constructs.

type solidFillXML struct {
	Color colorXML `xml:",any"`
}

type gradFillXML struct {
	GsLst *gsLstXML `xml:"gsLst"`
	Lin   *linXML   `xml:"lin"`
}

type gsLstXML struct {
	Gs []gsXML `xml:"gs"`
}

type gsXML struct {
	Pos   int64    `xml:"pos,attr"` // Per-mille of 100% (0..100000)
	Color colorXML `xml:",any"`
}

type linXML struct {
	Ang int64 `xml:"ang,attr"` // 1/60000 degree units
}

// lnXML represents a shape outline.
type lnXML struct {
	W         int64         `xml:"w,attr"` // EMUs
	NoFill    *struct{}     `xml:"noFill"`
	SolidFill *solidFillXML `xml:"solidFill"`
	PrstDash  *prstDashXML  `xml:"prstDash"`
}

type prstDashXML struct {
	Val string `xml:"val,attr"`
}

// colorXML captures either a direct sRGB value, a symbolic scheme
// reference, or a system color, each with an optional modifier chain.
// It is decoded via xml:",any" so whichever child is present fills in.
type colorXML struct {
	XMLName xml.Name
	Val     string   `xml:"val,attr"`
	LastClr string   `xml:"lastClr,attr"` // sysClr resolved value
	Mods    []modXML `xml:",any"`
}

type modXML struct {
	XMLName xml.Name
	Val     int64 `xml:"val,attr"` // Thousandths of a percent (100000 = 100%)
}

type srgbClrXML struct {
	Val  string   `xml:"val,attr"`
	Mods []modXML `xml:",any"`
}

type schemeClrXML struct {
	Val  string   `xml:"val,attr"`
	Mods []modXML `xml:",any"`
}

type sysClrXML struct {
	Val     string   `xml:"val,attr"`
	LastClr string   `xml:"lastClr,attr"`
	Mods    []modXML `xml:",any"`
}

// Text body constructs.

type txBodyXML struct {
	BodyPr bodyPrXML `xml:"bodyPr"`
	P      []pXML    `xml:"p"`
}

type bodyPrXML struct {
	Anchor  string `xml:"anchor,attr"` // t, ctr, b
	Wrap    string `xml:"wrap,attr"`   // square, none
	NumCol  int    `xml:"numCol,attr"`
	LIns    *int64 `xml:"lIns,attr"`
	TIns    *int64 `xml:"tIns,attr"`
	RIns    *int64 `xml:"rIns,attr"`
	BIns    *int64 `xml:"bIns,attr"`
}

type pXML struct {
	PPr *pPrXML  `xml:"pPr"`
	R   []rXML   `xml:"r"`
	Fld []fldXML `xml:"fld"`
}

type pPrXML struct {
	Lvl       int            `xml:"lvl,attr"`
	Algn      string         `xml:"algn,attr"` // l, ctr, r, just
	LnSpc     *spacingXML    `xml:"lnSpc"`
	SpcBef    *spacingXML    `xml:"spcBef"`
	SpcAft    *spacingXML    `xml:"spcAft"`
	BuNone    *struct{}      `xml:"buNone"`
	BuChar    *buCharXML     `xml:"buChar"`
	BuAutoNum *buAutoNumXML  `xml:"buAutoNum"`
}

type spacingXML struct {
	SpcPct *spcValXML `xml:"spcPct"` // Thousandths of a percent
	SpcPts *spcValXML `xml:"spcPts"` // Hundredths of a point
}

type spcValXML struct {
	Val int64 `xml:"val,attr"`
}

type buCharXML struct {
	Char string `xml:"char,attr"`
}

type buAutoNumXML struct {
	Type string `xml:"type,attr"`
}

type rXML struct {
	RPr *rPrXML `xml:"rPr"`
	T   string  `xml:"t"`
}

type rPrXML struct {
	Sz        int64         `xml:"sz,attr"` // Hundredths of a point
	B         *int          `xml:"b,attr"`
	I         *int          `xml:"i,attr"`
	U         string        `xml:"u,attr"`
	Strike    string        `xml:"strike,attr"`
	SolidFill *solidFillXML `xml:"solidFill"`
	Latin     *latinXML     `xml:"latin"`
}

type latinXML struct {
	Typeface string `xml:"typeface,attr"`
}

type fldXML struct {
	Type string `xml:"type,attr"`
	T    string `xml:"t"`
}

// picXML represents a picture element.
type picXML struct {
	NvPicPr  nvPicPrXML  `xml:"nvPicPr"`
	BlipFill blipFillXML `xml:"blipFill"`
	SpPr     spPrXML     `xml:"spPr"`
}

type nvPicPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
}

// grpSpXML represents a group of shapes, nestable arbitrarily deep.
// Children stay in document order like the top-level tree.
type grpSpXML struct {
	Children []treeChildXML
}

func (g *grpSpXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	children, err := decodeTreeChildren(d)
	if err != nil {
		return err
	}
	g.Children = children
	return nil
}

// notesSlideXML represents a ppt/notesSlides/notesSlide*.xml part.
type notesSlideXML struct {
	XMLName xml.Name `xml:"notes"`
	CSld    cSldXML  `xml:"cSld"`
}

// Theme part constructs (ppt/theme/theme*.xml).
type themeXML struct {
	XMLName       xml.Name          `xml:"theme"`
	Name          string            `xml:"name,attr"`
	ThemeElements themeElementsXML  `xml:"themeElements"`
}

type themeElementsXML struct {
	ClrScheme  clrSchemeXML  `xml:"clrScheme"`
	FontScheme fontSchemeXML `xml:"fontScheme"`
}

type clrSchemeXML struct {
	Name     string         `xml:"name,attr"`
	Dk1      themeColorXML  `xml:"dk1"`
	Lt1      themeColorXML  `xml:"lt1"`
	Dk2      themeColorXML  `xml:"dk2"`
	Lt2      themeColorXML  `xml:"lt2"`
	Accent1  themeColorXML  `xml:"accent1"`
	Accent2  themeColorXML  `xml:"accent2"`
	Accent3  themeColorXML  `xml:"accent3"`
	Accent4  themeColorXML  `xml:"accent4"`
	Accent5  themeColorXML  `xml:"accent5"`
	Accent6  themeColorXML  `xml:"accent6"`
	Hlink    themeColorXML  `xml:"hlink"`
	FolHlink themeColorXML  `xml:"folHlink"`
}

type themeColorXML struct {
	SrgbClr *srgbClrXML `xml:"srgbClr"`
	SysClr  *sysClrXML  `xml:"sysClr"`
}

type fontSchemeXML struct {
	MajorFont themeFontXML `xml:"majorFont"`
	MinorFont themeFontXML `xml:"minorFont"`
}

type themeFontXML struct {
	Latin latinXML `xml:"latin"`
}

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
	Created  string   `xml:"created"`
	Modified string   `xml:"modified"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Slides      int      `xml:"Slides"`
}
