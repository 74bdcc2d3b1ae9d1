package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/slidewise/slidewise/model"
)

// writeXMLToZip encodes a value as a package part with the standard XML
// header.
func writeXMLToZip(zw *zip.Writer, path string, v interface{}) error {
	fw, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := fw.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(fw)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// writeRawXMLToZip writes a pre-rendered part verbatim. Slide bodies and
// other prefix-heavy DrawingML parts are emitted this way because
// encoding/xml cannot reproduce the namespace prefixes compliant readers
// expect.
func writeRawXMLToZip(zw *zip.Writer, path, content string) error {
	fw, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	_, err = fw.Write([]byte(content))
	return err
}

// xmlEscape escapes special XML characters for raw-part emission.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

// --- Content types ---

type xmlContentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func (w *Writer) writeContentTypes(zw *zip.Writer) error {
	ct := xmlContentTypes{
		Xmlns: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xmlOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtProps},
		},
	}

	for i := range w.doc.Slides {
		ct.Overrides = append(ct.Overrides, xmlOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i+1),
			ContentType: ctSlide,
		})
	}
	for i, s := range w.doc.Slides {
		if slideHasNotes(s) {
			ct.Overrides = append(ct.Overrides, xmlOverride{
				PartName:    fmt.Sprintf("/ppt/notesSlides/notesSlide%d.xml", i+1),
				ContentType: ctNotesSlide,
			})
		}
	}

	seen := map[string]bool{}
	for _, hash := range w.mediaOrder {
		ext := w.mediaExt[hash]
		if seen[ext] {
			continue
		}
		seen[ext] = true
		ct.Defaults = append(ct.Defaults, xmlDefault{
			Extension:   ext,
			ContentType: mediaContentType(ext),
		})
	}

	return writeXMLToZip(zw, "[Content_Types].xml", ct)
}

// --- Relationships ---

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func (w *Writer) writeRootRels(zw *zip.Writer) error {
	rels := xmlRelationships{
		Xmlns: nsPackageRels,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeOfficeDoc, Target: "ppt/presentation.xml"},
			{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeExtProps, Target: "docProps/app.xml"},
		},
	}
	return writeXMLToZip(zw, "_rels/.rels", rels)
}

func (w *Writer) writePresentationRels(zw *zip.Writer) error {
	rels := xmlRelationships{Xmlns: nsPackageRels}

	relIdx := 1
	rels.Relationships = append(rels.Relationships, xmlRelationship{
		ID:     fmt.Sprintf("rId%d", relIdx),
		Type:   relTypeSlideMaster,
		Target: "slideMasters/slideMaster1.xml",
	})
	relIdx++

	for i := range w.doc.Slides {
		rels.Relationships = append(rels.Relationships, xmlRelationship{
			ID:     fmt.Sprintf("rId%d", relIdx),
			Type:   relTypeSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", i+1),
		})
		relIdx++
	}

	rels.Relationships = append(rels.Relationships, xmlRelationship{
		ID:     fmt.Sprintf("rId%d", relIdx),
		Type:   relTypeTheme,
		Target: "theme/theme1.xml",
	})

	return writeXMLToZip(zw, "ppt/_rels/presentation.xml.rels", rels)
}

// --- Presentation manifest ---

func (w *Writer) writePresentation(zw *zip.Writer) error {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(fmt.Sprintf(
		`<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">`,
		nsDrawingML, nsRelationships, nsPresentationML))
	sb.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)

	sb.WriteString(`<p:sldIdLst>`)
	for i := range w.doc.Slides {
		sb.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 2+i))
	}
	sb.WriteString(`</p:sldIdLst>`)

	sb.WriteString(fmt.Sprintf(`<p:sldSz cx="%d" cy="%d"/>`,
		pixelsToEMU(w.doc.Width), pixelsToEMU(w.doc.Height)))
	sb.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	sb.WriteString(`</p:presentation>`)

	return writeRawXMLToZip(zw, "ppt/presentation.xml", sb.String())
}

// --- Theme ---

// writeTheme emits a full theme part from the document's palette so
// readers that require one see the deck's colors, even though exported
// shapes carry direct RGB values.
func (w *Writer) writeTheme(zw *zip.Writer) error {
	t := w.doc.Theme
	if t == nil {
		t = model.DefaultTheme()
	}
	clr := func(hex string) string {
		return fmt.Sprintf(`<a:srgbClr val="%s"/>`, hex)
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<a:theme xmlns:a="%s" name="%s">`, nsDrawingML, xmlEscape(t.Name)))
	sb.WriteString(`<a:themeElements>`)
	sb.WriteString(fmt.Sprintf(`<a:clrScheme name="%s">`, xmlEscape(t.Name)))
	sb.WriteString(`<a:dk1>` + clr(t.Colors[0].Hex()) + `</a:dk1>`)
	sb.WriteString(`<a:lt1>` + clr(t.Colors[1].Hex()) + `</a:lt1>`)
	sb.WriteString(`<a:dk2>` + clr(t.Colors[2].Hex()) + `</a:dk2>`)
	sb.WriteString(`<a:lt2>` + clr(t.Colors[3].Hex()) + `</a:lt2>`)
	sb.WriteString(`<a:accent1>` + clr(t.Colors[4].Hex()) + `</a:accent1>`)
	sb.WriteString(`<a:accent2>` + clr(t.Colors[5].Hex()) + `</a:accent2>`)
	sb.WriteString(`<a:accent3>` + clr(t.Colors[6].Hex()) + `</a:accent3>`)
	sb.WriteString(`<a:accent4>` + clr(t.Colors[7].Hex()) + `</a:accent4>`)
	sb.WriteString(`<a:accent5>` + clr(t.Colors[8].Hex()) + `</a:accent5>`)
	sb.WriteString(`<a:accent6>` + clr(t.Colors[9].Hex()) + `</a:accent6>`)
	sb.WriteString(`<a:hlink>` + clr(t.Colors[10].Hex()) + `</a:hlink>`)
	sb.WriteString(`<a:folHlink>` + clr(t.Colors[11].Hex()) + `</a:folHlink>`)
	sb.WriteString(`</a:clrScheme>`)
	sb.WriteString(`<a:fontScheme name="Office">`)
	sb.WriteString(fmt.Sprintf(`<a:majorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>`, xmlEscape(t.MajorFont)))
	sb.WriteString(fmt.Sprintf(`<a:minorFont><a:latin typeface="%s"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>`, xmlEscape(t.MinorFont)))
	sb.WriteString(`</a:fontScheme>`)
	sb.WriteString(`<a:fmtScheme name="Office">`)
	sb.WriteString(`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>`)
	sb.WriteString(`<a:lnStyleLst><a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="25400"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="38100"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>`)
	sb.WriteString(`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>`)
	sb.WriteString(`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>`)
	sb.WriteString(`</a:fmtScheme>`)
	sb.WriteString(`</a:themeElements>`)
	sb.WriteString(`</a:theme>`)

	return writeRawXMLToZip(zw, "ppt/theme/theme1.xml", sb.String())
}

// --- Slide master and layout ---

func (w *Writer) writeSlideMaster(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld><p:bg><p:bgPr><a:solidFill><a:srgbClr val="FFFFFF"/></a:solidFill><a:effectLst/></p:bgPr></p:bg><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`,
		nsDrawingML, nsRelationships, nsPresentationML)
	if err := writeRawXMLToZip(zw, "ppt/slideMasters/slideMaster1.xml", content); err != nil {
		return err
	}

	rels := xmlRelationships{
		Xmlns: nsPackageRels,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
			{ID: "rId2", Type: relTypeTheme, Target: "../theme/theme1.xml"},
		},
	}
	return writeXMLToZip(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", rels)
}

func (w *Writer) writeSlideLayout(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1"><p:cSld name="Blank"><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/></p:spTree></p:cSld><p:clrMapOvr><a:overrideClrMapping bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/></p:clrMapOvr></p:sldLayout>`,
		nsDrawingML, nsRelationships, nsPresentationML)
	if err := writeRawXMLToZip(zw, "ppt/slideLayouts/slideLayout1.xml", content); err != nil {
		return err
	}

	rels := xmlRelationships{
		Xmlns: nsPackageRels,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
		},
	}
	return writeXMLToZip(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", rels)
}

// --- Media ---

func (w *Writer) writeMedia(zw *zip.Writer) error {
	for _, hash := range w.mediaOrder {
		num := w.mediaIndex[hash]
		name := fmt.Sprintf("ppt/media/image%d.%s", num, w.mediaExt[hash])
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := fw.Write(w.mediaData[hash]); err != nil {
			return err
		}
	}
	return nil
}

// --- Document properties ---

func (w *Writer) writeCoreProperties(zw *zip.Writer) error {
	meta := w.doc.Metadata
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:title>%s</dc:title>
  <dc:subject>%s</dc:subject>
  <dc:creator>%s</dc:creator>
  <cp:keywords>%s</cp:keywords>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(meta.Title),
		xmlEscape(meta.Subject),
		xmlEscape(meta.Author),
		xmlEscape(strings.Join(meta.Keywords, ", ")),
		meta.Created.UTC().Format("2006-01-02T15:04:05Z"),
		meta.Modified.UTC().Format("2006-01-02T15:04:05Z"),
	)
	return writeRawXMLToZip(zw, "docProps/core.xml", content)
}

func (w *Writer) writeAppProperties(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="%s" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">
  <Application>slidewise</Application>
  <Slides>%d</Slides>
</Properties>`, nsExtProperties, len(w.doc.Slides))
	return writeRawXMLToZip(zw, "docProps/app.xml", content)
}
