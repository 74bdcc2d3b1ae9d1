package pptx

import "github.com/slidewise/slidewise/model"

// Default text box insets in EMUs when the body properties omit them.
const (
	defaultInsetLR = 91440
	defaultInsetTB = 45720
)

// parseTextBody parses a rich-text body into the model's block → paragraph
// → run structure, resolving run colors against the theme.
func parseTextBody(tb *txBodyXML, theme *model.Theme) model.TextBody {
	body := model.TextBody{
		WordWrap: tb.BodyPr.Wrap != "none",
		Columns:  1,
	}
	if tb.BodyPr.NumCol > 1 {
		body.Columns = tb.BodyPr.NumCol
	}

	switch tb.BodyPr.Anchor {
	case "ctr":
		body.VerticalAlign = model.VAlignMiddle
	case "b":
		body.VerticalAlign = model.VAlignBottom
	default:
		body.VerticalAlign = model.VAlignTop
	}

	body.Insets = model.Insets{
		Left:   emuToPixels(insetOrDefault(tb.BodyPr.LIns, defaultInsetLR)),
		Top:    emuToPixels(insetOrDefault(tb.BodyPr.TIns, defaultInsetTB)),
		Right:  emuToPixels(insetOrDefault(tb.BodyPr.RIns, defaultInsetLR)),
		Bottom: emuToPixels(insetOrDefault(tb.BodyPr.BIns, defaultInsetTB)),
	}

	for i := range tb.P {
		body.Paragraphs = append(body.Paragraphs, parseParagraph(&tb.P[i], theme))
	}
	return body
}

func insetOrDefault(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}

// parseParagraph parses one paragraph with its properties and runs. Field
// elements (slide numbers, dates) contribute their cached text as plain
// runs so extraction sees them.
func parseParagraph(p *pXML, theme *model.Theme) model.Paragraph {
	para := model.Paragraph{}

	if p.PPr != nil {
		para.Level = p.PPr.Lvl
		switch p.PPr.Algn {
		case "ctr":
			para.Alignment = model.AlignCenter
		case "r":
			para.Alignment = model.AlignRight
		case "just":
			para.Alignment = model.AlignJustify
		default:
			para.Alignment = model.AlignLeft
		}

		if p.PPr.LnSpc != nil && p.PPr.LnSpc.SpcPct != nil {
			para.LineHeight = float64(p.PPr.LnSpc.SpcPct.Val) / 100000
		}
		if p.PPr.SpcBef != nil && p.PPr.SpcBef.SpcPts != nil {
			para.SpaceBefore = float64(p.PPr.SpcBef.SpcPts.Val) / 100
		}
		if p.PPr.SpcAft != nil && p.PPr.SpcAft.SpcPts != nil {
			para.SpaceAfter = float64(p.PPr.SpcAft.SpcPts.Val) / 100
		}

		if p.PPr.BuNone == nil {
			if p.PPr.BuAutoNum != nil {
				para.Numbered = true
			} else if p.PPr.BuChar != nil {
				para.Bullet = true
				para.BulletChar = p.PPr.BuChar.Char
			} else if para.Level > 0 {
				// Indented items inherit a bullet from the layout.
				para.Bullet = true
			}
		}
	}

	for i := range p.R {
		para.Runs = append(para.Runs, parseRun(&p.R[i], theme))
	}
	for _, fld := range p.Fld {
		if fld.T != "" {
			para.Runs = append(para.Runs, model.Run{Text: fld.T, Color: theme.Color(model.SlotDark1)})
		}
	}

	return para
}

func parseRun(r *rXML, theme *model.Theme) model.Run {
	run := model.Run{
		Text:  r.T,
		Color: theme.Color(model.SlotDark1),
	}
	if r.RPr == nil {
		return run
	}

	if r.RPr.B != nil && *r.RPr.B == 1 {
		run.Bold = true
	}
	if r.RPr.I != nil && *r.RPr.I == 1 {
		run.Italic = true
	}
	if r.RPr.U != "" && r.RPr.U != "none" {
		run.Underline = true
	}
	if r.RPr.Strike != "" && r.RPr.Strike != "noStrike" {
		run.Strike = true
	}
	if r.RPr.Sz > 0 {
		run.Size = float64(r.RPr.Sz) / 100
	}
	if r.RPr.Latin != nil {
		run.Font = r.RPr.Latin.Typeface
	}
	if r.RPr.SolidFill != nil {
		run.Color = resolveColor(&r.RPr.SolidFill.Color, theme)
	}
	return run
}
