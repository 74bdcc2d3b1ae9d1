package pptx

import "strings"

// parseNotes extracts the speaker-note text from a notes part. The slide
// thumbnail placeholder is skipped; everything else contributes its
// paragraph text in order.
func parseNotes(data []byte) (string, error) {
	var notes notesSlideXML
	if err := decodeXML(data, &notes); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, child := range notes.CSld.SpTree.Children {
		sp := child.Sp
		if sp == nil {
			continue
		}
		if sp.NvSpPr.NvPr.Ph != nil && sp.NvSpPr.NvPr.Ph.Type == "sldImg" {
			continue
		}
		if sp.TxBody == nil {
			continue
		}
		for j := range sp.TxBody.P {
			text := paragraphText(&sp.TxBody.P[j])
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// paragraphText concatenates a paragraph's raw run and field text without
// resolving formatting. Used where only the text matters.
func paragraphText(p *pXML) string {
	var sb strings.Builder
	for _, r := range p.R {
		sb.WriteString(r.T)
	}
	for _, f := range p.Fld {
		sb.WriteString(f.T)
	}
	return strings.TrimSpace(sb.String())
}
