package pptx

import (
	"encoding/xml"
	"testing"

	"github.com/slidewise/slidewise/model"
)

func textBodyFromXML(t *testing.T, body string) *txBodyXML {
	t.Helper()
	src := `<p:txBody xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` + body + `</p:txBody>`
	var tb txBodyXML
	if err := xml.Unmarshal([]byte(src), &tb); err != nil {
		t.Fatalf("unmarshal txBody: %v", err)
	}
	return &tb
}

func TestParseTextBody_Defaults(t *testing.T) {
	tb := textBodyFromXML(t, `<a:bodyPr/><a:p><a:r><a:t>hi</a:t></a:r></a:p>`)
	body := parseTextBody(tb, model.DefaultTheme())

	if !body.WordWrap {
		t.Error("WordWrap should default to true")
	}
	if body.Columns != 1 {
		t.Errorf("Columns = %d, want 1", body.Columns)
	}
	if body.VerticalAlign != model.VAlignTop {
		t.Errorf("VerticalAlign = %v, want top", body.VerticalAlign)
	}

	// 91440 EMU = 9.6px horizontal, 45720 EMU = 4.8px vertical.
	if body.Insets.Left != 9.6 || body.Insets.Right != 9.6 {
		t.Errorf("horizontal insets = %v/%v, want 9.6", body.Insets.Left, body.Insets.Right)
	}
	if body.Insets.Top != 4.8 || body.Insets.Bottom != 4.8 {
		t.Errorf("vertical insets = %v/%v, want 4.8", body.Insets.Top, body.Insets.Bottom)
	}
}

func TestParseTextBody_Properties(t *testing.T) {
	tb := textBodyFromXML(t, `<a:bodyPr wrap="none" anchor="ctr" lIns="182880" numCol="2"/><a:p/>`)
	body := parseTextBody(tb, model.DefaultTheme())

	if body.WordWrap {
		t.Error("wrap=none should disable word wrap")
	}
	if body.VerticalAlign != model.VAlignMiddle {
		t.Errorf("VerticalAlign = %v, want middle", body.VerticalAlign)
	}
	if body.Insets.Left != 19.2 {
		t.Errorf("Insets.Left = %v, want 19.2", body.Insets.Left)
	}
	if body.Columns != 2 {
		t.Errorf("Columns = %d, want 2", body.Columns)
	}
}

func TestParseParagraph_Formatting(t *testing.T) {
	tb := textBodyFromXML(t, `<a:bodyPr/>
<a:p>
  <a:pPr lvl="1" algn="ctr">
    <a:lnSpc><a:spcPct val="150000"/></a:lnSpc>
    <a:spcBef><a:spcPts val="600"/></a:spcBef>
    <a:buChar char="-"/>
  </a:pPr>
  <a:r><a:t>item</a:t></a:r>
</a:p>`)
	body := parseTextBody(tb, model.DefaultTheme())

	if len(body.Paragraphs) != 1 {
		t.Fatalf("paragraphs = %d, want 1", len(body.Paragraphs))
	}
	p := body.Paragraphs[0]
	if p.Level != 1 {
		t.Errorf("Level = %d, want 1", p.Level)
	}
	if p.Alignment != model.AlignCenter {
		t.Errorf("Alignment = %v, want center", p.Alignment)
	}
	if p.LineHeight != 1.5 {
		t.Errorf("LineHeight = %v, want 1.5", p.LineHeight)
	}
	if p.SpaceBefore != 6 {
		t.Errorf("SpaceBefore = %v, want 6", p.SpaceBefore)
	}
	if !p.Bullet || p.BulletChar != "-" {
		t.Errorf("bullet = %v char %q, want custom bullet", p.Bullet, p.BulletChar)
	}
}

func TestParseParagraph_Bullets(t *testing.T) {
	tests := []struct {
		name     string
		pPr      string
		bullet   bool
		numbered bool
	}{
		{"explicit none", `<a:pPr lvl="1"><a:buNone/></a:pPr>`, false, false},
		{"auto numbered", `<a:pPr><a:buAutoNum type="arabicPeriod"/></a:pPr>`, false, true},
		{"char bullet", `<a:pPr><a:buChar char="*"/></a:pPr>`, true, false},
		{"indent inherits bullet", `<a:pPr lvl="2"/>`, true, false},
		{"top level plain", `<a:pPr lvl="0"/>`, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := textBodyFromXML(t, `<a:bodyPr/><a:p>`+tt.pPr+`<a:r><a:t>x</a:t></a:r></a:p>`)
			body := parseTextBody(tb, model.DefaultTheme())
			p := body.Paragraphs[0]
			if p.Bullet != tt.bullet {
				t.Errorf("Bullet = %v, want %v", p.Bullet, tt.bullet)
			}
			if p.Numbered != tt.numbered {
				t.Errorf("Numbered = %v, want %v", p.Numbered, tt.numbered)
			}
		})
	}
}

func TestParseRun(t *testing.T) {
	tb := textBodyFromXML(t, `<a:bodyPr/>
<a:p>
  <a:r>
    <a:rPr b="1" i="1" u="sng" strike="sngStrike" sz="2400">
      <a:solidFill><a:srgbClr val="FF0000"/></a:solidFill>
      <a:latin typeface="Consolas"/>
    </a:rPr>
    <a:t>styled</a:t>
  </a:r>
</a:p>`)
	body := parseTextBody(tb, model.DefaultTheme())

	run := body.Paragraphs[0].Runs[0]
	if run.Text != "styled" {
		t.Errorf("Text = %q", run.Text)
	}
	if !run.Bold || !run.Italic || !run.Underline || !run.Strike {
		t.Errorf("styles = b:%v i:%v u:%v s:%v, want all set", run.Bold, run.Italic, run.Underline, run.Strike)
	}
	if run.Size != 24 {
		t.Errorf("Size = %v, want 24", run.Size)
	}
	if run.Color != model.RGB(0xFF, 0, 0) {
		t.Errorf("Color = %+v, want red", run.Color)
	}
	if run.Font != "Consolas" {
		t.Errorf("Font = %q, want Consolas", run.Font)
	}
}

func TestParseRun_Defaults(t *testing.T) {
	tb := textBodyFromXML(t, `<a:bodyPr/><a:p><a:r><a:t>plain</a:t></a:r></a:p>`)
	body := parseTextBody(tb, model.DefaultTheme())

	run := body.Paragraphs[0].Runs[0]
	if run.Bold || run.Italic || run.Underline || run.Strike {
		t.Error("unstyled run should carry no emphasis")
	}
	if run.Size != 0 {
		t.Errorf("Size = %v, want 0 (inherited)", run.Size)
	}
	if run.Color != model.DefaultTheme().Color(model.SlotDark1) {
		t.Errorf("Color = %+v, want theme text color", run.Color)
	}
}

func TestParseParagraph_FieldText(t *testing.T) {
	// Slide-number fields contribute their cached text to extraction.
	tb := textBodyFromXML(t, `<a:bodyPr/>
<a:p>
  <a:fld id="{B1F3E1D0-0000-0000-0000-000000000000}" type="slidenum"><a:t>7</a:t></a:fld>
</a:p>`)
	body := parseTextBody(tb, model.DefaultTheme())

	if got := body.PlainText(); got != "7" {
		t.Errorf("PlainText() = %q, want %q", got, "7")
	}
}
