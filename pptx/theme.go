package pptx

import (
	"fmt"

	"github.com/slidewise/slidewise/model"
)

// parseTheme parses a theme part into a model Theme. Each of the twelve
// color slots falls back to the default theme's value when its entry is
// absent, so a sparse or partially broken theme still yields a usable
// palette.
func parseTheme(data []byte) (*model.Theme, error) {
	var tx themeXML
	if err := decodeXML(data, &tx); err != nil {
		return nil, fmt.Errorf("parsing theme part: %w", err)
	}

	theme := model.DefaultTheme()
	if tx.Name != "" {
		theme.Name = tx.Name
	}

	cs := tx.ThemeElements.ClrScheme
	entries := []struct {
		slot  model.ColorSlot
		color themeColorXML
	}{
		{model.SlotDark1, cs.Dk1},
		{model.SlotLight1, cs.Lt1},
		{model.SlotDark2, cs.Dk2},
		{model.SlotLight2, cs.Lt2},
		{model.SlotAccent1, cs.Accent1},
		{model.SlotAccent2, cs.Accent2},
		{model.SlotAccent3, cs.Accent3},
		{model.SlotAccent4, cs.Accent4},
		{model.SlotAccent5, cs.Accent5},
		{model.SlotAccent6, cs.Accent6},
		{model.SlotHyperlink, cs.Hlink},
		{model.SlotFollowedHyperlink, cs.FolHlink},
	}
	for _, e := range entries {
		if c, ok := themeEntryColor(e.color); ok {
			theme.Colors[e.slot] = c
		}
	}

	fs := tx.ThemeElements.FontScheme
	if fs.MajorFont.Latin.Typeface != "" {
		theme.MajorFont = fs.MajorFont.Latin.Typeface
	}
	if fs.MinorFont.Latin.Typeface != "" {
		theme.MinorFont = fs.MinorFont.Latin.Typeface
	}

	return theme, nil
}

func themeEntryColor(tc themeColorXML) (model.Color, bool) {
	if tc.SrgbClr != nil {
		return model.ParseHex(tc.SrgbClr.Val)
	}
	if tc.SysClr != nil {
		return model.ParseHex(tc.SysClr.LastClr)
	}
	return model.Color{}, false
}
