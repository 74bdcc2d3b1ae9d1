package pptx

import (
	"math"
	"strings"

	"github.com/slidewise/slidewise/model"
)

// The package's native length unit is the EMU, a large-integer subdivision
// of an inch. All model coordinates are device-independent pixels at 96
// per inch.
const (
	emuPerInch    = 914400
	pixelsPerInch = 96
	emuPerPixel   = emuPerInch / pixelsPerInch // 9525

	// Angles are stored in 1/60000-degree units.
	angleUnitsPerDegree = 60000
)

// emuToPixels converts EMUs to pixels. Pure fixed-ratio conversion;
// callers reject malformed input before invoking.
func emuToPixels(emu int64) float64 {
	return float64(emu) / emuPerPixel
}

// pixelsToEMU converts pixels back to EMUs, rounding to the nearest unit.
func pixelsToEMU(px float64) int64 {
	return int64(math.Round(px * emuPerPixel))
}

// angleToDegrees converts a native 1/60000-degree angle to degrees
// normalized into [0, 360). Zero input (including the absent-attribute
// default) maps to zero.
func angleToDegrees(units int64) float64 {
	deg := math.Mod(float64(units)/angleUnitsPerDegree, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// degreesToAngle converts degrees to native 1/60000-degree units.
func degreesToAngle(deg float64) int64 {
	return int64(math.Round(deg * angleUnitsPerDegree))
}

// neutralColor is substituted when a color reference cannot be resolved.
// Visual degradation beats aborting the parse.
var neutralColor = model.RGB(0x33, 0x33, 0x33)

// schemeSlots maps scheme color names, including the text/background
// aliases, to theme slots.
var schemeSlots = map[string]model.ColorSlot{
	"dk1":      model.SlotDark1,
	"lt1":      model.SlotLight1,
	"dk2":      model.SlotDark2,
	"lt2":      model.SlotLight2,
	"tx1":      model.SlotDark1,
	"bg1":      model.SlotLight1,
	"tx2":      model.SlotDark2,
	"bg2":      model.SlotLight2,
	"accent1":  model.SlotAccent1,
	"accent2":  model.SlotAccent2,
	"accent3":  model.SlotAccent3,
	"accent4":  model.SlotAccent4,
	"accent5":  model.SlotAccent5,
	"accent6":  model.SlotAccent6,
	"hlink":    model.SlotHyperlink,
	"folHlink": model.SlotFollowedHyperlink,
}

// resolveColor resolves a color construct against the active theme. A
// direct sRGB value is parsed as-is; a scheme reference looks up the theme
// slot; a system color uses its last-resolved value. Unrecognized
// references fall back to a neutral gray. The modifier chain (alpha,
// shade, tint, luminance) is applied multiplicatively afterwards.
func resolveColor(c *colorXML, theme *model.Theme) model.Color {
	if c == nil {
		return neutralColor
	}

	var base model.Color
	switch c.XMLName.Local {
	case "srgbClr":
		parsed, ok := model.ParseHex(c.Val)
		if !ok {
			return neutralColor
		}
		base = parsed
	case "schemeClr":
		slot, ok := schemeSlots[c.Val]
		if !ok {
			return neutralColor
		}
		base = theme.Color(slot)
	case "sysClr":
		parsed, ok := model.ParseHex(c.LastClr)
		if !ok {
			return neutralColor
		}
		base = parsed
	default:
		return neutralColor
	}

	return applyColorMods(base, c.Mods)
}

// applyColorMods applies shade/tint/alpha/luminance modifiers in document
// order. Modifier values are thousandths of a percent (100000 = 100%).
func applyColorMods(c model.Color, mods []modXML) model.Color {
	for _, m := range mods {
		f := float64(m.Val) / 100000
		switch m.XMLName.Local {
		case "alpha":
			c.A = clampChannel(float64(c.A) * f)
		case "shade":
			c.R = clampChannel(float64(c.R) * f)
			c.G = clampChannel(float64(c.G) * f)
			c.B = clampChannel(float64(c.B) * f)
		case "tint":
			c.R = clampChannel(255 - (255-float64(c.R))*f)
			c.G = clampChannel(255 - (255-float64(c.G))*f)
			c.B = clampChannel(255 - (255-float64(c.B))*f)
		case "lumMod":
			c.R = clampChannel(float64(c.R) * f)
			c.G = clampChannel(float64(c.G) * f)
			c.B = clampChannel(float64(c.B) * f)
		case "lumOff":
			off := 255 * f
			c.R = clampChannel(float64(c.R) + off)
			c.G = clampChannel(float64(c.G) + off)
			c.B = clampChannel(float64(c.B) + off)
		}
	}
	return c
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// alphaFromMods extracts the effective fill opacity from a modifier chain,
// defaulting to fully opaque.
func alphaFromMods(mods []modXML) float64 {
	opacity := 1.0
	for _, m := range mods {
		if m.XMLName.Local == "alpha" {
			opacity *= float64(m.Val) / 100000
		}
	}
	if opacity < 0 {
		return 0
	}
	if opacity > 1 {
		return 1
	}
	return opacity
}

// parseDashStyle maps a preset dash name onto the model's dash styles,
// defaulting to solid.
func parseDashStyle(val string) model.DashStyle {
	switch strings.TrimSpace(val) {
	case "dot", "sysDot":
		return model.DashDot
	case "dash", "sysDash":
		return model.DashDash
	case "dashDot", "sysDashDot", "sysDashDotDot":
		return model.DashDashDot
	case "lgDash", "lgDashDot", "lgDashDotDot":
		return model.DashLongDash
	default:
		return model.DashSolid
	}
}
