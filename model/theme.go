package model

// ColorSlot identifies one of the twelve symbolic color roles in a theme's
// color scheme.
type ColorSlot int

const (
	SlotDark1 ColorSlot = iota
	SlotLight1
	SlotDark2
	SlotLight2
	SlotAccent1
	SlotAccent2
	SlotAccent3
	SlotAccent4
	SlotAccent5
	SlotAccent6
	SlotHyperlink
	SlotFollowedHyperlink

	// SlotCount is the number of slots in a color scheme.
	SlotCount = 12
)

func (s ColorSlot) String() string {
	switch s {
	case SlotDark1:
		return "dk1"
	case SlotLight1:
		return "lt1"
	case SlotDark2:
		return "dk2"
	case SlotLight2:
		return "lt2"
	case SlotAccent1:
		return "accent1"
	case SlotAccent2:
		return "accent2"
	case SlotAccent3:
		return "accent3"
	case SlotAccent4:
		return "accent4"
	case SlotAccent5:
		return "accent5"
	case SlotAccent6:
		return "accent6"
	case SlotHyperlink:
		return "hlink"
	case SlotFollowedHyperlink:
		return "folHlink"
	default:
		return "unknown"
	}
}

// Theme holds a named color scheme and font scheme. A Theme is immutable
// after parse: shapes and text reference it for color resolution but never
// own or modify it.
type Theme struct {
	Name      string
	Colors    [SlotCount]Color
	MajorFont string // Heading font family
	MinorFont string // Body font family
}

// Color returns the concrete color for a slot. Out-of-range slots return
// the Dark1 color, keeping resolution fail-soft.
func (t *Theme) Color(slot ColorSlot) Color {
	if slot < 0 || slot >= SlotCount {
		return t.Colors[SlotDark1]
	}
	return t.Colors[slot]
}

// DefaultTheme returns the built-in fallback theme, used when a package has
// no theme part or the theme part cannot be parsed. The palette matches the
// stock "Office" theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "Office",
		Colors: [SlotCount]Color{
			SlotDark1:             RGB(0x00, 0x00, 0x00),
			SlotLight1:            RGB(0xFF, 0xFF, 0xFF),
			SlotDark2:             RGB(0x44, 0x54, 0x6A),
			SlotLight2:            RGB(0xE7, 0xE6, 0xE6),
			SlotAccent1:           RGB(0x44, 0x72, 0xC4),
			SlotAccent2:           RGB(0xED, 0x7D, 0x31),
			SlotAccent3:           RGB(0xA5, 0xA5, 0xA5),
			SlotAccent4:           RGB(0xFF, 0xC0, 0x00),
			SlotAccent5:           RGB(0x5B, 0x9B, 0xD5),
			SlotAccent6:           RGB(0x70, 0xAD, 0x47),
			SlotHyperlink:         RGB(0x05, 0x63, 0xC1),
			SlotFollowedHyperlink: RGB(0x95, 0x4F, 0x72),
		},
		MajorFont: "Calibri Light",
		MinorFont: "Calibri",
	}
}
