package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGBA color. Alpha is 255 for fully opaque.
type Color struct {
	R, G, B uint8
	A       uint8
}

// RGB creates a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses a color from a 6-digit RRGGBB or 8-digit AARRGGBB hex
// string, with or without a leading "#". Invalid input yields opaque black
// and ok=false; callers treat a bad value as degraded rather than an error.
func ParseHex(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return RGB(0, 0, 0), false
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
	case 8:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return RGB(0, 0, 0), false
		}
		return Color{
			A: uint8(v >> 24),
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
		}, true
	default:
		return RGB(0, 0, 0), false
	}
}

// Hex returns the color as an uppercase 6-digit RRGGBB string.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// IsZero reports whether the color is the zero value, meaning no color
// was specified.
func (c Color) IsZero() bool {
	return c == Color{}
}

// WithAlpha returns the color with the given alpha channel.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}
