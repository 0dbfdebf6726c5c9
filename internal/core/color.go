package core

import (
	"fmt"
	"math"
)

// Color is a palette foreground for a screen cell, drawn with ANSI
// 256-color codes.
type Color uint8

// Palette entries used by the HUD, outlines and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Tint is an optional 24-bit foreground. When On, it replaces the cell's
// palette Color.
type Tint struct {
	R, G, B uint8
	On      bool
}

// RGB returns an active tint.
func RGB(r, g, b uint8) Tint {
	return Tint{R: r, G: g, B: b, On: true}
}

// Scale dims the tint toward black. f is clamped to [0, 1].
func (t Tint) Scale(f float64) Tint {
	f = math.Max(0, math.Min(1, f))
	return Tint{
		R:  uint8(math.Round(float64(t.R) * f)),
		G:  uint8(math.Round(float64(t.G) * f)),
		B:  uint8(math.Round(float64(t.B) * f)),
		On: t.On,
	}
}

// Hex formats the tint as #rrggbb.
func (t Tint) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", t.R, t.G, t.B)
}
