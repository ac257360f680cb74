package core

import "fmt"

// Color is a 24-bit RGB color. Frontends convert it to whatever their
// surface needs (ANSI truecolor, image/color).
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Fixed colors for blank cells and overlay text.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
)

// Hex returns the color in "#rrggbb" form, as lipgloss expects.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Modulate multiplies each channel by the matching modulation channel,
// the same way a texture color mod works.
func (c Color) Modulate(m Color) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(m.R) / 255),
		G: uint8(uint16(c.G) * uint16(m.G) / 255),
		B: uint8(uint16(c.B) * uint16(m.B) / 255),
	}
}

// Blend mixes src over c with the given alpha (0 = keep c, 255 = src).
func (c Color) Blend(src Color, alpha uint8) Color {
	a := uint16(alpha)
	inv := 255 - a
	return Color{
		R: uint8((uint16(src.R)*a + uint16(c.R)*inv) / 255),
		G: uint8((uint16(src.G)*a + uint16(c.G)*inv) / 255),
		B: uint8((uint16(src.B)*a + uint16(c.B)*inv) / 255),
	}
}
