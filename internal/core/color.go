package core

import (
	"fmt"
	"math"
)

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lerp interpolates from c towards to. t is clamped to [0, 1]; channels are
// rounded, so Lerp(to, 0) == c and Lerp(to, 1) == to.
func (c Color) Lerp(to Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}

// NullColor is a colour that may be absent.
type NullColor struct {
	Color Color
	Valid bool
}

// Some wraps c as a present colour.
func Some(c Color) NullColor {
	return NullColor{Color: c, Valid: true}
}

// None is the absent colour.
var None = NullColor{}

// String returns the hex value or "none".
func (n NullColor) String() string {
	if !n.Valid {
		return "none"
	}
	return n.Color.Hex()
}
