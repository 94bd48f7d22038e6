package lumen

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a linear RGBA color with float channels.
type Color struct {
	R, G, B, A float32
}

var (
	ColorClear = Color{}
	ColorWhite = Color{1, 1, 1, 1}
	// ColorGray is the neutral fallback ambient.
	ColorGray = ColorFromRGBA(colornames.Gray)
)

func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func ColorFromArray(c [3]float32) Color {
	return RGB(c[0], c[1], c[2])
}

func ColorFromRGBA(c color.RGBA) Color {
	return Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// NamedColor resolves an SVG color name; ok is false for unknown names.
func NamedColor(name string) (Color, bool) {
	c, ok := colornames.Map[name]
	if !ok {
		return Color{}, false
	}
	return ColorFromRGBA(c), true
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Grayscale is the perceptual luminance of the RGB channels.
func (c Color) Grayscale() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ClampRGB clamps each color channel into [0, 1] and leaves alpha untouched.
func (c Color) ClampRGB() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), c.A}
}

// LerpColor blends a toward b in RGB space; t is clamped to [0, 1].
func LerpColor(a, b Color, t float32) Color {
	t = clamp01(t)
	ca := colorful.Color{R: float64(a.R), G: float64(a.G), B: float64(a.B)}
	cb := colorful.Color{R: float64(b.R), G: float64(b.G), B: float64(b.B)}
	mixed := ca.BlendRgb(cb, float64(t))
	return Color{
		R: float32(mixed.R),
		G: float32(mixed.G),
		B: float32(mixed.B),
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp01(v float32) float32 {
	return clampf(v, 0, 1)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
