package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamedColor(t *testing.T) {
	c, ok := NamedColor("orange")
	assert.True(t, ok)
	assertColor(t, Color{1, 165.0 / 255, 0, 1}, c)

	_, ok = NamedColor("not-a-color")
	assert.False(t, ok)
}

func TestColor_Grayscale(t *testing.T) {
	assert.InDelta(t, 1, ColorWhite.Grayscale(), 1e-5)
	assert.InDelta(t, 0.299, RGB(1, 0, 0).Grayscale(), 1e-5)
	assert.Zero(t, ShadowTint.Scale(0).Grayscale())
}

func TestColor_ClampRGBKeepsAlpha(t *testing.T) {
	c := Color{R: 1.5, G: -0.2, B: 0.4, A: 2}
	assert.Equal(t, Color{R: 1, G: 0, B: 0.4, A: 2}, c.ClampRGB())
}

func TestLerpColor(t *testing.T) {
	a := Color{0, 0, 0, 0}
	b := Color{1, 1, 1, 1}

	assertColor(t, a, LerpColor(a, b, -1))
	assertColor(t, Color{0.5, 0.5, 0.5, 0.5}, LerpColor(a, b, 0.5))
	assertColor(t, b, LerpColor(a, b, 2))
}
