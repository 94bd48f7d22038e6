package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SunLight describes the directional sun. Direction is the way the beam
// travels, so the sun itself lies along -Direction.
type SunLight struct {
	Direction mgl32.Vec3
	Color     [3]float32
	Intensity float32
}

// IndirectLight is the sky fill used when the sun is blocked.
type IndirectLight struct {
	Color     [3]float32
	Intensity float32
}

// Environment is the world state supplied by the surrounding game each frame.
type Environment struct {
	InSunlight          bool
	Inside              bool
	InsideDungeon       bool
	InsideDungeonCastle bool
	InsideSpecialArea   bool
	Submerged           bool
	IsNight             bool

	// DaylightScale * ScaleFactor drives the outdoor night-to-noon blend.
	DaylightScale float32
	ScaleFactor   float32

	Sun      SunLight
	Indirect IndirectLight
}

func NewEnvironment() *Environment {
	return &Environment{
		DaylightScale: 1,
		ScaleFactor:   1,
		Sun: SunLight{
			Direction: mgl32.Vec3{0.3, -1, -0.2}.Normalize(),
			Color:     [3]float32{1, 0.96, 0.86},
			Intensity: 1,
		},
		Indirect: IndirectLight{
			Color:     [3]float32{0.53, 0.6, 0.7},
			Intensity: 0.5,
		},
	}
}

// AmbientPalette holds the ambient colors per environment category.
type AmbientPalette struct {
	ExteriorNight            Color
	ExteriorNoon             Color
	Interior                 Color
	InteriorNight            Color
	InteriorAmbientOnly      Color
	InteriorNightAmbientOnly Color
	Dungeon                  Color
	Castle                   Color
	SpecialArea              Color
}

func DefaultAmbientPalette() *AmbientPalette {
	return &AmbientPalette{
		ExteriorNight:            RGB(0.06, 0.06, 0.06),
		ExteriorNoon:             RGB(0.9, 0.9, 0.9),
		Interior:                 RGB(0.18, 0.18, 0.18),
		InteriorNight:            RGB(0.2, 0.18, 0.2),
		InteriorAmbientOnly:      RGB(0.8, 0.8, 0.8),
		InteriorNightAmbientOnly: RGB(0.5, 0.5, 0.5),
		Dungeon:                  RGB(0.12, 0.12, 0.12),
		Castle:                   RGB(0.58, 0.58, 0.58),
		SpecialArea:              RGB(0.58, 0.58, 0.58),
	}
}

// AmbientResolver picks the baseline ambient color. The first matching
// category wins; only the outdoor case blends.
type AmbientResolver struct {
	Palette *AmbientPalette
}

func NewAmbientResolver(palette *AmbientPalette) *AmbientResolver {
	if palette == nil {
		palette = DefaultAmbientPalette()
	}
	return &AmbientResolver{Palette: palette}
}

func (r *AmbientResolver) Resolve(env *Environment, settings *Settings) Color {
	p := r.Palette

	switch {
	case !env.Inside && !env.InsideDungeon:
		t := env.DaylightScale * env.ScaleFactor
		night := p.ExteriorNight.Scale(settings.NightAmbientLightScale)
		return LerpColor(night, p.ExteriorNoon, t)

	case env.Inside && !env.InsideDungeon:
		if env.IsNight {
			if settings.AmbientLitInteriors {
				return p.InteriorNightAmbientOnly
			}
			return p.InteriorNight
		}
		if settings.AmbientLitInteriors {
			return p.InteriorAmbientOnly
		}
		return p.Interior

	case env.Inside && env.InsideDungeon:
		if env.InsideDungeonCastle {
			return p.Castle
		}
		if env.InsideSpecialArea {
			return p.SpecialArea
		}
		return p.Dungeon.Scale(settings.DungeonAmbientLightScale)

	default:
		return ColorGray
	}
}
