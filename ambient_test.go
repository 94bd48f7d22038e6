package lumen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmbientResolver_Cascade(t *testing.T) {
	palette := DefaultAmbientPalette()
	resolver := NewAmbientResolver(palette)

	tests := []struct {
		name     string
		env      Environment
		settings func(*Settings)
		want     Color
	}{
		{
			name: "outdoor noon",
			env:  Environment{DaylightScale: 1, ScaleFactor: 1},
			want: palette.ExteriorNoon,
		},
		{
			name: "outdoor midnight",
			env:  Environment{DaylightScale: 0, ScaleFactor: 1},
			want: palette.ExteriorNight,
		},
		{
			name:     "outdoor midnight scaled",
			env:      Environment{DaylightScale: 0, ScaleFactor: 1},
			settings: func(s *Settings) { s.NightAmbientLightScale = 0.5 },
			want:     palette.ExteriorNight.Scale(0.5),
		},
		{
			name: "interior day",
			env:  Environment{Inside: true},
			want: palette.Interior,
		},
		{
			name: "interior night",
			env:  Environment{Inside: true, IsNight: true},
			want: palette.InteriorNight,
		},
		{
			name:     "interior ambient lit",
			env:      Environment{Inside: true},
			settings: func(s *Settings) { s.AmbientLitInteriors = true },
			want:     palette.InteriorAmbientOnly,
		},
		{
			name:     "interior ambient lit night",
			env:      Environment{Inside: true, IsNight: true},
			settings: func(s *Settings) { s.AmbientLitInteriors = true },
			want:     palette.InteriorNightAmbientOnly,
		},
		{
			name: "castle wins over special area",
			env:  Environment{Inside: true, InsideDungeon: true, InsideDungeonCastle: true, InsideSpecialArea: true},
			want: palette.Castle,
		},
		{
			name: "special area",
			env:  Environment{Inside: true, InsideDungeon: true, InsideSpecialArea: true},
			want: palette.SpecialArea,
		},
		{
			name:     "dungeon scaled",
			env:      Environment{Inside: true, InsideDungeon: true},
			settings: func(s *Settings) { s.DungeonAmbientLightScale = 0.5 },
			want:     palette.Dungeon.Scale(0.5),
		},
		{
			name: "dungeon flag without inside",
			env:  Environment{InsideDungeon: true},
			want: ColorGray,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			if tt.settings != nil {
				tt.settings(settings)
			}
			env := tt.env
			assertColor(t, tt.want, resolver.Resolve(&env, settings))
		})
	}
}

func TestAmbientResolver_OutdoorBlend(t *testing.T) {
	palette := &AmbientPalette{
		ExteriorNight: RGB(0, 0, 0),
		ExteriorNoon:  RGB(1, 0.5, 0),
	}
	resolver := NewAmbientResolver(palette)
	settings := DefaultSettings()

	half := resolver.Resolve(&Environment{DaylightScale: 0.5, ScaleFactor: 1}, settings)
	assertColor(t, RGB(0.5, 0.25, 0), half)

	// DaylightScale and ScaleFactor multiply.
	quarter := resolver.Resolve(&Environment{DaylightScale: 0.5, ScaleFactor: 0.5}, settings)
	assertColor(t, RGB(0.25, 0.125, 0), quarter)

	over := resolver.Resolve(&Environment{DaylightScale: 3, ScaleFactor: 1}, settings)
	assertColor(t, palette.ExteriorNoon, over, "blend factor is clamped")
}

func TestNewAmbientResolver_DefaultPalette(t *testing.T) {
	assert.Equal(t, DefaultAmbientPalette(), NewAmbientResolver(nil).Palette)
}
