package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcealmentTint(t *testing.T) {
	measured := RGB(0.3, 0.2, 0.1)

	tests := []struct {
		name    string
		effects []EffectKind
		elapsed float32
		want    Color
	}{
		{"visible", nil, 0, measured},
		{"vampire only", []EffectKind{EffectVampirism}, 0, measured},
		{"blending", []EffectKind{EffectBlending}, 0, Color{1, 1, 1, 0.12}},
		{"invisible", []EffectKind{EffectInvisibility}, 0, Color{1, 1, 1, 0.075}},
		{"shade", []EffectKind{EffectShade}, 0, ShadowTint},
		{"invisible shade", []EffectKind{EffectShade, EffectInvisibility}, 0, Color{0.1, 0.1, 0.1, 0.075}},
		{"blending beats invisibility", []EffectKind{EffectInvisibility, EffectBlending}, 0, Color{1, 1, 1, 0.12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := NewPlayer(1)
			player.Effects = tt.effects
			assertColor(t, tt.want, ConcealmentTint(measured, player, tt.elapsed))
		})
	}
}

func TestConcealmentTint_BlendingShimmers(t *testing.T) {
	player := NewPlayer(1)
	player.Effects = []EffectKind{EffectBlending}

	a := ConcealmentTint(ColorWhite, player, 0).A
	b := ConcealmentTint(ColorWhite, player, 0.2).A
	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, b, float32(-0.02))
	assert.LessOrEqual(t, b, float32(0.12))
}

func TestEntityLightingCache(t *testing.T) {
	c := NewEntityLightingCache()
	assert.Equal(t, DefaultCacheInterval, c.Interval)

	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Put(1, ColorWhite)
	got, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, ColorWhite, got)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestEntityLightingSystem_RefreshesOnCadence(t *testing.T) {
	f := newMeterFixture()
	lamp := f.light(mgl32.Vec3{}, LightComponent{Color: [3]float32{1, 1, 1}, Intensity: 1, Range: 10})
	playerTr := NewTransform(mgl32.Vec3{5, 0, 0})
	player := NewPlayer(f.cmd.AddEntity(&playerTr))
	sword := f.cmd.AddEntity(&FirstPersonTintComponent{})
	f.sync()

	clock := &Time{Frame: 5}
	cache := NewEntityLightingCache()
	service := NewLightingService(f.meter, cache, player, NewGropeLight(NoEntity), clock, NewNopLogger())
	tint := &PlayerTint{Tint: ColorWhite}

	entityLightingSystem(f.cmd, clock, cache, service, tint)
	assertColor(t, RGB(0.5, 0.5, 0.5), tint.Tint)
	assert.Equal(t, 1, cache.Len())
	fp, ok := GetComponent[FirstPersonTintComponent](f.cmd, sword)
	require.True(t, ok)
	assert.Equal(t, tint.Tint, fp.Tint)

	light, _ := GetComponent[LightComponent](f.cmd, lamp)
	light.Enabled = false

	clock.Frame = 7
	entityLightingSystem(f.cmd, clock, cache, service, tint)
	assertColor(t, RGB(0.5, 0.5, 0.5), service.PlayerTint(), "cached until the next clear")

	clock.Frame = 10
	entityLightingSystem(f.cmd, clock, cache, service, tint)
	assertColor(t, RGB(0, 0, 0), tint.Tint)
	assert.Equal(t, tint.Tint, fp.Tint)
}
