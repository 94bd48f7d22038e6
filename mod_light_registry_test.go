package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLightRegistry_RefreshFiltersSensedLightsInRadius(t *testing.T) {
	f := newMeterFixture()
	near := f.light(mgl32.Vec3{10, 0, 0}, LightComponent{Type: LightTypePoint, Range: 5})
	spot := f.light(mgl32.Vec3{0, 0, -20}, LightComponent{Type: LightTypeSpot, Range: 5})
	f.light(mgl32.Vec3{60, 0, 0}, LightComponent{Type: LightTypePoint, Range: 5})
	f.light(mgl32.Vec3{50, 0, 0}, LightComponent{Type: LightTypePoint, Range: 5})
	f.light(mgl32.Vec3{1, 0, 0}, LightComponent{Type: LightTypeDirectional})
	f.light(mgl32.Vec3{1, 0, 0}, LightComponent{Type: LightTypeAmbient})
	f.light(mgl32.Vec3{2, 0, 0}, LightComponent{Type: LightTypePoint, Range: 3, RenderOnly: true})
	off := f.cmd.AddEntity(&TransformComponent{}, &LightComponent{Type: LightTypePoint, Range: 5})
	f.sync()

	assert.Equal(t, []EntityId{near, spot}, f.registry.Sources(), "exactly 50 units away is outside")
	assert.NotContains(t, f.registry.Sources(), off)
}

func TestLightRegistry_SnapshotsAreIndependent(t *testing.T) {
	f := newMeterFixture()
	a := f.light(mgl32.Vec3{1, 0, 0}, LightComponent{Range: 5})
	f.sync()
	before := f.registry.Sources()

	b := f.light(mgl32.Vec3{2, 0, 0}, LightComponent{Range: 5})
	f.sync()

	assert.Equal(t, []EntityId{a}, before)
	assert.Equal(t, []EntityId{a, b}, f.registry.Sources())
}

func TestLightRegistry_StalenessBound(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	playerTr := NewTransform(mgl32.Vec3{})
	player := NewPlayer(cmd.AddEntity(&playerTr))
	app.UseModules(DefaultModules(LightingModule{Player: player}, 1.0/60)...)

	lampTr := NewTransform(mgl32.Vec3{10, 0, 0})
	lamp := cmd.AddEntity(&lampTr, &LightComponent{Type: LightTypePoint, Range: 5, Intensity: 1, Enabled: true})

	registry := func() *LightRegistry { return Resource[LightRegistry](app) }
	clock := func() *Time { return Resource[Time](app) }

	// Frame 1 primes the registry; frames 20, 40, ... refresh it.
	app.Step()
	require.Contains(t, registry().Sources(), lamp)

	for clock().Frame < 21 {
		app.Step()
	}
	require.Contains(t, registry().Sources(), lamp)

	tr, _ := GetComponent[TransformComponent](cmd, lamp)
	tr.Position = mgl32.Vec3{80, 0, 0}

	for clock().Frame < 39 {
		app.Step()
		assert.Contains(t, registry().Sources(), lamp, "frame %d: not yet refreshed", clock().Frame)
	}
	app.Step()
	assert.Equal(t, uint64(40), clock().Frame)
	assert.NotContains(t, registry().Sources(), lamp, "gone after the next refresh")
}

func TestLightRegistry_MissingPlayerKeepsSnapshot(t *testing.T) {
	app := NewApp()
	app.UseModules(DefaultModules(LightingModule{Player: NewPlayer(777)}, 1.0/60)...)
	cmd := app.Commands()
	lamp := cmd.AddEntity(&TransformComponent{}, &LightComponent{Type: LightTypePoint, Range: 5, Enabled: true})

	assert.NotPanics(t, func() {
		for i := 0; i < 25; i++ {
			app.Step()
		}
	})
	assert.NotContains(t, Resource[LightRegistry](app).Sources(), lamp)
}
