package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightingFixture struct {
	app    *App
	cmd    *Commands
	player *Player
	torch  *Item
}

// newLightingFixture runs the full module set in a pitch-black dungeon with
// a lit torch in the player's hand.
func newLightingFixture(durability int, stateful bool) *lightingFixture {
	app := NewApp()
	if stateful {
		app.UseStates(StatePlaying, StatePaused)
	}
	cmd := app.Commands()

	playerTr := NewTransform(mgl32.Vec3{})
	player := NewPlayer(cmd.AddEntity(&playerTr))
	torch := NewItem(ItemTorch, "", durability)
	player.Inventory.Add(torch)
	player.LightSource = torch

	settings := DefaultSettings()
	settings.DungeonAmbientLightScale = 0
	env := NewEnvironment()
	env.Inside = true
	env.InsideDungeon = true

	app.UseModules(DefaultModules(LightingModule{
		Settings:    settings,
		Environment: env,
		Player:      player,
		Seed:        1,
	}, 0.5)...)
	app.build()

	return &lightingFixture{app: app, cmd: cmd, player: player, torch: torch}
}

func (f *lightingFixture) stepTo(frame uint64) {
	for f.clock().Frame < frame {
		f.app.Step()
	}
}

func (f *lightingFixture) clock() *Time {
	if t := Resource[Time](f.app); t != nil {
		return t
	}
	return &Time{}
}

func (f *lightingFixture) lightOf(eid EntityId) *LightComponent {
	light, ok := GetComponent[LightComponent](f.cmd, eid)
	if !ok {
		return &LightComponent{}
	}
	return light
}

func TestLightingModule_InstallsResources(t *testing.T) {
	f := newLightingFixture(50, false)
	f.app.Step()

	assert.NotNil(t, Resource[LightRegistry](f.app))
	assert.NotNil(t, Resource[LightMeter](f.app))
	assert.NotNil(t, Resource[LightingService](f.app))
	assert.NotNil(t, Resource[RandomSource](f.app))
	assert.Same(t, f.player, Resource[Player](f.app))

	cl := Resource[CarriedLight](f.app)
	grope := Resource[GropeLight](f.app)
	magic := Resource[MagicLight](f.app)
	for _, eid := range []EntityId{cl.Entity, grope.Entity, magic.Entity} {
		assert.True(t, f.cmd.EntityExists(eid))
	}
}

func TestLightingModule_RequiresTimeAndCollision(t *testing.T) {
	app := NewApp().UseModules(LightingModule{})
	assert.Panics(t, app.Step)
}

func TestLightingModule_SpawnsPlayerWhenNone(t *testing.T) {
	app := NewApp().UseModules(DefaultModules(LightingModule{}, 0.1)...)
	app.Step()

	player := Resource[Player](app)
	require.NotNil(t, player)
	assert.True(t, app.Commands().EntityExists(player.Entity))
}

func TestLightingModule_TorchLightsTheDarkThroughStaleRegistry(t *testing.T) {
	f := newLightingFixture(50, false)
	cl := Resource[CarriedLight](f.app)
	grope := Resource[GropeLight](f.app)
	tint := Resource[PlayerTint](f.app)

	f.stepTo(6)
	assert.True(t, f.lightOf(cl.Entity).Enabled, "torch lit on the first light tick")
	assert.Greater(t, f.lightOf(cl.Entity).Intensity, float32(0))
	assert.True(t, grope.Enabled, "the player still measures dark")

	// The torch was not a sensed light when the registry was primed, so it
	// only counts after the frame 20 refresh.
	f.stepTo(18)
	assert.Less(t, tint.Tint.Grayscale(), GropeLightMaxTintGrayscale)
	assert.True(t, grope.Enabled)

	f.stepTo(20)
	assert.Contains(t, Resource[LightRegistry](f.app).Sources(), cl.Entity)
	assert.Greater(t, tint.Tint.Grayscale(), GropeLightMaxTintGrayscale)

	f.stepTo(24)
	assert.False(t, grope.Enabled)
	assert.False(t, f.lightOf(grope.Entity).Enabled)

	service := Resource[LightingService](f.app)
	resp, err := service.HandleMessage("playerTint", nil)
	require.NoError(t, err)
	assert.Equal(t, tint.Tint, resp.Color)
}

func TestLightingModule_TorchBurnsOut(t *testing.T) {
	f := newLightingFixture(1, false)
	cl := Resource[CarriedLight](f.app)
	hud := Resource[HUD](f.app)

	// Each light tick spans 6 frames of 0.5s, so the torch has 20s of fuel
	// and goes out on the seventh tick.
	f.stepTo(36)
	require.Same(t, f.torch, f.player.LightSource)
	assert.Equal(t, []string{"Torch is guttering, about 17 seconds left."}, hud.Drain())

	f.stepTo(42)
	assert.Nil(t, f.player.LightSource)
	assert.False(t, f.player.Inventory.Contains(f.torch))
	assert.False(t, f.lightOf(cl.Entity).Enabled)
	assert.Equal(t, []string{"Torch burns out."}, hud.Drain())

	f.stepTo(48)
	assert.False(t, f.lightOf(cl.Entity).Enabled)
	assert.Empty(t, hud.Drain())
}

func TestLightingModule_SubmergedPutsOutTorch(t *testing.T) {
	f := newLightingFixture(50, false)
	Resource[Environment](f.app).Submerged = true

	f.stepTo(6)
	assert.Nil(t, f.player.LightSource)
	assert.True(t, f.player.Inventory.Contains(f.torch))
	assert.False(t, f.lightOf(Resource[CarriedLight](f.app).Entity).Enabled)
}

func TestLightingModule_PausedStateFreezesLighting(t *testing.T) {
	f := newLightingFixture(50, true)
	cl := Resource[CarriedLight](f.app)

	f.stepTo(6)
	require.True(t, cl.Lit)
	f.cmd.ChangeState(StatePaused)
	f.app.Step()
	smoothed := cl.Smoothed

	f.stepTo(30)
	assert.Equal(t, StatePaused, f.app.State())
	assert.Equal(t, smoothed, cl.Smoothed)
	assert.Equal(t, uint64(30), f.clock().Frame, "the clock keeps running")
}

func TestLightingModule_PauseSpendsNoFuel(t *testing.T) {
	f := newLightingFixture(50, true)
	cl := Resource[CarriedLight](f.app)

	f.stepTo(6)
	require.InDelta(t, 3, cl.FuelTimer, 1e-5)
	f.cmd.ChangeState(StatePaused)

	// A minute of paused clock.
	f.stepTo(126)
	f.cmd.ChangeState(StatePlaying)
	f.stepTo(132)

	assert.Equal(t, StatePlaying, f.app.State())
	assert.Equal(t, 50, f.torch.Durability)
	// Frame 7 ran before the pause took effect and frames 128-132 after it ended.
	assert.InDelta(t, 6, cl.FuelTimer, 1e-5)
}
