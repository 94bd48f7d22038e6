package lumen

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// States used by apps that pause the simulation. Lighting only runs while
// playing.
const (
	StatePlaying State = iota
	StatePaused
)

// RandomSource is the shared random stream for flame guttering and flares.
type RandomSource struct {
	*rand.Rand
}

func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// LightingModule installs the light registry, meter, query service and the
// player light rig. It needs the Time and CollisionWorld resources, so
// install TimeModule and CollisionModule first (see DefaultModules).
type LightingModule struct {
	Settings    *Settings
	Environment *Environment
	Palette     *AmbientPalette
	// Player is the externally owned player state. When nil, a player entity
	// is spawned at the origin.
	Player *Player
	Seed   uint64
}

func (mod LightingModule) Install(app *App, cmd *Commands) {
	settings := mod.Settings
	if settings == nil {
		settings = DefaultSettings()
	}
	env := mod.Environment
	if env == nil {
		env = NewEnvironment()
	}

	t := Resource[Time](app)
	world := Resource[CollisionWorld](app)
	if t == nil || world == nil {
		panic("LightingModule requires TimeModule and CollisionModule to be installed first")
	}

	player := mod.Player
	if player == nil {
		eid := cmd.AddEntity(&TransformComponent{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}})
		player = NewPlayer(eid)
	}

	random := NewRandomSource(mod.Seed)
	torch, gropeEid, magicEid := spawnPlayerLights(cmd, player.Entity, DefaultTorchRange)

	registry := NewLightRegistry()
	ambient := NewAmbientResolver(mod.Palette)
	meter := NewLightMeter(cmd, registry, env, ambient, settings, world)
	cache := NewEntityLightingCache()
	grope := NewGropeLight(gropeEid)
	service := NewLightingService(meter, cache, player, grope, t, app.Logger())

	cmd.AddResources(
		settings,
		env,
		player,
		&HUD{},
		random,
		registry,
		ambient,
		meter,
		cache,
		&PlayerTint{Tint: ColorWhite},
		grope,
		&MagicLight{Entity: magicEid},
		NewCarriedLight(torch, random.Rand),
		service,
	)

	app.Logger().Infof("lighting: player %v, torch %v, grope %v, magic %v", player.Entity, torch, gropeEid, magicEid)

	// Systems run in the order they are added within a stage.
	usePlaying(app, System(lightRegistrySystem).InStage(PreUpdate))
	usePlaying(app, System(entityLightingSystem).InStage(Update))
	usePlaying(app, System(extinguishFlamesSystem).InStage(Update))
	usePlaying(app, System(gropeLightSystem).InStage(Update))
	usePlaying(app, System(carriedLightSystem).InStage(Update))
	usePlaying(app, System(magicLightSystem).InStage(Update))
	usePlaying(app, System(flareSystem).InStage(Update))
}

// usePlaying schedules a system that must stop while a stateful app is
// paused. Stateless apps always run it.
func usePlaying(app *App, sched systemScheduleBuilder) {
	if app.stateful {
		sched = sched.InState(OnExecute(StatePlaying))
	}
	app.UseSystem(sched)
}

// DefaultModules is the full module set for a lighting simulation, in
// install order.
func DefaultModules(lighting LightingModule, fixedDt float32) []Module {
	return []Module{
		TimeModule{FixedDt: fixedDt},
		CollisionModule{},
		lighting,
		HierarchyModule{},
		LifecycleModule{},
	}
}
