package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hits closer to the light than this belong to whatever carries the light.
const OccluderIgnoreDistance float32 = 0.35

// spotConeEpsilon absorbs float error for targets exactly on the cone edge.
const spotConeEpsilon = 1e-4

// LightMeter estimates the light reaching a point from the sun or ambient
// baseline plus every registry light with an unobstructed line of sight.
type LightMeter struct {
	ecs      *Ecs
	Registry *LightRegistry
	Env      *Environment
	Ambient  *AmbientResolver
	Settings *Settings
	World    Raycaster
}

func NewLightMeter(cmd *Commands, registry *LightRegistry, env *Environment, ambient *AmbientResolver, settings *Settings, world Raycaster) *LightMeter {
	return &LightMeter{
		ecs:      cmd.app.ecs,
		Registry: registry,
		Env:      env,
		Ambient:  ambient,
		Settings: settings,
		World:    world,
	}
}

// Measure returns the clamped, opaque light color at location. exclude is an
// entity that never blocks light (the subject being lit), or NoEntity.
func (m *LightMeter) Measure(location mgl32.Vec3, exclude EntityId, mask LayerMask) Color {
	color := m.baseline(location)

	for _, eid := range m.Registry.Sources() {
		color = color.Add(m.contribution(eid, location, exclude, mask))
	}

	color = color.ClampRGB()
	color.A = 1
	return color
}

// MeasureEntity measures at the entity's position, excluding it from
// occlusion. A missing entity yields ColorClear without measuring.
func (m *LightMeter) MeasureEntity(subject EntityId) Color {
	tr, ok := getComponent[TransformComponent](m.ecs, subject)
	if !ok {
		return ColorClear
	}
	return m.Measure(tr.Position, subject, MaskAll)
}

func (m *LightMeter) baseline(location mgl32.Vec3) Color {
	if !m.Env.InSunlight {
		return m.Ambient.Resolve(m.Env, m.Settings)
	}

	sun := m.Env.Sun
	toSun := sun.Direction.Mul(-1)
	if m.World.Raycast(location, toSun, Unbounded, LayerTerrain).Hit {
		indirect := m.Env.Indirect
		return ColorFromArray(indirect.Color).Scale(indirect.Intensity)
	}
	return ColorFromArray(sun.Color).Scale(sun.Intensity)
}

func (m *LightMeter) contribution(source EntityId, location mgl32.Vec3, exclude EntityId, mask LayerMask) Color {
	light, ok := getComponent[LightComponent](m.ecs, source)
	if !ok || !light.Enabled {
		return ColorClear
	}
	tr, ok := getComponent[TransformComponent](m.ecs, source)
	if !ok {
		return ColorClear
	}

	toLocation := location.Sub(tr.Position)
	distance := toLocation.Len()
	if distance > light.Range {
		return ColorClear
	}

	if light.Type == LightTypeSpot && !InSpotCone(tr.Forward(), toLocation, light.ConeAngle) {
		return ColorClear
	}

	if m.occluded(source, tr.Position, toLocation, distance, exclude, mask) {
		return ColorClear
	}

	return ColorFromArray(light.Color).Scale(light.Intensity * Falloff(distance, light.Range))
}

// occluded scans every hit between the light and the location. The light's
// own entity, the excluded subject, loot and hits near the light are ignored.
func (m *LightMeter) occluded(source EntityId, origin, toLocation mgl32.Vec3, distance float32, exclude EntityId, mask LayerMask) bool {
	if distance <= 0 {
		return false
	}

	for _, hit := range m.World.RaycastAll(origin, toLocation, distance, mask) {
		switch {
		case hit.Entity == source:
		case exclude != NoEntity && hit.Entity == exclude:
		case hasComponent[LootComponent](m.ecs, hit.Entity):
		case hit.T < OccluderIgnoreDistance:
		default:
			return true
		}
	}
	return false
}

// Falloff is the linear attenuation: 1 at the light, 0 at its range.
func Falloff(distance, lightRange float32) float32 {
	if lightRange <= 0 {
		return 0
	}
	return clamp01((lightRange - distance) / lightRange)
}

// InSpotCone reports whether toTarget lies within half of coneAngle
// (degrees) of forward. The edge itself is inside.
func InSpotCone(forward, toTarget mgl32.Vec3, coneAngle float32) bool {
	if toTarget.Len() == 0 || forward.Len() == 0 {
		return true
	}
	cos := float64(forward.Normalize().Dot(toTarget.Normalize()))
	cos = math.Max(-1, math.Min(1, cos))
	angle := math.Acos(cos) * 180 / math.Pi
	return angle <= float64(coneAngle)/2+spotConeEpsilon
}
