package lumen

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FlareRunTime float32 = 30
	FlareRange   float32 = 6
	// FlareFade is how long a flare takes to flare up and to die down.
	FlareFade float32 = 3
)

// FlareComponent is a lit alchemical flare. Its light is rebuilt every
// frame from its age.
type FlareComponent struct {
	Age     float32
	RunTime float32
}

// Remaining is the burn time left in seconds.
func (f *FlareComponent) Remaining() float32 {
	return f.RunTime - f.Age
}

// FlareMagnitude scales a random jitter by the fade-in during the first
// FlareFade seconds and the fade-out during the last.
func FlareMagnitude(age, runTime, jitter float32) float32 {
	remaining := runTime - age
	switch {
	case remaining > runTime-FlareFade:
		return jitter * max(age, 0) / FlareFade
	case remaining < FlareFade:
		return jitter * max(remaining, 0) / FlareFade
	default:
		return jitter
	}
}

// RandomFlareColor picks each channel uniformly in [0.3, 1).
func RandomFlareColor(rng *rand.Rand) [3]float32 {
	return [3]float32{
		0.3 + rng.Float32()*0.7,
		0.3 + rng.Float32()*0.7,
		0.3 + rng.Float32()*0.7,
	}
}

// LaunchFlare spawns a lit flare one unit ahead of origin along forward. Its
// lifetime ends after FlareRunTime.
func LaunchFlare(cmd *Commands, origin, forward mgl32.Vec3, rng *rand.Rand) EntityId {
	if forward.Len() == 0 {
		forward = axisForward
	}
	forward = forward.Normalize()

	return cmd.AddEntity(
		&TransformComponent{Position: origin.Add(forward), Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}},
		&LightComponent{Type: LightTypePoint, Color: RandomFlareColor(rng), Range: FlareRange, Enabled: true},
		&FlareComponent{RunTime: FlareRunTime},
		&LifetimeComponent{TimeLeft: FlareRunTime},
	)
}

// UseFlare takes one flare from the inventory and lights it in front of the
// player's eye. It returns NoEntity when the item is not a
// flare in the inventory.
func UseFlare(cmd *Commands, player *Player, item *Item, rng *rand.Rand) EntityId {
	if item == nil || item.Kind != ItemFlare || player.Inventory == nil || !player.Inventory.Contains(item) {
		return NoEntity
	}
	tr, ok := GetComponent[TransformComponent](cmd, player.Entity)
	if !ok {
		cmd.Logger().Warnf("flare: player entity %v has no transform", player.Entity)
		return NoEntity
	}
	player.Inventory.Remove(item)
	return LaunchFlare(cmd, tr.Position, tr.Forward(), rng)
}

func flareSystem(cmd *Commands, t *Time, random *RandomSource) {
	MakeQuery2[FlareComponent, LightComponent](cmd).Map(func(eid EntityId, flare *FlareComponent, light *LightComponent) bool {
		flare.Age += t.Dt
		if flare.Remaining() <= 0 {
			// Burnt out; the lifetime system removes the entity.
			light.Enabled = false
			return true
		}
		jitter := 0.8 + random.Float32()*0.2
		light.Intensity = FlareMagnitude(flare.Age, flare.RunTime, jitter)
		return true
	})
}
