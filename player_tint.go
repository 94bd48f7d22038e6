package lumen

import (
	"math"
)

const (
	// DefaultCacheInterval is how many frames an entity's measured lighting
	// is reused before being measured again.
	DefaultCacheInterval uint64 = 5

	invisibleTintAlpha float32 = 0.075
)

// ShadowTint is the tint of a player in the form of a shade.
var ShadowTint = Color{R: 0.1, G: 0.1, B: 0.1, A: 0.5}

// EntityLightingCache memoizes per-entity lighting until the next clear.
type EntityLightingCache struct {
	Interval uint64
	values   map[EntityId]Color
}

func NewEntityLightingCache() *EntityLightingCache {
	return &EntityLightingCache{
		Interval: DefaultCacheInterval,
		values:   make(map[EntityId]Color),
	}
}

func (c *EntityLightingCache) Get(eid EntityId) (Color, bool) {
	color, ok := c.values[eid]
	return color, ok
}

func (c *EntityLightingCache) Put(eid EntityId, color Color) {
	c.values[eid] = color
}

func (c *EntityLightingCache) Clear() {
	clear(c.values)
}

func (c *EntityLightingCache) Len() int {
	return len(c.values)
}

// PlayerTint holds the tint computed on the last cache refresh.
type PlayerTint struct {
	Tint Color
}

// FirstPersonTintComponent marks first-person visuals (held weapon, mount)
// that are drawn with the player's tint.
type FirstPersonTintComponent struct {
	Tint Color
}

// ConcealmentTint overrides measured with the look of a magically concealed
// player. Unconcealed players keep the measured color.
func ConcealmentTint(measured Color, player *Player, elapsed float32) Color {
	if !player.IsMagicallyConcealed() {
		return measured
	}

	tint := ColorWhite
	if player.HasEffect(EffectShade) {
		tint = ShadowTint
	}

	switch {
	case player.HasEffect(EffectBlending):
		tint.A = 0.05 + float32(math.Cos(float64(elapsed*8)))*0.07
	case player.HasEffect(EffectInvisibility):
		tint.A = invisibleTintAlpha
	}
	return tint
}

func entityLightingSystem(cmd *Commands, t *Time, cache *EntityLightingCache, service *LightingService, tint *PlayerTint) {
	if !t.Every(cache.Interval) {
		return
	}
	cache.Clear()
	tint.Tint = service.PlayerTint()

	MakeQuery1[FirstPersonTintComponent](cmd).Map(func(eid EntityId, fp *FirstPersonTintComponent) bool {
		fp.Tint = tint.Tint
		return true
	})
}
