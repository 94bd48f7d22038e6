package lumen

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultSensingRadius   float32 = 50
	DefaultRefreshInterval uint64  = 20
)

// LightRegistry is the working set of sensed lights near the player. It holds
// entity ids only and is rebuilt wholesale on every refresh, so it may be
// stale between refreshes.
type LightRegistry struct {
	Radius          float32
	RefreshInterval uint64

	sources   []EntityId
	grid      *SpatialHashGrid
	refreshed bool
}

func NewLightRegistry() *LightRegistry {
	return &LightRegistry{
		Radius:          DefaultSensingRadius,
		RefreshInterval: DefaultRefreshInterval,
		grid:            NewSpatialHashGrid(DefaultSensingRadius / 4),
	}
}

// Sources returns the snapshot from the last refresh.
func (r *LightRegistry) Sources() []EntityId {
	return r.sources
}

// Refresh replaces the snapshot with every enabled, sensed point or spot
// light strictly within Radius of center.
func (r *LightRegistry) Refresh(cmd *Commands, center mgl32.Vec3) {
	ecs := cmd.app.ecs
	r.grid.Clear()

	MakeQuery2[TransformComponent, LightComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, light *LightComponent) bool {
		if light.Sensed() {
			r.grid.Insert(eid, PointAABB(tr.Position))
		}
		return true
	})

	var sources []EntityId
	for _, eid := range r.grid.QueryRadius(center, r.Radius) {
		tr, ok := getComponent[TransformComponent](ecs, eid)
		if !ok {
			continue
		}
		if tr.Position.Sub(center).Len() < r.Radius {
			sources = append(sources, eid)
		}
	}
	slices.Sort(sources)
	r.sources = sources
	r.refreshed = true
}

func lightRegistrySystem(cmd *Commands, time *Time, registry *LightRegistry, player *Player) {
	// The first run always refreshes so lights are sensed before frame 20.
	if registry.refreshed && !time.Every(registry.RefreshInterval) {
		return
	}
	tr, ok := GetComponent[TransformComponent](cmd, player.Entity)
	if !ok {
		cmd.Logger().Debugf("light registry: player entity %v has no transform, keeping %d stale sources", player.Entity, len(registry.sources))
		return
	}
	registry.Refresh(cmd, tr.Position)
}
