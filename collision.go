package lumen

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// LayerMask selects which collider layers a ray can hit.
type LayerMask uint32

const (
	LayerTerrain  LayerMask = 1 << 0
	LayerEntities LayerMask = 1 << 1
	LayerProps    LayerMask = 1 << 2

	MaskAll LayerMask = ^LayerMask(0)
)

// Unbounded is the ray length used for rays that have no natural end, like
// the sun ray.
const Unbounded = float32(math.MaxFloat32)

type ColliderShape int

const (
	ShapeBox ColliderShape = iota
	ShapeSphere
)

type ColliderComponent struct {
	Shape       ColliderShape
	HalfExtents mgl32.Vec3 // For Box
	Radius      float32    // For Sphere
	Layer       LayerMask
}

// LootComponent tags loot containers. Their colliders are oversized and never
// block light.
type LootComponent struct{}

type RaycastHit struct {
	Hit    bool
	T      float32
	Point  mgl32.Vec3
	Entity EntityId
}

// Raycaster is the scene-geometry intersection service the light meter uses.
type Raycaster interface {
	// Raycast reports the nearest hit within maxDist.
	Raycast(origin, dir mgl32.Vec3, maxDist float32, mask LayerMask) RaycastHit
	// RaycastAll reports every hit within maxDist, nearest first.
	RaycastAll(origin, dir mgl32.Vec3, maxDist float32, mask LayerMask) []RaycastHit
}

type collisionBody struct {
	eid         EntityId
	position    mgl32.Vec3
	invRotation mgl32.Quat
	shape       ColliderShape
	halfExtents mgl32.Vec3
	radius      float32
	layer       LayerMask
}

// CollisionWorld is a flat snapshot of every collider, rebuilt each frame.
// Rays that start inside a collider do not hit it.
type CollisionWorld struct {
	bodies []collisionBody
}

func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{}
}

func (w *CollisionWorld) Clear() {
	w.bodies = w.bodies[:0]
}

func (w *CollisionWorld) Len() int {
	return len(w.bodies)
}

func (w *CollisionWorld) Add(eid EntityId, tr TransformComponent, col ColliderComponent) {
	scale := tr.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	absScale := mgl32.Vec3{abs32(scale.X()), abs32(scale.Y()), abs32(scale.Z())}

	body := collisionBody{
		eid:         eid,
		position:    tr.Position,
		invRotation: tr.rotation().Conjugate(),
		shape:       col.Shape,
		layer:       col.Layer,
		halfExtents: mgl32.Vec3{
			col.HalfExtents.X() * absScale.X(),
			col.HalfExtents.Y() * absScale.Y(),
			col.HalfExtents.Z() * absScale.Z(),
		},
		radius: col.Radius * max(absScale.X(), absScale.Y(), absScale.Z()),
	}
	if body.layer == 0 {
		body.layer = LayerProps
	}
	w.bodies = append(w.bodies, body)
}

func (w *CollisionWorld) RaycastAll(origin, dir mgl32.Vec3, maxDist float32, mask LayerMask) []RaycastHit {
	if dir.Len() < 1e-8 {
		return nil
	}
	dir = dir.Normalize()

	var hits []RaycastHit
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.layer&mask == 0 {
			continue
		}
		t, ok := b.intersect(origin, dir)
		if !ok || t > maxDist {
			continue
		}
		hits = append(hits, RaycastHit{
			Hit:    true,
			T:      t,
			Point:  origin.Add(dir.Mul(t)),
			Entity: b.eid,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

func (w *CollisionWorld) Raycast(origin, dir mgl32.Vec3, maxDist float32, mask LayerMask) RaycastHit {
	hits := w.RaycastAll(origin, dir, maxDist, mask)
	if len(hits) == 0 {
		return RaycastHit{}
	}
	return hits[0]
}

// intersect returns the entry distance along a normalized ray.
func (b *collisionBody) intersect(origin, dir mgl32.Vec3) (float32, bool) {
	switch b.shape {
	case ShapeSphere:
		return raySphere(origin, dir, b.position, b.radius)
	default:
		localOrigin := b.invRotation.Rotate(origin.Sub(b.position))
		localDir := b.invRotation.Rotate(dir)
		return rayBox(localOrigin, localDir, b.halfExtents)
	}
}

func raySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	if radius <= 0 {
		return 0, false
	}
	oc := origin.Sub(center)
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, false // origin inside
	}
	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return 0, false
	}
	t := -halfB - float32(math.Sqrt(float64(discriminant)))
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayBox is the slab test against a box centered at the origin.
func rayBox(origin, dir, halfExtents mgl32.Vec3) (float32, bool) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		lo, hi := -halfExtents[axis], halfExtents[axis]
		o, d := origin[axis], dir[axis]

		if abs32(d) < 1e-8 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = max(tNear, t1)
		tFar = min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}

	if tNear < 0 {
		// Box is behind the ray, or the ray starts inside it.
		return 0, false
	}
	return tNear, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

type CollisionModule struct{}

func (CollisionModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewCollisionWorld())
	app.UseSystem(
		System(collisionWorldSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func collisionWorldSystem(cmd *Commands, world *CollisionWorld) {
	world.Clear()
	MakeQuery2[TransformComponent, ColliderComponent](cmd).Map(func(eid EntityId, tr *TransformComponent, col *ColliderComponent) bool {
		world.Add(eid, *tr, *col)
		return true
	})
}
