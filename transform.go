package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Engine axes: -Z is forward, +Y is up, +X is right.
var (
	axisForward = mgl32.Vec3{0, 0, -1}
	axisUp      = mgl32.Vec3{0, 1, 0}
	axisRight   = mgl32.Vec3{1, 0, 0}
)

// TransformComponent is the world-space placement of an entity.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is the placement relative to the Parent entity.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	// IgnoreParentRotation keeps Position along world axes, so the child
	// neither orbits nor turns with its parent.
	IgnoreParentRotation bool
}

type Parent struct {
	Entity EntityId
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewLocalTransform(position mgl32.Vec3) LocalTransformComponent {
	return LocalTransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// rotation treats the zero quaternion as identity so literal transforms work.
func (tr *TransformComponent) rotation() mgl32.Quat {
	if tr.Rotation == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return tr.Rotation
}

func (tr *TransformComponent) Forward() mgl32.Vec3 { return tr.rotation().Rotate(axisForward) }
