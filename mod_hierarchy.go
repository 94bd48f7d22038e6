package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

// TransformHierarchySystem derives the world TransformComponent of every child
// from its parent's world transform and its own local transform.
func TransformHierarchySystem(cmd *Commands) {
	ecs := cmd.app.ecs

	// Passes bound the depth; the player rig is at most two levels deep.
	for pass := 0; pass < 8; pass++ {
		changed := false
		MakeQuery3[LocalTransformComponent, Parent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, parent *Parent, world *TransformComponent) bool {
			parentWorld, ok := getComponent[TransformComponent](ecs, parent.Entity)
			if !ok {
				return true
			}

			parentRot := parentWorld.rotation()
			if local.IgnoreParentRotation {
				parentRot = mgl32.QuatIdent()
			}
			localRot := local.Rotation
			if localRot == (mgl32.Quat{}) {
				localRot = mgl32.QuatIdent()
			}

			// WorldPos = ParentPos + ParentRot * (ParentScale * LocalPos)
			scaledLocalPos := mgl32.Vec3{
				local.Position.X() * parentWorld.Scale.X(),
				local.Position.Y() * parentWorld.Scale.Y(),
				local.Position.Z() * parentWorld.Scale.Z(),
			}
			newPos := parentWorld.Position.Add(parentRot.Rotate(scaledLocalPos))
			newRot := parentRot.Mul(localRot).Normalize()
			newScale := mgl32.Vec3{
				parentWorld.Scale.X() * local.Scale.X(),
				parentWorld.Scale.Y() * local.Scale.Y(),
				parentWorld.Scale.Z() * local.Scale.Z(),
			}

			if newPos != world.Position || newRot != world.Rotation || newScale != world.Scale {
				world.Position = newPos
				world.Rotation = newRot
				world.Scale = newScale
				changed = true
			}
			return true
		})
		if !changed {
			break
		}
	}
}
