package lumen

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

type LightData struct {
	Type LightType `json:"type"`
	// Color is used unless ColorName names an SVG color.
	Color      [3]float32 `json:"color"`
	ColorName  string     `json:"color_name,omitempty"`
	Intensity  float32    `json:"intensity"`
	Range      float32    `json:"range"`
	ConeAngle  float32    `json:"cone_angle,omitempty"`
	Enabled    bool       `json:"enabled"`
	RenderOnly bool       `json:"render_only,omitempty"`
}

type ColliderData struct {
	Shape       ColliderShape `json:"shape"`
	HalfExtents mgl32.Vec3    `json:"half_extents,omitempty"`
	Radius      float32       `json:"radius,omitempty"`
	Layer       LayerMask     `json:"layer"`
}

type EntityData struct {
	ID         EntityId      `json:"id"`
	Position   mgl32.Vec3    `json:"position"`
	Rotation   mgl32.Quat    `json:"rotation"`
	Scale      mgl32.Vec3    `json:"scale"`
	HasLocal   bool          `json:"has_local"`
	LocalPos   mgl32.Vec3    `json:"local_position,omitempty"`
	LocalRot   mgl32.Quat    `json:"local_rotation,omitempty"`
	LocalScale mgl32.Vec3    `json:"local_scale,omitempty"`
	WorldAxes  bool          `json:"local_world_axes,omitempty"`
	HasParent  bool          `json:"has_parent"`
	ParentID   EntityId      `json:"parent_id"`
	Light      *LightData    `json:"light,omitempty"`
	Collider   *ColliderData `json:"collider,omitempty"`
	Loot       bool          `json:"loot,omitempty"`
}

type PresetData struct {
	Entities []EntityData `json:"entities"`
}

// SavePreset writes every scene entity with a transform to filename. The
// player light rig is skipped since LightingModule spawns it.
func SavePreset(cmd *Commands, skip func(EntityId) bool, filename string) error {
	ecs := cmd.app.ecs
	var entities []EntityData

	MakeQuery1[TransformComponent](cmd).Map(func(eid EntityId, tr *TransformComponent) bool {
		if skip != nil && skip(eid) {
			return true
		}

		data := EntityData{
			ID:       eid,
			Position: tr.Position,
			Rotation: tr.Rotation,
			Scale:    tr.Scale,
		}
		if local, ok := getComponent[LocalTransformComponent](ecs, eid); ok {
			data.HasLocal = true
			data.LocalPos = local.Position
			data.LocalRot = local.Rotation
			data.LocalScale = local.Scale
			data.WorldAxes = local.IgnoreParentRotation
		}
		if parent, ok := getComponent[Parent](ecs, eid); ok {
			data.HasParent = true
			data.ParentID = parent.Entity
		}
		if light, ok := getComponent[LightComponent](ecs, eid); ok {
			data.Light = &LightData{
				Type:       light.Type,
				Color:      light.Color,
				Intensity:  light.Intensity,
				Range:      light.Range,
				ConeAngle:  light.ConeAngle,
				Enabled:    light.Enabled,
				RenderOnly: light.RenderOnly,
			}
		}
		if col, ok := getComponent[ColliderComponent](ecs, eid); ok {
			data.Collider = &ColliderData{
				Shape:       col.Shape,
				HalfExtents: col.HalfExtents,
				Radius:      col.Radius,
				Layer:       col.Layer,
			}
		}
		data.Loot = hasComponent[LootComponent](ecs, eid)

		entities = append(entities, data)
		return true
	})

	preset := PresetData{Entities: entities}
	bytes, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}

func LoadPreset(cmd *Commands, filename string) ([]EntityId, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParsePreset(cmd, bytes)
}

// ParsePreset spawns the entities described by a JSON preset and returns
// their new ids in file order. The entities exist after the next flush.
func ParsePreset(cmd *Commands, bytes []byte) ([]EntityId, error) {
	var preset PresetData
	if err := json.Unmarshal(bytes, &preset); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}

	// Map old IDs to new IDs
	idMap := make(map[EntityId]EntityId)
	var newEntities []EntityId

	for i, data := range preset.Entities {
		scale := data.Scale
		if scale == (mgl32.Vec3{}) {
			scale = mgl32.Vec3{1, 1, 1}
		}
		components := []any{&TransformComponent{
			Position: data.Position,
			Rotation: data.Rotation,
			Scale:    scale,
		}}

		if data.HasLocal {
			components = append(components, &LocalTransformComponent{
				Position:             data.LocalPos,
				Rotation:             data.LocalRot,
				Scale:                data.LocalScale,
				IgnoreParentRotation: data.WorldAxes,
			})
		}

		if data.Light != nil {
			light, err := data.Light.component()
			if err != nil {
				return nil, fmt.Errorf("preset entity %d: %w", i, err)
			}
			components = append(components, light)
		}

		if data.Collider != nil {
			components = append(components, &ColliderComponent{
				Shape:       data.Collider.Shape,
				HalfExtents: data.Collider.HalfExtents,
				Radius:      data.Collider.Radius,
				Layer:       data.Collider.Layer,
			})
		}

		if data.Loot {
			components = append(components, &LootComponent{})
		}

		newEid := cmd.AddEntity(components...)
		idMap[data.ID] = newEid
		newEntities = append(newEntities, newEid)
	}

	// Second pass: Restore hierarchy
	for _, data := range preset.Entities {
		if data.HasParent {
			if newChild, okC := idMap[data.ID]; okC {
				if newParent, okP := idMap[data.ParentID]; okP {
					cmd.AddComponents(newChild, &Parent{Entity: newParent})
				}
			}
		}
	}

	return newEntities, nil
}

func (d *LightData) component() (*LightComponent, error) {
	if d.Range < 0 || d.Intensity < 0 {
		return nil, fmt.Errorf("light has negative range or intensity")
	}
	color := d.Color
	if d.ColorName != "" {
		named, ok := NamedColor(d.ColorName)
		if !ok {
			return nil, fmt.Errorf("unknown color name %q", d.ColorName)
		}
		color = named.Array()
	}
	return &LightComponent{
		Type:       d.Type,
		Color:      color,
		Intensity:  d.Intensity,
		Range:      d.Range,
		ConeAngle:  d.ConeAngle,
		Enabled:    d.Enabled,
		RenderOnly: d.RenderOnly,
	}, nil
}
