package lumen

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeSpot        LightType = 2
	LightTypeAmbient     LightType = 3
)

// LightComponent is the ECS component for lights. Position and forward come
// from the entity's TransformComponent.
type LightComponent struct {
	Type      LightType
	Color     [3]float32 // RGB
	Intensity float32
	Range     float32 // For point/spot
	ConeAngle float32 // Full cone angle in degrees (spot)
	Enabled   bool
	// RenderOnly lights are drawn but never sensed by the light meter.
	RenderOnly bool
}

// Sensed reports whether the light can contribute to measurements.
func (l *LightComponent) Sensed() bool {
	if !l.Enabled || l.RenderOnly {
		return false
	}
	return l.Type == LightTypePoint || l.Type == LightTypeSpot
}
