package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// GropeLightMaxTintGrayscale is the darkest tint at which the grope light
	// switches on.
	GropeLightMaxTintGrayscale float32 = 0.05

	gropeLightBaseRange          float32 = 2.6
	gropeLightBaseSubmergedRange float32 = 2.3
	gropeLightBeastRange         float32 = 3.8
	gropeLightVampireRange       float32 = 4.2
	gropeLightKhajiitRange       float32 = 3.5
	gropeLightArgonianSubmerged  float32 = 8
	gropeLightHearingBonus       float32 = 1.2

	MagicLightRange        float32 = 3
	magicLightForwardReach float32 = 0.5
)

var (
	GropeLightColor = [3]float32{0.5, 0.2, 0.5}
	MagicLightColor = [3]float32{0.5, 0.5, 1}

	gropeLightOffset = mgl32.Vec3{0, -0.4, 0}
)

// GropeLight is the faint render-only light that lets the player see a little
// in total darkness. It never counts toward measured light.
type GropeLight struct {
	Entity         EntityId
	Range          float32
	SubmergedRange float32
	Enabled        bool
}

func NewGropeLight(entity EntityId) *GropeLight {
	return &GropeLight{
		Entity:         entity,
		Range:          3,
		SubmergedRange: 2,
	}
}

// UpdateRanges recomputes both ranges from the player's senses. Keen senses
// only widen the dry-land range; Argonians see further underwater.
func (g *GropeLight) UpdateRanges(player *Player) {
	g.Range = gropeLightBaseRange
	g.SubmergedRange = gropeLightBaseSubmergedRange

	switch {
	case player.BeastForm:
		g.Range = gropeLightBeastRange
	case player.IsVampire():
		g.Range = gropeLightVampireRange
	case player.Race == RaceKhajiit:
		g.Range = gropeLightKhajiitRange
	case player.Race == RaceArgonian:
		g.SubmergedRange = gropeLightArgonianSubmerged
	}

	if player.AcuteHearing {
		g.Range += gropeLightHearingBonus
	}
	if player.ImprovedAcuteHearing {
		g.Range += gropeLightHearingBonus
	}
}

// ActiveRange is the range in effect for the given surroundings.
func (g *GropeLight) ActiveRange(env *Environment) float32 {
	if env.Submerged {
		return g.SubmergedRange
	}
	return g.Range
}

// MagicLight glows around an enchanted weapon or a spell being cast.
type MagicLight struct {
	Entity  EntityId
	Enabled bool
}

// MagicLightOffset is the (up, right) offset that follows a weapon swing at
// the given animation frame. ok is false for states that do not move the light.
func MagicLightOffset(state WeaponState, frame int) (up, right float32, ok bool) {
	f := float32(frame)
	switch state {
	case WeaponStrikeDown:
		return 0.5 - f*0.15, 0, true
	case WeaponStrikeDownLeft:
		return 0.3 - f*0.1, 0.6 - f*0.1, true
	case WeaponStrikeDownRight:
		return 0.6 - f*0.1, -0.6 + f*0.1, true
	case WeaponStrikeLeft:
		return 0, 0.6 - f*0.15, true
	case WeaponStrikeRight:
		return 0, -0.6 + f*0.15, true
	case WeaponStrikeUp:
		return -0.4 + f*0.15, 0, true
	default:
		return 0, 0, false
	}
}

func spawnPlayerLights(cmd *Commands, player EntityId, torchRange float32) (torch, grope, magic EntityId) {
	torchLocal := NewLocalTransform(mgl32.Vec3{})
	torch = cmd.AddEntity(
		&TransformComponent{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}},
		&torchLocal,
		&Parent{Entity: player},
		&LightComponent{Type: LightTypePoint, Color: [3]float32{1, 0.75, 0.45}, Range: torchRange},
	)
	// The grope light hangs straight down whichever way the player looks.
	gropeLocal := NewLocalTransform(gropeLightOffset)
	gropeLocal.IgnoreParentRotation = true
	grope = cmd.AddEntity(
		&TransformComponent{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}},
		&gropeLocal,
		&Parent{Entity: player},
		&LightComponent{Type: LightTypePoint, Color: GropeLightColor, Intensity: 1, Range: 3, RenderOnly: true},
	)
	magicLocal := NewLocalTransform(axisForward.Mul(magicLightForwardReach))
	magic = cmd.AddEntity(
		&TransformComponent{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}},
		&magicLocal,
		&Parent{Entity: player},
		&LightComponent{Type: LightTypePoint, Color: MagicLightColor, Intensity: 1, Range: MagicLightRange},
	)
	return torch, grope, magic
}

func gropeLightSystem(cmd *Commands, t *Time, grope *GropeLight, player *Player, env *Environment, settings *Settings, tint *PlayerTint) {
	if !settings.GropeLight || !t.Every(lightTickFrames) {
		return
	}
	light, ok := GetComponent[LightComponent](cmd, grope.Entity)
	if !ok {
		return
	}

	grope.Enabled = tint.Tint.Grayscale() <= GropeLightMaxTintGrayscale
	light.Enabled = grope.Enabled
	if !grope.Enabled {
		return
	}

	grope.UpdateRanges(player)
	light.Range = grope.ActiveRange(env)
}

func magicLightSystem(cmd *Commands, t *Time, magic *MagicLight, player *Player) {
	if !t.Every(lightTickFrames) {
		return
	}
	light, ok := GetComponent[LightComponent](cmd, magic.Entity)
	if !ok {
		return
	}
	local, ok := GetComponent[LocalTransformComponent](cmd, magic.Entity)
	if !ok {
		return
	}

	magic.Enabled = false
	local.Position = axisForward.Mul(magicLightForwardReach)

	switch {
	case player.CastingAnimation:
		magic.Enabled = true
	case !player.WeaponSheathed:
		weapon := player.ActiveWeapon()
		if weapon == nil || !weapon.Enchanted {
			break
		}
		magic.Enabled = true
		if up, right, ok := MagicLightOffset(player.WeaponState, player.WeaponFrame); ok {
			local.Position = local.Position.Add(axisUp.Mul(up)).Add(axisRight.Mul(right))
		}
	}
	light.Enabled = magic.Enabled
}

// extinguishFlamesSystem puts out a mundane carried flame as soon as the
// player is underwater.
func extinguishFlamesSystem(player *Player, env *Environment, settings *Settings) {
	if !settings.ExtinguishFlames || !env.Submerged {
		return
	}
	if player.LightSource != nil && !player.LightSource.Enchanted {
		player.LightSource = nil
	}
}
