package lumen

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hako/durafmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CarriedLightMinIntensity float32 = 0.1
	CarriedLightMaxIntensity float32 = 1
	// FuelTickInterval is the burn time, in seconds, of one durability unit.
	FuelTickInterval float32 = 20
	LowFuelThreshold         = 3
	// Speeds above MovementDimThreshold dim torches and candles.
	MovementDimThreshold float32 = 2
	MovementDimDivisor   float32 = 4

	DefaultTorchRange float32 = 8

	// Light systems that track the player rig tick every lightTickFrames frames.
	lightTickFrames uint64 = 6
)

var itemNameCaser = cases.Title(language.English)

// ItemLightFactor is the brightness and range factor of a carried light item.
func ItemLightFactor(kind ItemKind) float32 {
	switch kind {
	case ItemTorch:
		return 1
	case ItemLantern:
		return 0.7
	default:
		return 0.5
	}
}

// windSensitive items dim with player movement; lanterns are shielded.
func windSensitive(kind ItemKind) bool {
	return kind == ItemTorch || kind == ItemCandle
}

// MovementPenalty is how much a wind-sensitive flame dims at a given speed.
func MovementPenalty(speed float32) float32 {
	return max(speed-MovementDimThreshold, 0) / MovementDimDivisor
}

// CarriedLight simulates the torch, lantern or candle the player carries and
// drives the light on Entity.
type CarriedLight struct {
	Entity     EntityId
	TorchRange float32

	// Smoothed ramps toward the item's target brightness. It stays in
	// [0.1, 1] while lit; 0 means reset or out.
	Smoothed float32
	// Flicker is the cosine jitter layered on the smoothed value this tick.
	Flicker   float32
	LastItem  uuid.UUID
	FuelTimer float32
	Guttering float32
	// Intensity and Range are the last values written to the light.
	Intensity float32
	Range     float32
	Lit       bool

	lowFuelWarned bool
	// pending is the simulated time since the last tick. Frames where the
	// system does not run add nothing.
	pending float32
	rng     *rand.Rand
}

func NewCarriedLight(entity EntityId, rng *rand.Rand) *CarriedLight {
	return &CarriedLight{
		Entity:     entity,
		TorchRange: DefaultTorchRange,
		rng:        rng,
	}
}

func (cl *CarriedLight) reset() {
	cl.Smoothed = 0
	cl.Flicker = 0
	cl.Intensity = 0
	cl.Lit = false
}

// Tick advances the simulation by dt seconds; elapsed is the clock used for
// the flicker phase. Results are written to light.
func (cl *CarriedLight) Tick(dt, elapsed float32, player *Player, settings *Settings, hud *HUD, light *LightComponent) {
	item := player.LightSource
	if item == nil {
		light.Enabled = false
		cl.reset()
		return
	}

	if item.ID != cl.LastItem {
		cl.LastItem = item.ID
		cl.Smoothed = 0
		cl.lowFuelWarned = false
	}

	factor := ItemLightFactor(item.Kind)
	cl.Range = cl.TorchRange * factor
	light.Range = cl.Range

	target := factor
	if windSensitive(item.Kind) {
		target -= MovementPenalty(player.Velocity.Len())
	}

	cl.Smoothed = clampf(cl.Smoothed+target*dt, CarriedLightMinIntensity, CarriedLightMaxIntensity)
	cl.Flicker = 0
	if cl.Smoothed > CarriedLightMinIntensity {
		cl.Flicker = float32(math.Cos(float64(elapsed*15))) / 60
	}

	intensity := cl.Smoothed + cl.Flicker
	if intensity <= 0 {
		// The smoothing model itself snuffed the flame.
		player.LightSource = nil
		intensity = 0
	}

	lit := true
	cl.FuelTimer += dt
	if cl.FuelTimer >= FuelTickInterval {
		cl.FuelTimer = 0
		if item.Durability > 0 {
			item.Durability--
		}
		if item.Durability == 0 && player.LightSource != nil && player.LightSource.ID == item.ID {
			hud.Push(expandItemMessage(settings.LightDiesMessage, item, 0))
			lit = false
			player.LightSource = nil
			if windSensitive(item.Kind) && player.Inventory != nil {
				player.Inventory.Remove(item)
			}
		}
	}

	var intensityMod float32
	if item.Durability < LowFuelThreshold {
		intensityMod = 0.85 + float32(math.Cos(float64(cl.Guttering)))*0.2
		cl.Guttering += -0.02 + cl.rng.Float32()*0.08

		if lit && !cl.lowFuelWarned && item.Durability > 0 {
			cl.lowFuelWarned = true
			remaining := float32(item.Durability)*FuelTickInterval - cl.FuelTimer
			hud.Push(expandItemMessage(settings.LowFuelMessage, item, remaining))
		}
	} else {
		intensityMod = 1.25
		cl.Guttering = 0
	}

	cl.Intensity = intensity * settings.PlayerTorchLightScale * intensityMod
	cl.Lit = lit
	light.Intensity = cl.Intensity
	light.Enabled = lit
}

func expandItemMessage(template string, item *Item, remainingSeconds float32) string {
	msg := strings.ReplaceAll(template, "%it", itemNameCaser.String(item.Name))
	if strings.Contains(msg, "%t") {
		d := time.Duration(remainingSeconds) * time.Second
		msg = strings.ReplaceAll(msg, "%t", durafmt.Parse(d).LimitFirstN(1).String())
	}
	return msg
}

func carriedLightSystem(cmd *Commands, t *Time, cl *CarriedLight, player *Player, settings *Settings, hud *HUD) {
	if !settings.AlterTorchlight {
		cl.pending = 0
		return
	}
	cl.pending += t.Dt
	if !t.Every(lightTickFrames) {
		return
	}
	dt := cl.pending
	cl.pending = 0

	light, ok := GetComponent[LightComponent](cmd, cl.Entity)
	if !ok {
		cmd.Logger().Warnf("carried light entity %v is gone", cl.Entity)
		return
	}
	cl.Tick(dt, t.Elapsed, player, settings, hud, light)
}
