package lumen

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemTorch
	ItemLantern
	ItemCandle
	ItemWeapon
	ItemFlare
)

func (k ItemKind) String() string {
	switch k {
	case ItemTorch:
		return "torch"
	case ItemLantern:
		return "lantern"
	case ItemCandle:
		return "candle"
	case ItemWeapon:
		return "weapon"
	case ItemFlare:
		return "alchemical flare"
	default:
		return "none"
	}
}

// Item is the slice of inventory state the lighting code reads. Identity is
// the ID, so a restacked or reloaded item with the same ID is the same item.
type Item struct {
	ID         uuid.UUID
	Kind       ItemKind
	Name       string
	Durability int
	Enchanted  bool
}

func NewItem(kind ItemKind, name string, durability int) *Item {
	if name == "" {
		name = kind.String()
	}
	return &Item{
		ID:         uuid.New(),
		Kind:       kind,
		Name:       name,
		Durability: durability,
	}
}

type Inventory struct {
	items []*Item
}

func NewInventory(items ...*Item) *Inventory {
	return &Inventory{items: items}
}

func (inv *Inventory) Add(item *Item) {
	inv.items = append(inv.items, item)
}

func (inv *Inventory) Contains(item *Item) bool {
	return inv.index(item) >= 0
}

func (inv *Inventory) Remove(item *Item) bool {
	i := inv.index(item)
	if i < 0 {
		return false
	}
	inv.items = slices.Delete(inv.items, i, i+1)
	return true
}

func (inv *Inventory) index(item *Item) int {
	if item == nil {
		return -1
	}
	return slices.IndexFunc(inv.items, func(it *Item) bool { return it.ID == item.ID })
}

type Race int

const (
	RaceBreton Race = iota
	RaceRedguard
	RaceNord
	RaceDarkElf
	RaceHighElf
	RaceWoodElf
	RaceKhajiit
	RaceArgonian
)

// EffectKind enumerates the active effects the lighting code reacts to.
type EffectKind int

const (
	EffectVampirism EffectKind = iota
	EffectBlending
	EffectInvisibility
	EffectShade
)

type WeaponState int

const (
	WeaponIdle WeaponState = iota
	WeaponStrikeDown
	WeaponStrikeDownLeft
	WeaponStrikeDownRight
	WeaponStrikeLeft
	WeaponStrikeRight
	WeaponStrikeUp
)

// Player is the per-frame player state supplied by the surrounding game.
type Player struct {
	Entity EntityId

	Velocity             mgl32.Vec3
	Race                 Race
	BeastForm            bool
	AcuteHearing         bool
	ImprovedAcuteHearing bool
	Effects              []EffectKind

	// LightSource is the equipped fuel-burning item, nil when none.
	LightSource *Item
	Inventory   *Inventory

	RightHand        *Item
	LeftHand         *Item
	UsingRightHand   bool
	WeaponSheathed   bool
	WeaponState      WeaponState
	WeaponFrame      int
	CastingAnimation bool
}

func NewPlayer(entity EntityId) *Player {
	return &Player{
		Entity:         entity,
		Inventory:      NewInventory(),
		UsingRightHand: true,
		WeaponSheathed: true,
	}
}

func (p *Player) HasEffect(kind EffectKind) bool {
	return slices.Contains(p.Effects, kind)
}

func (p *Player) IsVampire() bool {
	return p.HasEffect(EffectVampirism)
}

func (p *Player) IsMagicallyConcealed() bool {
	return p.HasEffect(EffectBlending) || p.HasEffect(EffectInvisibility) || p.HasEffect(EffectShade)
}

// ActiveWeapon is the item in the hand currently used for attacks.
func (p *Player) ActiveWeapon() *Item {
	if p.UsingRightHand {
		return p.RightHand
	}
	return p.LeftHand
}

// HUD collects user-visible messages for the surrounding UI to display.
type HUD struct {
	messages []string
}

func (h *HUD) Push(msg string) {
	h.messages = append(h.messages, msg)
}

// Drain returns the queued messages and empties the queue.
func (h *HUD) Drain() []string {
	msgs := h.messages
	h.messages = nil
	return msgs
}
