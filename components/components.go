// Package components defines ECS components for the simulation.
package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/roles"
)

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float32
}

// Body holds the collision radius.
type Body struct {
	Radius float32
}

// Bot holds per-bot behavioral state. All timers are frame counters
// that count down to zero.
type Bot struct {
	Role   roles.Role
	Health float32

	BaseMaxSpeed float32
	MaxSpeed     float32
	MaxForce     float32

	// Timers
	ShoutCooldown int32
	TauntCooldown int32
	TauntEffect   int32
	ReproCooldown int32

	// Forager burst state, refreshed every frame by the role pre-pass.
	BurstActive     bool
	ClosestFoodDist float32
	HasPriority     bool
	Priority        ecs.Entity // food/power-up, or rock for miners
	PriorityIsRock  bool

	// Scout shout memory. Target handles may go stale when another bot
	// consumes the item first; they are re-validated on every use.
	HasTarget   bool
	Target      ecs.Entity
	ShoutedFood map[ecs.Entity]struct{}

	// Resource carrying
	CarryFood int32
	CarryOre  int32
}

// Carrying reports whether the bot has reached its carry capacity and
// should head home to deliver.
func (b *Bot) Carrying(capacity int32) bool {
	if capacity <= 0 {
		return false
	}
	return b.CarryFood >= capacity || b.CarryOre >= capacity
}

// Trail is a bounded ring buffer of recent positions, rendering only.
type Trail struct {
	Points [10]Position
	Head   uint8
	Count  uint8
}

// Push appends a position, evicting the oldest once full.
func (t *Trail) Push(p Position) {
	t.Points[t.Head] = p
	t.Head = (t.Head + 1) % uint8(len(t.Points))
	if t.Count < uint8(len(t.Points)) {
		t.Count++
	}
}

// Predator holds hunter-killer state.
type Predator struct {
	Name      string
	Health    float32
	MaxHealth float32

	BaseMaxSpeed float32
	MaxSpeed     float32
	MaxForce     float32

	HuntRadius float32
	KillRadius float32

	AttackCooldown int32
	Kills          int32

	SpeedBuff  int32
	DamageBuff int32
	FightFlash int32
}

// Food is a consumable that restores bot health.
type Food struct {
	Value float32
}

// PredatorFood is dropped by dying predators; edible by bots and
// predators alike and worth double a normal food item.
type PredatorFood struct {
	Value   float32
	Glow    int32
	GlowDir int32
}

// PowerKind tags the effect of a power-up.
type PowerKind uint8

const (
	PowerHealth PowerKind = iota
	PowerSpeed
	PowerDamage
)

// String returns the lowercase power-up kind name.
func (k PowerKind) String() string {
	switch k {
	case PowerHealth:
		return "health"
	case PowerSpeed:
		return "speed"
	case PowerDamage:
		return "damage"
	}
	return "unknown"
}

// PowerUp grants a heal or a swarm-wide buff on pickup.
type PowerUp struct {
	Kind    PowerKind
	Value   float32
	Glow    int32
	GlowDir int32
}

// Rock is a drifting obstacle and ore source.
type Rock struct {
	Ore            int32
	MaxOre         int32
	Depleted       bool
	ReplenishTimer int32
	FlashTimer     int32
}

// Mine removes up to amount ore and returns how much was mined.
// Depleted tracks ore <= 0.
func (r *Rock) Mine(amount int32) int32 {
	if r.Depleted || r.Ore <= 0 {
		return 0
	}
	mined := amount
	if mined > r.Ore {
		mined = r.Ore
	}
	r.Ore -= mined
	if r.Ore <= 0 {
		r.Depleted = true
	}
	return mined
}

// Flash marks the rock for a short collision flash.
func (r *Rock) Flash() {
	r.FlashTimer = 6
}

// Home is the base: delivery sink for gatherers/miners and a damageable
// structure predators can besiege. There is exactly one per world, so
// it lives on the controller rather than in the ECS.
type Home struct {
	Pos    Position
	Radius float32

	Hitpoints    int32
	MaxHitpoints int32

	FoodCollected int32
	OreCollected  int32
	CraftPoints   int32

	// Converted higher-tier resources (tick economy).
	Ration        int32
	Material      int32
	Craftsmanship int32

	RepairCooldown int32
}

// NewHome creates the base at the given position.
func NewHome(x, y float32) Home {
	return Home{
		Pos:          Position{X: x, Y: y},
		Radius:       24,
		Hitpoints:    5000,
		MaxHitpoints: 5000,
	}
}

// DepositFood credits delivered food.
func (h *Home) DepositFood(amount int32) {
	h.FoodCollected += amount
}

// DepositOre credits delivered ore.
func (h *Home) DepositOre(amount int32) {
	h.OreCollected += amount
}

// TakeDamage reduces hitpoints, never below zero.
func (h *Home) TakeDamage(amount int32) {
	h.Hitpoints -= amount
	if h.Hitpoints < 0 {
		h.Hitpoints = 0
	}
}

// Repair restores hitpoints up to the maximum and starts the repair
// cooldown to prevent instant repeats.
func (h *Home) Repair(amount int32) {
	h.Hitpoints += amount
	if h.Hitpoints > h.MaxHitpoints {
		h.Hitpoints = h.MaxHitpoints
	}
	h.RepairCooldown = 10
}

// Update advances the repair cooldown.
func (h *Home) Update() {
	if h.RepairCooldown > 0 {
		h.RepairCooldown--
	}
}
