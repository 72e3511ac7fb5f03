// Package roles defines the closed catalog of bot behavioral archetypes.
// Every parameter the simulation reads is an explicit field with its
// default baked in at table-construction time; there are no dynamic
// attribute lookups and no roles outside this file.
package roles

import (
	"fmt"
	"math/rand"
)

// Role identifies a behavioral archetype.
type Role uint8

const (
	Scout Role = iota
	Hunter
	Drone
	Harvester
	Leader
	Gatherer
	Miner

	roleCount
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case Scout:
		return "scout"
	case Hunter:
		return "hunter"
	case Drone:
		return "drone"
	case Harvester:
		return "harvester"
	case Leader:
		return "leader"
	case Gatherer:
		return "gatherer"
	case Miner:
		return "miner"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// Breeder reports whether the role reproduces. Only harvesters and
// gatherers breed; the catalog carries a legacy chance on miners that
// is never rolled.
func (r Role) Breeder() bool {
	return r == Harvester || r == Gatherer
}

// All lists every role in catalog order.
func All() []Role {
	out := make([]Role, roleCount)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// Params holds the behavioral parameters of one role.
type Params struct {
	Color       [3]uint8
	MaxSpeed    float32
	MaxForce    float32
	Description string

	// Steering weights
	FoodSeekWeight      float32
	CohesionWeight      float32
	PredatorAvoidWeight float32

	// Scout
	ShoutRange float32

	// Hunter
	CanAttack    bool
	AttackRange  float32
	AttackDamage float32
	TauntRange   float32
	TauntForce   float32
	AggroRange   float32

	// Forager burst targeting (harvester/gatherer over food, miner over rocks)
	DetectionRange  float32
	BurstMultiplier float32
	PriorityRange   float32

	// Reproduction (harvester/gatherer only; zero chance = ineligible)
	ReproductionChance float32

	// Resource carrying (gatherer carries food, miner carries ore)
	SeeksOre      bool
	CarryCapacity int32

	// Health below which the role eats instead of other handling.
	// Values above 100 mean the role always eats on contact.
	EatThreshold float32
}

// defaults are applied to every role before its overrides.
func defaults() Params {
	return Params{
		FoodSeekWeight:      2.5,
		CohesionWeight:      1.0,
		PredatorAvoidWeight: 4.0,
		AttackDamage:        20,
		EatThreshold:        101,
	}
}

var catalog [roleCount]Params

func init() {
	p := defaults()
	p.Color = [3]uint8{0, 255, 255}
	p.MaxSpeed = 4.0
	p.MaxForce = 0.12
	p.Description = "Fast scouts - find food and alert others"
	p.FoodSeekWeight = 2.0
	p.ShoutRange = 50
	p.EatThreshold = 50
	catalog[Scout] = p

	p = defaults()
	p.Color = [3]uint8{128, 0, 128}
	p.MaxSpeed = 2.5
	p.MaxForce = 0.12
	p.Description = "Hunters - protect swarm and taunt enemies"
	p.PredatorAvoidWeight = 6.0 // legacy value; hunters are fearless and never apply it
	p.CanAttack = true
	p.AttackRange = 25
	p.AttackDamage = 20
	p.TauntRange = 60
	p.TauntForce = 0.8
	p.AggroRange = 150
	catalog[Hunter] = p

	p = defaults()
	p.Color = [3]uint8{0, 100, 255}
	p.MaxSpeed = 3.0
	p.MaxForce = 0.10
	p.Description = "Drones - maintain formation"
	p.CohesionWeight = 2.0
	catalog[Drone] = p

	p = defaults()
	p.Color = [3]uint8{0, 255, 0}
	p.MaxSpeed = 3.2
	p.MaxForce = 0.11
	p.Description = "Harvesters - collect & reproduce"
	p.FoodSeekWeight = 4.0
	p.DetectionRange = 120
	p.BurstMultiplier = 1.8
	p.PriorityRange = 60
	p.ReproductionChance = 0.4
	catalog[Harvester] = p

	p = defaults()
	p.Color = [3]uint8{255, 255, 0}
	p.MaxSpeed = 3.5
	p.MaxForce = 0.13
	p.Description = "Leaders - maintain formation"
	p.CohesionWeight = 1.5
	catalog[Leader] = p

	p = defaults()
	p.Color = [3]uint8{0, 120, 255}
	p.MaxSpeed = 3.0
	p.MaxForce = 0.11
	p.Description = "Gatherers - collect food and deliver to home"
	p.FoodSeekWeight = 4.0
	p.DetectionRange = 120
	p.BurstMultiplier = 1.8
	p.PriorityRange = 60
	p.ReproductionChance = 0.4
	p.CarryCapacity = 3
	p.EatThreshold = 60
	catalog[Gatherer] = p

	p = defaults()
	p.Color = [3]uint8{180, 120, 60}
	p.MaxSpeed = 2.8
	p.MaxForce = 0.10
	p.Description = "Miners - collect ore from rocks and deliver to home"
	p.FoodSeekWeight = 4.0
	p.DetectionRange = 120
	p.BurstMultiplier = 1.7
	p.PriorityRange = 60
	p.ReproductionChance = 0.3 // legacy value; miners are not breeders and never roll it
	p.SeeksOre = true
	p.CarryCapacity = 3
	catalog[Miner] = p
}

// MustParams returns the parameters of a role. The catalog is closed;
// an out-of-range role is a programming error, not a runtime condition.
func MustParams(r Role) Params {
	if r >= roleCount {
		panic(fmt.Sprintf("roles: unknown role %d", uint8(r)))
	}
	return catalog[r]
}

// Spawn weights for random role assignment (higher = more common).
var spawnWeights = [roleCount]int{
	Scout:     20,
	Hunter:    15,
	Drone:     5,
	Harvester: 30,
	Leader:    5,
	Gatherer:  25,
	Miner:     20,
}

// WeightedRandom picks a role according to the spawn weights.
func WeightedRandom(rng *rand.Rand) Role {
	total := 0
	for _, w := range spawnWeights {
		total += w
	}
	n := rng.Intn(total)
	for r, w := range spawnWeights {
		if n < w {
			return Role(r)
		}
		n -= w
	}
	return Drone
}

// OffspringRole picks a role for a newborn: a 40% bias toward the
// breeder-adjacent roles, otherwise the normal weighted draw.
func OffspringRole(rng *rand.Rand) Role {
	if rng.Float32() < 0.4 {
		switch rng.Intn(3) {
		case 0:
			return Drone
		case 1:
			return Harvester
		default:
			return Gatherer
		}
	}
	return WeightedRandom(rng)
}
