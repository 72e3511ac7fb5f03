package roles

import (
	"math/rand"
	"testing"
)

func TestCatalogValues(t *testing.T) {
	tests := []struct {
		role     Role
		maxSpeed float32
		maxForce float32
	}{
		{Scout, 4.0, 0.12},
		{Hunter, 2.5, 0.12},
		{Drone, 3.0, 0.10},
		{Harvester, 3.2, 0.11},
		{Leader, 3.5, 0.13},
		{Gatherer, 3.0, 0.11},
		{Miner, 2.8, 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			p := MustParams(tt.role)
			if p.MaxSpeed != tt.maxSpeed {
				t.Errorf("MaxSpeed = %v, want %v", p.MaxSpeed, tt.maxSpeed)
			}
			if p.MaxForce != tt.maxForce {
				t.Errorf("MaxForce = %v, want %v", p.MaxForce, tt.maxForce)
			}
		})
	}
}

func TestRoleTraits(t *testing.T) {
	if !MustParams(Hunter).CanAttack {
		t.Error("hunter must be able to attack")
	}
	if MustParams(Scout).ShoutRange != 50 {
		t.Error("scout shout range must be 50")
	}
	if !MustParams(Miner).SeeksOre {
		t.Error("miner must seek ore")
	}
	if MustParams(Gatherer).CarryCapacity != 3 {
		t.Error("gatherer carry capacity must be 3")
	}
	if MustParams(Drone).ReproductionChance != 0 {
		t.Error("drones must not reproduce")
	}
	if MustParams(Harvester).ReproductionChance != 0.4 {
		t.Error("harvester reproduction chance must be 0.4")
	}
}

func TestBreederRoles(t *testing.T) {
	for _, r := range All() {
		want := r == Harvester || r == Gatherer
		if got := r.Breeder(); got != want {
			t.Errorf("%s.Breeder() = %v, want %v", r, got, want)
		}
	}
}

func TestDefaultsApplied(t *testing.T) {
	// Leader sets no food seek weight of its own, so it carries the default.
	if got := MustParams(Leader).FoodSeekWeight; got != 2.5 {
		t.Errorf("leader FoodSeekWeight = %v, want default 2.5", got)
	}
	if got := MustParams(Drone).PredatorAvoidWeight; got != 4.0 {
		t.Errorf("drone PredatorAvoidWeight = %v, want default 4.0", got)
	}
}

func TestMustParamsPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParams(99) should panic")
		}
	}()
	MustParams(Role(99))
}

func TestWeightedRandomIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Role]int)
	for i := 0; i < 5000; i++ {
		r := WeightedRandom(rng)
		if r >= roleCount {
			t.Fatalf("invalid role %d", r)
		}
		seen[r]++
	}
	// Harvester has the top weight, drones and leaders the lowest.
	if seen[Harvester] <= seen[Drone] || seen[Harvester] <= seen[Leader] {
		t.Errorf("weighting looks off: %v", seen)
	}
}

func TestOffspringRoleIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		if r := OffspringRole(rng); r >= roleCount {
			t.Fatalf("invalid offspring role %d", r)
		}
	}
}

func TestStringAndAll(t *testing.T) {
	all := All()
	if len(all) != int(roleCount) {
		t.Fatalf("All() returned %d roles, want %d", len(all), roleCount)
	}
	for _, r := range all {
		if r.String() == "" {
			t.Errorf("role %d has empty name", r)
		}
	}
	if Scout.String() != "scout" || Miner.String() != "miner" {
		t.Error("role names must be lowercase role words")
	}
}
