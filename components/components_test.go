package components

import "testing"

func TestTrailRingBuffer(t *testing.T) {
	var tr Trail
	for i := 0; i < 15; i++ {
		tr.Push(Position{X: float32(i)})
	}
	if tr.Count != 10 {
		t.Errorf("Count = %d, want 10", tr.Count)
	}
	// After 15 pushes the buffer holds positions 5..14; the slot the
	// head points at is the oldest.
	oldest := tr.Points[tr.Head]
	if oldest.X != 5 {
		t.Errorf("oldest X = %v, want 5", oldest.X)
	}
}

func TestRockMine(t *testing.T) {
	r := Rock{Ore: 2, MaxOre: 10}

	if got := r.Mine(1); got != 1 {
		t.Errorf("Mine(1) = %d, want 1", got)
	}
	if r.Depleted {
		t.Error("rock with ore left must not be depleted")
	}
	if got := r.Mine(5); got != 1 {
		t.Errorf("Mine(5) with 1 ore = %d, want 1", got)
	}
	if !r.Depleted {
		t.Error("rock must deplete at zero ore")
	}
	if got := r.Mine(1); got != 0 {
		t.Errorf("Mine on depleted rock = %d, want 0", got)
	}
}

func TestHomeDamageAndRepair(t *testing.T) {
	h := NewHome(100, 100)
	if h.Hitpoints != 5000 || h.Radius != 24 {
		t.Fatalf("unexpected home defaults: %d hp, radius %v", h.Hitpoints, h.Radius)
	}

	h.TakeDamage(6000)
	if h.Hitpoints != 0 {
		t.Errorf("Hitpoints = %d, want clamp at 0", h.Hitpoints)
	}

	h.Repair(10000)
	if h.Hitpoints != h.MaxHitpoints {
		t.Errorf("Hitpoints = %d, want clamp at max %d", h.Hitpoints, h.MaxHitpoints)
	}
	if h.RepairCooldown == 0 {
		t.Error("repair must start the cooldown")
	}

	h.Update()
	if h.RepairCooldown != 9 {
		t.Errorf("RepairCooldown = %d, want 9", h.RepairCooldown)
	}
}

func TestHomeDeposits(t *testing.T) {
	h := NewHome(0, 0)
	h.DepositFood(3)
	h.DepositOre(2)
	if h.FoodCollected != 3 || h.OreCollected != 2 {
		t.Errorf("deposits = food %d, ore %d", h.FoodCollected, h.OreCollected)
	}
}

func TestBotCarrying(t *testing.T) {
	b := Bot{}
	if b.Carrying(3) {
		t.Error("empty bot must not report carrying")
	}
	b.CarryFood = 3
	if !b.Carrying(3) {
		t.Error("bot at food capacity must report carrying")
	}
	b = Bot{CarryOre: 3}
	if !b.Carrying(3) {
		t.Error("bot at ore capacity must report carrying")
	}
	if b.Carrying(0) {
		t.Error("zero capacity can never be full")
	}
}

func TestPowerKindString(t *testing.T) {
	tests := []struct {
		kind PowerKind
		want string
	}{
		{PowerHealth, "health"},
		{PowerSpeed, "speed"},
		{PowerDamage, "damage"},
		{PowerKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
