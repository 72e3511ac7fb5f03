// Package game implements the simulation controller: the ECS world,
// the per-frame step ordering, the control surface, and the thin
// raylib presentation layer.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/components"
	"github.com/pthm-cable/swarmtank/config"
	"github.com/pthm-cable/swarmtank/roles"
	"github.com/pthm-cable/swarmtank/systems"
	"github.com/pthm-cable/swarmtank/telemetry"
)

// Simulation constants. Behavioral numbers that define what the
// entities ARE live here and in the role catalog; world sizes, counts
// and probabilities come from config.
const (
	GridCellSize = 50.0

	BotRadius      float32 = 3
	BotMaxHealth   float32 = 100
	BotHealthDecay float32 = 0.1

	SeparationRadius float32 = 25
	FlockRadius      float32 = 50
	SeekCutoff       float32 = 100

	FoodRadius float32 = 5
	FoodValue  float32 = 20

	PredatorFoodRadius float32 = 11
	PredatorFoodValue  float32 = 40

	PowerUpRadius float32 = 8

	PredatorRadius      float32 = 10
	PredatorMaxSpeed    float32 = 4.0
	PredatorMaxForce    float32 = 0.18
	PredatorHuntRadius  float32 = 150
	PredatorKillRadius  float32 = 12
	PredatorMaxHealth   float32 = 100
	PredatorStartHealth float32 = 80
	PredatorHealthDecay float32 = 0.08

	RockRadius float32 = 18

	FightModeFrames int32 = 600
)

// Status reports whether the simulation is still running and, if not,
// how it ended.
type Status uint8

const (
	Running Status = iota
	AllBotsDead
	HomeDestroyed
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case AllBotsDead:
		return "all bots dead"
	case HomeDestroyed:
		return "home destroyed"
	}
	return "unknown"
}

// pendingBot is an entity creation deferred until after the current
// query pass, since queries lock the world against structural changes.
type pendingBot struct {
	role   roles.Role
	x, y   float32
	health float32
}

// hunterStrike is damage (and a taunt velocity pull) queued by a hunter
// during the bot pass and applied to the predator afterwards.
type hunterStrike struct {
	pred   ecs.Entity
	damage float32
	pullX  float32
	pullY  float32
}

// itemInfo is a per-frame snapshot of one consumable, taken before the
// movement passes so target scans never run nested queries.
type itemInfo struct {
	E    ecs.Entity
	X, Y float32
	R    float32
}

// powerInfo extends itemInfo with the power-up kind.
type powerInfo struct {
	itemInfo
	Kind components.PowerKind
}

// rockInfo snapshots a rock for target scans and collision checks.
type rockInfo struct {
	itemInfo
	Depleted bool
}

// predInfo snapshots a predator for bot avoidance and hunter targeting.
type predInfo struct {
	E      ecs.Entity
	X, Y   float32
	VX, VY float32
	R      float32
	Health float32
}

// botInfo snapshots a bot for predator targeting.
type botInfo struct {
	E      ecs.Entity
	X, Y   float32
	VX, VY float32
	Health float32
	Role   roles.Role
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	// uiRng feeds presentation-only randomness (screen shake) so the
	// renderer never perturbs the simulation stream.
	uiRng *rand.Rand
	cfg   *config.Config

	botMapper  *ecs.Map5[components.Position, components.Velocity, components.Body, components.Bot, components.Trail]
	botFilter  *ecs.Filter5[components.Position, components.Velocity, components.Body, components.Bot, components.Trail]
	predMapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Predator]
	predFilter *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Predator]
	foodMapper *ecs.Map3[components.Position, components.Body, components.Food]
	foodFilter *ecs.Filter3[components.Position, components.Body, components.Food]
	pfodMapper *ecs.Map3[components.Position, components.Body, components.PredatorFood]
	pfodFilter *ecs.Filter3[components.Position, components.Body, components.PredatorFood]
	pwrMapper  *ecs.Map3[components.Position, components.Body, components.PowerUp]
	pwrFilter  *ecs.Filter3[components.Position, components.Body, components.PowerUp]
	rockMapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Rock]
	rockFilter *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Rock]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	bodyMap *ecs.Map1[components.Body]
	botMap  *ecs.Map1[components.Bot]
	predMap *ecs.Map1[components.Predator]
	rockMap *ecs.Map1[components.Rock]

	// Spatial index over bots, rebuilt every frame.
	grid *systems.SpatialGrid

	home components.Home

	worldW float32
	worldH float32

	frame  int64
	paused bool

	// Swarm-wide power-up buffs. Collecting refreshes the timer and
	// adds a stack; expiry clears the stacks.
	speedBuffTimer   int32
	speedBuffStacks  int32
	damageBuffTimer  int32
	damageBuffStacks int32

	// Event countdowns read by the presentation layer.
	leaderDownTimer  int32
	noBreedersTimer  int32
	fightModeTimer   int32
	screenFlashTimer int32
	shakeTimer       int32

	historicalKills int64

	// Per-frame snapshots and pending buffers (mutate-after-iterate).
	foods        []itemInfo
	pfoods       []itemInfo
	powers       []powerInfo
	rocks        []rockInfo
	preds        []predInfo
	bots         []botInfo
	pendingBots  []pendingBot
	strikes      []hunterStrike
	killedBots   map[ecs.Entity]struct{}
	consumed     map[ecs.Entity]struct{}
	foodRemovals []ecs.Entity
	pfodRemovals []ecs.Entity
	pwrRemovals  []ecs.Entity

	neighbors []systems.Neighbor
	flock     []systems.FlockNeighbor

	collector *telemetry.Collector
}

// Options controls world construction.
type Options struct {
	Seed int64
}

// NewGame creates a fully populated world from the global config.
func NewGame(seed int64) *Game {
	return NewGameWithOptions(Options{Seed: seed})
}

// NewGameWithOptions creates a world with explicit options.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		uiRng: rand.New(rand.NewSource(opts.Seed + 1)),
		cfg:   cfg,

		botMapper:  ecs.NewMap5[components.Position, components.Velocity, components.Body, components.Bot, components.Trail](world),
		botFilter:  ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Bot, components.Trail](world),
		predMapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Predator](world),
		predFilter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Predator](world),
		foodMapper: ecs.NewMap3[components.Position, components.Body, components.Food](world),
		foodFilter: ecs.NewFilter3[components.Position, components.Body, components.Food](world),
		pfodMapper: ecs.NewMap3[components.Position, components.Body, components.PredatorFood](world),
		pfodFilter: ecs.NewFilter3[components.Position, components.Body, components.PredatorFood](world),
		pwrMapper:  ecs.NewMap3[components.Position, components.Body, components.PowerUp](world),
		pwrFilter:  ecs.NewFilter3[components.Position, components.Body, components.PowerUp](world),
		rockMapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Rock](world),
		rockFilter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Rock](world),

		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		bodyMap: ecs.NewMap1[components.Body](world),
		botMap:  ecs.NewMap1[components.Bot](world),
		predMap: ecs.NewMap1[components.Predator](world),
		rockMap: ecs.NewMap1[components.Rock](world),

		worldW: cfg.Derived.WorldW32,
		worldH: cfg.Derived.WorldH32,

		killedBots: make(map[ecs.Entity]struct{}),
		consumed:   make(map[ecs.Entity]struct{}),

		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
	}

	g.grid = systems.NewSpatialGrid(g.worldW, g.worldH, GridCellSize)
	g.home = components.NewHome(g.worldW/2, g.worldH/2)
	g.home.Radius = float32(cfg.Home.Radius)
	g.home.Hitpoints = int32(cfg.Home.Hitpoints)
	g.home.MaxHitpoints = int32(cfg.Home.Hitpoints)

	g.populate()

	return g
}

// Reset rebuilds the world in place, keeping the RNG stream.
func (g *Game) Reset() {
	world := ecs.NewWorld()
	g.world = world

	g.botMapper = ecs.NewMap5[components.Position, components.Velocity, components.Body, components.Bot, components.Trail](world)
	g.botFilter = ecs.NewFilter5[components.Position, components.Velocity, components.Body, components.Bot, components.Trail](world)
	g.predMapper = ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Predator](world)
	g.predFilter = ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Predator](world)
	g.foodMapper = ecs.NewMap3[components.Position, components.Body, components.Food](world)
	g.foodFilter = ecs.NewFilter3[components.Position, components.Body, components.Food](world)
	g.pfodMapper = ecs.NewMap3[components.Position, components.Body, components.PredatorFood](world)
	g.pfodFilter = ecs.NewFilter3[components.Position, components.Body, components.PredatorFood](world)
	g.pwrMapper = ecs.NewMap3[components.Position, components.Body, components.PowerUp](world)
	g.pwrFilter = ecs.NewFilter3[components.Position, components.Body, components.PowerUp](world)
	g.rockMapper = ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Rock](world)
	g.rockFilter = ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Rock](world)

	g.posMap = ecs.NewMap1[components.Position](world)
	g.velMap = ecs.NewMap1[components.Velocity](world)
	g.bodyMap = ecs.NewMap1[components.Body](world)
	g.botMap = ecs.NewMap1[components.Bot](world)
	g.predMap = ecs.NewMap1[components.Predator](world)
	g.rockMap = ecs.NewMap1[components.Rock](world)

	g.home = components.NewHome(g.worldW/2, g.worldH/2)
	g.home.Radius = float32(g.cfg.Home.Radius)
	g.home.Hitpoints = int32(g.cfg.Home.Hitpoints)
	g.home.MaxHitpoints = int32(g.cfg.Home.Hitpoints)

	g.frame = 0
	g.speedBuffTimer, g.speedBuffStacks = 0, 0
	g.damageBuffTimer, g.damageBuffStacks = 0, 0
	g.leaderDownTimer, g.noBreedersTimer = 0, 0
	g.fightModeTimer, g.screenFlashTimer, g.shakeTimer = 0, 0, 0
	g.historicalKills = 0

	g.collector = telemetry.NewCollector(g.cfg.Telemetry.StatsWindow)

	g.populate()
}

// Status reports the termination condition, Running while neither holds.
func (g *Game) Status() Status {
	if g.home.Hitpoints <= 0 {
		return HomeDestroyed
	}
	if g.BotCount() == 0 {
		return AllBotsDead
	}
	return Running
}

// Frame returns the number of completed steps.
func (g *Game) Frame() int64 { return g.frame }

// Home returns the base state.
func (g *Game) Home() *components.Home { return &g.home }

// HistoricalKills returns the all-time predator kill count.
func (g *Game) HistoricalKills() int64 { return g.historicalKills }

// Collector returns the telemetry collector.
func (g *Game) Collector() *telemetry.Collector { return g.collector }

// TogglePause flips the paused flag; Step is a no-op while paused.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// BotCount returns the number of live bots.
func (g *Game) BotCount() int {
	n := 0
	query := g.botFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// PredatorCount returns the number of live predators.
func (g *Game) PredatorCount() int {
	n := 0
	query := g.predFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// FoodCount returns the number of plain food items.
func (g *Game) FoodCount() int {
	n := 0
	query := g.foodFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// RoleCounts returns live bot counts per role.
func (g *Game) RoleCounts() map[roles.Role]int {
	counts := make(map[roles.Role]int)
	query := g.botFilter.Query()
	for query.Next() {
		_, _, _, bot, _ := query.Get()
		counts[bot.Role]++
	}
	return counts
}

// speedMultiplier returns the swarm speed buff factor, 1.5 per stack.
func (g *Game) speedMultiplier() float32 {
	if g.speedBuffTimer <= 0 {
		return 1
	}
	mult := float32(1)
	for i := int32(0); i < g.speedBuffStacks; i++ {
		mult *= float32(g.cfg.Buffs.SpeedMultiplier)
	}
	return mult
}

// damageMultiplier returns the swarm damage buff factor, doubling per
// stack.
func (g *Game) damageMultiplier() float32 {
	if g.damageBuffTimer <= 0 {
		return 1
	}
	mult := float32(1)
	for i := int32(0); i < g.damageBuffStacks; i++ {
		mult *= float32(g.cfg.Buffs.DamageMultiplier)
	}
	return mult
}
