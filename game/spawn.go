package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/components"
	"github.com/pthm-cable/swarmtank/roles"
)

var predatorNames = []string{
	"Rex", "Fang", "Shadow", "Razor", "Ghost",
	"Viper", "Brutus", "Scar", "Talon", "Grim",
}

// populate fills a fresh world with the initial population from config.
func (g *Game) populate() {
	cfg := g.cfg
	margin := float32(cfg.Spawn.BotMargin)

	// One leader guaranteed, the rest drawn from the spawn weights.
	for i := 0; i < cfg.Population.InitialBots; i++ {
		role := roles.WeightedRandom(g.rng)
		if i == 0 {
			role = roles.Leader
		}
		x := margin + g.rng.Float32()*(g.worldW-2*margin)
		y := margin + g.rng.Float32()*(g.worldH-2*margin)
		g.spawnBot(role, x, y, BotMaxHealth)
	}

	g.SpawnFood(cfg.Population.InitialFood)

	for i := 0; i < cfg.Population.InitialPredators; i++ {
		g.SpawnPredator()
	}

	for i := 0; i < cfg.Population.InitialRocks; i++ {
		g.spawnRock()
	}
}

// spawnBot creates a bot of the given role. Must not be called while a
// query is open.
func (g *Game) spawnBot(role roles.Role, x, y, health float32) ecs.Entity {
	params := roles.MustParams(role)

	angle := g.rng.Float64() * 2 * math.Pi
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{
		X: float32(math.Cos(angle)),
		Y: float32(math.Sin(angle)),
	}
	body := components.Body{Radius: BotRadius}
	bot := components.Bot{
		Role:         role,
		Health:       health,
		BaseMaxSpeed: params.MaxSpeed,
		MaxSpeed:     params.MaxSpeed,
		MaxForce:     params.MaxForce,
	}
	if role == roles.Scout {
		bot.ShoutedFood = make(map[ecs.Entity]struct{})
	}
	trail := components.Trail{}

	return g.botMapper.NewEntity(&pos, &vel, &body, &bot, &trail)
}

// SpawnBot adds one bot of the given role at a random position.
func (g *Game) SpawnBot(role roles.Role) {
	margin := float32(g.cfg.Spawn.BotMargin)
	x := margin + g.rng.Float32()*(g.worldW-2*margin)
	y := margin + g.rng.Float32()*(g.worldH-2*margin)
	g.spawnBot(role, x, y, BotMaxHealth)
}

// SpawnRandomBot adds one bot with a weighted-random role.
func (g *Game) SpawnRandomBot() {
	g.SpawnBot(roles.WeightedRandom(g.rng))
}

// SpawnFood adds n food items at random positions.
func (g *Game) SpawnFood(n int) {
	margin := float32(g.cfg.Spawn.Margin)
	for i := 0; i < n; i++ {
		x := margin + g.rng.Float32()*(g.worldW-2*margin)
		y := margin + g.rng.Float32()*(g.worldH-2*margin)
		g.spawnFoodAt(x, y)
	}
}

func (g *Game) spawnFoodAt(x, y float32) {
	pos := components.Position{X: x, Y: y}
	body := components.Body{Radius: FoodRadius}
	food := components.Food{Value: FoodValue}
	g.foodMapper.NewEntity(&pos, &body, &food)
}

// spawnPredatorFoodAt drops one predator-food item, clamped inside the
// world bounds.
func (g *Game) spawnPredatorFoodAt(x, y float32) {
	pos := components.Position{
		X: clamp32(x, 20, g.worldW-20),
		Y: clamp32(y, 20, g.worldH-20),
	}
	body := components.Body{Radius: PredatorFoodRadius}
	pf := components.PredatorFood{Value: PredatorFoodValue, GlowDir: 1}
	g.pfodMapper.NewEntity(&pos, &body, &pf)
}

// SpawnPowerUp adds one power-up of the given kind at a random position.
func (g *Game) SpawnPowerUp(kind components.PowerKind) {
	margin := float32(g.cfg.Spawn.Margin)
	x := margin + g.rng.Float32()*(g.worldW-2*margin)
	y := margin + g.rng.Float32()*(g.worldH-2*margin)

	value := float32(50)
	if kind != components.PowerHealth {
		value = 30
	}

	pos := components.Position{X: x, Y: y}
	body := components.Body{Radius: PowerUpRadius}
	pu := components.PowerUp{Kind: kind, Value: value, GlowDir: 1}
	g.pwrMapper.NewEntity(&pos, &body, &pu)
}

// SpawnRandomPowerUp adds one power-up of a random kind.
func (g *Game) SpawnRandomPowerUp() {
	g.SpawnPowerUp(components.PowerKind(g.rng.Intn(3)))
}

// SpawnPredator adds one predator at a random world edge.
func (g *Game) SpawnPredator() {
	var x, y float32
	switch g.rng.Intn(4) {
	case 0: // top
		x, y = g.rng.Float32()*g.worldW, 0
	case 1: // bottom
		x, y = g.rng.Float32()*g.worldW, g.worldH
	case 2: // left
		x, y = 0, g.rng.Float32()*g.worldH
	default: // right
		x, y = g.worldW, g.rng.Float32()*g.worldH
	}
	g.spawnPredatorAt(x, y)
}

func (g *Game) spawnPredatorAt(x, y float32) {
	angle := g.rng.Float64() * 2 * math.Pi
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{
		X: float32(math.Cos(angle)) * 2,
		Y: float32(math.Sin(angle)) * 2,
	}
	body := components.Body{Radius: PredatorRadius}
	pred := components.Predator{
		Name:         predatorNames[g.rng.Intn(len(predatorNames))],
		Health:       PredatorStartHealth,
		MaxHealth:    PredatorMaxHealth,
		BaseMaxSpeed: PredatorMaxSpeed,
		MaxSpeed:     PredatorMaxSpeed,
		MaxForce:     PredatorMaxForce,
		HuntRadius:   PredatorHuntRadius,
		KillRadius:   PredatorKillRadius,
	}
	g.predMapper.NewEntity(&pos, &vel, &body, &pred)
}

// spawnRock adds one drifting ore rock with full ore.
func (g *Game) spawnRock() {
	margin := RockRadius + 10
	x := margin + g.rng.Float32()*(g.worldW-2*margin)
	y := margin + g.rng.Float32()*(g.worldH-2*margin)

	speed := 0.5 + g.rng.Float32()
	angle := g.rng.Float64() * 2 * math.Pi

	maxOre := int32(g.cfg.Rock.MaxOre)

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{
		X: float32(math.Cos(angle)) * speed,
		Y: float32(math.Sin(angle)) * speed,
	}
	body := components.Body{Radius: RockRadius}
	rock := components.Rock{
		Ore:            maxOre,
		MaxOre:         maxOre,
		ReplenishTimer: g.replenishInterval(),
	}
	g.rockMapper.NewEntity(&pos, &vel, &body, &rock)
}

// replenishInterval draws the frames until a rock's next ore regrowth.
func (g *Game) replenishInterval() int32 {
	lo := g.cfg.Rock.ReplenishMin
	hi := g.cfg.Rock.ReplenishMax
	if hi <= lo {
		return int32(lo)
	}
	return int32(lo + g.rng.Intn(hi-lo))
}

// TriggerFightMode turns predators on each other for the given number
// of frames (FightModeFrames if n <= 0).
func (g *Game) TriggerFightMode(n int32) {
	if n <= 0 {
		n = FightModeFrames
	}
	g.fightModeTimer = n
}

// FightModeActive reports whether predators are fighting each other.
func (g *Game) FightModeActive() bool { return g.fightModeTimer > 0 }

// LeaderDownActive reports the WAR banner countdown.
func (g *Game) LeaderDownActive() bool { return g.leaderDownTimer > 0 }

// NoBreedersActive reports the extinction-warning countdown.
func (g *Game) NoBreedersActive() bool { return g.noBreedersTimer > 0 }

// ScreenFlash returns the remaining flash frames for the renderer.
func (g *Game) ScreenFlash() int32 { return g.screenFlashTimer }

// Shake returns the remaining screen-shake frames for the renderer.
func (g *Game) Shake() int32 { return g.shakeTimer }
