package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/roles"
	"github.com/pthm-cable/swarmtank/systems"
	"github.com/pthm-cable/swarmtank/telemetry"
)

// Step advances the simulation by one frame. Phase ordering is fixed:
// bot behavior runs against the world as it was at frame start, kills
// and births are buffered, and all structural changes happen between
// query passes.
func (g *Game) Step() {
	if g.paused {
		return
	}
	g.frame++

	g.rebuildCaches()

	g.updateBots()          // behavior + movement, buffers strikes/births
	g.applyHunterStrikes()  // hunter damage and taunts land on predators
	g.applyPendingBots()    // births
	g.refreshBotSnapshot()  // predators hunt post-move positions
	g.updatePredators()     // movement + kill contracts + pickups + siege
	g.cleanupDeadPredators() // loot drops + respawn policy
	g.cleanupDeadBots()     // leader death escalation, breeder check
	g.updatePassiveEntities() // glow, rock drift, home cooldown
	g.consumptionPass()     // bot x consumable, role-gated
	g.applyItemRemovals()
	g.ambientSpawns()
	g.updateSwarmBuffs()
	g.economyTick()
	g.updateEventTimers()

	g.sampleTelemetry()
}

// rebuildCaches refreshes the spatial grid and the per-frame snapshots
// of consumables, rocks, predators, and bots.
func (g *Game) rebuildCaches() {
	g.grid.Clear()
	g.foods = g.foods[:0]
	g.pfoods = g.pfoods[:0]
	g.powers = g.powers[:0]
	g.rocks = g.rocks[:0]
	g.preds = g.preds[:0]
	g.bots = g.bots[:0]
	g.pendingBots = g.pendingBots[:0]
	g.strikes = g.strikes[:0]
	g.foodRemovals = g.foodRemovals[:0]
	g.pfodRemovals = g.pfodRemovals[:0]
	g.pwrRemovals = g.pwrRemovals[:0]
	for e := range g.killedBots {
		delete(g.killedBots, e)
	}
	for e := range g.consumed {
		delete(g.consumed, e)
	}

	botQuery := g.botFilter.Query()
	for botQuery.Next() {
		pos, vel, _, bot, _ := botQuery.Get()
		e := botQuery.Entity()
		g.grid.Insert(e, pos.X, pos.Y)
		g.bots = append(g.bots, botInfo{
			E: e, X: pos.X, Y: pos.Y,
			VX: vel.X, VY: vel.Y,
			Health: bot.Health, Role: bot.Role,
		})
	}

	foodQuery := g.foodFilter.Query()
	for foodQuery.Next() {
		pos, body, _ := foodQuery.Get()
		g.foods = append(g.foods, itemInfo{E: foodQuery.Entity(), X: pos.X, Y: pos.Y, R: body.Radius})
	}

	pfodQuery := g.pfodFilter.Query()
	for pfodQuery.Next() {
		pos, body, _ := pfodQuery.Get()
		g.pfoods = append(g.pfoods, itemInfo{E: pfodQuery.Entity(), X: pos.X, Y: pos.Y, R: body.Radius})
	}

	pwrQuery := g.pwrFilter.Query()
	for pwrQuery.Next() {
		pos, body, pu := pwrQuery.Get()
		g.powers = append(g.powers, powerInfo{
			itemInfo: itemInfo{E: pwrQuery.Entity(), X: pos.X, Y: pos.Y, R: body.Radius},
			Kind:     pu.Kind,
		})
	}

	rockQuery := g.rockFilter.Query()
	for rockQuery.Next() {
		pos, _, body, rock := rockQuery.Get()
		g.rocks = append(g.rocks, rockInfo{
			itemInfo: itemInfo{E: rockQuery.Entity(), X: pos.X, Y: pos.Y, R: body.Radius},
			Depleted: rock.Depleted,
		})
	}

	predQuery := g.predFilter.Query()
	for predQuery.Next() {
		pos, vel, body, pred := predQuery.Get()
		g.preds = append(g.preds, predInfo{
			E: predQuery.Entity(), X: pos.X, Y: pos.Y,
			VX: vel.X, VY: vel.Y,
			R: body.Radius, Health: pred.Health,
		})
	}
}

// refreshBotSnapshot re-samples bot positions after the bot movement
// pass so predators hunt where bots actually are.
func (g *Game) refreshBotSnapshot() {
	g.bots = g.bots[:0]
	query := g.botFilter.Query()
	for query.Next() {
		pos, vel, _, bot, _ := query.Get()
		g.bots = append(g.bots, botInfo{
			E: query.Entity(), X: pos.X, Y: pos.Y,
			VX: vel.X, VY: vel.Y,
			Health: bot.Health, Role: bot.Role,
		})
	}
}

// applyHunterStrikes lands buffered hunter damage and taunt pulls on
// predators. Stale handles (predator died this frame) are skipped.
func (g *Game) applyHunterStrikes() {
	for _, s := range g.strikes {
		if !g.world.Alive(s.pred) {
			continue
		}
		pred := g.predMap.Get(s.pred)
		if pred == nil {
			continue
		}
		pred.Health -= s.damage
		if s.pullX != 0 || s.pullY != 0 {
			vel := g.velMap.Get(s.pred)
			vel.X += s.pullX
			vel.Y += s.pullY
		}
	}
}

// applyPendingBots creates buffered offspring and replacements.
func (g *Game) applyPendingBots() {
	for _, pb := range g.pendingBots {
		g.spawnBot(pb.role, pb.x, pb.y, pb.health)
		g.collector.RecordBirth()
	}
	g.pendingBots = g.pendingBots[:0]
}

// cleanupDeadPredators removes predators at zero health, drops their
// loot, and applies the respawn policy.
func (g *Game) cleanupDeadPredators() {
	type deadPred struct {
		e    ecs.Entity
		x, y float32
	}
	var dead []deadPred

	query := g.predFilter.Query()
	for query.Next() {
		pos, _, _, pred := query.Get()
		if pred.Health <= 0 {
			dead = append(dead, deadPred{e: query.Entity(), x: pos.X, y: pos.Y})
		}
	}

	if len(dead) == 0 {
		return
	}

	for _, d := range dead {
		g.predMapper.Remove(d.e)
	}
	for _, d := range dead {
		drops := 3 + g.rng.Intn(3)
		for i := 0; i < drops; i++ {
			jx := d.x + (g.rng.Float32()*2-1)*30
			jy := d.y + (g.rng.Float32()*2-1)*30
			g.spawnPredatorFoodAt(jx, jy)
		}
		if g.rng.Float64() < g.cfg.Predator.RespawnChance &&
			g.PredatorCount() < g.cfg.Predator.MaxCount {
			g.SpawnPredator()
		}
	}

	// A total wipe restocks the minimum pack.
	if g.PredatorCount() == 0 {
		for i := 0; i < g.cfg.Predator.MinCount; i++ {
			g.SpawnPredator()
		}
	}
}

// cleanupDeadBots removes bots at zero health or marked killed. A dead
// leader is avenged: ten hunters spawn at its position and the WAR
// banner goes up.
func (g *Game) cleanupDeadBots() {
	type deadBot struct {
		e      ecs.Entity
		x, y   float32
		leader bool
	}
	var dead []deadBot

	query := g.botFilter.Query()
	for query.Next() {
		pos, _, _, bot, _ := query.Get()
		e := query.Entity()
		_, killed := g.killedBots[e]
		if bot.Health <= 0 || killed {
			dead = append(dead, deadBot{e: e, x: pos.X, y: pos.Y, leader: bot.Role == roles.Leader})
		}
	}

	if len(dead) == 0 {
		return
	}

	for _, d := range dead {
		g.botMapper.Remove(d.e)
		g.collector.RecordDeath()
	}
	for _, d := range dead {
		if !d.leader {
			continue
		}
		for i := 0; i < 10; i++ {
			g.spawnBot(roles.Hunter, d.x, d.y, BotMaxHealth)
			g.collector.RecordBirth()
		}
		g.leaderDownTimer = 90
		g.screenFlashTimer = 90
		g.shakeTimer = 30
	}

	breeders := 0
	check := g.botFilter.Query()
	for check.Next() {
		_, _, _, bot, _ := check.Get()
		if bot.Role.Breeder() {
			breeders++
		}
	}
	if breeders == 0 {
		g.noBreedersTimer = 120
	}
}

// applyItemRemovals deletes consumed food, predator food, and power-ups.
func (g *Game) applyItemRemovals() {
	for _, e := range g.foodRemovals {
		if g.world.Alive(e) {
			g.foodMapper.Remove(e)
		}
	}
	for _, e := range g.pfodRemovals {
		if g.world.Alive(e) {
			g.pfodMapper.Remove(e)
		}
	}
	for _, e := range g.pwrRemovals {
		if g.world.Alive(e) {
			g.pwrMapper.Remove(e)
		}
	}
	g.foodRemovals = g.foodRemovals[:0]
	g.pfodRemovals = g.pfodRemovals[:0]
	g.pwrRemovals = g.pwrRemovals[:0]
}

// ambientSpawns rolls the per-frame food and power-up spawn chances.
// Food spawns more eagerly while stock is scarce.
func (g *Game) ambientSpawns() {
	chance := g.cfg.Spawn.FoodChance
	if g.FoodCount() < g.cfg.Spawn.ScarceThreshold {
		chance += g.cfg.Spawn.ScarceFoodChance
	}
	if g.rng.Float64() < chance {
		g.SpawnFood(1)
	}
	if g.rng.Float64() < g.cfg.Spawn.PowerupChance {
		g.SpawnRandomPowerUp()
	}
}

// updateSwarmBuffs counts down the swarm-wide buff timers; stacks reset
// on expiry.
func (g *Game) updateSwarmBuffs() {
	if g.speedBuffTimer > 0 {
		g.speedBuffTimer--
		if g.speedBuffTimer == 0 {
			g.speedBuffStacks = 0
		}
	}
	if g.damageBuffTimer > 0 {
		g.damageBuffTimer--
		if g.damageBuffTimer == 0 {
			g.damageBuffStacks = 0
		}
	}
}

// economyTick converts stockpiled resources into higher tiers and lets
// the rocks regrow, once per tick interval.
func (g *Game) economyTick() {
	tick := g.cfg.Tick
	if tick.Frames <= 0 || g.frame%int64(tick.Frames) != 0 {
		return
	}

	if g.home.FoodCollected > int32(tick.FoodThreshold) {
		g.home.FoodCollected -= int32(tick.FoodCost)
		g.home.Ration++
		g.collector.RecordConversion()
	}
	if g.home.OreCollected > int32(tick.OreThreshold) {
		g.home.OreCollected -= int32(tick.OreCost)
		g.home.Material++
		g.collector.RecordConversion()
	}
	if g.home.CraftPoints > int32(tick.CraftThreshold) {
		g.home.CraftPoints -= int32(tick.CraftCost)
		g.home.Craftsmanship++
		g.collector.RecordConversion()
	}

	// Stockpiled material mends siege damage, one unit per tick.
	if g.home.Hitpoints < g.home.MaxHitpoints && g.home.Material > 0 && g.home.RepairCooldown == 0 {
		g.home.Material--
		g.home.Repair(int32(tick.RepairPerMaterial))
	}

	query := g.rockFilter.Query()
	for query.Next() {
		_, _, _, rock := query.Get()
		if rock.Ore >= rock.MaxOre {
			continue
		}
		rock.Ore += int32(1 + g.rng.Intn(3))
		if rock.Ore > rock.MaxOre {
			rock.Ore = rock.MaxOre
		}
		if rock.Ore > 0 {
			rock.Depleted = false
		}
	}
}

// updateEventTimers counts down the presentation-facing event flags.
func (g *Game) updateEventTimers() {
	if g.leaderDownTimer > 0 {
		g.leaderDownTimer--
	}
	if g.noBreedersTimer > 0 {
		g.noBreedersTimer--
	}
	if g.fightModeTimer > 0 {
		g.fightModeTimer--
	}
	if g.screenFlashTimer > 0 {
		g.screenFlashTimer--
	}
	if g.shakeTimer > 0 {
		g.shakeTimer--
	}
}

// sampleTelemetry feeds the end-of-frame population sample to the
// windowed collector.
func (g *Game) sampleTelemetry() {
	sample := telemetry.FrameSample{Frame: g.frame}

	query := g.botFilter.Query()
	for query.Next() {
		_, _, _, bot, _ := query.Get()
		sample.Bots++
		sample.BotHealth = append(sample.BotHealth, float64(bot.Health))
	}
	sample.Predators = g.PredatorCount()
	sample.Food = g.FoodCount()

	g.collector.EndFrame(sample)
}

// toroidalDelta is a shorthand for the grid's wrapping delta.
func (g *Game) toroidalDelta(x1, y1, x2, y2 float32) (float32, float32) {
	return systems.ToroidalDelta(x1, y1, x2, y2, g.worldW, g.worldH)
}
