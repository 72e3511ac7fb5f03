package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmtank/components"
	"github.com/pthm-cable/swarmtank/roles"
	"github.com/pthm-cable/swarmtank/systems"
)

// updateBots runs behavior and movement for every bot. Structural
// consequences (offspring, hunter damage) go to pending buffers.
func (g *Game) updateBots() {
	query := g.botFilter.Query()
	for query.Next() {
		pos, vel, body, bot, trail := query.Get()
		e := query.Entity()

		g.tickBotTimers(bot)
		g.rolePrePass(e, pos, bot)

		params := roles.MustParams(bot.Role)

		burstSpeed := float32(1)
		if bot.BurstActive {
			burstSpeed = params.BurstMultiplier
		}
		bot.MaxSpeed = bot.BaseMaxSpeed * burstSpeed * g.speedMultiplier()

		m := systems.Mover{
			Pos:      systems.Vec2{X: pos.X, Y: pos.Y},
			Vel:      systems.Vec2{X: vel.X, Y: vel.Y},
			MaxSpeed: bot.MaxSpeed,
			MaxForce: bot.MaxForce,
		}

		flock := g.collectFlock(e, pos)

		sep := systems.Separate(m, flock, SeparationRadius).Scale(2)
		ali := systems.Align(m, flock, FlockRadius)
		coh := systems.Cohesion(m, flock, FlockRadius).Scale(params.CohesionWeight)

		seekMult := float32(1)
		if bot.BurstActive {
			ali = ali.Scale(0.3)
			coh = coh.Scale(0.2)
			seekMult = 1.5
		}

		var acc systems.Vec2
		if bot.Carrying(params.CarryCapacity) {
			// Loaded: drop everything and haul it home.
			home := g.seekHome(m, pos).Scale(params.FoodSeekWeight)
			acc = sep.Add(ali).Add(coh).Add(home)
		} else {
			var seek systems.Vec2
			if bot.Role == roles.Hunter {
				seek = g.hunterSeek(m, pos, params)
			} else if params.SeeksOre {
				seek = g.minerSeek(m, pos, params)
			} else {
				seek = g.foodSeek(m, pos, bot)
			}
			seek = seek.Scale(params.FoodSeekWeight * seekMult)

			acc = sep.Add(ali).Add(coh).Add(seek)
			if bot.Role != roles.Hunter {
				avoid := g.avoidPredators(m, pos).Scale(params.PredatorAvoidWeight)
				acc = acc.Add(avoid)
			}
		}

		// Velocity smoothing: blend the raw update back into the old
		// velocity, then re-limit.
		v := systems.Vec2{X: vel.X, Y: vel.Y}
		vNew := v.Add(acc).Limit(bot.MaxSpeed)
		v = v.Scale(0.7).Add(vNew.Scale(0.3)).Limit(bot.MaxSpeed)
		vel.X, vel.Y = v.X, v.Y

		pos.X = mod(pos.X+vel.X, g.worldW)
		pos.Y = mod(pos.Y+vel.Y, g.worldH)

		trail.Push(components.Position{X: pos.X, Y: pos.Y})

		bot.Health -= BotHealthDecay
		if bot.Health < 0 {
			bot.Health = 0
		}

		g.botRockContact(pos, vel, body, bot, params)
		g.botHomeContact(pos, body, bot)
		g.tryReproduce(pos, bot, params)

		if bot.Role == roles.Scout {
			g.scoutShout(e, pos, bot, params)
		}
		if params.CanAttack {
			g.hunterEngage(pos, bot, params)
		}
	}
}

func (g *Game) tickBotTimers(bot *components.Bot) {
	if bot.ShoutCooldown > 0 {
		bot.ShoutCooldown--
	}
	if bot.TauntCooldown > 0 {
		bot.TauntCooldown--
	}
	if bot.TauntEffect > 0 {
		bot.TauntEffect--
	}
	if bot.ReproCooldown > 0 {
		bot.ReproCooldown--
	}
}

// rolePrePass picks the burst priority target for forager roles and
// records the nearest-food distance every role needs.
func (g *Game) rolePrePass(e ecs.Entity, pos *components.Position, bot *components.Bot) {
	bot.BurstActive = false
	bot.HasPriority = false
	bot.PriorityIsRock = false

	bot.ClosestFoodDist = float32(math.MaxFloat32)
	for i := range g.foods {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.foods[i].X, g.foods[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bot.ClosestFoodDist {
			bot.ClosestFoodDist = d
		}
	}

	params := roles.MustParams(bot.Role)
	if params.DetectionRange <= 0 {
		return
	}

	bestDist := params.DetectionRange
	var best ecs.Entity
	found := false
	isRock := false

	if params.SeeksOre {
		for i := range g.rocks {
			if g.rocks[i].Depleted {
				continue
			}
			dx, dy := g.toroidalDelta(pos.X, pos.Y, g.rocks[i].X, g.rocks[i].Y)
			d := sqrt32(dx*dx + dy*dy)
			if d < bestDist {
				bestDist, best, found, isRock = d, g.rocks[i].E, true, true
			}
		}
	} else {
		for i := range g.foods {
			dx, dy := g.toroidalDelta(pos.X, pos.Y, g.foods[i].X, g.foods[i].Y)
			d := sqrt32(dx*dx + dy*dy)
			if d < bestDist {
				bestDist, best, found = d, g.foods[i].E, true
			}
		}
		for i := range g.powers {
			dx, dy := g.toroidalDelta(pos.X, pos.Y, g.powers[i].X, g.powers[i].Y)
			d := sqrt32(dx*dx + dy*dy)
			if d < bestDist {
				bestDist, best, found = d, g.powers[i].E, true
			}
		}
	}

	if found {
		bot.HasPriority = true
		bot.Priority = best
		bot.PriorityIsRock = isRock
		if bestDist < params.PriorityRange {
			bot.BurstActive = true
		}
	}
}

// collectFlock gathers nearby bots with toroidal offsets for the
// flocking behaviors.
func (g *Game) collectFlock(e ecs.Entity, pos *components.Position) []systems.FlockNeighbor {
	g.neighbors = g.grid.QueryRadiusInto(g.neighbors[:0], pos.X, pos.Y, FlockRadius, e, g.posMap)
	g.flock = g.flock[:0]
	for _, n := range g.neighbors {
		vel := g.velMap.Get(n.E)
		if vel == nil {
			continue
		}
		g.flock = append(g.flock, systems.FlockNeighbor{
			DX: n.DX, DY: n.DY,
			Dist: sqrt32(n.DistSq),
			Vel:  systems.Vec2{X: vel.X, Y: vel.Y},
		})
	}
	return g.flock
}

// foodSeek picks the most attractive consumable using effective
// distances: a shouted target counts half, the burst priority counts
// 0.3x, power-ups 0.7x. Nothing under the cutoff means no force.
func (g *Game) foodSeek(m systems.Mover, pos *components.Position, bot *components.Bot) systems.Vec2 {
	bestEff := float32(math.MaxFloat32)
	var bestPos systems.Vec2
	found := false

	consider := func(x, y, discount float32) {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, x, y)
		eff := sqrt32(dx*dx+dy*dy) * discount
		if eff < bestEff {
			bestEff = eff
			bestPos = m.Pos.Add(systems.Vec2{X: dx, Y: dy})
			found = true
		}
	}

	if bot.HasTarget {
		if tp := g.validTargetPos(bot.Target); tp != nil {
			consider(tp.X, tp.Y, 0.5)
		} else {
			bot.HasTarget = false
		}
	}
	if bot.HasPriority && !bot.PriorityIsRock {
		if tp := g.validTargetPos(bot.Priority); tp != nil {
			consider(tp.X, tp.Y, 0.3)
		}
	}
	for i := range g.powers {
		consider(g.powers[i].X, g.powers[i].Y, 0.7)
	}
	for i := range g.foods {
		consider(g.foods[i].X, g.foods[i].Y, 1.0)
	}

	if !found || bestEff >= SeekCutoff {
		return systems.Vec2{}
	}
	return systems.Seek(m, bestPos)
}

// minerSeek steers toward the nearest ore-bearing rock in detection
// range.
func (g *Game) minerSeek(m systems.Mover, pos *components.Position, params roles.Params) systems.Vec2 {
	bestDist := params.DetectionRange
	var bestPos systems.Vec2
	found := false
	for i := range g.rocks {
		if g.rocks[i].Depleted {
			continue
		}
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.rocks[i].X, g.rocks[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bestDist {
			bestDist = d
			bestPos = m.Pos.Add(systems.Vec2{X: dx, Y: dy})
			found = true
		}
	}
	if !found {
		return systems.Vec2{}
	}
	return systems.Seek(m, bestPos)
}

// hunterSeek steers toward the nearest predator inside aggro range.
// Hunters never flee.
func (g *Game) hunterSeek(m systems.Mover, pos *components.Position, params roles.Params) systems.Vec2 {
	bestDist := params.AggroRange
	var bestPos systems.Vec2
	found := false
	for i := range g.preds {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.preds[i].X, g.preds[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bestDist {
			bestDist = d
			bestPos = m.Pos.Add(systems.Vec2{X: dx, Y: dy})
			found = true
		}
	}
	if !found {
		return systems.Vec2{}
	}
	return systems.Seek(m, bestPos)
}

// avoidPredators sums flee forces from every nearby predator. Closer
// predators trigger panic: a wider awareness radius and a stronger
// push. The result may exceed the normal force limit threefold.
func (g *Game) avoidPredators(m systems.Mover, pos *components.Position) systems.Vec2 {
	var sum systems.Vec2
	for i := range g.preds {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.preds[i].X, g.preds[i].Y)
		dist := sqrt32(dx*dx + dy*dy)

		radius := float32(120)
		urgency := float32(1)
		if dist < 30 {
			radius, urgency = 200, 3
		} else if dist < 60 {
			radius, urgency = 150, 2
		}
		if dist >= radius || dist <= 0 {
			continue
		}

		flee := systems.Vec2{X: -dx, Y: -dy}.Normalize()
		sum = sum.Add(flee.Scale((radius - dist) / radius * urgency))
	}
	if sum.MagSq() == 0 {
		return systems.Vec2{}
	}
	desired := sum.Normalize().Scale(m.MaxSpeed)
	return desired.Sub(m.Vel).Limit(m.MaxForce * 3)
}

// seekHome steers toward the base.
func (g *Game) seekHome(m systems.Mover, pos *components.Position) systems.Vec2 {
	dx, dy := g.toroidalDelta(pos.X, pos.Y, g.home.Pos.X, g.home.Pos.Y)
	return systems.Seek(m, m.Pos.Add(systems.Vec2{X: dx, Y: dy}))
}

// validTargetPos resolves a possibly stale entity handle to a position.
func (g *Game) validTargetPos(e ecs.Entity) *components.Position {
	if !g.world.Alive(e) {
		return nil
	}
	if _, ok := g.consumed[e]; ok {
		return nil
	}
	return g.posMap.Get(e)
}

// botRockContact handles rock overlap: miners with spare capacity mine,
// everyone else grinds and takes damage. A soft repulsion band keeps
// bots from scraping along rocks constantly.
func (g *Game) botRockContact(pos *components.Position, vel *components.Velocity, body *components.Body, bot *components.Bot, params roles.Params) {
	for i := range g.rocks {
		rk := &g.rocks[i]
		dx, dy := g.toroidalDelta(pos.X, pos.Y, rk.X, rk.Y)
		dist := sqrt32(dx*dx + dy*dy)
		minDist := body.Radius + rk.R + 2

		if dist < minDist {
			away := systems.Vec2{X: -dx, Y: -dy}.Normalize()
			if dist <= 0 {
				away = systems.Vec2{X: 1, Y: 0}
			}

			rock := g.rockMap.Get(rk.E)

			mining := params.SeeksOre && rock != nil && !rock.Depleted &&
				bot.CarryOre < params.CarryCapacity
			if mining {
				bot.CarryOre += rock.Mine(1)
				rk.Depleted = rock.Depleted
			} else {
				bot.Health -= float32(g.cfg.Rock.BotContactDamage)
				if bot.Health < 0 {
					bot.Health = 0
				}
			}

			push := away.Scale(minDist - dist)
			pos.X = mod(pos.X+push.X, g.worldW)
			pos.Y = mod(pos.Y+push.Y, g.worldH)

			if rv := g.velMap.Get(rk.E); rv != nil {
				rv.X -= push.X * 0.07
				rv.Y -= push.Y * 0.07
			}
			if rock != nil {
				rock.Flash()
			}
		} else if dist < minDist+30 {
			away := systems.Vec2{X: -dx, Y: -dy}.Normalize()
			frac := (minDist + 30 - dist) / 30
			v := systems.Vec2{X: vel.X, Y: vel.Y}.Add(away.Scale(1.5 * frac)).Limit(bot.MaxSpeed)
			vel.X, vel.Y = v.X, v.Y
		}
	}
}

// botHomeContact delivers carried resources and keeps non-carrier
// roles from sitting on the base.
func (g *Game) botHomeContact(pos *components.Position, body *components.Body, bot *components.Bot) {
	dx, dy := g.toroidalDelta(pos.X, pos.Y, g.home.Pos.X, g.home.Pos.Y)
	dist := sqrt32(dx*dx + dy*dy)
	minDist := body.Radius + g.home.Radius
	if dist >= minDist {
		return
	}

	params := roles.MustParams(bot.Role)
	if params.CarryCapacity > 0 {
		if bot.CarryFood > 0 {
			g.home.DepositFood(bot.CarryFood)
			g.home.CraftPoints += bot.CarryFood
			g.collector.RecordDelivery(int(bot.CarryFood))
			bot.CarryFood = 0
		}
		if bot.CarryOre > 0 {
			g.home.DepositOre(bot.CarryOre)
			g.home.CraftPoints += bot.CarryOre
			g.collector.RecordDelivery(int(bot.CarryOre))
			bot.CarryOre = 0
		}
		return // carriers pass through freely
	}

	away := systems.Vec2{X: -dx, Y: -dy}.Normalize()
	if dist <= 0 {
		away = systems.Vec2{X: 1, Y: 0}
	}
	push := away.Scale((minDist - dist) * 0.5)
	pos.X = mod(pos.X+push.X, g.worldW)
	pos.Y = mod(pos.Y+push.Y, g.worldH)
}

// tryReproduce buffers an offspring spawn when a breeder role is
// healthy, near food, off cooldown, and wins its roll. Placement takes
// up to ten attempts in an annulus around the parent; crowded spots
// are rejected and total failure is a silent no-op.
func (g *Game) tryReproduce(pos *components.Position, bot *components.Bot, params roles.Params) {
	repro := g.cfg.Reproduction
	if !bot.Role.Breeder() ||
		params.ReproductionChance <= 0 ||
		bot.ReproCooldown > 0 ||
		bot.Health < float32(repro.HealthThreshold) ||
		bot.ClosestFoodDist > float32(repro.FoodCap) {
		return
	}
	if g.rng.Float64() >= float64(params.ReproductionChance) {
		return
	}

	minD := float32(repro.SpawnMinDist)
	maxD := float32(repro.SpawnMaxDist)
	minSep := float32(repro.MinSeparation)

	for attempt := 0; attempt < repro.PlacementAttempts; attempt++ {
		angle := g.rng.Float64() * 2 * math.Pi
		r := minD + g.rng.Float32()*(maxD-minD)
		x := clamp32(pos.X+float32(math.Cos(angle))*r, 20, g.worldW-20)
		y := clamp32(pos.Y+float32(math.Sin(angle))*r, 20, g.worldH-20)

		g.neighbors = g.grid.QueryRadiusInto(g.neighbors[:0], x, y, minSep, ecs.Entity{}, g.posMap)
		if len(g.neighbors) > 0 {
			continue
		}

		g.pendingBots = append(g.pendingBots, pendingBot{
			role:   roles.OffspringRole(g.rng),
			x:      x,
			y:      y,
			health: float32(repro.OffspringHealth),
		})
		bot.Health -= float32(repro.HealthCost)
		bot.ReproCooldown = int32(repro.Cooldown)
		return
	}
}

// scoutShout broadcasts a freshly found food item to bots in shout
// range. Each recipient keeps whichever target is closer to itself.
// The cooldown only starts if anyone actually heard the shout.
func (g *Game) scoutShout(e ecs.Entity, pos *components.Position, bot *components.Bot, params roles.Params) {
	if bot.ShoutCooldown > 0 {
		return
	}

	var foodE ecs.Entity
	var foodX, foodY float32
	found := false
	bestDist := float32(20)
	for i := range g.foods {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.foods[i].X, g.foods[i].Y)
		d := sqrt32(dx*dx + dy*dy)
		if d < bestDist {
			bestDist = d
			foodE = g.foods[i].E
			foodX, foodY = g.foods[i].X, g.foods[i].Y
			found = true
		}
	}
	if !found {
		return
	}
	if _, seen := bot.ShoutedFood[foodE]; seen {
		return
	}

	reached := false
	g.neighbors = g.grid.QueryRadiusInto(g.neighbors[:0], pos.X, pos.Y, params.ShoutRange, e, g.posMap)
	for _, n := range g.neighbors {
		other := g.botMap.Get(n.E)
		if other == nil {
			continue
		}
		otherPos := g.posMap.Get(n.E)

		dx, dy := g.toroidalDelta(otherPos.X, otherPos.Y, foodX, foodY)
		shoutDist := sqrt32(dx*dx + dy*dy)

		if other.HasTarget {
			if tp := g.validTargetPos(other.Target); tp != nil {
				cx, cy := g.toroidalDelta(otherPos.X, otherPos.Y, tp.X, tp.Y)
				if sqrt32(cx*cx+cy*cy) <= shoutDist {
					continue
				}
			}
		}
		other.HasTarget = true
		other.Target = foodE
		reached = true
	}

	if reached {
		bot.ShoutedFood[foodE] = struct{}{}
		bot.ShoutCooldown = 60
	}
}

// hunterEngage taunts every predator in taunt range, dragging their
// velocity toward the hunter, and wounds those close enough to hit.
// Strikes are buffered so they land after the bot pass.
func (g *Game) hunterEngage(pos *components.Position, bot *components.Bot, params roles.Params) {
	if bot.TauntCooldown > 0 {
		return
	}

	engaged := false
	for i := range g.preds {
		dx, dy := g.toroidalDelta(pos.X, pos.Y, g.preds[i].X, g.preds[i].Y)
		dist := sqrt32(dx*dx + dy*dy)
		if dist >= params.TauntRange {
			continue
		}

		pull := systems.Vec2{X: -dx, Y: -dy}.Normalize().Scale(params.TauntForce)
		strike := hunterStrike{pred: g.preds[i].E, pullX: pull.X, pullY: pull.Y}
		if dist < params.AttackRange {
			strike.damage = params.AttackDamage * g.damageMultiplier()
		}
		g.strikes = append(g.strikes, strike)
		engaged = true
	}

	if engaged {
		bot.TauntCooldown = 120
		bot.TauntEffect = 30
	}
}

// consumptionPass resolves bot-consumable overlaps with role gates.
// The consumed set guarantees each item feeds exactly one mouth even
// when several bots overlap it in the same frame.
func (g *Game) consumptionPass() {
	query := g.botFilter.Query()
	for query.Next() {
		pos, _, body, bot, _ := query.Get()
		params := roles.MustParams(bot.Role)

		for i := range g.foods {
			f := &g.foods[i]
			if _, gone := g.consumed[f.E]; gone {
				continue
			}
			if !g.overlaps(pos, body.Radius, f.X, f.Y, f.R) {
				continue
			}

			if bot.Role == roles.Gatherer {
				// Gatherers eat only when hungry AND empty-handed;
				// a loaded gatherer keeps collecting.
				if bot.Health < params.EatThreshold && bot.CarryFood == 0 {
					bot.Health = clamp32(bot.Health+FoodValue, 0, BotMaxHealth)
				} else if bot.CarryFood < params.CarryCapacity {
					bot.CarryFood++
				} else {
					continue
				}
			} else if bot.Health < params.EatThreshold {
				bot.Health = clamp32(bot.Health+FoodValue, 0, BotMaxHealth)
			} else {
				continue
			}
			g.consumed[f.E] = struct{}{}
			g.foodRemovals = append(g.foodRemovals, f.E)
		}

		for i := range g.pfoods {
			f := &g.pfoods[i]
			if _, gone := g.consumed[f.E]; gone {
				continue
			}
			if !g.overlaps(pos, body.Radius, f.X, f.Y, f.R) {
				continue
			}
			bot.Health = clamp32(bot.Health+PredatorFoodValue, 0, BotMaxHealth)
			g.consumed[f.E] = struct{}{}
			g.pfodRemovals = append(g.pfodRemovals, f.E)
		}

		for i := range g.powers {
			p := &g.powers[i]
			if _, gone := g.consumed[p.E]; gone {
				continue
			}
			if !g.overlaps(pos, body.Radius, p.X, p.Y, p.R) {
				continue
			}
			switch p.Kind {
			case components.PowerHealth:
				bot.Health = clamp32(bot.Health+50, 0, BotMaxHealth)
			case components.PowerSpeed:
				g.speedBuffTimer = int32(g.cfg.Buffs.Duration)
				g.speedBuffStacks++
			case components.PowerDamage:
				g.damageBuffTimer = int32(g.cfg.Buffs.Duration)
				g.damageBuffStacks++
			}
			g.consumed[p.E] = struct{}{}
			g.pwrRemovals = append(g.pwrRemovals, p.E)
		}
	}
}

// overlaps reports toroidal circle overlap between a bot and an item.
func (g *Game) overlaps(pos *components.Position, r float32, x, y, ir float32) bool {
	dx, dy := g.toroidalDelta(pos.X, pos.Y, x, y)
	rr := r + ir
	return dx*dx+dy*dy < rr*rr
}
