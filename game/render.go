package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmtank/roles"
)

// Draw renders one frame. The renderer reads simulation state and the
// event countdowns; it never mutates them.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(8, 12, 24, 255))

	ox, oy := g.shakeOffset()

	g.drawHome(ox, oy)
	g.drawRocks(ox, oy)
	g.drawConsumables(ox, oy)
	g.drawBots(ox, oy)
	g.drawPredators(ox, oy)

	if g.screenFlashTimer > 0 {
		alpha := float32(g.screenFlashTimer) / 90 * 0.35
		rl.DrawRectangle(0, 0, int32(g.worldW), int32(g.worldH), rl.Fade(rl.Red, alpha))
	}

	g.drawHUD()

	rl.EndDrawing()
}

func (g *Game) drawHome(ox, oy float32) {
	x := g.home.Pos.X + ox
	y := g.home.Pos.Y + oy

	rl.DrawCircle(int32(x), int32(y), g.home.Radius, rl.NewColor(40, 60, 90, 255))
	rl.DrawCircleLines(int32(x), int32(y), g.home.Radius, rl.SkyBlue)

	// Hitpoint arc rendered as a shrinking inner disc
	frac := float32(g.home.Hitpoints) / float32(g.home.MaxHitpoints)
	rl.DrawCircle(int32(x), int32(y), g.home.Radius*frac*0.8, rl.NewColor(70, 110, 160, 255))
}

func (g *Game) drawRocks(ox, oy float32) {
	query := g.rockFilter.Query()
	for query.Next() {
		pos, _, body, rock := query.Get()

		col := rl.NewColor(95, 90, 85, 255)
		if rock.FlashTimer > 0 {
			col = rl.NewColor(170, 160, 150, 255)
		}
		if rock.Depleted {
			col = rl.NewColor(60, 58, 55, 255)
		}
		rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy), body.Radius, col)

		// Remaining ore shown as a ring of flecks
		for i := int32(0); i < rock.Ore; i++ {
			ang := float64(i) / float64(rock.MaxOre) * 6.28318
			fx := pos.X + ox + body.Radius*0.55*cos32(ang)
			fy := pos.Y + oy + body.Radius*0.55*sin32(ang)
			rl.DrawCircle(int32(fx), int32(fy), 2, rl.Gold)
		}
	}
}

func (g *Game) drawConsumables(ox, oy float32) {
	foodQuery := g.foodFilter.Query()
	for foodQuery.Next() {
		pos, body, _ := foodQuery.Get()
		rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy), body.Radius, rl.Lime)
	}

	pfodQuery := g.pfodFilter.Query()
	for pfodQuery.Next() {
		pos, body, pf := pfodQuery.Get()
		alpha := 0.5 + float32(pf.Glow)/200
		rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy), body.Radius, rl.Fade(rl.Orange, alpha))
	}

	pwrQuery := g.pwrFilter.Query()
	for pwrQuery.Next() {
		pos, body, pu := pwrQuery.Get()
		var col rl.Color
		switch pu.Kind.String() {
		case "health":
			col = rl.Pink
		case "speed":
			col = rl.SkyBlue
		default:
			col = rl.Violet
		}
		alpha := 0.5 + float32(pu.Glow)/200
		rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy), body.Radius, rl.Fade(col, alpha))
		rl.DrawCircleLines(int32(pos.X+ox), int32(pos.Y+oy), body.Radius+2, rl.Fade(col, alpha*0.6))
	}
}

func (g *Game) drawBots(ox, oy float32) {
	query := g.botFilter.Query()
	for query.Next() {
		pos, _, body, bot, trail := query.Get()

		params := roles.MustParams(bot.Role)
		col := rl.NewColor(params.Color[0], params.Color[1], params.Color[2], 255)

		// Trail, oldest faintest
		for i := uint8(0); i < trail.Count; i++ {
			idx := (trail.Head + uint8(len(trail.Points)) - 1 - i) % uint8(len(trail.Points))
			p := trail.Points[idx]
			alpha := 0.3 * (1 - float32(i)/float32(len(trail.Points)))
			rl.DrawCircle(int32(p.X+ox), int32(p.Y+oy), 1, rl.Fade(col, alpha))
		}

		rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy), body.Radius, col)

		if bot.Role == roles.Leader {
			rl.DrawCircleLines(int32(pos.X+ox), int32(pos.Y+oy), body.Radius+3, rl.Gold)
		}
		if bot.TauntEffect > 0 {
			rl.DrawCircleLines(int32(pos.X+ox), int32(pos.Y+oy), body.Radius+5, rl.Red)
		}
		if bot.BurstActive {
			rl.DrawCircleLines(int32(pos.X+ox), int32(pos.Y+oy), body.Radius+2, rl.Fade(rl.White, 0.6))
		}
		if bot.CarryFood > 0 || bot.CarryOre > 0 {
			rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy)-int32(body.Radius)-3, 2, rl.Gold)
		}
	}
}

func (g *Game) drawPredators(ox, oy float32) {
	query := g.predFilter.Query()
	for query.Next() {
		pos, _, body, pred := query.Get()

		col := rl.Maroon
		if pred.FightFlash > 0 {
			col = rl.White
		}
		rl.DrawCircle(int32(pos.X+ox), int32(pos.Y+oy), body.Radius, col)

		// Health bar
		frac := pred.Health / pred.MaxHealth
		bx := int32(pos.X + ox - body.Radius)
		by := int32(pos.Y + oy - body.Radius - 6)
		rl.DrawRectangle(bx, by, int32(2*body.Radius), 3, rl.DarkGray)
		rl.DrawRectangle(bx, by, int32(2*body.Radius*frac), 3, rl.Red)

		rl.DrawText(fmt.Sprintf("%s:%d", pred.Name, pred.Kills),
			int32(pos.X+ox-body.Radius), int32(pos.Y+oy+body.Radius+2), 10, rl.Gray)
	}
}

// shakeOffset returns this frame's screen-shake jitter. It draws from
// the presentation RNG so rendering leaves the simulation stream alone
// and headless runs match graphical runs under the same seed.
func (g *Game) shakeOffset() (float32, float32) {
	if g.shakeTimer <= 0 {
		return 0, 0
	}
	return (g.uiRng.Float32()*2 - 1) * 4, (g.uiRng.Float32()*2 - 1) * 4
}

func cos32(a float64) float32 { return float32(math.Cos(a)) }
func sin32(a float64) float32 { return float32(math.Sin(a)) }
