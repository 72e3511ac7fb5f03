package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmtank/roles"
)

// drawHUD renders the control panel and the status banners.
func (g *Game) drawHUD() {
	const (
		panelX = 8
		panelW = 150
		btnH   = 22
		gap    = 4
	)

	y := float32(8)
	button := func(label string) bool {
		r := rl.Rectangle{X: panelX, Y: y, Width: panelW, Height: btnH}
		y += btnH + gap
		return gui.Button(r, label)
	}

	if button("Food x5") {
		g.SpawnFood(5)
	}
	if button("Power-Up") {
		g.SpawnRandomPowerUp()
	}
	if button("Bot") {
		g.SpawnRandomBot()
	}
	if button("Predator") {
		g.SpawnPredator()
	}
	if button("Fight Mode") {
		g.TriggerFightMode(0)
	}
	if button("Reset") {
		g.Reset()
	}

	y += 8
	line := func(s string) {
		rl.DrawText(s, panelX, int32(y), 10, rl.RayWhite)
		y += 14
	}

	line(fmt.Sprintf("frame %d", g.frame))
	line(fmt.Sprintf("bots %d  preds %d  food %d", g.BotCount(), g.PredatorCount(), g.FoodCount()))

	counts := g.RoleCounts()
	for _, r := range roles.All() {
		if counts[r] > 0 {
			line(fmt.Sprintf("  %s %d", r, counts[r]))
		}
	}

	line(fmt.Sprintf("home %d/%d", g.home.Hitpoints, g.home.MaxHitpoints))
	line(fmt.Sprintf("stock f%d o%d c%d", g.home.FoodCollected, g.home.OreCollected, g.home.CraftPoints))
	line(fmt.Sprintf("tier r%d m%d cr%d", g.home.Ration, g.home.Material, g.home.Craftsmanship))
	line(fmt.Sprintf("kills %d", g.historicalKills))

	if g.speedBuffTimer > 0 {
		line(fmt.Sprintf("SPEED x%d (%d)", g.speedBuffStacks, g.speedBuffTimer))
	}
	if g.damageBuffTimer > 0 {
		line(fmt.Sprintf("DAMAGE x%d (%d)", g.damageBuffStacks, g.damageBuffTimer))
	}

	g.drawBanners()
}

// drawBanners shows the transient world events front and center.
func (g *Game) drawBanners() {
	centerX := int32(g.worldW / 2)

	if g.leaderDownTimer > 0 {
		text := "WAR!"
		w := rl.MeasureText(text, 48)
		rl.DrawText(text, centerX-w/2, 60, 48, rl.Red)
	}
	if g.noBreedersTimer > 0 {
		text := "NO BREEDERS LEFT"
		w := rl.MeasureText(text, 24)
		rl.DrawText(text, centerX-w/2, 120, 24, rl.Orange)
	}
	if g.fightModeTimer > 0 {
		text := fmt.Sprintf("PREDATOR FIGHT %d", g.fightModeTimer)
		w := rl.MeasureText(text, 20)
		rl.DrawText(text, centerX-w/2, 150, 20, rl.Yellow)
	}
	if g.paused {
		text := "PAUSED"
		w := rl.MeasureText(text, 32)
		rl.DrawText(text, centerX-w/2, int32(g.worldH/2), 32, rl.RayWhite)
	}

	switch g.Status() {
	case AllBotsDead:
		text := "SWARM EXTINCT - R to restart"
		w := rl.MeasureText(text, 28)
		rl.DrawText(text, centerX-w/2, int32(g.worldH/2)-40, 28, rl.Red)
	case HomeDestroyed:
		text := "HOME DESTROYED - R to restart"
		w := rl.MeasureText(text, 28)
		rl.DrawText(text, centerX-w/2, int32(g.worldH/2)-40, 28, rl.Red)
	}
}
