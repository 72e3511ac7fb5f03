package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmtank/components"
)

// HandleInput processes keyboard and mouse controls. Called once per
// frame before Step in graphical mode.
func (g *Game) HandleInput() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		g.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		g.Reset()
	case rl.IsKeyPressed(rl.KeyF):
		g.TriggerFightMode(0)
	case rl.IsKeyPressed(rl.KeyP):
		g.SpawnPredator()
	case rl.IsKeyPressed(rl.KeyB):
		g.SpawnRandomBot()
	case rl.IsKeyPressed(rl.KeyO):
		g.SpawnFood(5)
	case rl.IsKeyPressed(rl.KeyOne):
		g.SpawnPowerUp(components.PowerHealth)
	case rl.IsKeyPressed(rl.KeyTwo):
		g.SpawnPowerUp(components.PowerSpeed)
	case rl.IsKeyPressed(rl.KeyThree):
		g.SpawnPowerUp(components.PowerDamage)
	}

	// Right-click drops food at the cursor, outside the HUD strip.
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		mouse := rl.GetMousePosition()
		if mouse.X > 170 {
			g.spawnFoodAt(mouse.X, mouse.Y)
		}
	}
}
