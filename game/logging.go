package game

import (
	"fmt"
	"io"

	"github.com/pthm-cable/swarmtank/roles"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogWorldState dumps a one-screen summary of the world, for periodic
// headless progress output.
func (g *Game) LogWorldState() {
	Logf("=== Frame %d ===", g.frame)
	Logf("bots: %d  predators: %d  food: %d  kills: %d",
		g.BotCount(), g.PredatorCount(), g.FoodCount(), g.historicalKills)

	counts := g.RoleCounts()
	for _, r := range roles.All() {
		if counts[r] > 0 {
			Logf("  %-10s %d", r, counts[r])
		}
	}

	Logf("home: %d/%d hp  stock food=%d ore=%d craft=%d  tiers ration=%d material=%d craftsmanship=%d",
		g.home.Hitpoints, g.home.MaxHitpoints,
		g.home.FoodCollected, g.home.OreCollected, g.home.CraftPoints,
		g.home.Ration, g.home.Material, g.home.Craftsmanship)

	if g.fightModeTimer > 0 {
		Logf("fight mode: %d frames left", g.fightModeTimer)
	}
	if g.speedBuffTimer > 0 || g.damageBuffTimer > 0 {
		Logf("buffs: speed x%d (%d)  damage x%d (%d)",
			g.speedBuffStacks, g.speedBuffTimer,
			g.damageBuffStacks, g.damageBuffTimer)
	}
}
