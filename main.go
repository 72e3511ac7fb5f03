package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmtank/config"
	"github.com/pthm-cable/swarmtank/game"
	"github.com/pthm-cable/swarmtank/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	logEvery := flag.Int64("log-every", 600, "Headless world-state dump interval in frames (0 = off)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(rngSeed, *maxTicks, *logEvery, output)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swarm Tank")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(rngSeed)
	slog.Info("starting simulation", "seed", rngSeed)

	written := 0
	for !rl.WindowShouldClose() {
		g.HandleInput()
		g.Step()
		g.Draw()

		written = flushWindows(g, output, written)

		if *maxTicks > 0 && g.Frame() >= *maxTicks {
			break
		}
	}
}

func runHeadless(seed, maxTicks, logEvery int64, output *telemetry.OutputManager) {
	g := game.NewGame(seed)
	slog.Info("starting headless simulation", "seed", seed, "max_ticks", maxTicks)

	written := 0
	for {
		g.Step()
		written = flushWindows(g, output, written)

		if logEvery > 0 && g.Frame()%logEvery == 0 {
			g.LogWorldState()
		}

		if status := g.Status(); status != game.Running {
			slog.Info("simulation ended", "status", status.String(), "frame", g.Frame())
			return
		}
		if maxTicks > 0 && g.Frame() >= maxTicks {
			slog.Info("max ticks reached", "frame", g.Frame())
			return
		}
	}
}

// flushWindows writes any telemetry windows completed since the last
// call and returns the new write cursor.
func flushWindows(g *game.Game, output *telemetry.OutputManager, written int) int {
	history := g.Collector().History()
	for ; written < len(history); written++ {
		w := history[written]
		slog.Info("window", "stats", w)
		if err := output.WriteWindow(w); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	}
	return written
}
