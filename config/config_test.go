package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Screen.Width != 1200 || cfg.Screen.Height != 800 {
		t.Errorf("screen = %dx%d, want 1200x800", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Population.InitialBots != 50 {
		t.Errorf("initial bots = %d, want 50", cfg.Population.InitialBots)
	}
	if cfg.Spawn.FoodChance != 0.04 {
		t.Errorf("food chance = %v, want 0.04", cfg.Spawn.FoodChance)
	}
	if cfg.Buffs.Duration != 300 {
		t.Errorf("buff duration = %d, want 300", cfg.Buffs.Duration)
	}
	if cfg.Reproduction.Cooldown != 180 {
		t.Errorf("repro cooldown = %d, want 180", cfg.Reproduction.Cooldown)
	}
	if cfg.Tick.Frames != 600 {
		t.Errorf("tick frames = %d, want 600", cfg.Tick.Frames)
	}
	if cfg.Home.Hitpoints != 5000 {
		t.Errorf("home hitpoints = %d, want 5000", cfg.Home.Hitpoints)
	}
}

func TestDerivedWorldDefaultsToScreen(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) ||
		cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("derived world = %vx%v, want screen size",
			cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := "world:\n  width: 2000\n  height: 1500\npopulation:\n  initial_bots: 7\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load override: %v", err)
	}

	if cfg.Population.InitialBots != 7 {
		t.Errorf("initial bots = %d, want override 7", cfg.Population.InitialBots)
	}
	if cfg.Derived.WorldW32 != 2000 || cfg.Derived.WorldH32 != 1500 {
		t.Errorf("derived world = %vx%v, want 2000x1500",
			cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	// Untouched fields keep their defaults.
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("target fps = %d, want default 60", cfg.Screen.TargetFPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("missing config file should return an error")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Population.InitialBots != cfg.Population.InitialBots {
		t.Error("round-tripped config differs")
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	old := global
	global = nil
	defer func() {
		global = old
		if recover() == nil {
			t.Error("Cfg before Init should panic")
		}
	}()
	Cfg()
}
