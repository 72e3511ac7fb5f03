// Package config handles simulation configuration via YAML files with
// embedded defaults. Call Init once at startup, then read values
// through Cfg anywhere in the program.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the root configuration structure.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Spawn        SpawnConfig        `yaml:"spawn"`
	Buffs        BuffsConfig        `yaml:"buffs"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Predator     PredatorConfig     `yaml:"predator"`
	Rock         RockConfig         `yaml:"rock"`
	Home         HomeConfig         `yaml:"home"`
	Tick         TickConfig         `yaml:"tick"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values, computed after loading (not from YAML)
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the toroidal world dimensions. Zero means "use the
// screen size".
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds initial entity counts.
type PopulationConfig struct {
	InitialBots      int `yaml:"initial_bots"`
	InitialFood      int `yaml:"initial_food"`
	InitialPredators int `yaml:"initial_predators"`
	InitialRocks     int `yaml:"initial_rocks"`
}

// SpawnConfig holds ambient spawn probabilities (per frame).
type SpawnConfig struct {
	FoodChance       float64 `yaml:"food_chance"`
	ScarceFoodChance float64 `yaml:"scarce_food_chance"`
	ScarceThreshold  int     `yaml:"scarce_threshold"`
	PowerupChance    float64 `yaml:"powerup_chance"`
	Margin           float64 `yaml:"margin"`
	BotMargin        float64 `yaml:"bot_margin"`
}

// BuffsConfig holds power-up buff parameters.
type BuffsConfig struct {
	Duration         int     `yaml:"duration"`
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	DamageMultiplier float64 `yaml:"damage_multiplier"`
}

// ReproductionConfig holds breeder parameters.
type ReproductionConfig struct {
	HealthThreshold   float64 `yaml:"health_threshold"`
	FoodCap           int     `yaml:"food_cap"`
	HealthCost        float64 `yaml:"health_cost"`
	Cooldown          int     `yaml:"cooldown"`
	OffspringHealth   float64 `yaml:"offspring_health"`
	SpawnMinDist      float64 `yaml:"spawn_min_dist"`
	SpawnMaxDist      float64 `yaml:"spawn_max_dist"`
	MinSeparation     float64 `yaml:"min_separation"`
	PlacementAttempts int     `yaml:"placement_attempts"`
}

// PredatorConfig holds predator population and combat parameters.
type PredatorConfig struct {
	MinCount       int     `yaml:"min_count"`
	MaxCount       int     `yaml:"max_count"`
	RespawnChance  float64 `yaml:"respawn_chance"`
	HealPerKill    float64 `yaml:"heal_per_kill"`
	AttackCooldown int     `yaml:"attack_cooldown"`
	SiegeRangePad  float64 `yaml:"siege_range_pad"`
	SiegeDamage    int     `yaml:"siege_damage"`
}

// RockConfig holds ore rock parameters.
type RockConfig struct {
	MaxOre                int     `yaml:"max_ore"`
	ReplenishMin          int     `yaml:"replenish_min"`
	ReplenishMax          int     `yaml:"replenish_max"`
	BotContactDamage      float64 `yaml:"bot_contact_damage"`
	PredatorContactDamage float64 `yaml:"predator_contact_damage"`
}

// HomeConfig holds base parameters.
type HomeConfig struct {
	Radius    float64 `yaml:"radius"`
	Hitpoints int     `yaml:"hitpoints"`
}

// TickConfig holds the periodic economy conversion parameters.
type TickConfig struct {
	Frames         int `yaml:"frames"`
	FoodThreshold  int `yaml:"food_threshold"`
	FoodCost       int `yaml:"food_cost"`
	OreThreshold   int `yaml:"ore_threshold"`
	OreCost        int `yaml:"ore_cost"`
	CraftThreshold int `yaml:"craft_threshold"`
	CraftCost      int `yaml:"craft_cost"`

	RepairPerMaterial int `yaml:"repair_per_material"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"`
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	WorldW32  float32
	WorldH32  float32
}

var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// WriteYAML saves the configuration to a YAML file, so experiment
// output directories carry the exact settings they ran with.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
}
