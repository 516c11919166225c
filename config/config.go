// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Ant        AntConfig        `yaml:"ant"`
	Pheromone  PheromoneConfig  `yaml:"pheromone"`
	Features   FeaturesConfig   `yaml:"features"`
	Layout     LayoutConfig     `yaml:"layout"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the bounded world dimensions.
// TileSize must divide both Width and Height.
type WorldConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tile_size"`
}

// AntConfig holds per-ant movement and communication parameters.
type AntConfig struct {
	Count            int     `yaml:"count"`
	MaxSpeed         float64 `yaml:"max_speed"`
	Acceleration     float64 `yaml:"acceleration"`
	Friction         float64 `yaml:"friction"`          // Global friction, multiplied by tile friction
	Erratic          float64 `yaml:"erratic"`           // Max random heading change per tick (radians, full width)
	SightDistance    float64 `yaml:"sight_distance"`    // Obstacle sensor distance
	SightAngle       float64 `yaml:"sight_angle"`       // Side sensor offset (radians)
	MemorySize       int     `yaml:"memory_size"`       // Past positions kept; trail writes use the oldest
	CommunicateMin   int     `yaml:"communicate_min"`   // Min ticks between trail passes
	CommunicateMax   int     `yaml:"communicate_max"`   // Max ticks between trail passes (inclusive)
	TeleportCooldown int     `yaml:"teleport_cooldown"` // Ticks that must pass before teleporting again
	EscapeSpeed      float64 `yaml:"escape_speed"`      // Speed given to ants pushed out of a new obstacle
	ArriveRadius     float64 `yaml:"arrive_radius"`     // Trail points closer than this do not steer
}

// PheromoneConfig holds trail lifetime and display parameters.
type PheromoneConfig struct {
	DecayTime     int     `yaml:"decay_time"`     // Ticks after which a mark is ignored
	DisplayFade   float64 `yaml:"display_fade"`   // Fraction of decay_time over which weight falls to 0
	DisplayCutoff float64 `yaml:"display_cutoff"` // Weights below this snap to display_floor
	DisplayFloor  float64 `yaml:"display_floor"`
}

// FeaturesConfig holds map feature parameters.
type FeaturesConfig struct {
	GrassFriction   float64 `yaml:"grass_friction"`
	ToolFoodStorage int     `yaml:"tool_food_storage"` // Storage of food placed by the tool layer
	FoodRegenEvery  int     `yaml:"food_regen_every"`  // Ticks per refilled unit (0 = no regrowth)
}

// Layout modes for the initial world.
const (
	LayoutClassic = "classic"
	LayoutRandom  = "random"
)

// LayoutConfig holds world generation parameters.
type LayoutConfig struct {
	Mode            string  `yaml:"mode"` // "classic" or "random" for the initial world
	FoodSources     int     `yaml:"food_sources"`
	FoodStorage     int     `yaml:"food_storage"`
	Obstacles       int     `yaml:"obstacles"`
	TeleporterPairs int     `yaml:"teleporter_pairs"`
	NoiseScale      float64 `yaml:"noise_scale"`     // Grass noise frequency per tile
	GrassThreshold  float64 `yaml:"grass_threshold"` // Normalized noise above this becomes grass
	Margin          int     `yaml:"margin"`          // Tiles kept clear around home
}

// SimulationConfig holds tick driver parameters.
type SimulationConfig struct {
	Speed float64 `yaml:"speed"` // Ticks per update; fractional values accumulate
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Samples kept per perf series
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cols     int
	Rows     int
	WorldW32 float32
	WorldH32 float32
	Tile32   float32
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they do not parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate checks invariants the simulation relies on.
func (c *Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 || w.TileSize <= 0 {
		return errors.New("world: width, height and tile_size must be positive")
	}
	if w.Width%w.TileSize != 0 || w.Height%w.TileSize != 0 {
		return fmt.Errorf("world: tile_size %d must divide %dx%d", w.TileSize, w.Width, w.Height)
	}
	if c.Ant.MemorySize < 1 {
		return errors.New("ant: memory_size must be at least 1")
	}
	if c.Ant.CommunicateMin < 1 || c.Ant.CommunicateMax < c.Ant.CommunicateMin {
		return fmt.Errorf("ant: communicate interval [%d, %d] is invalid", c.Ant.CommunicateMin, c.Ant.CommunicateMax)
	}
	if c.Ant.MaxSpeed < 0 || math.IsNaN(c.Ant.MaxSpeed) {
		return errors.New("ant: max_speed must be non-negative")
	}
	if c.Pheromone.DecayTime <= 0 {
		return errors.New("pheromone: decay_time must be positive")
	}
	if c.Layout.Mode != LayoutClassic && c.Layout.Mode != LayoutRandom {
		return fmt.Errorf("layout: unknown mode %q (want %q or %q)", c.Layout.Mode, LayoutClassic, LayoutRandom)
	}
	if c.Ant.Count < 0 {
		return errors.New("ant: count must be non-negative")
	}
	if c.Telemetry.StatsWindow < 1 {
		return errors.New("telemetry: stats_window must be at least 1")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cols = c.World.Width / c.World.TileSize
	c.Derived.Rows = c.World.Height / c.World.TileSize
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.Tile32 = float32(c.World.TileSize)
}

// Clone returns a deep copy with derived values recomputed.
func (c *Config) Clone() *Config {
	cp := *c
	cp.computeDerived()
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
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
