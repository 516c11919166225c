package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 896 || cfg.World.Height != 608 || cfg.World.TileSize != 16 {
		t.Errorf("unexpected world %+v", cfg.World)
	}
	if cfg.Derived.Cols != 56 || cfg.Derived.Rows != 38 {
		t.Errorf("derived grid = %dx%d, want 56x38", cfg.Derived.Cols, cfg.Derived.Rows)
	}
	if cfg.Ant.MemorySize != 10 {
		t.Errorf("memory_size = %d, want 10", cfg.Ant.MemorySize)
	}
	if cfg.Pheromone.DecayTime != 600 {
		t.Errorf("decay_time = %d, want 600", cfg.Pheromone.DecayTime)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := []byte("world:\n  width: 160\n  height: 160\nant:\n  count: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 160 || cfg.Derived.Cols != 10 {
		t.Errorf("overlay not applied: %+v %+v", cfg.World, cfg.Derived)
	}
	if cfg.Ant.Count != 3 {
		t.Errorf("count = %d, want 3", cfg.Ant.Count)
	}
	// Untouched fields keep defaults
	if cfg.Ant.MaxSpeed != 1.2 {
		t.Errorf("max_speed = %v, want default 1.2", cfg.Ant.MaxSpeed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tile does not divide", func(c *Config) { c.World.TileSize = 15 }},
		{"zero memory", func(c *Config) { c.Ant.MemorySize = 0 }},
		{"inverted interval", func(c *Config) { c.Ant.CommunicateMin, c.Ant.CommunicateMax = 9, 3 }},
		{"zero decay", func(c *Config) { c.Pheromone.DecayTime = 0 }},
		{"unknown layout mode", func(c *Config) { c.Layout.Mode = "spiral" }},
		{"empty layout mode", func(c *Config) { c.Layout.Mode = "" }},
		{"negative ant count", func(c *Config) { c.Ant.Count = -1 }},
		{"zero stats window", func(c *Config) { c.Telemetry.StatsWindow = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateLayoutModes(t *testing.T) {
	for _, mode := range []string{LayoutClassic, LayoutRandom} {
		t.Run(mode, func(t *testing.T) {
			cfg := Default()
			cfg.Layout.Mode = mode
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Ant.Count = 42
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Ant.Count != 42 {
		t.Errorf("count = %d, want 42", got.Ant.Count)
	}
}
