package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Ticks per headless update call")
	ants := flag.Int("ants", 0, "Initial ant count (0 = use config)")
	layout := flag.String("layout", "", "Initial layout: classic or random (empty = use config)")

	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if *ants > 0 {
		cfg.Ant.Count = *ants
	}
	if *layout != "" {
		cfg.Layout.Mode = *layout
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		err = runHeadless(opts, *maxTicks)
	} else {
		err = runWindowed(opts, *maxTicks)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the colony without raylib until maxTicks is reached.
func runHeadless(opts game.Options, maxTicks int) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()
		if maxTicks > 0 && g.Tick() >= int64(maxTicks) {
			slog.Info("max ticks reached",
				"tick", g.Tick(),
				"deliveries", g.Deliveries(),
				"home_collected", g.HomeCollected(),
			)
			return nil
		}
	}
}

// runWindowed opens the viewer and runs one update and one frame per loop.
func runWindowed(opts game.Options, maxTicks int) error {
	cfg := opts.Config
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Formica")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= int64(maxTicks) {
			break
		}
	}
	return nil
}
