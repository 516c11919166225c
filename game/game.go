// Package game drives the colony: it owns the ECS world, the tile grid and
// the ordered ant list, runs ticks, and exposes the commands issued by the
// viewer's tools and by headless callers.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/camera"
	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/inspector"
	"github.com/pthm-cable/formica/systems"
	"github.com/pthm-cable/formica/telemetry"
	"github.com/pthm-cable/formica/ui"
)

var _ systems.Recorder = (*telemetry.Collector)(nil)

// Layout modes for the initial world.
const (
	LayoutClassic = config.LayoutClassic
	LayoutRandom  = config.LayoutRandom
)

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = embedded defaults
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int // Ticks per UpdateHeadless call
}

// Settings are the runtime-tunable values edited from the control panel.
type Settings struct {
	Speed      float64 // Ticks per update; fractions accumulate
	ShowTrails bool
	AntTarget  int
	Paused     bool
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	world    *ecs.World
	grid     *grid.Grid
	foraging *systems.ForagingSystem
	layout   systems.LayoutParams
	trail    systems.TrailDisplay

	// Update order. Shrinking the population pops from the end.
	ants []ecs.Entity

	settings       Settings
	accumulator    float64
	stepsPerUpdate int

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	flushedDeliveries int

	// Viewer state, nil when headless
	headless     bool
	camera       *camera.Camera
	hud          *ui.HUD
	tools        *ui.ToolPanel
	controls     *ui.ControlsPanel
	overlays     *ui.OverlayRegistry
	perfPanel    *ui.PerfPanel
	inspector    *inspector.Inspector
	framePerf    *PerfStats
	screenWidth  float32
	screenHeight float32

	pendingTeleporter grid.FeatureID
	nextPortalColor   uint8

	views []systems.AntView
}

// NewGameWithOptions builds the initial world and spawns the configured
// number of ants at home.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	world := ecs.NewWorld()
	g := &Game{
		cfg:            cfg,
		seed:           opts.Seed,
		rng:            rng,
		world:          world,
		grid:           grid.New(cfg.Derived.WorldW32, cfg.Derived.WorldH32, cfg.Derived.Tile32, rng),
		layout:         systems.LayoutFromConfig(cfg),
		trail:          systems.TrailDisplayFromConfig(cfg),
		stepsPerUpdate: steps,
		settings: Settings{
			Speed:      cfg.Simulation.Speed,
			ShowTrails: true,
			AntTarget:  cfg.Ant.Count,
		},
		collector:     telemetry.NewCollector(int64(cfg.Telemetry.StatsWindow)),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
	}
	g.grid.SetEscapeSpeed(float32(cfg.Ant.EscapeSpeed))
	g.foraging = systems.NewForagingSystem(world, g.grid, systems.ParamsFromConfig(cfg), rng)
	g.foraging.SetRecorder(g.collector)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	switch cfg.Layout.Mode {
	case LayoutRandom:
		systems.RandomLayout(g.grid, g.layout, rng)
	case LayoutClassic:
		systems.ClassicLayout(g.grid, g.layout)
	}
	g.SetAntCount(cfg.Ant.Count)

	if !opts.Headless {
		g.initViewer()
	}

	slog.Info("colony created",
		"seed", opts.Seed,
		"layout", cfg.Layout.Mode,
		"ants", len(g.ants),
		"cols", g.grid.Cols(),
		"rows", g.grid.Rows(),
	)
	return g, nil
}

// initViewer creates the camera and panels for the graphical mode.
func (g *Game) initViewer() {
	g.screenWidth = float32(g.cfg.Screen.Width)
	g.screenHeight = float32(g.cfg.Screen.Height)
	g.camera = camera.New(g.screenWidth, g.screenHeight, g.grid.Width(), g.grid.Height())
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.tools = ui.NewToolPanel(10, 190)
	g.controls = ui.NewControlsPanel(10, 190+g.tools.Height()+10, 220)
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-270, int32(g.screenHeight)-140)
	g.inspector = inspector.NewInspector(int32(g.screenWidth))
	g.framePerf = NewPerfStats(g.cfg.Telemetry.PerfWindow)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.grid.Tick()
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration in use.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Grid exposes the tile grid for read-only inspection.
func (g *Game) Grid() *grid.Grid {
	return g.grid
}

// Foraging exposes the foraging system for read-only inspection.
func (g *Game) Foraging() *systems.ForagingSystem {
	return g.foraging
}

// Settings returns the current runtime settings.
func (g *Game) Settings() Settings {
	return g.settings
}

// SetSpeed sets the ticks run per update. Negative speeds are treated as 0.
func (g *Game) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	g.settings.Speed = speed
}

// SetPaused stops or resumes Update.
func (g *Game) SetPaused(paused bool) {
	g.settings.Paused = paused
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// AntCount returns the live population.
func (g *Game) AntCount() int {
	return len(g.ants)
}

// Ants returns a snapshot of every ant in update order.
func (g *Game) Ants() []systems.AntView {
	out := make([]systems.AntView, 0, len(g.ants))
	for _, e := range g.ants {
		if v, ok := g.foraging.View(e); ok {
			out = append(out, v)
		}
	}
	return out
}

// Home returns the first placed home, or nil.
func (g *Game) Home() *grid.Feature {
	return g.grid.FindFeature(grid.KindHome)
}

// HomeCollected returns the food delivered to all homes.
func (g *Game) HomeCollected() int {
	total := 0
	for _, f := range g.grid.Features() {
		if f.Kind == grid.KindHome {
			total += f.Collected
		}
	}
	return total
}

// Deliveries returns the number of food units delivered since the game started.
func (g *Game) Deliveries() int {
	_, d := g.collector.Totals()
	return g.flushedDeliveries + d
}

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
