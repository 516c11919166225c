package game

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/telemetry"
	"github.com/pthm-cable/formica/ui"
)

// newTestGame builds a headless classic colony of 50 ants.
func newTestGame(t *testing.T, mutate func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Ant.Count = 50
	if mutate != nil {
		mutate(cfg)
	}
	g, err := NewGameWithOptions(Options{Config: cfg.Clone(), Seed: 42, Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestNewGameRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown layout", func(c *config.Config) { c.Layout.Mode = "spiral" }},
		{"zero stats window", func(c *config.Config) { c.Telemetry.StatsWindow = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if _, err := NewGameWithOptions(Options{Config: cfg, Headless: true}); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestNewGameSpawnsAtHome(t *testing.T) {
	g := newTestGame(t, nil)

	home := g.Home()
	if home == nil {
		t.Fatal("classic layout has no home")
	}
	if g.AntCount() != 50 {
		t.Fatalf("AntCount = %d, want 50", g.AntCount())
	}
	for i, v := range g.Ants() {
		if v.X != home.X || v.Y != home.Y {
			t.Fatalf("ant %d at (%.1f, %.1f), want home (%.1f, %.1f)", i, v.X, v.Y, home.X, home.Y)
		}
	}
	if g.Tick() != 0 {
		t.Errorf("Tick = %d, want 0", g.Tick())
	}
}

func TestSetAntCount(t *testing.T) {
	g := newTestGame(t, nil)
	before := g.Ants()

	g.SetAntCount(80)
	if g.AntCount() != 80 || g.Settings().AntTarget != 80 {
		t.Fatalf("grow: count=%d target=%d, want 80", g.AntCount(), g.Settings().AntTarget)
	}

	g.SetAntCount(20)
	after := g.Ants()
	if len(after) != 20 {
		t.Fatalf("shrink: count=%d, want 20", len(after))
	}
	for i := range after {
		if after[i].Entity != before[i].Entity {
			t.Fatalf("ant %d replaced; shrinking must pop from the end", i)
		}
	}

	g.SetAntCount(-5)
	if g.AntCount() != 0 {
		t.Errorf("negative count gave %d ants, want 0", g.AntCount())
	}
}

func TestPlaceFeature(t *testing.T) {
	g := newTestGame(t, nil)

	f := g.PlaceFeature(grid.KindFood, 24, 24)
	if f == nil {
		t.Fatal("placing on an empty tile failed")
	}
	if f.Storage != g.Config().Features.ToolFoodStorage {
		t.Errorf("food storage = %d, want %d", f.Storage, g.Config().Features.ToolFoodStorage)
	}

	tests := []struct {
		name string
		kind grid.FeatureKind
		x, y float32
	}{
		{"occupied tile", grid.KindObstacle, 20, 30},
		{"left of world", grid.KindGrass, -1, 30},
		{"below world", grid.KindHome, 30, g.Grid().Height() + 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.PlaceFeature(tt.kind, tt.x, tt.y); got != nil {
				t.Errorf("PlaceFeature placed %v, want nil", got.Kind)
			}
		})
	}
	if g.Grid().FeatureAt(24, 24) != f {
		t.Error("occupied tile lost its first feature")
	}
}

func TestTeleporterPairing(t *testing.T) {
	g := newTestGame(t, nil)

	a := g.PlaceTeleporter(40, 40)
	if a == nil || g.PendingTeleporter() != a {
		t.Fatal("first end should be pending")
	}
	b := g.PlaceTeleporter(840, 40)
	if b == nil {
		t.Fatal("second end not placed")
	}
	if g.PendingTeleporter() != nil {
		t.Error("pair still pending after second end")
	}
	if a.Link != b.ID || b.Link != a.ID {
		t.Fatalf("links = %d/%d, want %d/%d", a.Link, b.Link, b.ID, a.ID)
	}
	if a.Color != b.Color {
		t.Errorf("pair colors differ: %d vs %d", a.Color, b.Color)
	}

	c := g.PlaceTeleporter(40, 500)
	if c == nil || c.Color == a.Color {
		t.Error("next pair should use a new color")
	}

	if !g.RemoveFeatureAt(40, 40) {
		t.Fatal("RemoveFeatureAt found nothing")
	}
	if b.Link != 0 {
		t.Errorf("partner still linked to %d after removal", b.Link)
	}
	if g.RemoveFeatureAt(40, 40) {
		t.Error("second removal should report nothing removed")
	}
}

func TestRemovePendingTeleporter(t *testing.T) {
	g := newTestGame(t, nil)
	g.PlaceTeleporter(40, 40)
	g.RemoveFeatureAt(40, 40)
	if g.PendingTeleporter() != nil {
		t.Fatal("removed end still pending")
	}

	// A fresh placement starts a new pair rather than linking to a ghost
	f := g.PlaceTeleporter(200, 40)
	if f == nil || f.Link != 0 || g.PendingTeleporter() != f {
		t.Error("placement after removal should start a new pending pair")
	}
}

func TestApplyTool(t *testing.T) {
	tests := []struct {
		tool ui.Tool
		kind grid.FeatureKind
	}{
		{ui.ToolObstacle, grid.KindObstacle},
		{ui.ToolGrass, grid.KindGrass},
		{ui.ToolHome, grid.KindHome},
		{ui.ToolFood, grid.KindFood},
		{ui.ToolTeleporter, grid.KindTeleporter},
	}
	for _, tt := range tests {
		t.Run(tt.tool.String(), func(t *testing.T) {
			g := newTestGame(t, nil)
			if !g.ApplyTool(tt.tool, 24, 24) {
				t.Fatal("ApplyTool reported no change")
			}
			f := g.Grid().FeatureAt(24, 24)
			if f == nil || f.Kind != tt.kind {
				t.Fatalf("tile holds %v, want %v", f, tt.kind)
			}
			if !g.ApplyTool(ui.ToolRemove, 24, 24) || g.Grid().FeatureAt(24, 24) != nil {
				t.Error("remove tool left the feature in place")
			}
		})
	}

	g := newTestGame(t, nil)
	if g.ApplyTool(ui.ToolPan, 24, 24) {
		t.Error("pan tool changed a headless game")
	}
}

func TestObstacleOnAntsPushesThemOut(t *testing.T) {
	g := newTestGame(t, nil)
	home := g.Home()
	g.RemoveFeatureAt(home.X, home.Y)

	if g.PlaceFeature(grid.KindObstacle, home.X, home.Y) == nil {
		t.Fatal("obstacle not placed")
	}
	tile := g.Grid().TileAt(home.X, home.Y)
	for _, v := range g.Ants() {
		if tile.Contains(v.X, v.Y) {
			t.Fatalf("ant %v left inside the obstacle tile", v.Entity)
		}
	}
}

func TestRegenerate(t *testing.T) {
	g := newTestGame(t, nil)
	g.RunTicks(20)
	g.PlaceTeleporter(40, 40)

	g.Regenerate()

	home := g.Home()
	if home == nil {
		t.Fatal("regenerated world has no home")
	}
	if g.AntCount() != 50 {
		t.Errorf("AntCount = %d, want 50", g.AntCount())
	}
	if g.PendingTeleporter() != nil {
		t.Error("pending teleporter survived regeneration")
	}
	for _, v := range g.Ants() {
		if v.X != home.X || v.Y != home.Y || v.Carrying {
			t.Fatalf("ant not reset at new home: %+v", v)
		}
	}
	homes := 0
	for _, f := range g.Grid().Features() {
		if f.Kind == grid.KindHome {
			homes++
		}
	}
	if homes != 1 {
		t.Errorf("%d homes after regeneration, want 1", homes)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []float32 {
		g := newTestGame(t, func(c *config.Config) { c.Layout.Mode = LayoutRandom })
		g.RunTicks(200)
		var out []float32
		for _, v := range g.Ants() {
			out = append(out, v.X, v.Y, v.Heading)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at value %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestSpeedAccumulator(t *testing.T) {
	tests := []struct {
		speed    float64
		advances int
		want     int64
	}{
		{1, 10, 10},
		{0.5, 10, 5},
		{2.5, 4, 10},
		{0, 10, 0},
	}
	for _, tt := range tests {
		g := newTestGame(t, nil)
		g.SetSpeed(tt.speed)
		for i := 0; i < tt.advances; i++ {
			g.advance()
		}
		if g.Tick() != tt.want {
			t.Errorf("speed %.1f: tick after %d advances = %d, want %d", tt.speed, tt.advances, g.Tick(), tt.want)
		}
	}
}

func TestUpdateHeadlessSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Ant.Count = 10
	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 1, Headless: true, StepsPerUpdate: 7})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Unload()

	g.UpdateHeadless()
	g.UpdateHeadless()
	if g.Tick() != 14 {
		t.Errorf("Tick = %d, want 14", g.Tick())
	}
}

func TestStatsWindows(t *testing.T) {
	g := newTestGame(t, func(c *config.Config) {
		c.Telemetry.StatsWindow = 50
		c.Ant.Count = 200
	})
	home := g.Home()
	g.PlaceFeature(grid.KindFood, home.X+g.Grid().TileSize(), home.Y)

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) { windows = append(windows, s) })

	g.RunTicks(175)

	if len(windows) != 3 {
		t.Fatalf("%d windows flushed, want 3", len(windows))
	}
	for i, w := range windows {
		if w.WindowEndTick != int64(50*(i+1)) {
			t.Errorf("window %d ends at %d", i, w.WindowEndTick)
		}
		if w.Ants != 200 {
			t.Errorf("window %d counted %d ants", i, w.Ants)
		}
	}
	if g.Deliveries() != g.HomeCollected() {
		t.Errorf("Deliveries = %d, HomeCollected = %d; every delivery lands at a home", g.Deliveries(), g.HomeCollected())
	}
}

func TestPerfStats(t *testing.T) {
	p := NewPerfStats(2)
	p.Record("ants", 4*time.Millisecond)
	p.Record("ants", 2*time.Millisecond)
	p.Record("ants", 6*time.Millisecond) // evicts the first sample
	p.Record("world", 1*time.Millisecond)
	p.Record("trails", 1*time.Millisecond)

	if got := p.Avg("ants"); got != 4*time.Millisecond {
		t.Errorf("Avg(ants) = %s, want 4ms", got)
	}
	if got := p.Total(); got != 6*time.Millisecond {
		t.Errorf("Total = %s, want 6ms", got)
	}
	names := p.SortedNames()
	want := []string{"ants", "trails", "world"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("SortedNames = %v, want %v", names, want)
	}
	if p.Avg("missing") != 0 {
		t.Error("unknown phase should average 0")
	}
}

func TestLogWorldState(t *testing.T) {
	var buf bytes.Buffer
	SetLogWriter(&buf)
	defer SetLogWriter(nil)

	g := newTestGame(t, nil)
	g.RunTicks(5)
	g.LogWorldState()
	g.LogPerfStats()

	out := buf.String()
	for _, want := range []string{"=== Tick 5 ===", "Ants: 50", "Food: 4 sources", "=== Perf @ Tick 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
