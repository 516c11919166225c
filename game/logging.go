package game

import (
	"fmt"
	"io"
	"time"

	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/telemetry"
)

// logWriter is the destination for Logf output.
var logWriter io.Writer

// SetLogWriter sets the Logf output destination. Nil means stdout.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log line.
func Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogPerfStats prints the tick phase and render phase breakdowns.
func (g *Game) LogPerfStats() {
	stats := g.perfCollector.Stats()
	Logf("=== Perf @ Tick %d (speed %.1fx) | %.0f ticks/s ===", g.Tick(), g.settings.Speed, stats.TicksPerSecond)
	Logf("Tick: avg %s, min %s, max %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MinTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond))
	for _, phase := range []string{telemetry.PhaseForaging, telemetry.PhaseFeatures, telemetry.PhaseTelemetry} {
		Logf("  %-12s %10s  %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), stats.PhasePct[phase])
	}

	if g.framePerf == nil {
		return
	}
	total := g.framePerf.Total()
	Logf("Render: %s", total.Round(time.Microsecond))
	for _, name := range g.framePerf.SortedNames() {
		avg := g.framePerf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		Logf("  %-12s %10s  %5.1f%%", name, avg.Round(time.Microsecond), pct)
	}
}

// LogWorldState prints a one-screen summary of the colony.
func (g *Game) LogWorldState() {
	var carrying int
	for _, v := range g.Ants() {
		if v.Carrying {
			carrying++
		}
	}

	counts := make(map[grid.FeatureKind]int)
	food := 0
	for _, f := range g.grid.Features() {
		counts[f.Kind]++
		if f.Kind == grid.KindFood && !f.Infinite {
			food += f.Storage
		}
	}

	var marks [grid.NumChannels]int
	tiles := g.grid.Tiles()
	now := g.Tick()
	for i := range tiles {
		for ch := grid.Channel(0); ch < grid.NumChannels; ch++ {
			if m, ok := tiles[i].Trail(ch); ok && g.trail.Live(now-m.Timestamp) {
				marks[ch]++
			}
		}
	}

	Logf("=== Tick %d ===", now)
	Logf("Ants: %d (carrying: %d)", len(g.ants), carrying)
	Logf("Home collected: %d, deliveries: %d", g.HomeCollected(), g.Deliveries())
	Logf("Food: %d sources, %d units left", counts[grid.KindFood], food)
	Logf("Features: %d obstacles, %d grass, %d teleporters",
		counts[grid.KindObstacle], counts[grid.KindGrass], counts[grid.KindTeleporter])
	Logf("Live marks: food %d, home %d", marks[grid.ChannelFood], marks[grid.ChannelHome])
}
