package game

import (
	"log/slog"

	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/telemetry"
)

// flushTelemetry closes the stats window when it is due, then handles
// logging, CSV output and bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.sample())
	g.flushedDeliveries += stats.Deliveries
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample measures the colony for a stats window.
func (g *Game) sample() telemetry.Sample {
	var s telemetry.Sample

	g.views = g.foraging.Views(g.views[:0])
	s.Ants = len(g.views)
	for _, v := range g.views {
		if v.Carrying {
			s.Carrying++
		}
	}

	for _, f := range g.grid.Features() {
		switch f.Kind {
		case grid.KindHome:
			s.HomeCollected += f.Collected
		case grid.KindFood:
			s.FoodSources++
			if !f.Infinite {
				s.FoodRemaining += f.Storage
			}
		}
	}

	now := g.Tick()
	tiles := g.grid.Tiles()
	for i := range tiles {
		if m, ok := tiles[i].Trail(grid.ChannelFood); ok && g.trail.Live(now-m.Timestamp) {
			s.FoodTrailAges = append(s.FoodTrailAges, float64(now-m.Timestamp))
		}
		if m, ok := tiles[i].Trail(grid.ChannelHome); ok && g.trail.Live(now-m.Timestamp) {
			s.HomeTrailAges = append(s.HomeTrailAges, float64(now-m.Timestamp))
		}
	}
	return s
}
