package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/formica/systems"
)

// spawnPoint returns the home position, or the world center without a home.
func (g *Game) spawnPoint() (x, y float32) {
	if home := g.Home(); home != nil {
		return home.X, home.Y
	}
	return g.grid.Width() / 2, g.grid.Height() / 2
}

// spawnAnt adds one ant at home facing a random direction. New ants
// treat home as seen at tick 0.
func (g *Game) spawnAnt() {
	x, y := g.spawnPoint()
	heading := g.rng.Float32() * 2 * math.Pi
	g.ants = append(g.ants, g.foraging.Spawn(x, y, heading, 0))
}

// SetAntCount grows or shrinks the population to n. New ants spawn at
// home; removed ants are taken from the end of the update order.
func (g *Game) SetAntCount(n int) {
	if n < 0 {
		n = 0
	}
	before := len(g.ants)
	g.resize(n)
	if before != n && before != 0 {
		slog.Info("population changed", "tick", g.Tick(), "from", before, "to", n)
	}
}

func (g *Game) resize(n int) {
	for len(g.ants) < n {
		g.spawnAnt()
	}
	for len(g.ants) > n {
		last := len(g.ants) - 1
		e := g.ants[last]
		if g.inspector != nil {
			if sel, ok := g.inspector.Selected(); ok && sel == e {
				g.inspector.Deselect()
			}
		}
		g.foraging.Despawn(e)
		g.ants = g.ants[:last]
	}
	g.settings.AntTarget = n
}

// Regenerate wipes every feature and trail, lays out a fresh random world,
// and respawns the population at the new home.
func (g *Game) Regenerate() {
	n := len(g.ants)
	g.resize(0)
	g.pendingTeleporter = 0
	if g.tools != nil {
		g.tools.PendingTeleporter = false
	}

	g.grid.ClearAll()
	home := systems.RandomLayout(g.grid, g.layout, g.rng)
	g.resize(n)

	slog.Info("world regenerated",
		"tick", g.Tick(),
		"features", len(g.grid.Features()),
		"home_x", home.X,
		"home_y", home.Y,
		"ants", n,
	)
}
