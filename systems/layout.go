package systems

import (
	"log/slog"
	"math/rand"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/grid"
)

// LayoutParams controls world generation.
type LayoutParams struct {
	FoodSources     int
	FoodStorage     int
	FoodRegenEvery  int64
	Obstacles       int
	TeleporterPairs int
	NoiseScale      float64
	GrassThreshold  float64
	GrassFriction   float32
	Margin          int
}

// LayoutFromConfig builds LayoutParams from the layout and features sections.
func LayoutFromConfig(cfg *config.Config) LayoutParams {
	l := cfg.Layout
	return LayoutParams{
		FoodSources:     l.FoodSources,
		FoodStorage:     l.FoodStorage,
		FoodRegenEvery:  int64(cfg.Features.FoodRegenEvery),
		Obstacles:       l.Obstacles,
		TeleporterPairs: l.TeleporterPairs,
		NoiseScale:      l.NoiseScale,
		GrassThreshold:  l.GrassThreshold,
		GrassFriction:   float32(cfg.Features.GrassFriction),
		Margin:          l.Margin,
	}
}

// ClassicLayout places home at the world center and four food sources
// 100 units in from each corner. Corner points outside the world or on an
// occupied tile are skipped, so small worlds get fewer food sources.
func ClassicLayout(g *grid.Grid, p LayoutParams) *grid.Feature {
	w, h := g.Width(), g.Height()
	home := grid.NewHome(w/2, h/2)
	g.PlaceFeature(home)

	corners := [4][2]float32{
		{100, 100},
		{w - 100, 100},
		{100, h - 100},
		{w - 100, h - 100},
	}
	for _, c := range corners {
		if !g.InBounds(c[0], c[1]) || g.FeatureAt(c[0], c[1]) != nil {
			slog.Warn("skipping classic food source", "x", c[0], "y", c[1], "world_w", w, "world_h", h)
			continue
		}
		food := grid.NewFood(c[0], c[1], p.FoodStorage)
		food.RegenEvery = p.FoodRegenEvery
		g.PlaceFeature(food)
	}
	return home
}

// RandomLayout places one home, grass patches from simplex noise, obstacles,
// food sources and teleporter pairs on empty tiles. Tiles within Margin of
// home stay clear; the margin shrinks per axis so home always lands inside
// a small world. Returns the home feature.
func RandomLayout(g *grid.Grid, p LayoutParams, rng *rand.Rand) *grid.Feature {
	cols, rows := g.Cols(), g.Rows()
	mc := max(0, min(p.Margin, (cols-1)/2))
	mr := max(0, min(p.Margin, (rows-1)/2))

	homeCol := mc + rng.Intn(max(1, cols-2*mc))
	homeRow := mr + rng.Intn(max(1, rows-2*mr))
	hx, hy := g.TileAtIndex(homeCol, homeRow).Center()
	home := grid.NewHome(hx, hy)
	g.PlaceFeature(home)

	nearHome := func(col, row int) bool {
		return abs(col-homeCol) <= mc && abs(row-homeRow) <= mr
	}

	noise := opensimplex.NewNormalized(rng.Int63())
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if nearHome(col, row) {
				continue
			}
			v := noise.Eval2(float64(col)*p.NoiseScale, float64(row)*p.NoiseScale)
			if v > p.GrassThreshold {
				x, y := g.TileAtIndex(col, row).Center()
				g.PlaceFeature(grid.NewGrass(x, y, p.GrassFriction))
			}
		}
	}

	// emptyTile picks a random tile without a feature (grass may be replaced)
	// away from home. Gives up after a bounded number of attempts.
	emptyTile := func(allowGrass bool) (float32, float32, bool) {
		for attempt := 0; attempt < 64; attempt++ {
			col, row := rng.Intn(cols), rng.Intn(rows)
			if nearHome(col, row) {
				continue
			}
			t := g.TileAtIndex(col, row)
			if f := t.Feature(); f != nil && !(allowGrass && f.Kind == grid.KindGrass) {
				continue
			}
			x, y := t.Center()
			return x, y, true
		}
		return 0, 0, false
	}

	for i := 0; i < p.Obstacles; i++ {
		if x, y, ok := emptyTile(true); ok {
			g.PlaceFeature(grid.NewObstacle(x, y))
		}
	}

	for i := 0; i < p.FoodSources; i++ {
		if x, y, ok := emptyTile(true); ok {
			food := grid.NewFood(x, y, p.FoodStorage)
			food.RegenEvery = p.FoodRegenEvery
			g.PlaceFeature(food)
		}
	}

	for i := 0; i < p.TeleporterPairs; i++ {
		ax, ay, okA := emptyTile(true)
		if !okA {
			continue
		}
		a := grid.NewTeleporter(ax, ay)
		a.Color = uint8(i)
		g.PlaceFeature(a)

		bx, by, okB := emptyTile(true)
		if !okB {
			g.RemoveFeature(a)
			continue
		}
		b := grid.NewTeleporter(bx, by)
		g.PlaceFeature(b)
		g.Link(a.ID, b.ID)
	}

	return home
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
