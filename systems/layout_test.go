package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/grid"
)

func countKinds(g *grid.Grid) map[grid.FeatureKind]int {
	counts := make(map[grid.FeatureKind]int)
	for _, f := range g.Features() {
		counts[f.Kind]++
	}
	return counts
}

func TestClassicLayout(t *testing.T) {
	cfg := config.Default()
	g := grid.New(896, 608, 16, rand.New(rand.NewSource(1)))

	home := ClassicLayout(g, LayoutFromConfig(cfg))

	if home == nil || home.Kind != grid.KindHome {
		t.Fatal("no home returned")
	}
	if got := g.FeatureAt(448, 304); got != home {
		t.Errorf("home not at world center")
	}
	counts := countKinds(g)
	if counts[grid.KindFood] != 4 {
		t.Errorf("food sources = %d, want 4", counts[grid.KindFood])
	}
	for _, pt := range [][2]float32{{100, 100}, {796, 100}, {100, 508}, {796, 508}} {
		f := g.FeatureAt(pt[0], pt[1])
		if f == nil || f.Kind != grid.KindFood {
			t.Errorf("no food near (%v, %v)", pt[0], pt[1])
			continue
		}
		if f.Storage != cfg.Layout.FoodStorage {
			t.Errorf("food storage = %d, want %d", f.Storage, cfg.Layout.FoodStorage)
		}
	}
}

func TestClassicLayoutSmallWorld(t *testing.T) {
	tests := []struct {
		name      string
		size      float32
		wantFood  int
		wantHomeX float32
	}{
		// the (100,100) corner shares the home tile and is skipped
		{"corner on home tile", 192, 3, 96},
		{"corners outside world", 64, 0, 32},
		{"all corners fit", 320, 4, 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.New(tt.size, tt.size, 16, rand.New(rand.NewSource(1)))

			home := ClassicLayout(g, LayoutFromConfig(config.Default()))

			if got := g.FeatureAt(tt.wantHomeX, tt.wantHomeX); got == nil || got != home {
				t.Fatal("home missing from world center")
			}
			counts := countKinds(g)
			if counts[grid.KindHome] != 1 {
				t.Errorf("homes = %d, want 1", counts[grid.KindHome])
			}
			if counts[grid.KindFood] != tt.wantFood {
				t.Errorf("food sources = %d, want %d", counts[grid.KindFood], tt.wantFood)
			}
		})
	}
}

func TestRandomLayoutSmallWorld(t *testing.T) {
	tests := []struct {
		name          string
		width, height float32
	}{
		{"32x32", 32, 32},
		{"16x16", 16, 16},
		{"narrow", 48, 320},
		{"short", 320, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				rng := rand.New(rand.NewSource(seed))
				g := grid.New(tt.width, tt.height, 16, rng)

				home := RandomLayout(g, LayoutFromConfig(config.Default()), rng)

				if home == nil || home.Kind != grid.KindHome {
					t.Fatalf("seed %d: no home returned", seed)
				}
				hc, hr := home.TileIndex()
				if hc < 0 || hc >= g.Cols() || hr < 0 || hr >= g.Rows() {
					t.Fatalf("seed %d: home tile (%d, %d) outside %dx%d grid", seed, hc, hr, g.Cols(), g.Rows())
				}
				if countKinds(g)[grid.KindHome] != 1 {
					t.Fatalf("seed %d: home was replaced", seed)
				}
			}
		})
	}
}

func TestRandomLayout(t *testing.T) {
	tests := []struct {
		name  string
		seed  int64
		pairs int
	}{
		{"default seed", 1, 1},
		{"other seed", 42, 1},
		{"several teleporters", 9, 3},
		{"no teleporters", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			p := LayoutFromConfig(cfg)
			p.TeleporterPairs = tt.pairs
			rng := rand.New(rand.NewSource(tt.seed))
			g := grid.New(896, 608, 16, rng)

			home := RandomLayout(g, p, rng)

			counts := countKinds(g)
			if counts[grid.KindHome] != 1 {
				t.Errorf("homes = %d, want 1", counts[grid.KindHome])
			}
			if counts[grid.KindFood] == 0 || counts[grid.KindFood] > p.FoodSources {
				t.Errorf("food sources = %d, want 1..%d", counts[grid.KindFood], p.FoodSources)
			}
			if counts[grid.KindObstacle] > p.Obstacles {
				t.Errorf("obstacles = %d, want <= %d", counts[grid.KindObstacle], p.Obstacles)
			}
			if counts[grid.KindTeleporter]%2 != 0 {
				t.Errorf("odd teleporter count %d", counts[grid.KindTeleporter])
			}

			for _, f := range g.Features() {
				if f.Kind == grid.KindTeleporter {
					partner := g.Feature(f.Link)
					if partner == nil || partner.Link != f.ID {
						t.Errorf("teleporter %d not linked both ways", f.ID)
					}
				}
			}

			hc, hr := home.TileIndex()
			for dr := -p.Margin; dr <= p.Margin; dr++ {
				for dc := -p.Margin; dc <= p.Margin; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					tile := g.TileAtIndex(hc+dc, hr+dr)
					if tile != nil && tile.Feature() != nil {
						t.Errorf("feature %v placed within margin of home", tile.Feature().Kind)
					}
				}
			}
		})
	}
}

func TestRandomLayoutDeterministic(t *testing.T) {
	build := func() []grid.FeatureKind {
		rng := rand.New(rand.NewSource(77))
		g := grid.New(320, 320, 16, rng)
		RandomLayout(g, LayoutFromConfig(config.Default()), rng)
		var kinds []grid.FeatureKind
		for _, f := range g.Features() {
			kinds = append(kinds, f.Kind)
		}
		return kinds
	}

	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatalf("feature counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("feature %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTrailDisplayWeight(t *testing.T) {
	d := TrailDisplayFromConfig(config.Default())

	prev := d.Weight(0)
	if prev != 1 {
		t.Errorf("Weight(0) = %v, want 1", prev)
	}
	for age := int64(1); age <= 700; age++ {
		w := d.Weight(age)
		if w > prev {
			t.Fatalf("weight rose at age %d: %v > %v", age, w, prev)
		}
		if w < d.Floor {
			t.Fatalf("weight %v below floor at age %d", w, age)
		}
		prev = w
	}

	tests := []struct {
		age  int64
		want float32
	}{
		{-5, 1},
		{240, 0.5},
		{400, 0.1667},
		{433, 0.05},
		{600, 0.05},
	}
	for _, tt := range tests {
		got := d.Weight(tt.age)
		if diff := got - tt.want; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("Weight(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}

	if !d.Live(599) || d.Live(600) {
		t.Error("Live boundary should be at DecayTime")
	}
}
