package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/config"
	"github.com/pthm-cable/formica/grid"
)

// newTestSystem builds a 160x160 world with 16-unit tiles.
func newTestSystem(t *testing.T, mutate func(*config.Config)) (*ForagingSystem, *grid.Grid) {
	t.Helper()
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height, cfg.World.TileSize = 160, 160, 16
	if mutate != nil {
		mutate(cfg)
	}
	rng := rand.New(rand.NewSource(7))
	g := grid.New(float32(cfg.World.Width), float32(cfg.World.Height), float32(cfg.World.TileSize), rng)
	s := NewForagingSystem(ecs.NewWorld(), g, ParamsFromConfig(cfg), rng)
	return s, g
}

// communicateEveryTick makes every update run a trail pass.
func communicateEveryTick(cfg *config.Config) {
	cfg.Ant.CommunicateMin, cfg.Ant.CommunicateMax = 1, 1
}

func step(s *ForagingSystem, g *grid.Grid, order []ecs.Entity) {
	s.Update(order)
	g.AdvanceTick()
}

func TestTaskOscillation(t *testing.T) {
	s, g := newTestSystem(t, nil)
	fx, fy := g.TileAtIndex(2, 2).Center()
	hx, hy := g.TileAtIndex(7, 7).Center()
	food := grid.NewFood(fx, fy, 10)
	home := grid.NewHome(hx, hy)
	g.PlaceFeature(food)
	g.PlaceFeature(home)

	e := s.Spawn(fx, fy, 0, 0)
	step(s, g, []ecs.Entity{e})

	f := s.Forager(e)
	if !f.Carrying || f.Task != components.TaskSeekHome {
		t.Fatalf("after food: carrying=%v task=%v, want true/seek home", f.Carrying, f.Task)
	}
	if food.Storage != 9 {
		t.Errorf("food storage = %d, want 9", food.Storage)
	}
	if !f.Food.Valid {
		t.Error("food memory not recorded")
	}
	if v, _ := s.View(e); v.Speed != 0 {
		t.Errorf("speed after task switch = %v, want 0", v.Speed)
	}

	pos := s.posMap.Get(e)
	pos.X, pos.Y = hx, hy
	step(s, g, []ecs.Entity{e})

	if f.Carrying || f.Task != components.TaskSeekFood {
		t.Fatalf("after home: carrying=%v task=%v, want false/seek food", f.Carrying, f.Task)
	}
	if home.Collected != 1 {
		t.Errorf("home collected = %d, want 1", home.Collected)
	}
}

func TestTaskSwitchReversesHeading(t *testing.T) {
	s, g := newTestSystem(t, func(c *config.Config) { c.Ant.Erratic = 0 })
	fx, fy := g.TileAtIndex(4, 4).Center()
	g.PlaceFeature(grid.NewFood(fx, fy, 5))

	e := s.Spawn(fx, fy, 0.5, 0)
	step(s, g, []ecs.Entity{e})

	v, _ := s.View(e)
	want := 0.5 - math.Pi
	if math.Abs(float64(v.Heading)-want) > 1e-5 {
		t.Errorf("heading = %v, want %v", v.Heading, want)
	}
	if s.Forager(e).MaxTrailSeen != 0 {
		t.Errorf("MaxTrailSeen = %d, want 0 after switch", s.Forager(e).MaxTrailSeen)
	}
}

func TestSingleUnitFoodRemoved(t *testing.T) {
	s, g := newTestSystem(t, nil)
	fx, fy := g.TileAtIndex(3, 6).Center()
	food := grid.NewFood(fx, fy, 1)
	g.PlaceFeature(food)

	e := s.Spawn(fx, fy, 0, 0)
	step(s, g, []ecs.Entity{e})

	if !s.Forager(e).Carrying {
		t.Fatal("pickup did not happen")
	}
	if g.FeatureAt(fx, fy) != nil {
		t.Error("empty food source still on the grid")
	}
	if food.Placed() {
		t.Error("empty food source still reports placed")
	}
	if len(g.Features()) != 0 {
		t.Error("empty food source still indexed")
	}
}

func TestSuppressionWindow(t *testing.T) {
	s, g := newTestSystem(t, communicateEveryTick)
	mem := s.Params().MemorySize
	fx, fy := g.TileAtIndex(5, 5).Center()
	g.PlaceFeature(grid.NewFood(fx, fy, 50))

	e := s.Spawn(fx, fy, 0, 0)
	order := []ecs.Entity{e}

	pickupTick := g.Tick()
	for i := 0; i <= mem; i++ {
		tile := s.Forager(e).Tile
		tile.ClearTrails()
		now := g.Tick()
		step(s, g, order)

		_, wrote := tile.Trail(grid.ChannelHome)
		if now < pickupTick+int64(mem) && wrote {
			t.Errorf("tick %d: write during suppression window", now)
		}
		if now == pickupTick+int64(mem) && !wrote {
			t.Errorf("tick %d: write should succeed once the window ends", now)
		}
	}
}

func TestSenseFollowsFreshestMark(t *testing.T) {
	s, g := newTestSystem(t, nil)
	for i := 0; i < 20; i++ {
		g.AdvanceTick()
	}
	cx, cy := g.TileAtIndex(5, 5).Center()
	e := s.Spawn(cx, cy, 0, 0)
	f := s.Forager(e)
	pos := s.posMap.Get(e)
	mot := s.motionMap.Get(e)

	g.TileAtIndex(5, 4).SetTrail(grid.ChannelFood, grid.TrailMark{X: cx, Y: cy - 40, Timestamp: 5})
	g.TileAtIndex(6, 5).SetTrail(grid.ChannelFood, grid.TrailMark{X: cx + 40, Y: cy, Timestamp: 12})
	// Wrong channel for a food seeker
	g.TileAtIndex(4, 5).SetTrail(grid.ChannelHome, grid.TrailMark{X: cx - 40, Y: cy, Timestamp: 19})

	s.sense(f.Tile, pos, mot, f, g.Tick())

	if f.MaxTrailSeen != 12 {
		t.Errorf("MaxTrailSeen = %d, want 12", f.MaxTrailSeen)
	}
	if math.Abs(float64(mot.Heading)) > 1e-5 {
		t.Errorf("heading = %v, want 0 (toward freshest mark)", mot.Heading)
	}
}

func TestSenseIgnoresStaleAndNearMarks(t *testing.T) {
	s, g := newTestSystem(t, nil)
	decay := s.Params().DecayTime
	for i := int64(0); i < decay+10; i++ {
		g.AdvanceTick()
	}
	cx, cy := g.TileAtIndex(5, 5).Center()
	e := s.Spawn(cx, cy, 1.0, 0)
	f := s.Forager(e)
	pos := s.posMap.Get(e)
	mot := s.motionMap.Get(e)

	// Exactly at the decay horizon: ignored
	g.TileAtIndex(5, 4).SetTrail(grid.ChannelFood, grid.TrailMark{X: 0, Y: 0, Timestamp: g.Tick() - decay})
	s.sense(f.Tile, pos, mot, f, g.Tick())
	if f.MaxTrailSeen != components.Never {
		t.Errorf("stale mark was acted on: MaxTrailSeen = %d", f.MaxTrailSeen)
	}

	// Fresh but within arrive radius: recorded, heading kept
	g.TileAtIndex(5, 4).SetTrail(grid.ChannelFood, grid.TrailMark{X: cx + 1, Y: cy, Timestamp: g.Tick() - 1})
	s.sense(f.Tile, pos, mot, f, g.Tick())
	if f.MaxTrailSeen != g.Tick()-1 {
		t.Errorf("MaxTrailSeen = %d, want %d", f.MaxTrailSeen, g.Tick()-1)
	}
	if mot.Heading != 1.0 {
		t.Errorf("heading changed to %v for a mark within arrive radius", mot.Heading)
	}
}

func TestSenseAcceptsMarkAtOrigin(t *testing.T) {
	s, g := newTestSystem(t, nil)
	g.AdvanceTick()
	g.AdvanceTick()
	cx, cy := g.TileAtIndex(0, 0).Center()
	e := s.Spawn(cx, cy, 1.0, 0)
	f := s.Forager(e)

	g.TileAtIndex(1, 0).SetTrail(grid.ChannelFood, grid.TrailMark{X: 0, Y: 0, Timestamp: 1})
	s.sense(f.Tile, s.posMap.Get(e), s.motionMap.Get(e), f, g.Tick())

	if f.MaxTrailSeen != 1 {
		t.Errorf("mark at (0,0) ignored: MaxTrailSeen = %d", f.MaxTrailSeen)
	}
}

func TestDepositFreshness(t *testing.T) {
	tests := []struct {
		name     string
		existing *grid.TrailMark
		seen     int64
		wantTS   int64
		wantX    float32
	}{
		{"empty tile", nil, 3, 3, 11},
		{"older mark overwritten", &grid.TrailMark{X: 99, Y: 99, Timestamp: 2}, 3, 3, 11},
		{"equal mark kept", &grid.TrailMark{X: 99, Y: 99, Timestamp: 3}, 3, 3, 99},
		{"newer mark kept", &grid.TrailMark{X: 99, Y: 99, Timestamp: 5}, 3, 5, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, g := newTestSystem(t, nil)
			cx, cy := g.TileAtIndex(2, 2).Center()
			e := s.Spawn(cx, cy, 0, tt.seen)
			f := s.Forager(e)
			if tt.existing != nil {
				f.Tile.SetTrail(grid.ChannelHome, *tt.existing)
			}

			s.deposit(f.Tile, grid.ChannelHome, components.Position{X: 11, Y: 12}, f)

			m, ok := f.Tile.Trail(grid.ChannelHome)
			if !ok {
				t.Fatal("no mark after deposit")
			}
			if m.Timestamp != tt.wantTS || m.X != tt.wantX {
				t.Errorf("mark = %+v, want ts=%d x=%v", m, tt.wantTS, tt.wantX)
			}
		})
	}
}

func TestDepositSkipsUnseenChannel(t *testing.T) {
	s, g := newTestSystem(t, nil)
	cx, cy := g.TileAtIndex(2, 2).Center()
	e := s.Spawn(cx, cy, 0, 0)
	f := s.Forager(e)

	s.deposit(f.Tile, grid.ChannelFood, components.Position{X: 1, Y: 1}, f)
	if _, ok := f.Tile.Trail(grid.ChannelFood); ok {
		t.Error("wrote food trail without ever seeing food")
	}
}

func TestDepositInvalidatesVanishedFood(t *testing.T) {
	s, g := newTestSystem(t, nil)
	cx, cy := g.TileAtIndex(2, 2).Center()
	e := s.Spawn(cx, cy, 0, 0)
	f := s.Forager(e)
	f.LastSeen[grid.ChannelFood] = 4
	f.Food = components.FoodMemory{X: 100, Y: 100, Tick: 4, Valid: true}

	s.deposit(f.Tile, grid.ChannelFood, components.Position{X: 1, Y: 1}, f)

	if f.Food.Valid {
		t.Error("food memory should be invalidated")
	}
	if f.LastSeen[grid.ChannelFood] != components.Never {
		t.Errorf("food last seen = %d, want Never", f.LastSeen[grid.ChannelFood])
	}
	if _, ok := f.Tile.Trail(grid.ChannelFood); ok {
		t.Error("food trail written for vanished food")
	}
}

func TestTeleportAndCooldown(t *testing.T) {
	s, g := newTestSystem(t, nil)
	ax, ay := g.TileAtIndex(1, 1).Center()
	bx, by := g.TileAtIndex(8, 8).Center()
	a := grid.NewTeleporter(ax, ay)
	b := grid.NewTeleporter(bx, by)
	g.PlaceFeature(a)
	g.PlaceFeature(b)
	g.Link(a.ID, b.ID)

	e := s.Spawn(ax, ay, 0, 0)
	order := []ecs.Entity{e}
	step(s, g, order)

	v, _ := s.View(e)
	if v.X != bx || v.Y != by {
		t.Fatalf("position = (%v, %v), want partner center (%v, %v)", v.X, v.Y, bx, by)
	}
	if v.Speed != s.Params().MaxSpeed {
		t.Errorf("speed = %v, want max speed", v.Speed)
	}
	if !g.TileAtIndex(8, 8).Occupants.Contains(e) || g.TileAtIndex(1, 1).Occupants.Contains(e) {
		t.Error("membership not refreshed after teleport")
	}

	step(s, g, order)
	if tile := s.Forager(e).Tile; tile.Col != 8 || tile.Row != 8 {
		t.Errorf("teleported back during cooldown, now at (%d,%d)", tile.Col, tile.Row)
	}
}

func TestObstaclePlacementPushesAntOut(t *testing.T) {
	s, g := newTestSystem(t, nil)
	cx, cy := g.TileAtIndex(5, 5).Center()
	e := s.Spawn(cx, cy, 0, 0)

	g.PlaceFeature(grid.NewObstacle(cx, cy))

	v, _ := s.View(e)
	if !g.IsPassable(v.X, v.Y) {
		t.Errorf("ant at impassable (%v, %v)", v.X, v.Y)
	}
	if v.Speed != 2 {
		t.Errorf("speed = %v, want 2", v.Speed)
	}
	tile := g.TileAt(v.X, v.Y)
	if tile.Col == 5 && tile.Row == 5 {
		t.Error("ant still inside the obstacle tile")
	}
	if s.Forager(e).Tile != tile || !tile.Occupants.Contains(e) {
		t.Error("forager tile out of sync after displacement")
	}
}

// checkMembership asserts every ant is listed by exactly the tile under it.
func checkMembership(t *testing.T, s *ForagingSystem, g *grid.Grid, ants []ecs.Entity, tick int64) {
	t.Helper()
	tiles := g.Tiles()
	for _, e := range ants {
		v, _ := s.View(e)
		want := g.TileAt(v.X, v.Y)
		count := 0
		for i := range tiles {
			if tiles[i].Occupants.Contains(e) {
				count++
				if &tiles[i] != want {
					t.Fatalf("tick %d: ant listed by tile (%d,%d) but stands in (%d,%d)",
						tick, tiles[i].Col, tiles[i].Row, want.Col, want.Row)
				}
			}
		}
		if count != 1 {
			t.Fatalf("tick %d: ant listed by %d tiles", tick, count)
		}
	}
}

func TestMembershipAndBoundsOverLongRun(t *testing.T) {
	s, g := newTestSystem(t, nil)
	home := placeSmallLayout(g)
	hx, hy := home.X, home.Y

	rng := rand.New(rand.NewSource(3))
	var ants []ecs.Entity
	for i := 0; i < 40; i++ {
		ants = append(ants, s.Spawn(hx, hy, rng.Float32()*2*math.Pi, 0))
	}

	a := grid.NewTeleporter(24, 136)
	b := grid.NewTeleporter(136, 24)
	g.PlaceFeature(a)
	g.PlaceFeature(b)
	g.Link(a.ID, b.ID)

	w, h := g.Width(), g.Height()
	for tick := int64(0); tick < 400; tick++ {
		if tick%50 == 25 {
			// Drop obstacles on top of the swarm to exercise displacement
			v, _ := s.View(ants[int(tick)%len(ants)])
			if f := g.FeatureAt(v.X, v.Y); f == nil {
				g.PlaceFeature(grid.NewObstacle(v.X, v.Y))
			}
		}
		step(s, g, ants)
		checkMembership(t, s, g, ants, tick)

		for _, e := range ants {
			v, _ := s.View(e)
			if v.X < 0 || v.X >= w || v.Y < 0 || v.Y >= h {
				t.Fatalf("tick %d: ant escaped to (%v, %v)", tick, v.X, v.Y)
			}
			if v.Heading <= -pi || v.Heading > pi {
				t.Fatalf("tick %d: heading %v not normalized", tick, v.Heading)
			}
			if v.Speed < 0 || v.Speed > 2 {
				t.Fatalf("tick %d: speed %v out of range", tick, v.Speed)
			}
		}
	}
}

// placeSmallLayout places home in the middle, food near two corners and a grass patch.
func placeSmallLayout(g *grid.Grid) *grid.Feature {
	home := grid.NewHome(80, 80)
	g.PlaceFeature(home)
	g.PlaceFeature(grid.NewFood(20, 20, 1000))
	g.PlaceFeature(grid.NewFood(140, 140, 1000))
	g.PlaceFeature(grid.NewGrass(100, 60, 0.8))
	return home
}

func TestDespawnClearsMembership(t *testing.T) {
	s, g := newTestSystem(t, nil)
	e := s.Spawn(40, 40, 0, 0)
	tile := g.TileAt(40, 40)
	if !tile.Occupants.Contains(e) {
		t.Fatal("spawned ant not listed by its tile")
	}
	s.Despawn(e)
	if tile.Occupants.Contains(e) {
		t.Error("despawned ant still listed")
	}
	if _, ok := s.View(e); ok {
		t.Error("View succeeded for despawned ant")
	}
	s.Despawn(e) // no-op
}

func TestLookupsRequireAntComponents(t *testing.T) {
	s, _ := newTestSystem(t, nil)
	ant := s.Spawn(40, 56, 0, 0)
	bare := ecs.NewMap[components.Motion](s.world).NewEntity(&components.Motion{})

	tests := []struct {
		name string
		e    ecs.Entity
		want bool
	}{
		{"live ant", ant, true},
		{"entity without position", bare, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := s.Position(tt.e); ok != tt.want {
				t.Errorf("Position ok = %v, want %v", ok, tt.want)
			}
			if _, ok := s.View(tt.e); ok != tt.want {
				t.Errorf("View ok = %v, want %v", ok, tt.want)
			}
		})
	}

	s.Despawn(ant)
	if _, _, ok := s.Position(ant); ok {
		t.Error("Position succeeded for despawned ant")
	}
}

func TestStuckAntDoesNotMove(t *testing.T) {
	s, g := newTestSystem(t, func(c *config.Config) { c.Ant.Erratic = 0 })
	cx, cy := g.TileAtIndex(5, 5).Center()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ox, oy := g.TileAtIndex(5+dx, 5+dy).Center()
			g.PlaceFeature(grid.NewObstacle(ox, oy))
		}
	}
	// Start in the south-east corner of the walled tile, facing the corner
	sx, sy := cx+7.9, cy+7.9
	e := s.Spawn(sx, sy, math.Pi/4, 0)
	pos := s.posMap.Get(e)
	mot := s.motionMap.Get(e)
	mot.Speed = 1

	s.move(pos, mot)

	if pos.X != sx || pos.Y != sy {
		t.Errorf("enclosed ant moved to (%v, %v)", pos.X, pos.Y)
	}
	if mot.Heading == math.Pi/4 {
		t.Error("heading unchanged after getting stuck")
	}
}
