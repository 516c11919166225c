// Package grid provides the tiled world: map features, trail marks and
// per-tile ant membership.
package grid

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
)

const (
	// DefaultEscapeSpeed is the speed given to ants pushed out of a new obstacle.
	DefaultEscapeSpeed = 2.0
	// escapePush is the push distance as a fraction of tile size.
	escapePush = 0.8
)

// escapeAngles are probed in order when the direct push lands on a blocked tile.
var escapeAngles = [8]float64{
	0, math.Pi / 4, math.Pi / 2, 3 * math.Pi / 4,
	math.Pi, -3 * math.Pi / 4, -math.Pi / 2, -math.Pi / 4,
}

// Mover relocates ants on behalf of the grid.
// The grid has already moved the ant's membership to tile when Displace is called.
type Mover interface {
	Position(e ecs.Entity) (x, y float32, ok bool)
	Displace(e ecs.Entity, x, y, heading, speed float32, tile *Tile)
}

// Grid is a fixed array of tiles covering a bounded world exactly.
type Grid struct {
	width, height float32
	tileSize      float32
	cols, rows    int
	tiles         []Tile

	features map[FeatureID]*Feature
	order    []FeatureID
	nextID   FeatureID

	tick int64

	rng         *rand.Rand
	mover       Mover
	escapeSpeed float32
}

// New creates a grid of width/tileSize by height/tileSize tiles.
func New(width, height, tileSize float32, rng *rand.Rand) *Grid {
	cols := int(math.Ceil(float64(width / tileSize)))
	rows := int(math.Ceil(float64(height / tileSize)))

	g := &Grid{
		width:       width,
		height:      height,
		tileSize:    tileSize,
		cols:        cols,
		rows:        rows,
		tiles:       make([]Tile, cols*rows),
		features:    make(map[FeatureID]*Feature),
		rng:         rng,
		escapeSpeed: DefaultEscapeSpeed,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t := &g.tiles[row*cols+col]
			t.Col, t.Row, t.Size = col, row, tileSize
			t.setFeature(nil)
		}
	}
	return g
}

// SetMover registers the owner of the ants referenced by tile occupants.
func (g *Grid) SetMover(m Mover) { g.mover = m }

// SetEscapeSpeed overrides the speed given to displaced ants.
func (g *Grid) SetEscapeSpeed(s float32) { g.escapeSpeed = s }

// Width returns the world width.
func (g *Grid) Width() float32 { return g.width }

// Height returns the world height.
func (g *Grid) Height() float32 { return g.height }

// TileSize returns the edge length of a tile.
func (g *Grid) TileSize() float32 { return g.tileSize }

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Tick returns the number of completed simulation ticks.
func (g *Grid) Tick() int64 { return g.tick }

// InBounds reports whether the world point lies inside the world.
func (g *Grid) InBounds(x, y float32) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// TileAt returns the tile containing the world point, or nil when out of bounds.
func (g *Grid) TileAt(x, y float32) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.TileAtIndex(int(x/g.tileSize), int(y/g.tileSize))
}

// TileAtIndex returns the tile at grid coordinates, or nil when out of range.
func (g *Grid) TileAtIndex(col, row int) *Tile {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return nil
	}
	return &g.tiles[row*g.cols+col]
}

// Tiles returns all tiles in row-major order.
func (g *Grid) Tiles() []Tile { return g.tiles }

// IsPassable is false out of bounds or on a blocked tile.
func (g *Grid) IsPassable(x, y float32) bool {
	t := g.TileAt(x, y)
	return t != nil && t.passable
}

// FrictionAt returns the tile friction, 1 when out of bounds.
func (g *Grid) FrictionAt(x, y float32) float32 {
	t := g.TileAt(x, y)
	if t == nil {
		return 1
	}
	return t.friction
}

// FeatureAt returns the feature on the tile containing the point, or nil.
func (g *Grid) FeatureAt(x, y float32) *Feature {
	t := g.TileAt(x, y)
	if t == nil {
		return nil
	}
	return t.feature
}

// Feature looks up a placed feature by id.
func (g *Grid) Feature(id FeatureID) *Feature {
	if id == 0 {
		return nil
	}
	return g.features[id]
}

// Features returns placed features in placement order.
func (g *Grid) Features() []*Feature {
	out := make([]*Feature, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.features[id])
	}
	return out
}

// FindFeature returns the first placed feature of the given kind, or nil.
func (g *Grid) FindFeature(kind FeatureKind) *Feature {
	for _, id := range g.order {
		if f := g.features[id]; f.Kind == kind {
			return f
		}
	}
	return nil
}

// PlaceFeature installs f on the tile under its position, evicting any
// existing feature. Ants inside a tile that becomes impassable are pushed out.
// Returns false when the position is outside the world.
func (g *Grid) PlaceFeature(f *Feature) bool {
	t := g.TileAt(f.X, f.Y)
	if t == nil {
		return false
	}
	if f.placed {
		g.RemoveFeature(f)
	}
	if t.feature != nil {
		g.RemoveFeature(t.feature)
	}

	g.nextID++
	f.ID = g.nextID
	f.col, f.row = t.Col, t.Row
	f.placed = true
	t.setFeature(f)
	g.features[f.ID] = f
	g.order = append(g.order, f.ID)

	if !f.Passable {
		g.evict(t)
	}
	return true
}

// evict pushes every occupant of t out of the tile.
func (g *Grid) evict(t *Tile) {
	if g.mover == nil {
		return
	}
	cx, cy := t.Center()
	push := float64(g.tileSize) * escapePush

	for e := range t.Occupants.All() {
		x, y, ok := g.mover.Position(e)
		if !ok {
			t.Occupants.Remove(e)
			continue
		}

		dx := float64(x - cx)
		dy := float64(y - cy)
		var angle float64
		if math.Sqrt(dx*dx+dy*dy) < 1 {
			angle = g.rng.Float64() * 2 * math.Pi
		} else {
			angle = math.Atan2(dy, dx)
		}

		nx := cx + float32(math.Cos(angle)*push)
		ny := cy + float32(math.Sin(angle)*push)
		if !g.IsPassable(nx, ny) {
			for _, a := range escapeAngles {
				tx := cx + float32(math.Cos(a)*push)
				ty := cy + float32(math.Sin(a)*push)
				if g.IsPassable(tx, ty) {
					nx, ny, angle = tx, ty, a
					break
				}
			}
		}

		nx = clampf(nx, 0, g.width-1)
		ny = clampf(ny, 0, g.height-1)

		dest := g.TileAt(nx, ny)
		if dest != t {
			t.Occupants.Remove(e)
			if dest != nil {
				dest.Occupants.Add(e)
			}
		}
		g.mover.Displace(e, nx, ny, normalizeAngle(float32(angle)), g.escapeSpeed, dest)
	}
}

// RemoveFeature detaches f from its tile and the feature index.
// A removed teleporter leaves its partner unlinked. Safe on detached features.
func (g *Grid) RemoveFeature(f *Feature) {
	if f == nil {
		return
	}
	if f.ID != 0 && g.features[f.ID] == f {
		delete(g.features, f.ID)
		for i, id := range g.order {
			if id == f.ID {
				g.order = append(g.order[:i], g.order[i+1:]...)
				break
			}
		}
	}
	if f.placed {
		if t := g.TileAtIndex(f.col, f.row); t != nil && t.feature == f {
			t.setFeature(nil)
		}
	}
	f.placed = false

	if f.Kind == KindTeleporter && f.Link != 0 {
		if other := g.features[f.Link]; other != nil && other.Link == f.ID {
			other.Link = 0
		}
		f.Link = 0
	}
}

// Link pairs two placed teleporters. Any previous partners are unlinked.
// Rejects anything that is not two distinct placed teleporters.
func (g *Grid) Link(a, b FeatureID) bool {
	fa, fb := g.Feature(a), g.Feature(b)
	if fa == nil || fb == nil || fa == fb {
		return false
	}
	if fa.Kind != KindTeleporter || fb.Kind != KindTeleporter {
		return false
	}
	g.unlink(fa)
	g.unlink(fb)
	fa.Link, fb.Link = fb.ID, fa.ID
	fb.Color = fa.Color
	return true
}

func (g *Grid) unlink(f *Feature) {
	if other := g.Feature(f.Link); other != nil && other.Link == f.ID {
		other.Link = 0
	}
	f.Link = 0
}

// TeleportTarget returns the center of the tile holding f's partner.
func (g *Grid) TeleportTarget(f *Feature) (x, y float32, ok bool) {
	if f.Kind != KindTeleporter {
		return 0, 0, false
	}
	other := g.Feature(f.Link)
	if other == nil || !other.placed {
		return 0, 0, false
	}
	x, y = g.TileAtIndex(other.col, other.row).Center()
	return x, y, true
}

// AdvanceTick increments the tick counter and lets every feature update itself.
func (g *Grid) AdvanceTick() {
	g.tick++
	for _, id := range g.order {
		g.features[id].advance(g.tick)
	}
}

// ClearAll detaches every feature and wipes all trail marks.
// The tick counter and occupant lists are kept.
func (g *Grid) ClearAll() {
	for _, f := range g.features {
		f.placed = false
		f.Link = 0
	}
	clear(g.features)
	g.order = g.order[:0]

	for i := range g.tiles {
		g.tiles[i].setFeature(nil)
		g.tiles[i].ClearTrails()
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalizeAngle wraps an angle to (-Pi, Pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
