package grid

import "github.com/mlange-42/ark/ecs"

// Channel selects one of the two trail channels.
type Channel uint8

const (
	ChannelFood Channel = iota
	ChannelHome
	NumChannels
)

func (c Channel) String() string {
	switch c {
	case ChannelFood:
		return "food"
	case ChannelHome:
		return "home"
	default:
		return "unknown"
	}
}

// TrailMark records the point an ant came from and the tick its
// information was last refreshed.
type TrailMark struct {
	X, Y      float32
	Timestamp int64
}

// Tile is one fixed-size cell of the grid.
type Tile struct {
	Col, Row int
	Size     float32

	// Ants currently inside this tile. Membership only.
	Occupants QuickList[ecs.Entity]

	passable bool
	friction float32
	feature  *Feature

	trails   [NumChannels]TrailMark
	hasTrail [NumChannels]bool
}

// MinX returns the world x of the tile's left edge.
func (t *Tile) MinX() float32 { return float32(t.Col) * t.Size }

// MinY returns the world y of the tile's top edge.
func (t *Tile) MinY() float32 { return float32(t.Row) * t.Size }

// Center returns the tile's center in world coordinates.
func (t *Tile) Center() (x, y float32) {
	return t.MinX() + t.Size/2, t.MinY() + t.Size/2
}

// Contains reports whether the world point lies inside the tile.
func (t *Tile) Contains(x, y float32) bool {
	return x >= t.MinX() && x < t.MinX()+t.Size && y >= t.MinY() && y < t.MinY()+t.Size
}

// Passable reports whether ants may enter the tile.
func (t *Tile) Passable() bool { return t.passable }

// Friction returns the tile's speed multiplier.
func (t *Tile) Friction() float32 { return t.friction }

// Feature returns the placed feature, or nil.
func (t *Tile) Feature() *Feature { return t.feature }

// Trail returns the mark on the given channel, if any.
func (t *Tile) Trail(ch Channel) (TrailMark, bool) {
	return t.trails[ch], t.hasTrail[ch]
}

// SetTrail overwrites the mark on the given channel.
func (t *Tile) SetTrail(ch Channel, m TrailMark) {
	t.trails[ch] = m
	t.hasTrail[ch] = true
}

// ClearTrails removes both channel marks.
func (t *Tile) ClearTrails() {
	t.hasTrail = [NumChannels]bool{}
	t.trails = [NumChannels]TrailMark{}
}

func (t *Tile) setFeature(f *Feature) {
	t.feature = f
	if f != nil {
		t.passable = f.Passable
		t.friction = f.Friction
	} else {
		t.passable = true
		t.friction = 1
	}
}
