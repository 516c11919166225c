package systems

import (
	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/grid"
)

// communicate reads the task channel from the 3x3 neighborhood, then writes
// both channels on the current tile unless writes are suppressed.
func (s *ForagingSystem) communicate(pos *components.Position, mot *components.Motion, f *components.Forager, mem *components.PositionMemory, now int64) {
	tile := f.Tile
	if tile == nil {
		return
	}

	s.sense(tile, pos, mot, f, now)

	if f.Suppressed {
		return
	}
	crumb := mem.OldestPosition()
	for ch := grid.Channel(0); ch < grid.NumChannels; ch++ {
		s.deposit(tile, ch, crumb, f)
	}
}

// sense steers toward the freshest live mark not yet acted upon.
func (s *ForagingSystem) sense(tile *grid.Tile, pos *components.Position, mot *components.Motion, f *components.Forager, now int64) {
	ch := f.Task.Channel()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := s.grid.TileAtIndex(tile.Col+dx, tile.Row+dy)
			if n == nil {
				continue
			}
			mark, ok := n.Trail(ch)
			if !ok || now-mark.Timestamp >= s.params.DecayTime {
				continue
			}
			if mark.Timestamp > f.MaxTrailSeen {
				f.MaxTrailSeen = mark.Timestamp
				s.headTo(pos, mot, mark.X, mark.Y)
			}
		}
	}
}

// deposit writes the breadcrumb on channel ch if the ant's information is
// fresher than the existing mark.
func (s *ForagingSystem) deposit(tile *grid.Tile, ch grid.Channel, crumb components.Position, f *components.Forager) {
	seen := f.LastSeen[ch]
	if seen < 0 {
		return
	}

	if ch == grid.ChannelFood && f.Food.Valid {
		feat := s.grid.FeatureAt(f.Food.X, f.Food.Y)
		if feat == nil || feat.Kind != grid.KindFood {
			f.Food = components.FoodMemory{}
			f.LastSeen[grid.ChannelFood] = components.Never
			return
		}
	}

	if existing, ok := tile.Trail(ch); ok && seen <= existing.Timestamp {
		return
	}
	tile.SetTrail(ch, grid.TrailMark{X: crumb.X, Y: crumb.Y, Timestamp: seen})
	s.rec.RecordTrailWrite()
}

// headTo points the ant straight at (x, y) unless it is already there.
func (s *ForagingSystem) headTo(pos *components.Position, mot *components.Motion, x, y float32) {
	r := s.params.ArriveRadius
	if distanceSq(pos.X, pos.Y, x, y) < r*r {
		return
	}
	mot.Heading = atan2f(y-pos.Y, x-pos.X)
}
