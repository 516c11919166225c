package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/grid"
)

// interact handles the feature on the ant's current tile.
// Passing over food or home refreshes LastSeen whatever the task; pickup
// and delivery only happen when the feature matches the task.
func (s *ForagingSystem) interact(e ecs.Entity, pos *components.Position, mot *components.Motion, f *components.Forager, now int64) {
	if f.Tile == nil {
		return
	}
	feat := f.Tile.Feature()
	if feat == nil {
		return
	}

	switch feat.Kind {
	case grid.KindFood:
		f.LastSeen[grid.ChannelFood] = now
		if f.Task != components.TaskSeekFood || !feat.Take() {
			return
		}
		f.Carrying = true
		f.Food = components.FoodMemory{X: pos.X, Y: pos.Y, Tick: now, Valid: true}
		s.taskFound(mot, f, now)
		s.rec.RecordPickup()
		if feat.IsEmpty() {
			s.grid.RemoveFeature(feat)
		}

	case grid.KindHome:
		f.LastSeen[grid.ChannelHome] = now
		if f.Task != components.TaskSeekHome {
			return
		}
		feat.Deposit()
		f.Carrying = false
		s.taskFound(mot, f, now)
		s.rec.RecordDelivery()

	case grid.KindTeleporter:
		if now-f.LastTeleport <= s.params.TeleportCooldown {
			return
		}
		x, y, ok := s.grid.TeleportTarget(feat)
		if !ok {
			return
		}
		pos.X, pos.Y = x, y
		f.LastTeleport = now
		mot.Speed = s.params.MaxSpeed
		s.updateTile(e, pos, f)
		s.rec.RecordTeleport()

	case grid.KindGrass, grid.KindObstacle:
	}
}
