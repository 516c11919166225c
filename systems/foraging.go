// Package systems provides ECS systems for the simulation.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/grid"
)

// ForagingSystem runs the per-tick ant algorithm: record position, move,
// track tile membership, interact with features, and exchange trail marks.
type ForagingSystem struct {
	world  *ecs.World
	grid   *grid.Grid
	rng    *rand.Rand
	params AntParams
	rec    Recorder

	antMapper *ecs.Map4[components.Position, components.Motion, components.Forager, components.PositionMemory]
	antFilter *ecs.Filter4[components.Position, components.Motion, components.Forager, components.PositionMemory]
	posMap    *ecs.Map[components.Position]
	motionMap *ecs.Map[components.Motion]
	foragers  *ecs.Map[components.Forager]
	memoryMap *ecs.Map[components.PositionMemory]
}

// NewForagingSystem creates the system and registers it as the grid's mover.
func NewForagingSystem(w *ecs.World, g *grid.Grid, params AntParams, rng *rand.Rand) *ForagingSystem {
	s := &ForagingSystem{
		world:     w,
		grid:      g,
		rng:       rng,
		params:    params,
		rec:       nopRecorder{},
		antMapper: ecs.NewMap4[components.Position, components.Motion, components.Forager, components.PositionMemory](w),
		antFilter: ecs.NewFilter4[components.Position, components.Motion, components.Forager, components.PositionMemory](w),
		posMap:    ecs.NewMap[components.Position](w),
		motionMap: ecs.NewMap[components.Motion](w),
		foragers:  ecs.NewMap[components.Forager](w),
		memoryMap: ecs.NewMap[components.PositionMemory](w),
	}
	g.SetMover(s)
	return s
}

// SetRecorder routes foraging events to r. Nil disables recording.
func (s *ForagingSystem) SetRecorder(r Recorder) {
	if r == nil {
		s.rec = nopRecorder{}
		return
	}
	s.rec = r
}

// Params returns the cached ant parameters.
func (s *ForagingSystem) Params() AntParams { return s.params }

// Spawn creates an ant at (x, y) facing heading. homeSeen is the tick the
// ant is considered to have last seen home.
func (s *ForagingSystem) Spawn(x, y, heading float32, homeSeen int64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	mot := components.Motion{Heading: normalizeAngle(heading)}
	f := components.NewForager(homeSeen, s.randomCountdown())
	mem := components.NewPositionMemory(s.params.MemorySize, x, y)

	e := s.antMapper.NewEntity(&pos, &mot, &f, &mem)
	s.updateTile(e, s.posMap.Get(e), s.foragers.Get(e))
	return e
}

// Despawn removes the ant from its tile and the world.
func (s *ForagingSystem) Despawn(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	if f := s.foragers.Get(e); f.Tile != nil {
		f.Tile.Occupants.Remove(e)
		f.Tile = nil
	}
	s.world.RemoveEntity(e)
}

// Update advances every ant once, in the given order.
// Ants later in the order observe trail writes made earlier in the same tick.
func (s *ForagingSystem) Update(order []ecs.Entity) {
	for _, e := range order {
		s.UpdateAnt(e)
	}
}

// UpdateAnt runs one tick of the algorithm for a single ant.
func (s *ForagingSystem) UpdateAnt(e ecs.Entity) {
	pos := s.posMap.Get(e)
	mot := s.motionMap.Get(e)
	f := s.foragers.Get(e)
	mem := s.memoryMap.Get(e)
	now := s.grid.Tick()

	mem.Record(pos.X, pos.Y)

	s.move(pos, mot)

	s.updateTile(e, pos, f)

	s.interact(e, pos, mot, f, now)

	if f.Suppressed && now >= f.SuppressUntil {
		f.Suppressed = false
	}

	f.Countdown--
	if f.Countdown <= 0 {
		s.communicate(pos, mot, f, mem, now)
		f.Countdown = s.randomCountdown()
	}
}

// updateTile moves the ant's membership when it crosses into another tile.
func (s *ForagingSystem) updateTile(e ecs.Entity, pos *components.Position, f *components.Forager) {
	tile := s.grid.TileAt(pos.X, pos.Y)
	if tile == f.Tile {
		return
	}
	if f.Tile != nil {
		f.Tile.Occupants.Remove(e)
	}
	if tile != nil {
		tile.Occupants.Add(e)
	}
	f.Tile = tile
}

// taskFound flips the task after a pickup or a delivery.
func (s *ForagingSystem) taskFound(mot *components.Motion, f *components.Forager, now int64) {
	if f.Task == components.TaskSeekFood {
		f.Task = components.TaskSeekHome
	} else {
		f.Task = components.TaskSeekFood
	}
	mot.Heading = normalizeAngle(mot.Heading + pi)
	mot.Speed = 0
	f.Suppressed = true
	f.SuppressUntil = now + int64(s.params.MemorySize)
	f.MaxTrailSeen = 0
}

func (s *ForagingSystem) randomCountdown() int32 {
	lo, hi := s.params.CommunicateMin, s.params.CommunicateMax
	return int32(lo + s.rng.Intn(hi-lo+1))
}

// Position implements grid.Mover.
func (s *ForagingSystem) Position(e ecs.Entity) (x, y float32, ok bool) {
	if !s.world.Alive(e) || !s.posMap.Has(e) {
		return 0, 0, false
	}
	p := s.posMap.Get(e)
	return p.X, p.Y, true
}

// Displace implements grid.Mover. Membership was already moved by the grid.
func (s *ForagingSystem) Displace(e ecs.Entity, x, y, heading, speed float32, tile *grid.Tile) {
	pos := s.posMap.Get(e)
	mot := s.motionMap.Get(e)
	pos.X, pos.Y = x, y
	mot.Heading = heading
	mot.Speed = speed
	s.foragers.Get(e).Tile = tile
}

// AntView is a read-only snapshot of one ant for rendering and inspection.
type AntView struct {
	Entity   ecs.Entity
	X, Y     float32
	Heading  float32
	Speed    float32
	Task     components.Task
	Carrying bool
}

// View returns a snapshot of the ant, or false if it no longer exists.
func (s *ForagingSystem) View(e ecs.Entity) (AntView, bool) {
	if !s.world.Alive(e) || !s.posMap.Has(e) {
		return AntView{}, false
	}
	pos := s.posMap.Get(e)
	mot := s.motionMap.Get(e)
	f := s.foragers.Get(e)
	return AntView{
		Entity:   e,
		X:        pos.X,
		Y:        pos.Y,
		Heading:  mot.Heading,
		Speed:    mot.Speed,
		Task:     f.Task,
		Carrying: f.Carrying,
	}, true
}

// Views appends a snapshot of every live ant to dst and returns it.
// Order follows ECS storage, not the update order.
func (s *ForagingSystem) Views(dst []AntView) []AntView {
	query := s.antFilter.Query()
	for query.Next() {
		pos, mot, f, _ := query.Get()
		dst = append(dst, AntView{
			Entity:   query.Entity(),
			X:        pos.X,
			Y:        pos.Y,
			Heading:  mot.Heading,
			Speed:    mot.Speed,
			Task:     f.Task,
			Carrying: f.Carrying,
		})
	}
	return dst
}

// Forager exposes the forager component, for inspection and tests.
func (s *ForagingSystem) Forager(e ecs.Entity) *components.Forager {
	return s.foragers.Get(e)
}

// Memory exposes the position memory component.
func (s *ForagingSystem) Memory(e ecs.Entity) *components.PositionMemory {
	return s.memoryMap.Get(e)
}
