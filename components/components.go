// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/formica/grid"

// Task is what an ant is currently looking for.
type Task uint8

const (
	TaskSeekFood Task = iota
	TaskSeekHome
)

func (t Task) String() string {
	switch t {
	case TaskSeekFood:
		return "seek food"
	case TaskSeekHome:
		return "seek home"
	default:
		return "unknown"
	}
}

// Channel returns the trail channel an ant follows while on this task.
func (t Task) Channel() grid.Channel {
	if t == TaskSeekHome {
		return grid.ChannelHome
	}
	return grid.ChannelFood
}

// Never marks a timestamp that has not been observed.
const Never int64 = -1

// FoodMemory is the last place food was picked up.
type FoodMemory struct {
	X, Y  float32
	Tick  int64
	Valid bool
}

// Forager holds the task state machine and trail protocol state of an ant.
type Forager struct {
	Task     Task `inspect:"label"`
	Carrying bool `inspect:"label"`

	// Tick of last passive exposure to each feature type, Never if unseen.
	LastSeen [grid.NumChannels]int64 `inspect:"skip"`
	// Freshest trail timestamp acted upon since the last task switch.
	MaxTrailSeen int64 `inspect:"label"`

	// Trail writes are skipped while Suppressed and Tick < SuppressUntil.
	Suppressed    bool  `inspect:"label"`
	SuppressUntil int64 `inspect:"skip"`

	Countdown    int32 `inspect:"label"` // Ticks until the next trail pass
	LastTeleport int64 `inspect:"skip"`

	Food FoodMemory `inspect:"skip"`

	// Tile currently listing this ant as an occupant.
	Tile *grid.Tile `inspect:"skip"`
}

// NewForager returns a forager seeking food that already knows home.
func NewForager(homeSeen int64, countdown int32) Forager {
	f := Forager{
		Task:         TaskSeekFood,
		MaxTrailSeen: Never,
		Countdown:    countdown,
		LastTeleport: -999,
	}
	f.LastSeen[grid.ChannelFood] = Never
	f.LastSeen[grid.ChannelHome] = homeSeen
	return f
}
