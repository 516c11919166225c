package systems

import "github.com/pthm-cable/formica/config"

// AntParams caches the config values read on the per-ant hot path.
type AntParams struct {
	MaxSpeed         float32
	Acceleration     float32
	Friction         float32
	Erratic          float32
	SightDistance    float32
	SightAngle       float32
	MemorySize       int
	CommunicateMin   int
	CommunicateMax   int
	TeleportCooldown int64
	ArriveRadius     float32
	DecayTime        int64
}

// ParamsFromConfig extracts AntParams from a loaded config.
func ParamsFromConfig(cfg *config.Config) AntParams {
	a := cfg.Ant
	return AntParams{
		MaxSpeed:         float32(a.MaxSpeed),
		Acceleration:     float32(a.Acceleration),
		Friction:         float32(a.Friction),
		Erratic:          float32(a.Erratic),
		SightDistance:    float32(a.SightDistance),
		SightAngle:       float32(a.SightAngle),
		MemorySize:       a.MemorySize,
		CommunicateMin:   a.CommunicateMin,
		CommunicateMax:   a.CommunicateMax,
		TeleportCooldown: int64(a.TeleportCooldown),
		ArriveRadius:     float32(a.ArriveRadius),
		DecayTime:        int64(cfg.Pheromone.DecayTime),
	}
}

// Recorder receives foraging events. telemetry.Collector implements it.
type Recorder interface {
	RecordPickup()
	RecordDelivery()
	RecordTeleport()
	RecordStuck()
	RecordTrailWrite()
}

type nopRecorder struct{}

func (nopRecorder) RecordPickup()     {}
func (nopRecorder) RecordDelivery()   {}
func (nopRecorder) RecordTeleport()   {}
func (nopRecorder) RecordStuck()      {}
func (nopRecorder) RecordTrailWrite() {}
