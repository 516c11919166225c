package main

import (
	"math"

	"github.com/pthm-cable/formica/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Integer bool
}

// ParamVector holds the tunable ant parameters in a fixed order.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the movement and communication parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "erratic", Min: 0.02, Max: 0.8},
			{Name: "sight_distance", Min: 8, Max: 64},
			{Name: "communicate_min", Min: 1, Max: 20, Integer: true},
			{Name: "communicate_max", Min: 1, Max: 40, Integer: true},
			{Name: "memory_size", Min: 2, Max: 40, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize maps raw values to [0,1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = (raw[i] - s.Min) / (s.Max - s.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to clamped raw values. Integer
// parameters are rounded.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		v := s.Min + x[i]*(s.Max-s.Min)
		v = min(max(v, s.Min), s.Max)
		if s.Integer {
			v = math.Round(v)
		}
		out[i] = v
	}
	return out
}

// ApplyToConfig writes raw values into cfg. communicate_max is raised to
// communicate_min when the search crosses them.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	cfg.Ant.Erratic = raw[0]
	cfg.Ant.SightDistance = raw[1]
	cfg.Ant.CommunicateMin = int(raw[2])
	cfg.Ant.CommunicateMax = max(int(raw[3]), cfg.Ant.CommunicateMin)
	cfg.Ant.MemorySize = int(raw[4])
}

// ExtractFromConfig reads the current raw values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Ant.Erratic,
		cfg.Ant.SightDistance,
		float64(cfg.Ant.CommunicateMin),
		float64(cfg.Ant.CommunicateMax),
		float64(cfg.Ant.MemorySize),
	}
}
