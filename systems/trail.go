package systems

import "github.com/pthm-cable/formica/config"

// TrailDisplay maps a trail mark's age to a display weight in [Floor, 1].
type TrailDisplay struct {
	DecayTime float32
	Fade      float32 // Fraction of DecayTime over which weight reaches 0
	Cutoff    float32 // Weights below this snap to Floor
	Floor     float32
}

// TrailDisplayFromConfig builds a TrailDisplay from the pheromone section.
func TrailDisplayFromConfig(cfg *config.Config) TrailDisplay {
	p := cfg.Pheromone
	return TrailDisplay{
		DecayTime: float32(p.DecayTime),
		Fade:      float32(p.DisplayFade),
		Cutoff:    float32(p.DisplayCutoff),
		Floor:     float32(p.DisplayFloor),
	}
}

// Weight returns the display weight for a mark of the given age in ticks.
// It falls linearly from 1 and holds at Floor once below Cutoff.
func (d TrailDisplay) Weight(age int64) float32 {
	if age < 0 {
		age = 0
	}
	w := 1 - float32(age)/(d.DecayTime*d.Fade)
	if w < d.Cutoff {
		return d.Floor
	}
	return w
}

// Live reports whether a mark of this age is still sensed by ants.
func (d TrailDisplay) Live(age int64) bool {
	return float32(age) < d.DecayTime
}
