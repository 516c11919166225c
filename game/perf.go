package game

import (
	"sort"
	"time"
)

// PerfStats keeps a rolling window of render phase durations.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a tracker averaging over the last maxSamples frames.
func NewPerfStats(maxSamples int) *PerfStats {
	if maxSamples < 1 {
		maxSamples = 120
	}
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: maxSamples,
	}
}

// Record adds a duration sample for the named phase.
func (p *PerfStats) Record(name string, d time.Duration) {
	s := append(p.samples[name], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[name] = s
}

// Time runs fn and records its duration under name.
func (p *PerfStats) Time(name string, fn func()) {
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// Avg returns the average duration for the named phase.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all average durations.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// Averages returns the average of every phase by name.
func (p *PerfStats) Averages() map[string]time.Duration {
	out := make(map[string]time.Duration, len(p.samples))
	for name := range p.samples {
		out[name] = p.Avg(name)
	}
	return out
}

// SortedNames returns phase names sorted by average duration, slowest first.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai, aj := p.Avg(names[i]), p.Avg(names[j])
		if ai != aj {
			return ai > aj
		}
		return names[i] < names[j]
	})
	return names
}
