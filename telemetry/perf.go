package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseForaging  = "foraging"
	PhaseFeatures  = "features"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseForaging, PhaseFeatures, PhaseTelemetry}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector keeps a ring of recent tick timings.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int

	phases     map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over the last windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:   make([]PerfSample, windowSize),
		phases: make(map[string]time.Duration),
		now:    time.Now,
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.phases = make(map[string]time.Duration, len(phaseOrder))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick finishes the current tick and stores its sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = ""
	p.Record(PerfSample{TickDuration: now.Sub(p.tickStart), Phases: p.phases})
}

// Record stores a finished sample, evicting the oldest once the ring is full.
func (p *PerfCollector) Record(s PerfSample) {
	p.ring[p.next] = s
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a rendered frame; the gap to the previous call is the frame time.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // of average tick time

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the ring.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		out.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i, s := range p.ring[:p.count] {
		total += s.TickDuration
		if i == 0 || s.TickDuration < out.MinTickDuration {
			out.MinTickDuration = s.TickDuration
		}
		if s.TickDuration > out.MaxTickDuration {
			out.MaxTickDuration = s.TickDuration
		}
		for phase, d := range s.Phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.count)
	out.AvgTickDuration = total / n
	for phase, sum := range sums {
		avg := sum / n
		out.PhaseAvg[phase] = avg
		if out.AvgTickDuration > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgTickDuration) * 100
		}
	}
	if out.AvgTickDuration > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(out.AvgTickDuration)
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	ForagingPct  float64 `csv:"foraging_pct"`
	FeaturesPct  float64 `csv:"features_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		ForagingPct:  s.PhasePct[PhaseForaging],
		FeaturesPct:  s.PhasePct[PhaseFeatures],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
