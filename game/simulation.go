package game

import "github.com/pthm-cable/formica/telemetry"

// Step runs exactly one tick: every ant in order, then the feature pass,
// then telemetry.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseForaging)
	g.foraging.Update(g.ants)

	g.perfCollector.StartPhase(telemetry.PhaseFeatures)
	g.grid.AdvanceTick()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// advance adds Speed to the accumulator and runs one tick per whole unit.
// Returns the number of ticks run.
func (g *Game) advance() int {
	g.accumulator += g.settings.Speed
	n := 0
	for g.accumulator >= 1 {
		g.accumulator--
		g.Step()
		n++
	}
	return n
}

// Update processes input and advances the simulation by the current speed.
func (g *Game) Update() {
	g.handleInput()
	if g.settings.Paused {
		return
	}
	g.advance()
}

// UpdateHeadless runs StepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// RunTicks runs n ticks back to back.
func (g *Game) RunTicks(n int) {
	for i := 0; i < n; i++ {
		g.Step()
	}
}
