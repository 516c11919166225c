// Package telemetry provides colony statistics, bookmarks and CSV output.
package telemetry

// Sample is the colony state measured by the caller at flush time.
type Sample struct {
	Ants          int
	Carrying      int
	HomeCollected int
	FoodSources   int
	FoodRemaining int

	// Ages in ticks of every live mark, per channel
	FoodTrailAges []float64
	HomeTrailAges []float64
}

// Collector accumulates foraging events within windows of ticks and produces
// WindowStats. It satisfies the systems.Recorder interface.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	pickups     int
	deliveries  int
	teleports   int
	stuck       int
	trailWrites int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

func (c *Collector) RecordPickup()     { c.pickups++ }
func (c *Collector) RecordDelivery()   { c.deliveries++ }
func (c *Collector) RecordTeleport()   { c.teleports++ }
func (c *Collector) RecordStuck()      { c.stuck++ }
func (c *Collector) RecordTrailWrite() { c.trailWrites++ }

// ShouldFlush returns true if a full window has elapsed.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the counters and the sample, then
// resets counters for the next window.
func (c *Collector) Flush(currentTick int64, s Sample) WindowStats {
	var carryingFrac float64
	if s.Ants > 0 {
		carryingFrac = float64(s.Carrying) / float64(s.Ants)
	}

	var deliveryRate float64
	if span := currentTick - c.windowStartTick; span > 0 {
		deliveryRate = float64(c.deliveries) * 1000 / float64(span)
	}

	ages := make([]float64, 0, len(s.FoodTrailAges)+len(s.HomeTrailAges))
	ages = append(ages, s.FoodTrailAges...)
	ages = append(ages, s.HomeTrailAges...)
	sum := Summarize(ages)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Ants:          s.Ants,
		Carrying:      s.Carrying,
		CarryingFrac:  carryingFrac,
		HomeCollected: s.HomeCollected,
		FoodSources:   s.FoodSources,
		FoodRemaining: s.FoodRemaining,

		Pickups:     c.pickups,
		Deliveries:  c.deliveries,
		Teleports:   c.teleports,
		Stuck:       c.stuck,
		TrailWrites: c.trailWrites,

		DeliveryRate: deliveryRate,

		FoodMarks:    len(s.FoodTrailAges),
		HomeMarks:    len(s.HomeTrailAges),
		TrailAgeMean: sum.Mean,
		TrailAgeStd:  sum.Std,
		TrailAgeP10:  sum.P10,
		TrailAgeP50:  sum.P50,
		TrailAgeP90:  sum.P90,
	}

	c.windowStartTick = currentTick
	c.pickups = 0
	c.deliveries = 0
	c.teleports = 0
	c.stuck = 0
	c.trailWrites = 0

	return stats
}

// Reset discards counters and starts a new window at tick.
func (c *Collector) Reset(tick int64) {
	*c = Collector{windowTicks: c.windowTicks, windowStartTick: tick}
}

// Totals returns the counters accumulated in the current window.
func (c *Collector) Totals() (pickups, deliveries int) {
	return c.pickups, c.deliveries
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
