package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{"empty slice", nil, Summary{}},
		{"single element", []float64{5}, Summary{Mean: 5, P10: 5, P50: 5, P90: 5}},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, Summary{Mean: 5.5, Std: 3.0277, P10: 1, P50: 5, P90: 9}},
		{"constant", []float64{2, 2, 2, 2}, Summary{Mean: 2, Std: 0, P10: 2, P50: 2, P90: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			check := func(field string, got, want float64) {
				if math.Abs(got-want) > 0.001 {
					t.Errorf("%s = %v, want %v", field, got, want)
				}
			}
			check("mean", got.Mean, tt.want.Mean)
			check("std", got.Std, tt.want.Std)
			check("p10", got.P10, tt.want.P10)
			check("p50", got.P50, tt.want.P50)
			check("p90", got.P90, tt.want.P90)
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input modified: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	if c.ShouldFlush(99) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(100) {
		t.Error("no flush at window end")
	}

	for i := 0; i < 4; i++ {
		c.RecordPickup()
	}
	c.RecordDelivery()
	c.RecordDelivery()
	c.RecordTeleport()
	c.RecordStuck()
	c.RecordTrailWrite()
	c.RecordTrailWrite()
	c.RecordTrailWrite()

	stats := c.Flush(100, Sample{
		Ants:          10,
		Carrying:      4,
		HomeCollected: 2,
		FoodSources:   3,
		FoodRemaining: 1400,
		FoodTrailAges: []float64{10, 20},
		HomeTrailAges: []float64{30},
	})

	if stats.Pickups != 4 || stats.Deliveries != 2 || stats.Teleports != 1 || stats.Stuck != 1 || stats.TrailWrites != 3 {
		t.Errorf("counters = %+v", stats)
	}
	if math.Abs(stats.CarryingFrac-0.4) > 1e-9 {
		t.Errorf("carrying frac = %v, want 0.4", stats.CarryingFrac)
	}
	if math.Abs(stats.DeliveryRate-20) > 1e-9 {
		t.Errorf("delivery rate = %v, want 20 per 1000 ticks", stats.DeliveryRate)
	}
	if stats.FoodMarks != 2 || stats.HomeMarks != 1 {
		t.Errorf("marks = %d/%d, want 2/1", stats.FoodMarks, stats.HomeMarks)
	}
	if math.Abs(stats.TrailAgeMean-20) > 1e-9 {
		t.Errorf("trail age mean = %v, want 20", stats.TrailAgeMean)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 100 {
		t.Errorf("window = [%d, %d], want [0, 100]", stats.WindowStartTick, stats.WindowEndTick)
	}

	next := c.Flush(200, Sample{})
	if next.Pickups != 0 || next.Deliveries != 0 {
		t.Error("counters not reset after flush")
	}
	if next.WindowStartTick != 100 {
		t.Errorf("next window start = %d, want 100", next.WindowStartTick)
	}
	if next.CarryingFrac != 0 {
		t.Error("carrying frac with no ants should be 0")
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(50)
	c.RecordPickup()
	c.Reset(500)

	if p, d := c.Totals(); p != 0 || d != 0 {
		t.Errorf("totals after reset = %d/%d", p, d)
	}
	if c.ShouldFlush(549) || !c.ShouldFlush(550) {
		t.Error("window not restarted at reset tick")
	}
	if c.WindowTicks() != 50 {
		t.Errorf("window ticks = %d, want 50", c.WindowTicks())
	}
}
