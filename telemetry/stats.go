package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one window of ticks.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Colony state at window end
	Ants          int     `csv:"ants"`
	Carrying      int     `csv:"carrying"`
	CarryingFrac  float64 `csv:"carrying_frac"`
	HomeCollected int     `csv:"home_collected"`
	FoodSources   int     `csv:"food_sources"`
	FoodRemaining int     `csv:"food_remaining"`

	// Events during window
	Pickups     int `csv:"pickups"`
	Deliveries  int `csv:"deliveries"`
	Teleports   int `csv:"teleports"`
	Stuck       int `csv:"stuck"`
	TrailWrites int `csv:"trail_writes"`

	// Deliveries per 1000 ticks
	DeliveryRate float64 `csv:"delivery_rate"`

	// Live trail marks sampled at window end
	FoodMarks    int     `csv:"food_marks"`
	HomeMarks    int     `csv:"home_marks"`
	TrailAgeMean float64 `csv:"trail_age_mean"`
	TrailAgeStd  float64 `csv:"trail_age_std"`
	TrailAgeP10  float64 `csv:"trail_age_p10"`
	TrailAgeP50  float64 `csv:"trail_age_p50"`
	TrailAgeP90  float64 `csv:"trail_age_p90"`
}

// Summary is a five-number description of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, sample standard deviation, and empirical
// percentiles. Returns the zero Summary for an empty slice.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("ants", s.Ants),
		slog.Int("carrying", s.Carrying),
		slog.Float64("carrying_frac", s.CarryingFrac),
		slog.Int("home_collected", s.HomeCollected),
		slog.Int("food_sources", s.FoodSources),
		slog.Int("food_remaining", s.FoodRemaining),
		slog.Int("pickups", s.Pickups),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("teleports", s.Teleports),
		slog.Int("stuck", s.Stuck),
		slog.Int("trail_writes", s.TrailWrites),
		slog.Float64("delivery_rate", s.DeliveryRate),
		slog.Int("food_marks", s.FoodMarks),
		slog.Int("home_marks", s.HomeMarks),
		slog.Float64("trail_age_mean", s.TrailAgeMean),
		slog.Float64("trail_age_std", s.TrailAgeStd),
		slog.Float64("trail_age_p10", s.TrailAgeP10),
		slog.Float64("trail_age_p50", s.TrailAgeP50),
		slog.Float64("trail_age_p90", s.TrailAgeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"ants", s.Ants,
		"carrying_frac", s.CarryingFrac,
		"home_collected", s.HomeCollected,
		"food_sources", s.FoodSources,
		"food_remaining", s.FoodRemaining,
		"pickups", s.Pickups,
		"deliveries", s.Deliveries,
		"teleports", s.Teleports,
		"stuck", s.Stuck,
		"trail_writes", s.TrailWrites,
		"delivery_rate", s.DeliveryRate,
		"food_marks", s.FoodMarks,
		"home_marks", s.HomeMarks,
		"trail_age_mean", s.TrailAgeMean,
		"trail_age_p50", s.TrailAgeP50,
	)
}
