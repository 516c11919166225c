package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstDelivery BookmarkType = "first_delivery"
	BookmarkDeliverySurge BookmarkType = "delivery_surge"
	BookmarkDeliveryStall BookmarkType = "delivery_stall"
	BookmarkFoodExhausted BookmarkType = "food_exhausted"
	BookmarkTrailCollapse BookmarkType = "trail_collapse"
)

// Bookmark marks a notable moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int64        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable colony events.
type BookmarkDetector struct {
	history []WindowStats
	idx     int
	full    bool

	delivered   bool // any delivery seen so far
	markPeak    int  // peak live marks since last collapse
	stalledOnce bool // stall already reported for the current dry spell
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{history: make([]WindowStats, historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	add := func(b *Bookmark) {
		if b != nil {
			out = append(out, *b)
		}
	}

	add(bd.checkFirstDelivery(stats))
	add(bd.checkDeliverySurge(stats))
	add(bd.checkDeliveryStall(stats))
	add(bd.checkFoodExhausted(stats))
	add(bd.checkTrailCollapse(stats))

	bd.history[bd.idx] = stats
	bd.idx = (bd.idx + 1) % len(bd.history)
	if bd.idx == 0 {
		bd.full = true
	}
	return out
}

func (bd *BookmarkDetector) recent() []WindowStats {
	if bd.full {
		return bd.history
	}
	return bd.history[:bd.idx]
}

func (bd *BookmarkDetector) previous() (WindowStats, bool) {
	if !bd.full && bd.idx == 0 {
		return WindowStats{}, false
	}
	return bd.history[(bd.idx-1+len(bd.history))%len(bd.history)], true
}

func (bd *BookmarkDetector) checkFirstDelivery(stats WindowStats) *Bookmark {
	if bd.delivered || stats.Deliveries == 0 {
		return nil
	}
	bd.delivered = true
	return &Bookmark{
		Type:        BookmarkFirstDelivery,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First food delivered home (%d this window)", stats.Deliveries),
	}
}

func (bd *BookmarkDetector) checkDeliverySurge(stats WindowStats) *Bookmark {
	history := bd.recent()
	if len(history) < 3 {
		return nil
	}
	var total float64
	for _, h := range history {
		total += h.DeliveryRate
	}
	avg := total / float64(len(history))
	if avg == 0 || stats.Deliveries < 5 {
		return nil
	}
	if stats.DeliveryRate > avg*2 {
		return &Bookmark{
			Type:        BookmarkDeliverySurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Delivery rate %.1f is %.1fx average (%.1f)", stats.DeliveryRate, stats.DeliveryRate/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDeliveryStall(stats WindowStats) *Bookmark {
	if stats.Deliveries > 0 {
		bd.stalledOnce = false
		return nil
	}
	prev, ok := bd.previous()
	if !ok || prev.Deliveries == 0 || bd.stalledOnce || stats.Ants == 0 {
		return nil
	}
	bd.stalledOnce = true
	return &Bookmark{
		Type:        BookmarkDeliveryStall,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No deliveries this window after %d last window", prev.Deliveries),
	}
}

func (bd *BookmarkDetector) checkFoodExhausted(stats WindowStats) *Bookmark {
	prev, ok := bd.previous()
	if !ok || prev.FoodSources == 0 || stats.FoodSources > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFoodExhausted,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Last of %d food sources emptied", prev.FoodSources),
	}
}

func (bd *BookmarkDetector) checkTrailCollapse(stats WindowStats) *Bookmark {
	marks := stats.FoodMarks + stats.HomeMarks
	if marks > bd.markPeak {
		bd.markPeak = marks
		return nil
	}
	if bd.markPeak < 20 || marks*2 >= bd.markPeak {
		return nil
	}
	old := bd.markPeak
	bd.markPeak = marks
	return &Bookmark{
		Type:        BookmarkTrailCollapse,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Live trail marks fell from %d to %d", old, marks),
	}
}
