package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayFoodTrails OverlayID = "food_trails"
	OverlayHomeTrails OverlayID = "home_trails"
	OverlayGridLines  OverlayID = "grid_lines"
	OverlayOccupancy  OverlayID = "occupancy"
	OverlayMemory     OverlayID = "memory"
	OverlayPerf       OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // 0 = no key
	KeyLabel  string // e.g. "F"
	Category  string
	Default   bool
	Exclusive []OverlayID // Disabled when this one is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID: OverlayFoodTrails, Name: "Food Trails",
		Key: rl.KeyF, KeyLabel: "F", Category: "trails", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayHomeTrails, Name: "Home Trails",
		Key: rl.KeyH, KeyLabel: "H", Category: "trails", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayGridLines, Name: "Grid Lines",
		Key: rl.KeyG, KeyLabel: "G", Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayOccupancy, Name: "Occupancy",
		Key: rl.KeyO, KeyLabel: "O", Category: "debug",
		Exclusive: []OverlayID{OverlayFoodTrails, OverlayHomeTrails},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayMemory, Name: "Ant Memory",
		Key: rl.KeyM, KeyLabel: "M", Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Performance",
		Key: rl.KeyP, KeyLabel: "P", Category: "debug",
	})
}

// Register adds an overlay in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// TrailsVisible reports whether either trail channel is drawn.
func (r *OverlayRegistry) TrailsVisible() bool {
	return r.enabled[OverlayFoodTrails] || r.enabled[OverlayHomeTrails]
}

// SetTrailsVisible turns both trail channels on or off.
func (r *OverlayRegistry) SetTrailsVisible(v bool) {
	r.SetEnabled(OverlayFoodTrails, v)
	r.SetEnabled(OverlayHomeTrails, v)
}
