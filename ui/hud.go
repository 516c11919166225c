package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title             string
	Tick              int64
	Ants              int
	Carrying          int
	HomeCollected     int
	FoodSources       int
	FoodRemaining     int
	Deliveries        int
	Speed             float64
	FPS               int32
	Paused            bool
	Tool              Tool
	PendingTeleporter bool
}

// colonySection describes the colony stats block.
var colonySection = SectionDescriptor{
	Title: "Colony",
	Fields: []FieldDescriptor{
		{Label: "Ants", Widget: WidgetText, TextGetter: func(d any) string {
			return fmt.Sprintf("%d", d.(HUDData).Ants)
		}},
		{Label: "Carrying", Widget: WidgetBar, Getter: func(d any) float32 {
			h := d.(HUDData)
			if h.Ants == 0 {
				return 0
			}
			return float32(h.Carrying) / float32(h.Ants)
		}},
		{Label: "Collected", Widget: WidgetText, TextGetter: func(d any) string {
			return fmt.Sprintf("%d", d.(HUDData).HomeCollected)
		}},
		{Label: "Deliveries", Widget: WidgetText, TextGetter: func(d any) string {
			return fmt.Sprintf("%d", d.(HUDData).Deliveries)
		}},
		{Label: "Food left", Widget: WidgetText, TextGetter: func(d any) string {
			h := d.(HUDData)
			return fmt.Sprintf("%d in %d sources", h.FoodRemaining, h.FoodSources)
		}},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	width := int32(240)
	height := 70 + r.SectionHeight(colonySection, data) + pad

	r.DrawPanel(pad, pad, width, height)
	x := pad * 2
	y := pad * 2

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 24

	rl.DrawText(fmt.Sprintf("Tick: %d | Speed: %.1fx | FPS: %d", data.Tick, data.Speed, data.FPS),
		x, y, r.Theme.FontSize, rl.LightGray)
	y += r.Theme.LineHeight

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	tool := data.Tool.String()
	if data.PendingTeleporter {
		tool += " (place exit)"
	}
	rl.DrawText(fmt.Sprintf("%s | Tool: %s", status, tool), x, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight + 6

	r.DrawSection(x, y, colonySection, data, width-2*pad)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds per-phase frame timings for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Total      time.Duration
}

// PerfPanel renders the phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with phases in the given order.
func (p *PerfPanel) Draw(data PerfPanelData, sortedNames []string) {
	r := p.renderer
	height := int32(44 + 14*len(sortedNames))
	r.DrawPanel(p.x, p.y, 260, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText(fmt.Sprintf("Frame: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 18

	for _, name := range sortedNames {
		avg := data.PhaseTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
