package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider describes a stepped raygui slider.
type Slider struct {
	Label string
	Min   float32
	Max   float32
	Step  float32
}

// Snap clamps v to [Min, Max] and rounds it to the nearest Step.
func (s Slider) Snap(v float32) float32 {
	if s.Step > 0 {
		v = float32(math.Round(float64(v/s.Step))) * s.Step
	}
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

var (
	speedSlider = Slider{Label: "Speed", Min: 0.5, Max: 5, Step: 0.5}
	antSlider   = Slider{Label: "Ants", Min: 100, Max: 5000, Step: 100}
)

// ControlState is the simulation state the control panel edits.
type ControlState struct {
	AntCount int
	Speed    float64
	Paused   bool
}

// ControlEvents reports what the user changed during one Draw.
type ControlEvents struct {
	State      ControlState
	Regenerate bool
	Changed    bool
}

// ControlsPanel renders the simulation controls and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies on the panel.
func (c *ControlsPanel) Contains(sx, sy float32, overlays *OverlayRegistry) bool {
	if !c.visible {
		return false
	}
	return sx >= float32(c.x) && sx <= float32(c.x+c.width) &&
		sy >= float32(c.y) && sy <= float32(c.y+c.height(overlays))
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := int32(len(overlays.All()) + len(overlays.Categories()))
	return t.Padding*2 + 20 + 2*46 + 2*34 + rows*t.LineHeight + 8
}

// Draw renders the panel and returns the edited state.
func (c *ControlsPanel) Draw(state ControlState, overlays *OverlayRegistry) ControlEvents {
	ev := ControlEvents{State: state}
	if !c.visible {
		return ev
	}

	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + pad)
	w := float32(c.width - 2*pad)
	y := c.y + pad

	rl.DrawText("Colony", c.x+pad, y, 16, rl.White)
	y += 20

	// Sliders
	rl.DrawText(fmt.Sprintf("%s: %d", antSlider.Label, state.AntCount), c.x+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
	ants := gui.SliderBar(rl.Rectangle{X: x + 30, Y: float32(y + 16), Width: w - 70, Height: 18},
		"100", "5000", float32(state.AntCount), antSlider.Min, antSlider.Max)
	if n := int(antSlider.Snap(ants)); n != state.AntCount {
		ev.State.AntCount = n
		ev.Changed = true
	}
	y += 46

	rl.DrawText(fmt.Sprintf("%s: %.1fx", speedSlider.Label, state.Speed), c.x+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
	speed := gui.SliderBar(rl.Rectangle{X: x + 30, Y: float32(y + 16), Width: w - 70, Height: 18},
		"0.5", "5", float32(state.Speed), speedSlider.Min, speedSlider.Max)
	if s := float64(speedSlider.Snap(speed)); s != state.Speed {
		ev.State.Speed = s
		ev.Changed = true
	}
	y += 46

	// Buttons
	half := (w - 8) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 26}, toggleText(state.Paused, "Resume", "Pause")) {
		ev.State.Paused = !state.Paused
		ev.Changed = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 8, Y: float32(y), Width: half, Height: 26}, "Regenerate") {
		ev.Regenerate = true
	}
	y += 34

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: 26}, toggleText(overlays.TrailsVisible(), "Hide Trails", "Show Trails")) {
		overlays.SetTrailsVisible(!overlays.TrailsVisible())
	}
	y += 34

	// Overlay toggles by category
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+pad, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+pad, y, desc, overlays.IsEnabled(desc.ID), c.width-pad*2)
			y += r.Theme.LineHeight
		}
	}

	return ev
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	t := c.renderer.Theme

	statusColor := t.Inactive
	nameColor := t.LabelColor
	if enabled {
		statusColor = t.Active
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, t.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, t.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, t.FontSize, rl.Gray)
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "trails":
		return "Trails"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
