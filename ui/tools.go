package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tool is what a left click on the world does.
type Tool int

const (
	ToolPan Tool = iota
	ToolObstacle
	ToolGrass
	ToolHome
	ToolFood
	ToolTeleporter
	ToolRemove
	numTools
)

var toolNames = [numTools]string{
	ToolPan:        "Pan",
	ToolObstacle:   "Obstacle",
	ToolGrass:      "Grass",
	ToolHome:       "Home",
	ToolFood:       "Food",
	ToolTeleporter: "Teleporter",
	ToolRemove:     "Remove",
}

func (t Tool) String() string {
	if t < 0 || t >= numTools {
		return "unknown"
	}
	return toolNames[t]
}

// Shortcut returns the digit key label for the tool, 1 through 7.
func (t Tool) Shortcut() string {
	return fmt.Sprintf("%d", int(t)+1)
}

// Places reports whether the tool creates a feature on click.
func (t Tool) Places() bool {
	return t >= ToolObstacle && t <= ToolTeleporter
}

// AllTools returns the tools in palette order.
func AllTools() []Tool {
	out := make([]Tool, numTools)
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

// ToolForKey maps a raylib key code to a tool. Keys One through Seven
// select tools in palette order.
func ToolForKey(key int32) (Tool, bool) {
	if key < rl.KeyOne || key >= rl.KeyOne+int32(numTools) {
		return 0, false
	}
	return Tool(key - rl.KeyOne), true
}

// ToolPanel is the tool palette. It owns the active tool and the first
// end of a teleporter pair waiting for its partner.
type ToolPanel struct {
	renderer *Renderer
	x, y     int32

	Active Tool
	// PendingTeleporter is set after the first end of a pair is placed.
	PendingTeleporter bool
}

// NewToolPanel creates a palette anchored at (x, y).
func NewToolPanel(x, y int32) *ToolPanel {
	return &ToolPanel{renderer: NewRenderer(), x: x, y: y}
}

// Select switches tools. Leaving the teleporter tool abandons a pending pair.
func (p *ToolPanel) Select(t Tool) {
	if t != ToolTeleporter {
		p.PendingTeleporter = false
	}
	p.Active = t
}

// Width and Height of the palette in pixels.
func (p *ToolPanel) Width() int32  { return 130 }
func (p *ToolPanel) Height() int32 { return int32(numTools)*28 + 2*p.renderer.Theme.Padding + 20 }

// Contains reports whether a screen point lies on the palette.
func (p *ToolPanel) Contains(sx, sy float32) bool {
	return sx >= float32(p.x) && sx <= float32(p.x+p.Width()) &&
		sy >= float32(p.y) && sy <= float32(p.y+p.Height())
}

// Draw renders the palette and applies button clicks.
func (p *ToolPanel) Draw() {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.Width(), p.Height())

	rl.DrawText("Tools", p.x+pad, p.y+pad, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y := float32(p.y + pad + 20)
	for _, t := range AllTools() {
		label := fmt.Sprintf("%s  [%s]", t, t.Shortcut())
		if t == p.Active {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: float32(p.x + pad), Y: y, Width: float32(p.Width() - 2*pad), Height: 24}, label) {
			p.Select(t)
		}
		y += 28
	}
}
