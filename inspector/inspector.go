// Package inspector renders a panel showing the components of one selected
// ant. Fields are discovered by reflection and styled by `inspect` tags.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/formica/components"
	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/systems"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.White
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 255, B: 255, A: 200}
)

// Inspector tracks the selected ant and draws its panel.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
	panelH      int32
}

// NewInspector creates an inspector anchored to the right screen edge.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth)
	return ins
}

// Resize re-anchors the panel after a window resize.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// Select makes e the inspected ant.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the inspected ant, if any.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// PanelContains reports whether a screen point is over the open panel.
func (ins *Inspector) PanelContains(sx, sy float32) bool {
	if !ins.hasSelected {
		return false
	}
	return sx >= float32(ins.panelX) && sx <= float32(ins.panelX+PanelWidth) &&
		sy >= float32(ins.panelY) && sy <= float32(ins.panelY+ins.panelH)
}

// CloseHit reports whether a screen point is on the close button.
func (ins *Inspector) CloseHit(sx, sy float32) bool {
	if !ins.hasSelected {
		return false
	}
	cx := float32(ins.panelX + PanelWidth - 25)
	cy := float32(ins.panelY + 5)
	return sx >= cx && sx <= cx+20 && sy >= cy && sy <= cy+20
}

// Pick returns the ant nearest to (wx, wy) within radius world units.
func Pick(views []systems.AntView, wx, wy, radius float32) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := radius * radius
	found := false
	for _, v := range views {
		dx, dy := v.X-wx, v.Y-wy
		if d := dx*dx + dy*dy; d <= bestDist {
			best, bestDist, found = v.Entity, d, true
		}
	}
	return best, found
}

// Draw renders the panel. A selection whose ant no longer exists is cleared.
func (ins *Inspector) Draw(s *systems.ForagingSystem, now int64) {
	if !ins.hasSelected {
		return
	}
	view, ok := s.View(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}
	f := s.Forager(ins.selected)
	mem := s.Memory(ins.selected)

	pos := components.Position{X: view.X, Y: view.Y}
	mot := components.Motion{Heading: view.Heading, Speed: view.Speed}
	sections := []struct {
		title  string
		fields []Field
	}{
		{"POSITION", ExtractFields(&pos)},
		{"MOTION", ExtractFields(&mot)},
		{"FORAGER", ExtractFields(f)},
		{"SENSES", senseFields(f, mem, now)},
	}

	ins.panelH = ins.measure(sections)
	x := ins.panelX + PanelPadding
	y := ins.panelY

	rl.DrawRectangle(ins.panelX, y, PanelWidth, ins.panelH, ColorPanelBg)
	rl.DrawRectangleLines(ins.panelX, y, PanelWidth, ins.panelH, ColorPanelBorder)
	rl.DrawRectangle(ins.panelX, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("ANT #%d", view.Entity.ID()), x, y+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	rl.DrawRectangle(closeX, y+5, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, y+8, 14, rl.White)

	y += HeaderHeight + PanelPadding
	for _, sec := range sections {
		ins.drawSectionHeader(x, y, sec.title)
		y += 22
		for _, field := range sec.fields {
			y += DrawField(x, y, field)
		}
		y += 6
	}
}

// senseFields reports trail protocol timing as ages rather than raw ticks.
func senseFields(f *components.Forager, mem *components.PositionMemory, now int64) []Field {
	age := func(t int64) any {
		if t == components.Never {
			return "never"
		}
		return now - t
	}
	crumb := mem.OldestPosition()
	return []Field{
		{Name: "Food seen", Value: age(f.LastSeen[grid.ChannelFood]), Widget: WidgetLabel},
		{Name: "Home seen", Value: age(f.LastSeen[grid.ChannelHome]), Widget: WidgetLabel},
		{Name: "Breadcrumb", Value: fmt.Sprintf("%.0f, %.0f", crumb.X, crumb.Y), Widget: WidgetLabel},
	}
}

func (ins *Inspector) measure(sections []struct {
	title  string
	fields []Field
}) int32 {
	h := int32(HeaderHeight + PanelPadding*2)
	for _, sec := range sections {
		h += 28
		for _, f := range sec.fields {
			if f.Widget == WidgetAngle {
				h += 40
			} else {
				h += 18
			}
		}
	}
	return h
}

func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight outlines the selected ant at screen position (sx, sy).
func DrawSelectionHighlight(sx, sy, zoom float32) {
	r := 6 * zoom
	if r < 4 {
		r = 4
	}
	rl.DrawCircleLines(int32(sx), int32(sy), r, ColorHighlight)
}
