package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/inspector"
	"github.com/pthm-cable/formica/ui"
)

// Palette
var (
	colorBackground = rl.Color{R: 45, G: 45, B: 68, A: 255}
	colorWorld      = rl.Color{R: 26, G: 26, B: 46, A: 255}
	colorBounds     = rl.Color{R: 74, G: 74, B: 106, A: 255}
	colorGridLine   = rl.Color{R: 37, G: 37, B: 64, A: 255}

	colorFood         = rl.Color{R: 126, G: 200, B: 80, A: 255}
	colorFoodInfinite = rl.Color{R: 74, G: 224, B: 74, A: 255}
	colorHome         = rl.Color{R: 200, G: 150, B: 80, A: 255}
	colorHomeInner    = rl.Color{R: 139, G: 105, B: 20, A: 255}
	colorGrass        = rl.Color{R: 58, G: 90, B: 58, A: 255}
	colorObstacle     = rl.Color{R: 90, G: 90, B: 122, A: 255}

	colorFoodTrail = rl.Color{R: 255, G: 255, B: 180, A: 255}
	colorHomeTrail = rl.Color{R: 180, G: 200, B: 255, A: 255}

	colorAntSeeking  = rl.Color{R: 232, G: 197, B: 71, A: 255}
	colorAntCarrying = rl.Color{R: 126, G: 200, B: 80, A: 255}

	teleporterColors = []rl.Color{
		{R: 255, G: 107, B: 107, A: 255},
		{R: 78, G: 205, B: 196, A: 255},
		{R: 255, G: 230, B: 109, A: 255},
		{R: 149, G: 225, B: 211, A: 255},
		{R: 243, G: 129, B: 129, A: 255},
	}
)

const controlsLegend = "[Space] Pause  [,/.] Speed  [1-7] Tools  [R] Regenerate  [F/H] Trails  [G] Grid  [O] Occupancy  [M] Memory  [P] Perf  [Tab] Panel  [L] Log"

// Draw renders one frame.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	col0, row0, col1, row1 := g.camera.VisibleTiles(g.grid.TileSize(), g.grid.Cols(), g.grid.Rows())

	g.framePerf.Time("world", func() { g.drawWorld(col0, row0, col1, row1) })
	if g.settings.ShowTrails {
		g.framePerf.Time("trails", func() { g.drawTrails(col0, row0, col1, row1) })
	}
	if g.overlays.IsEnabled(ui.OverlayOccupancy) {
		g.drawOccupancy(col0, row0, col1, row1)
	}
	g.framePerf.Time("ants", g.drawAnts)
	g.drawSelection()
	g.framePerf.Time("ui", g.drawUI)

	rl.EndDrawing()
}

// tileRect returns the screen rectangle of a tile.
func (g *Game) tileRect(t *grid.Tile) rl.Rectangle {
	sx, sy := g.camera.WorldToScreen(t.MinX(), t.MinY())
	size := t.Size * g.camera.Zoom
	return rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}
}

// drawWorld draws the world area, features and optional grid lines.
func (g *Game) drawWorld(col0, row0, col1, row1 int) {
	x0, y0 := g.camera.WorldToScreen(0, 0)
	x1, y1 := g.camera.WorldToScreen(g.grid.Width(), g.grid.Height())
	world := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	rl.DrawRectangleRec(world, colorWorld)

	pending := g.PendingTeleporter()
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			t := g.grid.TileAtIndex(col, row)
			if f := t.Feature(); f != nil {
				g.drawFeature(f, g.tileRect(t), f == pending)
			}
		}
	}

	if g.overlays.IsEnabled(ui.OverlayGridLines) {
		ts := g.grid.TileSize()
		for col := col0; col <= col1+1; col++ {
			sx, _ := g.camera.WorldToScreen(float32(col)*ts, 0)
			rl.DrawLineV(rl.Vector2{X: sx, Y: y0}, rl.Vector2{X: sx, Y: y1}, colorGridLine)
		}
		for row := row0; row <= row1+1; row++ {
			_, sy := g.camera.WorldToScreen(0, float32(row)*ts)
			rl.DrawLineV(rl.Vector2{X: x0, Y: sy}, rl.Vector2{X: x1, Y: sy}, colorGridLine)
		}
	}

	rl.DrawRectangleLinesEx(world, 2, colorBounds)
}

// drawFeature fills a tile according to its feature kind.
func (g *Game) drawFeature(f *grid.Feature, r rl.Rectangle, pending bool) {
	switch f.Kind {
	case grid.KindFood:
		c := colorFood
		if f.Infinite {
			c = colorFoodInfinite
		} else if f.Capacity > 0 {
			fill := 0.3 + 0.7*float32(f.Storage)/float32(f.Capacity)
			c = rl.ColorAlpha(c, min(fill, 1))
		}
		rl.DrawRectangleRec(r, c)
	case grid.KindHome:
		rl.DrawRectangleRec(r, colorHome)
		inset := r.Width / 4
		rl.DrawRectangleRec(rl.Rectangle{X: r.X + inset, Y: r.Y + inset, Width: r.Width - 2*inset, Height: r.Height - 2*inset}, colorHomeInner)
	case grid.KindGrass:
		rl.DrawRectangleRec(r, colorGrass)
	case grid.KindObstacle:
		rl.DrawRectangleRec(r, colorObstacle)
	case grid.KindTeleporter:
		c := teleporterColors[int(f.Color)%len(teleporterColors)]
		rl.DrawCircleV(rl.Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}, r.Width*0.4, c)
		if pending || f.Link == 0 {
			rl.DrawRectangleLinesEx(r, 1, rl.White)
		}
	}
}

// drawTrails draws each mark as a dot at its tile center with a line to
// the point the mark leads to, faded by age.
func (g *Game) drawTrails(col0, row0, col1, row1 int) {
	now := g.Tick()
	zoom := g.camera.Zoom
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			t := g.grid.TileAtIndex(col, row)
			for ch := grid.Channel(0); ch < grid.NumChannels; ch++ {
				if !g.trailVisible(ch) {
					continue
				}
				m, ok := t.Trail(ch)
				if !ok {
					continue
				}
				alpha := g.trail.Weight(now-m.Timestamp) * 0.6
				c := colorFoodTrail
				if ch == grid.ChannelHome {
					c = colorHomeTrail
				}
				c = rl.ColorAlpha(c, alpha)

				cx, cy := t.Center()
				sx, sy := g.camera.WorldToScreen(cx, cy)
				tx, ty := g.camera.WorldToScreen(m.X, m.Y)
				rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, max(1, 1.5*zoom), c)
				rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: tx, Y: ty}, c)
			}
		}
	}
}

func (g *Game) trailVisible(ch grid.Channel) bool {
	if ch == grid.ChannelHome {
		return g.overlays.IsEnabled(ui.OverlayHomeTrails)
	}
	return g.overlays.IsEnabled(ui.OverlayFoodTrails)
}

// drawOccupancy shades tiles by the number of ants inside.
func (g *Game) drawOccupancy(col0, row0, col1, row1 int) {
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			t := g.grid.TileAtIndex(col, row)
			n := t.Occupants.Len()
			if n == 0 {
				continue
			}
			alpha := min(float32(n)/20, 1) * 0.7
			rl.DrawRectangleRec(g.tileRect(t), rl.ColorAlpha(rl.Red, alpha))
		}
	}
}

// drawAnts draws each visible ant as a short stroke along its heading.
func (g *Game) drawAnts() {
	zoom := g.camera.Zoom
	half := 2.5 * zoom
	width := max(1.5, 2.5*zoom)

	g.views = g.foraging.Views(g.views[:0])
	for _, v := range g.views {
		if !g.camera.IsVisible(v.X, v.Y, 4) {
			continue
		}
		c := colorAntSeeking
		if v.Carrying {
			c = colorAntCarrying
		}
		sx, sy := g.camera.WorldToScreen(v.X, v.Y)
		dx := float32(math.Cos(float64(v.Heading))) * half
		dy := float32(math.Sin(float64(v.Heading))) * half
		rl.DrawLineEx(rl.Vector2{X: sx - dx, Y: sy - dy}, rl.Vector2{X: sx + dx, Y: sy + dy}, width, c)
	}
}

// drawSelection highlights the inspected ant and, with the memory overlay,
// its remembered positions.
func (g *Game) drawSelection() {
	e, ok := g.inspector.Selected()
	if !ok {
		return
	}
	v, ok := g.foraging.View(e)
	if !ok {
		return
	}

	if g.overlays.IsEnabled(ui.OverlayMemory) {
		path := g.foraging.Memory(e).Chronological()
		var prev rl.Vector2
		for i, p := range path {
			px, py := g.camera.WorldToScreen(p.X, p.Y)
			cur := rl.Vector2{X: px, Y: py}
			if i > 0 {
				rl.DrawLineV(prev, cur, rl.SkyBlue)
			}
			prev = cur
		}
		if len(path) > 0 {
			ox, oy := g.camera.WorldToScreen(path[0].X, path[0].Y)
			rl.DrawCircleLines(int32(ox), int32(oy), 3, rl.SkyBlue)
		}
	}

	sx, sy := g.camera.WorldToScreen(v.X, v.Y)
	inspector.DrawSelectionHighlight(sx, sy, g.camera.Zoom)
}

// drawUI draws the HUD and panels and applies control panel edits.
func (g *Game) drawUI() {
	carrying := g.carryingCount()
	sources, remaining := g.foodLeft()
	g.hud.Draw(ui.HUDData{
		Title:             "Formica",
		Tick:              g.Tick(),
		Ants:              len(g.ants),
		Carrying:          carrying,
		HomeCollected:     g.HomeCollected(),
		FoodSources:       sources,
		FoodRemaining:     remaining,
		Deliveries:        g.Deliveries(),
		Speed:             g.settings.Speed,
		FPS:               rl.GetFPS(),
		Paused:            g.settings.Paused,
		Tool:              g.tools.Active,
		PendingTeleporter: g.pendingTeleporter != 0,
	})

	g.tools.Draw()
	if !g.tools.PendingTeleporter {
		g.pendingTeleporter = 0
	}

	ev := g.controls.Draw(ui.ControlState{
		AntCount: len(g.ants),
		Speed:    g.settings.Speed,
		Paused:   g.settings.Paused,
	}, g.overlays)
	if ev.Changed {
		if ev.State.AntCount != len(g.ants) {
			g.SetAntCount(ev.State.AntCount)
		}
		g.SetSpeed(ev.State.Speed)
		g.settings.Paused = ev.State.Paused
	}
	if ev.Regenerate {
		g.Regenerate()
	}
	g.settings.ShowTrails = g.overlays.TrailsVisible()

	g.inspector.Draw(g.foraging, g.Tick())

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(ui.PerfPanelData{PhaseTimes: g.framePerf.Averages(), Total: g.framePerf.Total()}, g.framePerf.SortedNames())
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

func (g *Game) carryingCount() (carrying int) {
	for _, e := range g.ants {
		if g.foraging.Forager(e).Carrying {
			carrying++
		}
	}
	return carrying
}

// foodLeft returns the number of food sources and their finite storage.
func (g *Game) foodLeft() (sources, remaining int) {
	for _, f := range g.grid.Features() {
		if f.Kind != grid.KindFood {
			continue
		}
		sources++
		if !f.Infinite {
			remaining += f.Storage
		}
	}
	return sources, remaining
}
