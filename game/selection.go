package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/formica/grid"
	"github.com/pthm-cable/formica/inspector"
	"github.com/pthm-cable/formica/ui"
)

// pickRadius is the screen distance in pixels within which a click selects an ant.
const pickRadius = 8

// toolKinds maps placing tools to the feature they create.
var toolKinds = map[ui.Tool]grid.FeatureKind{
	ui.ToolObstacle:   grid.KindObstacle,
	ui.ToolGrass:      grid.KindGrass,
	ui.ToolHome:       grid.KindHome,
	ui.ToolFood:       grid.KindFood,
	ui.ToolTeleporter: grid.KindTeleporter,
}

// handleMouse routes clicks to panels, the active tool, or the camera.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		g.inspector.Deselect()
		g.pendingTeleporter = 0
		g.tools.PendingTeleporter = false
		return
	}

	if g.overUI(mouse.X, mouse.Y) {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && g.inspector.CloseHit(mouse.X, mouse.Y) {
			g.inspector.Deselect()
		}
		return
	}

	// Middle drag always pans; left drag pans with the pan tool
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) ||
		(g.tools.Active == ui.ToolPan && rl.IsMouseButtonDown(rl.MouseButtonLeft)) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			g.camera.Pan(d.X, d.Y)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
		g.ApplyTool(g.tools.Active, wx, wy)
	}
}

// overUI reports whether a screen point is covered by a panel.
func (g *Game) overUI(sx, sy float32) bool {
	return g.tools.Contains(sx, sy) ||
		g.controls.Contains(sx, sy, g.overlays) ||
		g.inspector.PanelContains(sx, sy)
}

// ApplyTool performs the tool's action at world point (wx, wy).
// The pan tool selects the nearest ant for inspection. Returns whether
// the world or the selection changed.
func (g *Game) ApplyTool(tool ui.Tool, wx, wy float32) bool {
	switch tool {
	case ui.ToolPan:
		if g.inspector == nil {
			return false
		}
		radius := float32(pickRadius)
		if g.camera != nil {
			radius /= g.camera.Zoom
		}
		g.views = g.foraging.Views(g.views[:0])
		e, ok := inspector.Pick(g.views, wx, wy, radius)
		if ok {
			g.inspector.Select(e)
		}
		return ok

	case ui.ToolRemove:
		return g.RemoveFeatureAt(wx, wy)

	case ui.ToolTeleporter:
		f := g.PlaceTeleporter(wx, wy)
		if g.tools != nil {
			g.tools.PendingTeleporter = g.pendingTeleporter != 0
		}
		return f != nil
	}

	kind, ok := toolKinds[tool]
	if !ok {
		return false
	}
	return g.PlaceFeature(kind, wx, wy) != nil
}
