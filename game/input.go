package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/formica/ui"
)

// handleInput processes keyboard, mouse and window events.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.settings.Paused = !g.settings.Paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Regenerate()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		g.LogWorldState()
		g.LogPerfStats()
	}

	// Speed with comma and period, in slider steps
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetSpeed(max(0.5, g.settings.Speed-0.5))
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetSpeed(min(5, g.settings.Speed+0.5))
	}

	for key := int32(rl.KeyOne); key <= rl.KeyNine; key++ {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if tool, ok := ui.ToolForKey(key); ok {
			g.selectTool(tool)
		}
	}

	if key := rl.GetKeyPressed(); key != 0 {
		g.overlays.HandleKeyPress(key)
	}
	g.settings.ShowTrails = g.overlays.TrailsVisible()

	g.handleCameraInput()
	g.handleMouse()
}

// selectTool switches tools, abandoning a half-placed teleporter pair.
func (g *Game) selectTool(tool ui.Tool) {
	g.tools.Select(tool)
	if tool != ui.ToolTeleporter {
		g.pendingTeleporter = 0
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.inspector.Resize(int32(w))
	g.perfPanel.SetPosition(int32(w)-270, int32(h)-140)
}

// handleCameraInput processes keyboard pan and wheel zoom.
func (g *Game) handleCameraInput() {
	const panStep = float32(8)

	// Arrow keys move the view like a drag in the opposite direction
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(-panStep, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(panStep, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, -panStep)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, panStep)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomAt(g.screenWidth/2, g.screenHeight/2, 1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomAt(g.screenWidth/2, g.screenHeight/2, 0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
