// Package camera provides a 2D camera for viewing the bounded colony world.
package camera

// Camera controls the viewport into the simulation world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	ViewportW, ViewportH float32
	WorldW, WorldH       float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world at 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	return &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
// The result may lie outside the world; callers check bounds.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible reports whether a circle at (wx, wy) could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the view by a screen-space drag of (dx, dy) pixels. Dragging
// right moves the world right, so the camera center moves left.
func (c *Camera) Pan(dx, dy float32) {
	c.X -= dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomAt scales the zoom by factor while keeping the world point under
// the screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	bx, by := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	ax, ay := c.ScreenToWorld(sx, sy)
	c.X += bx - ax
	c.Y += by - ay
	c.clampCenter()
}

// Reset returns the camera to the world center at 1:1 zoom.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns (minX, minY, maxX, maxY) of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// VisibleTiles returns the inclusive tile index range on screen, clipped
// to a cols x rows grid of tileSize tiles.
func (c *Camera) VisibleTiles(tileSize float32, cols, rows int) (col0, row0, col1, row1 int) {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	col0 = clampInt(int(minX/tileSize), 0, cols-1)
	row0 = clampInt(int(minY/tileSize), 0, rows-1)
	col1 = clampInt(int(maxX/tileSize)+1, 0, cols-1)
	row1 = clampInt(int(maxY/tileSize)+1, 0, rows-1)
	return
}

// clampCenter keeps the camera center over the world.
func (c *Camera) clampCenter() {
	c.X = clamp(c.X, 0, c.WorldW)
	c.Y = clamp(c.Y, 0, c.WorldH)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
