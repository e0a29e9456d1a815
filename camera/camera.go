// Package camera provides a 2D camera system for viewport control.
package camera

// Camera maps charge-grid coordinates (y up) to screen pixels (y down).
// Supports pan and zoom over a bounded grid.
type Camera struct {
	// Scale is screen pixels per tile
	Scale float32

	// Offset of the grid origin from the view center, in tiles.
	// OffsetY is measured upward.
	OffsetX, OffsetY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Grid dimensions in tiles
	WorldW, WorldH float32

	// Zoom constraints
	MinScale, MaxScale float32
}

// New creates a camera centered on the grid.
func New(viewportW, viewportH, worldW, worldH, scale float32) *Camera {
	c := &Camera{
		Scale:     scale,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinScale:  1,
		MaxScale:  80,
	}
	c.Center()
	return c
}

// WorldToScreen converts grid coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = (wx+c.OffsetX)*c.Scale + c.ViewportW/2
	sy = (-wy+c.OffsetY)*c.Scale + c.ViewportH/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to grid coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = (sx-c.ViewportW/2)/c.Scale - c.OffsetX
	wy = (-sy+c.ViewportH/2)/c.Scale + c.OffsetY
	return wx, wy
}

// InScreen reports whether a screen point lies inside the viewport.
func (c *Camera) InScreen(sx, sy float32) bool {
	return sx >= 0 && sy >= 0 && sx <= c.ViewportW && sy <= c.ViewportH
}

// SegmentVisible reports whether a screen-space segment may touch the
// viewport. Segments with both ends past the same edge are culled.
func (c *Camera) SegmentVisible(ax, ay, bx, by float32) bool {
	if c.InScreen(ax, ay) || c.InScreen(bx, by) {
		return true
	}
	switch {
	case ax < 0 && bx < 0, ay < 0 && by < 0:
		return false
	case ax > c.ViewportW && bx > c.ViewportW, ay > c.ViewportH && by > c.ViewportH:
		return false
	}
	return true
}

// Center puts the middle of the grid in the middle of the view.
func (c *Camera) Center() {
	c.OffsetX = -c.WorldW / 2
	c.OffsetY = c.WorldH / 2
}

// SetWorld updates the grid dimensions and recenters.
func (c *Camera) SetWorld(worldW, worldH float32) {
	c.WorldW = worldW
	c.WorldH = worldH
	c.Center()
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the view by the given delta in screen pixels, so the grid
// follows a dragging cursor.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx / c.Scale
	c.OffsetY += dy / c.Scale
}

// SetScale sets the zoom level, clamped to min/max.
func (c *Camera) SetScale(scale float32) {
	c.Scale = clamp(scale, c.MinScale, c.MaxScale)
}

// ZoomBy adds delta pixels per tile, as one mouse wheel notch does.
func (c *Camera) ZoomBy(delta float32) {
	c.SetScale(c.Scale + delta)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
