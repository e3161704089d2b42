// Package camera maps the fixed-size arena onto the window and owns the
// screen shake offset.
package camera

// Camera fits the arena into the viewport. The arena is scaled uniformly so
// that it is fully visible and centered, leaving letterbox bars on the
// longer axis.
type Camera struct {
	// Zoom is the uniform arena-to-screen scale
	Zoom float32

	// OffsetX, OffsetY position the arena's top-left corner on screen
	OffsetX, OffsetY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Arena dimensions
	WorldW, WorldH float32
}

// New creates a camera that fits a worldW x worldH arena into the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.fit()
	return c
}

// fit recomputes zoom and letterbox offsets.
func (c *Camera) fit() {
	if c.WorldW <= 0 || c.WorldH <= 0 || c.ViewportW <= 0 || c.ViewportH <= 0 {
		c.Zoom = 1
		c.OffsetX, c.OffsetY = 0, 0
		return
	}
	c.Zoom = c.ViewportW / c.WorldW
	if zy := c.ViewportH / c.WorldH; zy < c.Zoom {
		c.Zoom = zy
	}
	c.OffsetX = (c.ViewportW - c.WorldW*c.Zoom) / 2
	c.OffsetY = (c.ViewportH - c.WorldH*c.Zoom) / 2
}

// WorldToScreen converts arena coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.OffsetX + wx*c.Zoom, c.OffsetY + wy*c.Zoom
}

// ScreenToWorld converts screen coordinates to arena coordinates. Points in
// the letterbox map outside [0, WorldW] x [0, WorldH]; callers clamp.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return (sx - c.OffsetX) / c.Zoom, (sy - c.OffsetY) / c.Zoom
}

// Scale converts an arena length to screen pixels.
func (c *Camera) Scale(d float32) float32 {
	return d * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// overlaps the arena (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	return wx+radius >= 0 && wx-radius <= c.WorldW &&
		wy+radius >= 0 && wy-radius <= c.WorldH
}

// Resize updates viewport dimensions and refits the arena.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
}
