package drift

import "math"

// defaultNear is the closest depth the camera projects.
const defaultNear = 0.1

// Camera is a perspective camera looking down -Z with +Y up, used to project
// the intro scene onto the screen.
type Camera struct {
	// Position is the camera's world-space eye point.
	Position Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near is the clipping depth; points closer are not projected.
	Near float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	focal float64
	dirty bool
}

// NewCamera creates a camera at pos with the given vertical field of view.
func NewCamera(pos Vec3, fovDegrees float64, viewport Rect) *Camera {
	return &Camera{
		Position: pos,
		FOV:      fovDegrees,
		Near:     defaultNear,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetViewport changes the screen rectangle, e.g. after a window resize.
func (c *Camera) SetViewport(r Rect) {
	c.Viewport = r
	c.dirty = true
}

// MarkDirty forces the focal length to be recomputed on the next
// projection. Call it after changing FOV directly.
func (c *Camera) MarkDirty() { c.dirty = true }

// Focal returns the focal length in pixels for the current viewport height.
func (c *Camera) Focal() float64 {
	if c.dirty {
		half := c.FOV * math.Pi / 360
		c.focal = c.Viewport.Height / 2 / math.Tan(half)
		c.dirty = false
	}
	return c.focal
}

// Depth returns the distance of p in front of the camera along its view
// axis. Larger is farther away.
func (c *Camera) Depth(p Vec3) float64 {
	return c.Position.Z - p.Z
}

// WorldToScreen projects p. scale is pixels per world unit at p's depth.
// ok is false when p is behind the near plane.
func (c *Camera) WorldToScreen(p Vec3) (screen Vec2, scale float64, ok bool) {
	depth := c.Depth(p)
	if depth < c.Near {
		return Vec2{}, 0, false
	}
	scale = c.Focal() / depth
	rel := p.Sub(c.Position)
	screen = Vec2{
		X: c.Viewport.X + c.Viewport.Width/2 + rel.X*scale,
		Y: c.Viewport.Y + c.Viewport.Height/2 - rel.Y*scale,
	}
	return screen, scale, true
}
