package drift

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ringSegments is the number of sides used to approximate a cylinder.
const ringSegments = 16

// cylinder is one part of the dumbbell, aligned with the body's local X axis.
type cylinder struct {
	x      float64 // center along the bar
	radius float64
	length float64
	shade  float64
}

// dumbbellParts is the dumbbell model: bar, grip, three plates and a collar
// on each side.
var dumbbellParts = [...]cylinder{
	{0, 0.4, 5, 0.2},
	{0, 0.45, 3, 0.13},
	{-2.7, 2.2, 0.4, 0.13},
	{-2.3, 1.8, 0.3, 0.2},
	{-1.9, 1.5, 0.3, 0.13},
	{-1.5, 0.8, 0.4, 0.07},
	{2.7, 2.2, 0.4, 0.13},
	{2.3, 1.8, 0.3, 0.2},
	{1.9, 1.5, 0.3, 0.13},
	{1.5, 0.8, 0.4, 0.07},
}

// floorHalfSize is half the side of the drawn floor square.
const floorHalfSize = 15

// IntroScene is the physics half of the intro: a dumbbell dropped onto a
// floor under gravity, plus the dust burst shown on impact. It steps the
// simulation every frame while mounted; nothing waits for the body to come
// to rest.
type IntroScene struct {
	config PhysicsConfig
	world  *World
	body   *RigidBody
	floor  Plane
	camera *Camera
	dust   *DustBurst
	lights *LightLayer
	spot   *Light

	mounted bool

	batch meshBatch
	order [len(dumbbellParts)]int
	depth [len(dumbbellParts)]float64
	near  [ringSegments]Vec2
	far   [ringSegments]Vec2
	quad  [4]Vec2
}

// NewIntroScene creates an unmounted scene sized to the viewport. rng seeds
// the dust burst; nil gets a private generator.
func NewIntroScene(cfg Config, width, height float64, rng *rand.Rand) *IntroScene {
	s := &IntroScene{
		config: cfg.Physics,
		floor:  Plane{Normal: Vec3{0, 1, 0}, Offset: cfg.Physics.FloorY},
		camera: NewCamera(Vec3{0, 0, cfg.Physics.CameraZ}, cfg.Physics.FOV, Rect{Width: width, Height: height}),
		dust:   NewDustBurst(cfg.Dust, Vec3{0, cfg.Physics.FloorY, 0}, rng),
		lights: NewLightLayer(int(width), int(height), 1-cfg.Physics.Ambient),
		spot:   &Light{Intensity: cfg.Physics.SpotIntensity, Enabled: true},
	}
	s.lights.AddLight(s.spot)
	s.reset()
	return s
}

// reset rebuilds the world with the body at its starting pose.
func (s *IntroScene) reset() {
	s.world = NewWorld(s.config)
	s.body = s.world.AddBody(&RigidBody{
		Position:        s.config.Start,
		Rotation:        s.config.Rotation,
		AngularVelocity: s.config.AngularVelocity,
		HalfExtents:     s.config.HalfExtents,
		Mass:            s.config.Mass,
	})
	s.world.AddPlane(s.floor)
}

// Mount starts the simulation from the initial pose.
func (s *IntroScene) Mount() {
	if s.mounted {
		return
	}
	s.reset()
	s.mounted = true
}

// Unmount stops the simulation and releases the dust burst and the
// lighting textures.
func (s *IntroScene) Unmount() {
	s.mounted = false
	s.dust.SetActive(false)
	s.lights.Dispose()
}

// Mounted reports whether the scene is running.
func (s *IntroScene) Mounted() bool { return s.mounted }

// Body returns the falling body.
func (s *IntroScene) Body() *RigidBody { return s.body }

// World returns the physics world.
func (s *IntroScene) World() *World { return s.world }

// Floor returns the floor plane.
func (s *IntroScene) Floor() Plane { return s.floor }

// Camera returns the projection camera.
func (s *IntroScene) Camera() *Camera { return s.camera }

// Dust returns the impact dust burst.
func (s *IntroScene) Dust() *DustBurst { return s.dust }

// Resize updates the camera viewport.
func (s *IntroScene) Resize(width, height float64) {
	s.camera.SetViewport(Rect{Width: width, Height: height})
	s.lights.Resize(int(width), int(height))
}

// Update steps the physics by dt while mounted.
func (s *IntroScene) Update(dt time.Duration) {
	if !s.mounted {
		return
	}
	s.world.Update(dt.Seconds())
}

// Draw renders the floor, the body's contact shadow, the dumbbell, the
// spotlight over both and finally the unlit dust.
func (s *IntroScene) Draw(dst *ebiten.Image) {
	if !s.mounted {
		return
	}
	s.drawFloor()
	s.batch.flush(dst)
	s.drawShadow(dst)
	s.drawDumbbell()
	s.batch.flush(dst)
	s.drawLighting(dst)
	s.dust.Draw(dst, s.camera)
}

// Lights returns the scene's light layer.
func (s *IntroScene) Lights() *LightLayer { return s.lights }

// SpotPool returns where the spotlight's cone meets the floor, and the
// pool's radius in world units. ok is false when the spot does not point
// down at the floor.
func (s *IntroScene) SpotPool() (center Vec3, radius float64, ok bool) {
	src := s.config.Spot
	dir := src.Scale(-1)
	if dir.Y >= 0 || dir.Len() == 0 {
		return Vec3{}, 0, false
	}
	dir = dir.Scale(1 / dir.Len())
	t := (s.config.FloorY - src.Y) / dir.Y
	center = src.Add(dir.Scale(t))
	return center, t * math.Tan(s.config.SpotAngle), true
}

// ShadowOpacity returns the contact shadow's opacity for the body's
// current height: full strength at rest, fading as the body rises toward
// its drop height.
func (s *IntroScene) ShadowOpacity() float64 {
	span := s.config.Start.Y - s.config.FloorY
	if span <= 0 {
		return s.config.Shadow
	}
	lift := s.body.Position.Y - s.config.HalfExtents.Y - s.config.FloorY
	return s.config.Shadow * clamp01(1-lift/span)
}

// groundEllipse projects a circle of radius r lying on the floor around
// center. It returns the screen center, the horizontal radius in pixels and
// the vertical squash factor.
func (s *IntroScene) groundEllipse(center Vec3, r float64) (at Vec2, rx, squash float64, ok bool) {
	left, _, ok1 := s.camera.WorldToScreen(center.Add(Vec3{X: -r}))
	right, _, ok2 := s.camera.WorldToScreen(center.Add(Vec3{X: r}))
	far, _, ok3 := s.camera.WorldToScreen(center.Add(Vec3{Z: -r}))
	near, _, ok4 := s.camera.WorldToScreen(center.Add(Vec3{Z: r}))
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Vec2{}, 0, 0, false
	}
	rx = (right.X - left.X) / 2
	if rx <= 0 {
		return Vec2{}, 0, 0, false
	}
	at = Vec2{X: (left.X + right.X) / 2, Y: (far.Y + near.Y) / 2}
	return at, rx, (near.Y - far.Y) / 2 / rx, true
}

func (s *IntroScene) drawShadow(dst *ebiten.Image) {
	p := s.body.Position
	at, rx, squash, ok := s.groundEllipse(Vec3{p.X, s.config.FloorY, p.Z}, s.config.HalfExtents.X)
	if !ok {
		return
	}
	s.lights.Shade(dst, at.X, at.Y, rx, squash, s.ShadowOpacity())
}

// drawLighting positions the spot's pool and composites the ambient
// darkness.
func (s *IntroScene) drawLighting(dst *ebiten.Image) {
	s.spot.Enabled = false
	if center, r, ok := s.SpotPool(); ok {
		if at, rx, squash, ok := s.groundEllipse(center, r); ok {
			s.spot.X, s.spot.Y = at.X, at.Y
			s.spot.Radius, s.spot.Squash = rx, squash
			s.spot.Enabled = true
		}
	}
	s.lights.Redraw()
	s.lights.Draw(dst)
}

func (s *IntroScene) drawFloor() {
	y := s.config.FloorY
	// The near edge stops short of the camera so every corner projects.
	nearZ := math.Min(floorHalfSize, s.camera.Position.Z-1)
	corners := [4]Vec3{
		{-floorHalfSize, y, -floorHalfSize},
		{floorHalfSize, y, -floorHalfSize},
		{floorHalfSize, y, nearZ},
		{-floorHalfSize, y, nearZ},
	}
	for i, c := range corners {
		p, _, ok := s.camera.WorldToScreen(c)
		if !ok {
			return
		}
		s.quad[i] = p
	}
	s.batch.fillPolygon(s.quad[:], Gray(0.07))
}

// drawDumbbell draws the parts back to front.
func (s *IntroScene) drawDumbbell() {
	for i, part := range dumbbellParts {
		s.order[i] = i
		s.depth[i] = s.camera.Depth(s.body.ToWorld(Vec3{X: part.x}))
	}
	for i := 1; i < len(s.order); i++ {
		for j := i; j > 0 && s.depth[s.order[j]] > s.depth[s.order[j-1]]; j-- {
			s.order[j], s.order[j-1] = s.order[j-1], s.order[j]
		}
	}
	m := eulerMatrix(s.body.Rotation)
	for _, idx := range s.order {
		s.drawCylinder(dumbbellParts[idx], m)
	}
}

// drawCylinder projects both end caps and fills the far cap, the side
// quads and the near cap in that order.
func (s *IntroScene) drawCylinder(c cylinder, m mat3) {
	x0 := c.x - c.length/2
	x1 := c.x + c.length/2
	for k := 0; k < ringSegments; k++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(k) / ringSegments)
		y, z := cos*c.radius, sin*c.radius
		a, _, okA := s.camera.WorldToScreen(s.body.Position.Add(m.mulVec(Vec3{x0, y, z})))
		b, _, okB := s.camera.WorldToScreen(s.body.Position.Add(m.mulVec(Vec3{x1, y, z})))
		if !okA || !okB {
			return
		}
		s.near[k], s.far[k] = a, b
	}
	axis := m.mulVec(Vec3{X: 1})
	// Swap so far holds the cap farther from the camera.
	if axis.Z > 0 {
		s.near, s.far = s.far, s.near
	}
	base := Gray(c.shade)
	s.batch.fillPolygon(s.far[:], base)
	for k := 0; k < ringSegments; k++ {
		next := (k + 1) % ringSegments
		sin, cos := math.Sincos(2 * math.Pi * (float64(k) + 0.5) / ringSegments)
		normal := m.mulVec(Vec3{0, cos, sin})
		if normal.Z <= 0 {
			continue
		}
		lit := 0.6 + 0.4*math.Max(normal.Y, 0)
		s.quad = [4]Vec2{s.far[k], s.far[next], s.near[next], s.near[k]}
		s.batch.fillPolygon(s.quad[:], Gray(c.shade*lit+0.05))
	}
	s.batch.fillPolygon(s.near[:], Gray(c.shade+0.05))
}
