package drift

import "math"

// RigidBody is a box-shaped body integrated by a World. Static bodies
// (zero mass) never move.
type RigidBody struct {
	Position        Vec3
	Velocity        Vec3
	Rotation        Vec3 // Euler angles in radians, XYZ order
	AngularVelocity Vec3 // radians per second about each axis
	HalfExtents     Vec3
	Mass            float64

	// Contact is true when the body touched a plane during the last step.
	Contact bool
}

// Static reports whether the body has infinite mass.
func (b *RigidBody) Static() bool { return b.Mass <= 0 }

// ToWorld transforms a point from body-local space into world space.
func (b *RigidBody) ToWorld(local Vec3) Vec3 {
	m := eulerMatrix(b.Rotation)
	return b.Position.Add(m.mulVec(local))
}

// Plane is a static infinite plane: every point p with Normal·p == Offset.
// Normal must be unit length.
type Plane struct {
	Normal Vec3
	Offset float64
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p Vec3) float64 {
	return pl.Normal.Dot(p) - pl.Offset
}

// Material is the contact response shared by every body in a World.
type Material struct {
	Restitution    float64
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
}

// World integrates bodies at a fixed time step. Update accumulates frame
// time and runs as many whole steps as fit; the remainder carries over to
// the next frame.
type World struct {
	Gravity  Vec3
	Material Material

	step        float64
	maxSubSteps int
	accum       float64
	time        float64
	steps       int

	bodies []*RigidBody
	planes []Plane
}

// NewWorld creates an empty world from the physics config.
func NewWorld(cfg PhysicsConfig) *World {
	step := cfg.Step
	if step <= 0 {
		step = 1.0 / 60
	}
	return &World{
		Gravity: cfg.Gravity,
		Material: Material{
			Restitution:    cfg.Restitution,
			Friction:       cfg.Friction,
			LinearDamping:  cfg.LinearDamping,
			AngularDamping: cfg.AngularDamping,
		},
		step:        step,
		maxSubSteps: max(cfg.MaxSubSteps, 1),
	}
}

// AddBody adds b to the world and returns it.
func (w *World) AddBody(b *RigidBody) *RigidBody {
	w.bodies = append(w.bodies, b)
	return b
}

// AddPlane adds a static plane.
func (w *World) AddPlane(p Plane) {
	w.planes = append(w.planes, p)
}

// Bodies returns the bodies in insertion order.
func (w *World) Bodies() []*RigidBody { return w.bodies }

// Time returns simulated time in seconds.
func (w *World) Time() float64 { return w.time }

// Steps returns the number of fixed steps run so far.
func (w *World) Steps() int { return w.steps }

// Update advances the simulation by dt seconds of wall time and returns the
// number of fixed steps taken. Time beyond maxSubSteps steps is dropped so
// a long stall does not cause a burst of catch-up work.
func (w *World) Update(dt float64) int {
	if dt <= 0 {
		return 0
	}
	w.accum += dt
	n := 0
	for w.accum >= w.step && n < w.maxSubSteps {
		w.Step(w.step)
		w.accum -= w.step
		n++
	}
	if n == w.maxSubSteps && w.accum >= w.step {
		w.accum = 0
	}
	return n
}

// Step runs exactly one integration step of h seconds.
func (w *World) Step(h float64) {
	linKeep := math.Pow(1-w.Material.LinearDamping, h)
	angKeep := math.Pow(1-w.Material.AngularDamping, h)
	for _, b := range w.bodies {
		b.Contact = false
		if b.Static() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Scale(h)).Scale(linKeep)
		b.AngularVelocity = b.AngularVelocity.Scale(angKeep)
		b.Position = b.Position.Add(b.Velocity.Scale(h))
		b.Rotation = b.Rotation.Add(b.AngularVelocity.Scale(h))
		for _, p := range w.planes {
			w.collide(b, p)
		}
	}
	w.time += h
	w.steps++
}

// collide resolves penetration of b's box into p by pushing the body out
// along the normal until its deepest corner rests on the plane, then
// removes the approaching normal velocity and applies Coulomb friction.
func (w *World) collide(b *RigidBody, p Plane) {
	m := eulerMatrix(b.Rotation)
	depth := math.Inf(1)
	for i := 0; i < 8; i++ {
		c := Vec3{b.HalfExtents.X, b.HalfExtents.Y, b.HalfExtents.Z}
		if i&1 != 0 {
			c.X = -c.X
		}
		if i&2 != 0 {
			c.Y = -c.Y
		}
		if i&4 != 0 {
			c.Z = -c.Z
		}
		depth = math.Min(depth, p.Distance(b.Position.Add(m.mulVec(c))))
	}
	if depth >= 0 {
		return
	}
	b.Contact = true
	b.Position = b.Position.Add(p.Normal.Scale(-depth))

	vn := b.Velocity.Dot(p.Normal)
	if vn >= 0 {
		return
	}
	jn := -vn * (1 + w.Material.Restitution)
	b.Velocity = b.Velocity.Add(p.Normal.Scale(jn))

	vt := b.Velocity.Sub(p.Normal.Scale(b.Velocity.Dot(p.Normal)))
	if speed := vt.Len(); speed > 0 {
		drop := math.Min(speed, w.Material.Friction*jn)
		b.Velocity = b.Velocity.Sub(vt.Scale(drop / speed))
	}
	b.AngularVelocity = b.AngularVelocity.Scale(1 - math.Min(w.Material.Friction, 1))
}

// mat3 is a row-major 3x3 matrix.
type mat3 [9]float64

func (m mat3) mulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// eulerMatrix builds the rotation Rx·Ry·Rz for Euler angles e.
func eulerMatrix(e Vec3) mat3 {
	sx, cx := math.Sincos(e.X)
	sy, cy := math.Sincos(e.Y)
	sz, cz := math.Sincos(e.Z)
	return mat3{
		cy * cz, -cy * sz, sy,
		cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy,
		sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy,
	}
}
