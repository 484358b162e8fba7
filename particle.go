package drift

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DustBurst is a static cloud of point particles shown around an impact
// point. Particles are sampled once when the burst becomes active and held
// fixed until it is deactivated; reactivating samples a fresh cloud.
type DustBurst struct {
	config DustConfig
	origin Vec3
	rng    *rand.Rand
	active bool

	// Per-particle state, allocated on activation and nil while inactive.
	// Positions are relative to the origin.
	Positions []Vec3
	Sizes     []float64
	Colors    []Color
}

// NewDustBurst creates an inactive burst at origin. A nil rng gets a
// private generator.
func NewDustBurst(cfg DustConfig, origin Vec3, rng *rand.Rand) *DustBurst {
	if rng == nil {
		rng = newRand()
	}
	return &DustBurst{config: cfg, origin: origin, rng: rng}
}

// Active reports whether the burst is showing.
func (d *DustBurst) Active() bool { return d.active }

// Len returns the number of live particles (zero while inactive).
func (d *DustBurst) Len() int { return len(d.Positions) }

// Origin returns the impact point.
func (d *DustBurst) Origin() Vec3 { return d.origin }

// Config returns the burst's configuration.
func (d *DustBurst) Config() DustConfig { return d.config }

// SetActive switches the burst on or off. Only transitions have an effect:
// off→on samples the cloud, on→off releases it.
func (d *DustBurst) SetActive(on bool) {
	if on == d.active {
		return
	}
	d.active = on
	if !on {
		d.Positions, d.Sizes, d.Colors = nil, nil, nil
		return
	}
	n := max(d.config.Count, 0)
	d.Positions = make([]Vec3, n)
	d.Sizes = make([]float64, n)
	d.Colors = make([]Color, n)
	for i := 0; i < n; i++ {
		d.spawnParticle(i)
	}
}

// spawnParticle samples particle i on a disc around the origin.
func (d *DustBurst) spawnParticle(i int) {
	angle := d.rng.Float64() * 2 * math.Pi
	radius := d.config.Radius.Random(d.rng)
	height := d.config.Height.Random(d.rng)
	sin, cos := math.Sincos(angle)
	d.Positions[i] = Vec3{cos * radius, height, sin * radius}
	d.Sizes[i] = d.config.Size.Random(d.rng)
	d.Colors[i] = Gray(d.config.Shade.Random(d.rng))
}

// Draw renders every particle as a filled circle projected through cam.
func (d *DustBurst) Draw(dst *ebiten.Image, cam *Camera) {
	if !d.active {
		return
	}
	for i, p := range d.Positions {
		screen, scale, ok := cam.WorldToScreen(d.origin.Add(p))
		if !ok {
			continue
		}
		r := math.Max(d.Sizes[i]*scale/2, 0.5)
		c := d.Colors[i].WithAlpha(d.config.Opacity).toRGBA()
		vector.DrawFilledCircle(dst, float32(screen.X), float32(screen.Y), float32(r), c, true)
	}
}
