package drift

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestDustBurstInactiveByDefault(t *testing.T) {
	d := NewDustBurst(DefaultConfig().Dust, Vec3{}, nil)
	if d.Active() || d.Len() != 0 {
		t.Errorf("new burst active=%v len=%d, want inactive and empty", d.Active(), d.Len())
	}
}

func TestDustBurstSamplesWithinRanges(t *testing.T) {
	cfg := DefaultConfig().Dust
	d := NewDustBurst(cfg, Vec3{Y: -5}, rand.New(rand.NewPCG(1, 1)))
	d.SetActive(true)

	if d.Len() != cfg.Count {
		t.Fatalf("Len = %d, want %d", d.Len(), cfg.Count)
	}
	for i, p := range d.Positions {
		r := math.Hypot(p.X, p.Z)
		if r < cfg.Radius.Min-epsilon || r > cfg.Radius.Max+epsilon {
			t.Errorf("particle %d radius %f outside %v", i, r, cfg.Radius)
		}
		if p.Y < cfg.Height.Min || p.Y > cfg.Height.Max {
			t.Errorf("particle %d height %f outside %v", i, p.Y, cfg.Height)
		}
		if s := d.Sizes[i]; s < cfg.Size.Min || s > cfg.Size.Max {
			t.Errorf("particle %d size %f outside %v", i, s, cfg.Size)
		}
		c := d.Colors[i]
		if c.R != c.G || c.G != c.B || c.R < cfg.Shade.Min || c.R > cfg.Shade.Max {
			t.Errorf("particle %d color %+v not a gray in %v", i, c, cfg.Shade)
		}
	}
}

func TestDustBurstStaticWhileActive(t *testing.T) {
	d := NewDustBurst(DefaultConfig().Dust, Vec3{}, rand.New(rand.NewPCG(2, 2)))
	d.SetActive(true)
	first := d.Positions[0]
	d.SetActive(true) // not a transition
	if d.Positions[0] != first {
		t.Error("re-activating an active burst resampled it")
	}
}

func TestDustBurstResamplesOnReactivation(t *testing.T) {
	d := NewDustBurst(DefaultConfig().Dust, Vec3{}, rand.New(rand.NewPCG(3, 3)))
	d.SetActive(true)
	first := d.Positions[0]

	d.SetActive(false)
	if d.Positions != nil || d.Len() != 0 {
		t.Error("deactivation should release particles")
	}
	d.SetActive(true)
	if d.Positions[0] == first {
		t.Error("reactivation should sample a fresh cloud")
	}
}

func TestDustBurstZeroCount(t *testing.T) {
	cfg := DefaultConfig().Dust
	cfg.Count = 0
	d := NewDustBurst(cfg, Vec3{}, nil)
	d.SetActive(true)
	if !d.Active() || d.Len() != 0 {
		t.Errorf("active=%v len=%d, want active and empty", d.Active(), d.Len())
	}
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	r := Range{Min: 2, Max: 3}
	for i := 0; i < 100; i++ {
		if v := r.Random(rng); v < 2 || v > 3 {
			t.Fatalf("Random = %f outside [2, 3]", v)
		}
	}
	if v := (Range{Min: 5, Max: 5}).Random(rng); v != 5 {
		t.Errorf("degenerate range = %f, want 5", v)
	}
}
