package drift

import "testing"

// --- Padding ---

func TestColorMatrixFilterPadding(t *testing.T) {
	f := NewColorMatrixFilter()
	if f.Padding() != 0 {
		t.Errorf("ColorMatrixFilter Padding() = %d, want 0", f.Padding())
	}
}

func TestBlurFilterPadding(t *testing.T) {
	f := NewBlurFilter(8)
	if f.Padding() != 8 {
		t.Errorf("BlurFilter Padding() = %d, want 8", f.Padding())
	}
}

func TestBlurFilterNegativeRadius(t *testing.T) {
	f := NewBlurFilter(-5)
	if f.Radius != 0 {
		t.Errorf("negative radius should clamp to 0, got %d", f.Radius)
	}
}

func TestFilterChainPadding(t *testing.T) {
	filters := []Filter{NewBlurFilter(2), NewColorMatrixFilter(), NewBlurFilter(3)}
	if got := filterChainPadding(filters); got != 5 {
		t.Errorf("filterChainPadding = %d, want 5", got)
	}
}

func TestFilterChainPaddingEmpty(t *testing.T) {
	if got := filterChainPadding(nil); got != 0 {
		t.Errorf("filterChainPadding(nil) = %d, want 0", got)
	}
}

// --- Color matrix ---

func TestColorMatrixFilterIdentity(t *testing.T) {
	f := NewColorMatrixFilter()
	if !f.Identity() {
		t.Error("new filter should be the identity")
	}
	f.SetAlphaScale(0.5)
	if f.Identity() {
		t.Error("scaled alpha should not be the identity")
	}
	if f.Matrix[18] != 0.5 {
		t.Errorf("alpha coefficient = %v, want 0.5", f.Matrix[18])
	}
	for _, i := range []int{0, 6, 12} {
		if f.Matrix[i] != 1 {
			t.Errorf("color coefficient %d = %v, want 1", i, f.Matrix[i])
		}
	}
	f.SetAlphaScale(1)
	if !f.Identity() {
		t.Error("alpha scale 1 should restore the identity")
	}
}

// --- Blur ---

func TestBlurPasses(t *testing.T) {
	tests := []struct{ radius, want int }{
		{0, 0},
		{-1, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{5, 3},
		{8, 3},
	}
	for _, tt := range tests {
		if got := blurPasses(tt.radius); got != tt.want {
			t.Errorf("blurPasses(%d) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

// --- Pool ---

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {100, 128}, {1024, 1024},
	}
	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestTexturePoolReuse(t *testing.T) {
	var p texturePool
	img := p.Acquire(30, 20)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("Acquire(30, 20) bounds = %v, want 32x32", b)
	}
	p.Release(img)
	if again := p.Acquire(17, 31); again != img {
		t.Error("released image should be reused for the same bucket")
	}
	p.Release(img)
	p.Dispose()
	if len(p.buckets) != 0 {
		t.Errorf("Dispose left %d buckets", len(p.buckets))
	}
}
