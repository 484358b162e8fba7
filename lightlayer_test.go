package drift

import "testing"

func TestCircleAlpha(t *testing.T) {
	tests := []struct {
		d, want float64
	}{
		{0, 1},
		{0.5, 0.5},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := circleAlpha(tt.d); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("circleAlpha(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
	if circleAlpha(0.25) <= circleAlpha(0.75) {
		t.Error("falloff should decrease with distance")
	}
}

func TestLightLayerLights(t *testing.T) {
	ll := NewLightLayer(100, 100, 0.5)
	a := &Light{Radius: 10, Enabled: true}
	b := &Light{Radius: 20}
	ll.AddLight(a)
	ll.AddLight(b)
	if got := ll.Lights(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Lights = %v", got)
	}
}

func TestLightLayerAmbient(t *testing.T) {
	ll := NewLightLayer(100, 100, 0.5)
	if ll.AmbientAlpha() != 0.5 {
		t.Errorf("AmbientAlpha = %f", ll.AmbientAlpha())
	}
	ll.SetAmbientAlpha(0.8)
	if ll.AmbientAlpha() != 0.8 {
		t.Errorf("AmbientAlpha = %f after set", ll.AmbientAlpha())
	}
}

func TestLightLayerIntroAmbient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.Ambient = 0.3
	s := newTestScene(cfg)
	if got := s.Lights().AmbientAlpha(); !approxEqual(got, 0.7, epsilon) {
		t.Errorf("darkness = %f, want 1 - ambient", got)
	}
	if n := len(s.Lights().Lights()); n != 1 {
		t.Errorf("lights = %d, want the spot", n)
	}
}

func TestLightLayerResizeSameSize(t *testing.T) {
	ll := NewLightLayer(100, 50, 0.5)
	ll.Resize(100, 50)
	ll.Resize(200, 80)
	if ll.width != 200 || ll.height != 80 {
		t.Errorf("size = %dx%d", ll.width, ll.height)
	}
	ll.Dispose()
}
