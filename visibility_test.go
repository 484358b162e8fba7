package drift

import (
	"math"
	"testing"
)

func TestVisibilityGateFiresOnce(t *testing.T) {
	s := newTestScroller()
	n := 0
	g := NewVisibilityGate(Span{Top: 1000, Height: 100}, 0.1, func() { n++ })

	if !g.Observe(s) {
		t.Fatal("Observe failed")
	}
	if g.State() != GateArmed {
		t.Fatalf("state = %v, want armed", g.State())
	}

	s.SetScroll(405) // 5px of 100 visible
	if n != 0 {
		t.Fatal("fired below threshold")
	}
	s.SetScroll(420) // 20% visible
	if n != 1 || !g.Fired() || g.State() != GateDone {
		t.Fatalf("n = %d state = %v, want fired once and done", n, g.State())
	}
	if s.Listeners() != 0 {
		t.Errorf("gate still subscribed after firing")
	}

	// Leaving and re-entering never re-fires.
	s.SetScroll(0)
	s.SetScroll(1000)
	if n != 1 {
		t.Errorf("n = %d after re-entry, want 1", n)
	}
	if g.Observe(s) {
		t.Error("a done gate must not re-arm")
	}
}

func TestVisibilityGateFiresImmediatelyWhenVisible(t *testing.T) {
	s := newTestScroller()
	fired := false
	g := NewVisibilityGate(Span{Top: 100, Height: 50}, 0.1, func() { fired = true })
	g.Observe(s)
	if !fired {
		t.Error("gate over an already visible span should fire on Observe")
	}
}

func TestVisibilityGateSetSpanIntoView(t *testing.T) {
	s := newTestScroller()
	n := 0
	g := NewVisibilityGate(Span{Top: 2000, Height: 100}, 0.1, func() { n++ })
	g.Observe(s)
	if n != 0 {
		t.Fatal("fired while off-screen")
	}

	g.SetSpan(Span{Top: 100, Height: 100})
	if n != 1 || g.State() != GateDone {
		t.Fatalf("n = %d state = %v after relayout, want fired once and done", n, g.State())
	}
	g.SetSpan(Span{Top: 200, Height: 100})
	s.SetScroll(50)
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestVisibilityGateCloseBeforeFire(t *testing.T) {
	s := newTestScroller()
	fired := false
	g := NewVisibilityGate(Span{Top: 1000, Height: 100}, 0.1, func() { fired = true })
	g.Observe(s)
	g.Close()
	s.SetScroll(1000)
	if fired {
		t.Error("closed gate fired")
	}
	if g.State() != GateDone || g.Fired() {
		t.Errorf("state = %v fired = %v, want done without firing", g.State(), g.Fired())
	}
	if s.Listeners() != 0 {
		t.Error("closed gate still subscribed")
	}
}

func TestVisibilityGateObserveFailures(t *testing.T) {
	g := NewVisibilityGate(Span{Top: 0, Height: 100}, 0.1, nil)
	if g.Observe(nil) {
		t.Error("Observe(nil) should fail")
	}
	if g.State() != GateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
	flat := NewVisibilityGate(Span{Top: 0}, 0.1, nil)
	if flat.Observe(newTestScroller()) {
		t.Error("Observe of a zero-height span should fail")
	}
}

func TestVisibilityGateTallRegion(t *testing.T) {
	s := newTestScroller()
	fired := false
	// 40% of a 2000px region can never fit in a 600px viewport.
	g := NewVisibilityGate(Span{Top: 800, Height: 2000}, 0.4, func() { fired = true })
	g.Observe(s)
	s.SetScroll(900)
	if !fired {
		t.Error("a region filling the viewport should count as visible")
	}
}

func TestVisibleFraction(t *testing.T) {
	vp := Viewport{ScrollY: 0, Height: 600}
	tests := []struct {
		span Span
		want float64
	}{
		{Span{Top: 100, Height: 100}, 1},
		{Span{Top: 550, Height: 100}, 0.5},
		{Span{Top: 700, Height: 100}, 0},
		{Span{Top: 0, Height: 0}, 0},
	}
	for _, tt := range tests {
		if got := VisibleFraction(tt.span, vp); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("VisibleFraction(%+v) = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestGateStateString(t *testing.T) {
	if GateArmed.String() != "armed" || GateState(9).String() != "unknown" {
		t.Error("unexpected GateState names")
	}
}
