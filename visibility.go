package drift

// GateState is the lifecycle of a VisibilityGate.
type GateState uint8

const (
	GateIdle  GateState = iota // created, not observing
	GateArmed                  // observing, waiting for the region to appear
	GateDone                   // fired or closed; observation released for good
)

// String returns the state name.
func (s GateState) String() string {
	switch s {
	case GateIdle:
		return "idle"
	case GateArmed:
		return "armed"
	case GateDone:
		return "done"
	default:
		return "unknown"
	}
}

// VisibilityGate is a fire-once latch that reports the first time a region
// becomes visible in the viewport. Once it fires, or is closed, it releases
// its subscription and can never re-arm.
type VisibilityGate struct {
	span      Span
	threshold float64
	state     GateState
	fired     bool
	onVisible func()

	scroller *Scroller
	cancel   func()
	listener ScrollListener
}

// NewVisibilityGate creates an idle gate for span. threshold is the fraction
// of the region (in [0, 1]) that must be visible before it fires.
func NewVisibilityGate(span Span, threshold float64, onVisible func()) *VisibilityGate {
	g := &VisibilityGate{
		span:      span,
		threshold: clamp01(threshold),
		onVisible: onVisible,
	}
	g.listener = g.check
	return g
}

// State returns the gate's current state.
func (g *VisibilityGate) State() GateState { return g.state }

// Fired reports whether the gate has fired.
func (g *VisibilityGate) Fired() bool { return g.fired }

// Observe arms the gate on s and checks visibility immediately. It returns
// false without arming when the gate is not idle, s is nil, or the region
// has no height.
func (g *VisibilityGate) Observe(s *Scroller) bool {
	if g.state != GateIdle || s == nil || g.span.Height <= 0 {
		return false
	}
	g.state = GateArmed
	g.scroller = s
	g.cancel = s.Subscribe(g.listener)
	g.check(s.Viewport())
	return true
}

// SetSpan moves the observed region. An armed gate re-checks visibility
// against the current viewport, so a relayout can fire it without a scroll.
func (g *VisibilityGate) SetSpan(span Span) {
	g.span = span
	if g.state == GateArmed && g.scroller != nil {
		g.check(g.scroller.Viewport())
	}
}

// Close releases the observation. An armed gate becomes done without firing.
func (g *VisibilityGate) Close() {
	g.release()
	g.state = GateDone
}

func (g *VisibilityGate) release() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.scroller = nil
}

func (g *VisibilityGate) check(vp Viewport) {
	if g.state != GateArmed {
		return
	}
	if !spanVisible(g.span, vp, g.threshold) {
		return
	}
	g.release()
	g.state = GateDone
	g.fired = true
	if g.onVisible != nil {
		g.onVisible()
	}
}

// VisibleFraction returns the fraction of span inside the viewport.
func VisibleFraction(span Span, vp Viewport) float64 {
	if span.Height <= 0 {
		return 0
	}
	return visibleHeight(span, vp) / span.Height
}

func visibleHeight(span Span, vp Viewport) float64 {
	top := max(span.Top, vp.ScrollY)
	bottom := min(span.Top+span.Height, vp.ScrollY+vp.Height)
	return max(bottom-top, 0)
}

// spanVisible reports whether enough of span is on screen. A region taller
// than the viewport counts as visible once it fills the viewport, since its
// visible fraction may never reach the threshold.
func spanVisible(span Span, vp Viewport, threshold float64) bool {
	h := visibleHeight(span, vp)
	if h <= 0 {
		return false
	}
	if h/span.Height >= threshold {
		return true
	}
	return vp.Height > 0 && h >= vp.Height
}
