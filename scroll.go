package drift

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the visible window onto the page, in page coordinates.
type Viewport struct {
	ScrollY float64
	Width   float64
	Height  float64
}

// ScrollListener receives the viewport after every scroll or resize.
type ScrollListener func(Viewport)

type listenerEntry struct {
	id uint64
	fn ScrollListener
}

// Scroller owns the page's scroll position and viewport size, and notifies
// subscribed listeners whenever either changes. It plays the role a camera
// plays for a world: content is drawn offset by -ScrollY.
type Scroller struct {
	viewport      Viewport
	contentHeight float64

	listeners []listenerEntry
	nextID    uint64
	notifying bool
	removed   bool

	tween *gween.Tween
}

// NewScroller creates a scroller for a viewport of the given size.
func NewScroller(width, height float64) *Scroller {
	return &Scroller{viewport: Viewport{Width: width, Height: height}}
}

// Viewport returns the current viewport.
func (s *Scroller) Viewport() Viewport { return s.viewport }

// ScrollY returns the current scroll offset.
func (s *Scroller) ScrollY() float64 { return s.viewport.ScrollY }

// SetContentHeight sets the total page height used to clamp scrolling.
func (s *Scroller) SetContentHeight(h float64) {
	s.contentHeight = h
	s.SetScroll(s.viewport.ScrollY)
}

// MaxScroll returns the largest valid scroll offset.
func (s *Scroller) MaxScroll() float64 {
	return max(s.contentHeight-s.viewport.Height, 0)
}

// SetScroll jumps to offset y (clamped) and notifies listeners if it changed.
// Any running ScrollTo animation is cancelled.
func (s *Scroller) SetScroll(y float64) {
	s.tween = nil
	s.setScroll(y)
}

func (s *Scroller) setScroll(y float64) {
	y = max(min(y, s.MaxScroll()), 0)
	if y == s.viewport.ScrollY {
		return
	}
	s.viewport.ScrollY = y
	s.notify()
}

// ScrollBy scrolls relative to the current offset.
func (s *Scroller) ScrollBy(dy float64) {
	s.SetScroll(s.viewport.ScrollY + dy)
}

// ScrollTo animates the scroll offset to y over duration seconds.
func (s *Scroller) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = max(min(y, s.MaxScroll()), 0)
	s.tween = gween.New(float32(s.viewport.ScrollY), float32(y), duration, easeFn)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (s *Scroller) Scrolling() bool { return s.tween != nil }

// Resize changes the viewport size and notifies listeners.
func (s *Scroller) Resize(width, height float64) {
	if width == s.viewport.Width && height == s.viewport.Height {
		return
	}
	s.viewport.Width = width
	s.viewport.Height = height
	s.viewport.ScrollY = max(min(s.viewport.ScrollY, s.MaxScroll()), 0)
	s.notify()
}

// update advances a running ScrollTo animation. Called from Page.Update.
func (s *Scroller) update(dt float32) {
	if s.tween == nil {
		return
	}
	val, done := s.tween.Update(dt)
	if done {
		s.tween = nil
	}
	s.setScroll(float64(val))
}

// Subscribe registers fn for scroll and resize notifications and returns a
// function that removes it. The cancel function is idempotent.
func (s *Scroller) Subscribe(fn ScrollListener) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() { s.unsubscribe(id) }
}

// Listeners returns the number of live subscriptions.
func (s *Scroller) Listeners() int {
	n := 0
	for _, l := range s.listeners {
		if l.fn != nil {
			n++
		}
	}
	return n
}

func (s *Scroller) unsubscribe(id uint64) {
	for i := range s.listeners {
		if s.listeners[i].id == id {
			if s.notifying {
				s.listeners[i].fn = nil
				s.removed = true
			} else {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			}
			return
		}
	}
}

// notify calls every listener with the current viewport. Listeners may
// unsubscribe (themselves or others) while being notified.
func (s *Scroller) notify() {
	s.notifying = true
	for i := 0; i < len(s.listeners); i++ {
		if fn := s.listeners[i].fn; fn != nil {
			fn(s.viewport)
		}
	}
	s.notifying = false
	if s.removed {
		live := s.listeners[:0]
		for _, l := range s.listeners {
			if l.fn != nil {
				live = append(live, l)
			}
		}
		s.listeners = live
		s.removed = false
	}
}

// --- ScrollTracker ---

// Span is a region of the page, in page coordinates.
type Span struct {
	Top, Height float64
}

// Offset names an intersection edge: the point Target (0 = start, 1 = end)
// of the tracked region meeting the point Container of the viewport.
type Offset struct {
	Target, Container float64
}

var (
	// OffsetStartEnd: region top meets viewport bottom (region entering).
	OffsetStartEnd = Offset{Target: 0, Container: 1}
	// OffsetEndStart: region bottom meets viewport top (region leaving).
	OffsetEndStart = Offset{Target: 1, Container: 0}
	// OffsetStartStart: region top meets viewport top.
	OffsetStartStart = Offset{Target: 0, Container: 0}
)

// ScrollProgress returns how far span has travelled between the start and
// end edges for the given viewport, in [0, 1].
func ScrollProgress(span Span, start, end Offset, vp Viewport) float64 {
	from := span.Top + start.Target*span.Height - start.Container*vp.Height
	to := span.Top + end.Target*span.Height - end.Container*vp.Height
	return MapRange(vp.ScrollY, from, to, 0, 1, nil)
}

// ScrollTracker keeps a live scroll progress value for one region. Mount it
// on a Scroller to start tracking; Progress always returns the value from
// the latest notification.
type ScrollTracker struct {
	span       Span
	start, end Offset
	progress   float64

	scroller *Scroller
	cancel   func()
	listener ScrollListener // bound once so notifications never allocate
}

// NewScrollTracker creates a tracker for span between the start and end
// edges.
func NewScrollTracker(span Span, start, end Offset) *ScrollTracker {
	t := &ScrollTracker{span: span, start: start, end: end}
	t.listener = t.sample
	return t
}

// Progress returns the latest progress in [0, 1].
func (t *ScrollTracker) Progress() float64 { return t.progress }

// Span returns the tracked region.
func (t *ScrollTracker) Span() Span { return t.span }

// SetSpan moves the tracked region (after a relayout) and resamples if
// mounted.
func (t *ScrollTracker) SetSpan(span Span) {
	t.span = span
	if t.scroller != nil {
		t.sample(t.scroller.Viewport())
	}
}

// Mount subscribes the tracker to s and samples immediately. It reports
// false, leaving progress static, when s is nil or the region has no
// height.
func (t *ScrollTracker) Mount(s *Scroller) bool {
	if t.cancel != nil {
		return true
	}
	if s == nil || t.span.Height <= 0 {
		return false
	}
	t.scroller = s
	t.cancel = s.Subscribe(t.listener)
	t.sample(s.Viewport())
	return true
}

// Unmount releases the subscription. Progress keeps its last value.
func (t *ScrollTracker) Unmount() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.scroller = nil
}

// Mounted reports whether the tracker currently holds a subscription.
func (t *ScrollTracker) Mounted() bool { return t.cancel != nil }

func (t *ScrollTracker) sample(vp Viewport) {
	t.progress = ScrollProgress(t.span, t.start, t.end, vp)
}
