package drift

// scrollInjection is a single queued scroll event. Relative events scroll
// by dy; absolute events jump to y.
type scrollInjection struct {
	dy       float64
	y        float64
	absolute bool
}

// InjectScroll queues a relative scroll of dy pixels, applied on the next
// frame in place of real wheel and keyboard input.
func (s *Stage) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, scrollInjection{dy: dy})
}

// InjectScrollTo queues a scroll from the current target to y spread
// linearly over frames frames (minimum 1). The start point is the scroll
// position after any events already queued.
func (s *Stage) InjectScrollTo(y float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	from := s.queuedScroll()
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		s.injectQueue = append(s.injectQueue, scrollInjection{
			y:        from + (y-from)*t,
			absolute: true,
		})
	}
}

// queuedScroll returns the scroll position after every queued event has
// been applied, ignoring clamping.
func (s *Stage) queuedScroll() float64 {
	y := s.page.Scroller().ScrollY()
	for _, e := range s.injectQueue {
		if e.absolute {
			y = e.y
		} else {
			y += e.dy
		}
	}
	return y
}

// processInjectedScroll pops one event from the inject queue and applies
// it to the scroller. Returns true if an event was consumed (real input
// should be skipped).
func (s *Stage) processInjectedScroll() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	sc := s.page.Scroller()
	if evt.absolute {
		sc.SetScroll(evt.y)
	} else {
		sc.ScrollBy(evt.dy)
	}
	return true
}
