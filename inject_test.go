package drift

import "testing"

func newMainStage(t *testing.T) *Stage {
	t.Helper()
	s := newTestStage()
	s.tick(testFrame, false)
	s.Page().SkipIntro()
	if s.Page().Phase() != PageMain {
		t.Fatalf("Phase = %v, want main", s.Page().Phase())
	}
	return s
}

func TestInjectScroll(t *testing.T) {
	s := newMainStage(t)
	s.InjectScroll(100)
	s.InjectScroll(50)
	if len(s.injectQueue) != 2 {
		t.Fatalf("queue = %d, want 2", len(s.injectQueue))
	}

	s.tick(testFrame, false)
	if got := s.Page().Scroller().ScrollY(); got != 100 {
		t.Errorf("after frame 1 ScrollY = %f, want 100", got)
	}
	s.tick(testFrame, false)
	if got := s.Page().Scroller().ScrollY(); got != 150 {
		t.Errorf("after frame 2 ScrollY = %f, want 150", got)
	}
	if len(s.injectQueue) != 0 {
		t.Errorf("queue = %d, want drained", len(s.injectQueue))
	}
}

func TestInjectScrollTo(t *testing.T) {
	s := newMainStage(t)
	s.InjectScrollTo(400, 4)
	if len(s.injectQueue) != 4 {
		t.Fatalf("queue = %d, want 4", len(s.injectQueue))
	}
	want := []float64{100, 200, 300, 400}
	for i, w := range want {
		s.tick(testFrame, false)
		if got := s.Page().Scroller().ScrollY(); !approxEqual(got, w, epsilon) {
			t.Errorf("frame %d ScrollY = %f, want %f", i, got, w)
		}
	}
}

func TestInjectScrollToChainsFromQueue(t *testing.T) {
	s := newMainStage(t)
	s.InjectScroll(200)
	s.InjectScrollTo(100, 2)
	if got := s.injectQueue[1].y; !approxEqual(got, 150, epsilon) {
		t.Errorf("first step target = %f, want 150", got)
	}
}

func TestInjectScrollToMinimumFrames(t *testing.T) {
	s := newMainStage(t)
	s.InjectScrollTo(250, 0)
	if len(s.injectQueue) != 1 {
		t.Fatalf("queue = %d, want 1", len(s.injectQueue))
	}
	s.tick(testFrame, false)
	if got := s.Page().Scroller().ScrollY(); got != 250 {
		t.Errorf("ScrollY = %f, want 250", got)
	}
}

func TestInjectScrollClamps(t *testing.T) {
	s := newMainStage(t)
	s.InjectScroll(-500)
	s.tick(testFrame, false)
	if got := s.Page().Scroller().ScrollY(); got != 0 {
		t.Errorf("ScrollY = %f, want clamped to 0", got)
	}
}
