package drift

import (
	"math/rand/v2"
	"testing"
	"time"
)

func newTestPage(cfg Config) *Page {
	p := NewPage(cfg, PageFonts{}, 800, 600)
	p.SetRand(rand.New(rand.NewPCG(9, 9)))
	return p
}

// runPage steps p by total in 10ms frames.
func runPage(p *Page, total time.Duration) {
	for total > 0 {
		dt := min(10*time.Millisecond, total)
		p.Update(dt)
		total -= dt
	}
}

func TestPage_MountStartsIntro(t *testing.T) {
	p := newTestPage(DefaultConfig())
	if p.Phase() != PageIdle {
		t.Fatalf("Phase = %v, want idle", p.Phase())
	}
	p.Mount()
	if p.Phase() != PageLoading || !p.Intro().Mounted() {
		t.Errorf("Phase = %v intro mounted = %v", p.Phase(), p.Intro().Mounted())
	}
	if p.Scroller().MaxScroll() != 0 {
		t.Error("the page should not scroll while loading")
	}
}

func TestPage_FallbackEndsLoading(t *testing.T) {
	p := newTestPage(DefaultConfig())
	var log eventLog
	p.SetEventSink(&log)
	p.Mount()

	runPage(p, 1990*time.Millisecond)
	if p.Phase() != PageLoading {
		t.Fatalf("Phase = %v before the fallback, want loading", p.Phase())
	}
	runPage(p, 10*time.Millisecond)
	if p.Phase() != PageMain {
		t.Fatalf("Phase = %v after the fallback, want main", p.Phase())
	}
	if p.Intro().Mounted() || p.Intro().Completed() {
		t.Error("intro should be unmounted without completing")
	}
	if last := log[len(log)-1]; last.Kind != IntroUnmounted {
		t.Errorf("last event = %v, want unmounted", last.Kind)
	}
}

func TestPage_IntroCompletionEndsLoading(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Page.LoadingFallback = time.Minute
	p := newTestPage(cfg)
	var log eventLog
	p.SetEventSink(&log)
	p.Mount()

	runPage(p, 3*time.Second)
	if p.Phase() != PageMain {
		t.Fatalf("Phase = %v, want main after the headline finished", p.Phase())
	}
	kinds := make([]IntroEventKind, len(log))
	for i, e := range log {
		kinds[i] = e.Kind
	}
	want := []IntroEventKind{IntroMounted, IntroImpact, IntroTextShown, IntroCompleted, IntroUnmounted}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	// The fallback was cancelled; a later tick must not remount.
	runPage(p, time.Minute)
	if p.Phase() != PageMain {
		t.Errorf("Phase = %v, want main", p.Phase())
	}
}

func TestPage_SkipIntro(t *testing.T) {
	p := newTestPage(DefaultConfig())
	p.Mount()
	p.SkipIntro()
	if p.Phase() != PageMain {
		t.Fatalf("Phase = %v, want main", p.Phase())
	}
	if p.HeroTitle() == nil || p.CTATitle() == nil || p.Focus() == nil {
		t.Fatal("main content not built")
	}
	if p.ContentHeight() <= 600 {
		t.Errorf("ContentHeight = %f, want taller than the viewport", p.ContentHeight())
	}
	p.SkipIntro()
	if p.Phase() != PageMain {
		t.Error("second skip should be a no-op")
	}
}

func TestPage_SectionsStack(t *testing.T) {
	p := newTestPage(DefaultConfig())
	p.Mount()
	p.SkipIntro()
	prev := p.Section(SectionHero)
	for i := SectionAbout; i < numSections; i++ {
		s := p.Section(i)
		if s.Top < prev.Top+prev.Height-epsilon {
			t.Errorf("section %d top %f overlaps previous end %f", i, s.Top, prev.Top+prev.Height)
		}
		if s.Height <= 0 {
			t.Errorf("section %d has height %f", i, s.Height)
		}
		prev = s
	}
}

func TestPage_ScrambleRevealsOnScroll(t *testing.T) {
	p := newTestPage(DefaultConfig())
	p.Mount()
	p.SkipIntro()

	if p.HeroSubtitle().Phase() == ScrambleIdle {
		t.Error("hero subtitle is on screen and should have triggered")
	}
	if p.AboutBody().Phase() != ScrambleIdle {
		t.Fatal("about body is below the fold and should be idle")
	}
	p.Scroller().SetScroll(p.Section(SectionAbout).Top)
	if p.AboutBody().Phase() == ScrambleIdle {
		t.Error("about body should trigger once scrolled into view")
	}
	runPage(p, 2*time.Second)
	if p.AboutBody().Phase() != ScrambleDone {
		t.Errorf("about body phase = %v, want done", p.AboutBody().Phase())
	}
}

func TestPage_HeroParallax(t *testing.T) {
	p := newTestPage(DefaultConfig())
	if o, s, y := p.HeroParallax(); o != 1 || s != 1 || y != 0 {
		t.Errorf("parallax before main = (%f, %f, %f)", o, s, y)
	}
	p.Mount()
	p.SkipIntro()
	p.Scroller().SetScroll(300)
	o, s, y := p.HeroParallax()
	if !approxEqual(o, 0.5, epsilon) || !approxEqual(s, 0.95, epsilon) || !approxEqual(y, 50, epsilon) {
		t.Errorf("parallax at half = (%f, %f, %f), want (0.5, 0.95, 50)", o, s, y)
	}
}

func TestPage_Unmount(t *testing.T) {
	p := newTestPage(DefaultConfig())
	p.Mount()
	p.SkipIntro()
	if p.Scroller().Listeners() == 0 {
		t.Fatal("main content should subscribe to the scroller")
	}
	p.Unmount()
	if p.Phase() != PageClosed {
		t.Errorf("Phase = %v, want closed", p.Phase())
	}
	if n := p.Scroller().Listeners(); n != 0 {
		t.Errorf("Listeners = %d after unmount, want 0", n)
	}
}

func TestPage_UnmountWhileLoading(t *testing.T) {
	p := newTestPage(DefaultConfig())
	p.Mount()
	runPage(p, 500*time.Millisecond)
	p.Unmount()
	runPage(p, 3*time.Second)
	if p.Phase() != PageClosed {
		t.Errorf("Phase = %v, want closed", p.Phase())
	}
	if p.Intro().Impact() {
		t.Error("intro timers should not fire after unmount")
	}
}

func TestPage_Resize(t *testing.T) {
	p := newTestPage(DefaultConfig())
	p.Mount()
	p.SkipIntro()
	p.Resize(1024, 768)
	if vp := p.Scroller().Viewport(); vp.Width != 1024 || vp.Height != 768 {
		t.Errorf("viewport = %+v", vp)
	}
	if hero := p.Section(SectionHero); hero.Height != 768 {
		t.Errorf("hero height = %f, want 768", hero.Height)
	}
}

func TestPagePhaseString(t *testing.T) {
	if PageLoading.String() != "loading" || PagePhase(42).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
