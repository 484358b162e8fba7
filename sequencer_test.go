package drift

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// stubDisplay records calls from the sequencer and lets tests finish the
// headline by hand.
type stubDisplay struct {
	starts     int
	text       string
	timing     TextTiming
	onComplete func()
	updates    int
	closed     bool
}

func (d *stubDisplay) Start(s string, timing TextTiming, onComplete func()) {
	d.starts++
	d.text = s
	d.timing = timing
	d.onComplete = onComplete
}

func (d *stubDisplay) Update(time.Duration) { d.updates++ }
func (d *stubDisplay) Draw(*ebiten.Image, *Font, float64, float64) {}
func (d *stubDisplay) Close() { d.closed = true }

func (d *stubDisplay) finish() {
	if d.onComplete != nil {
		d.onComplete()
	}
}

type eventLog []IntroEvent

func (l *eventLog) EmitIntroEvent(e IntroEvent) { *l = append(*l, e) }

func newTestSequencer() (*IntroSequencer, *stubDisplay, *IntroScene) {
	cfg := DefaultConfig()
	scene := NewIntroScene(cfg, 800, 600, rand.New(rand.NewPCG(5, 5)))
	disp := &stubDisplay{}
	return NewIntroSequencer(cfg.Intro, scene, disp), disp, scene
}

// advance steps q by total in 10ms frames.
func advance(q *IntroSequencer, total time.Duration) {
	for total > 0 {
		dt := min(10*time.Millisecond, total)
		q.Update(dt)
		total -= dt
	}
}

func TestIntroSequencer_ImpactBeforeText(t *testing.T) {
	q, disp, scene := newTestSequencer()
	q.Mount(nil)

	advance(q, 1100*time.Millisecond)
	if !q.Impact() {
		t.Error("impact should have fired by 1100ms")
	}
	if !scene.Dust().Active() {
		t.Error("dust should be active after impact")
	}
	if q.TextShown() || disp.starts != 0 {
		t.Error("text should not be shown at 1100ms")
	}

	advance(q, 100*time.Millisecond)
	if !q.TextShown() {
		t.Fatal("text should be shown at 1200ms")
	}
	if disp.starts != 1 || disp.text != DefaultConfig().Intro.Text {
		t.Errorf("display started %d times with %q", disp.starts, disp.text)
	}
	if disp.timing.LetterDuration != DefaultConfig().Intro.LetterDuration {
		t.Errorf("LetterDuration = %v", disp.timing.LetterDuration)
	}
}

func TestIntroSequencer_CompletesOnce(t *testing.T) {
	q, disp, _ := newTestSequencer()
	calls := 0
	q.Mount(func() { calls++ })
	advance(q, 1300*time.Millisecond)

	disp.finish()
	disp.finish()
	if calls != 1 {
		t.Errorf("completion called %d times, want 1", calls)
	}
	if !q.Completed() {
		t.Error("Completed should be true")
	}
}

func TestIntroSequencer_UnmountBeforeImpact(t *testing.T) {
	q, disp, scene := newTestSequencer()
	calls := 0
	q.Mount(func() { calls++ })
	advance(q, 500*time.Millisecond)

	q.Unmount()
	advance(q, 2*time.Second)

	if q.Impact() || q.TextShown() {
		t.Error("no timer should fire after unmount")
	}
	if calls != 0 {
		t.Errorf("completion called %d times after unmount", calls)
	}
	if !disp.closed {
		t.Error("display should be closed")
	}
	if scene.Mounted() || scene.Dust().Active() {
		t.Error("scene should be torn down")
	}
}

func TestIntroSequencer_CompletionAfterUnmountIgnored(t *testing.T) {
	q, disp, _ := newTestSequencer()
	calls := 0
	q.Mount(func() { calls++ })
	advance(q, 1300*time.Millisecond)

	q.Unmount()
	disp.finish()
	if calls != 0 || q.Completed() {
		t.Error("completion after unmount should be dropped")
	}
}

func TestIntroSequencer_SingleLargeStep(t *testing.T) {
	q, _, _ := newTestSequencer()
	var log eventLog
	q.SetEventSink(&log)
	q.Mount(nil)
	q.Update(2 * time.Second)

	want := []IntroEvent{
		{IntroMounted, 0},
		{IntroImpact, 1000 * time.Millisecond},
		{IntroTextShown, 1200 * time.Millisecond},
	}
	if len(log) != len(want) {
		t.Fatalf("events = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, log[i], want[i])
		}
	}
}

func TestIntroSequencer_NilDisplayCompletesAtText(t *testing.T) {
	cfg := DefaultConfig()
	q := NewIntroSequencer(cfg.Intro, nil, nil)
	done := false
	q.Mount(func() { done = true })
	advance(q, 1199*time.Millisecond)
	if done {
		t.Fatal("completed before the text timer")
	}
	advance(q, time.Millisecond)
	if !done {
		t.Error("a sequencer with no display should complete when the text is due")
	}
}

func TestIntroSequencer_FadeIn(t *testing.T) {
	q, _, _ := newTestSequencer()
	q.Mount(nil)
	advance(q, 1100*time.Millisecond)
	if q.Fade() != 0 {
		t.Errorf("Fade before text = %f, want 0", q.Fade())
	}
	advance(q, time.Second)
	if !approxEqual(q.Fade(), 1, 1e-6) {
		t.Errorf("Fade after fade-in = %f, want 1", q.Fade())
	}
}

func TestIntroSequencer_Remount(t *testing.T) {
	q, disp, _ := newTestSequencer()
	q.Mount(nil)
	advance(q, 1300*time.Millisecond)
	q.Unmount()

	q.Mount(nil)
	if q.Impact() || q.TextShown() || q.Elapsed() != 0 {
		t.Error("remount should reset state")
	}
	advance(q, 1000*time.Millisecond)
	if !q.Impact() {
		t.Error("impact should fire again after remount")
	}
	if disp.starts != 1 {
		t.Errorf("display starts = %d, want 1 before the second text timer", disp.starts)
	}
}

func TestIntroSequencer_RemountLetterReveal(t *testing.T) {
	cfg := DefaultConfig()
	scene := NewIntroScene(cfg, 800, 600, rand.New(rand.NewPCG(5, 5)))
	q := NewIntroSequencer(cfg.Intro, scene, NewLetterReveal())

	q.Mount(nil)
	advance(q, 500*time.Millisecond)
	q.Unmount()

	calls := 0
	q.Mount(func() { calls++ })
	advance(q, 3*time.Second)
	if calls != 1 || !q.Completed() {
		t.Errorf("calls = %d completed = %v after remount, want 1 and true", calls, q.Completed())
	}
}

func TestIntroSequencer_UnmountEventsWithoutMount(t *testing.T) {
	q, _, _ := newTestSequencer()
	var log eventLog
	q.SetEventSink(&log)
	q.Unmount()
	if len(log) != 0 {
		t.Errorf("unmount of an idle sequencer emitted %v", log)
	}
}

func TestIntroEventKindString(t *testing.T) {
	tests := []struct {
		kind IntroEventKind
		want string
	}{
		{IntroMounted, "mounted"},
		{IntroImpact, "impact"},
		{IntroTextShown, "text-shown"},
		{IntroCompleted, "completed"},
		{IntroUnmounted, "unmounted"},
		{IntroEventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
