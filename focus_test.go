package drift

import (
	"testing"
	"time"
)

func testFocusConfig() FocusConfig {
	cfg := DefaultConfig().Focus
	cfg.Cycle = 200 * time.Millisecond
	cfg.Pause = 100 * time.Millisecond
	return cfg
}

func TestFocusCycler_StartFocusesFirstWord(t *testing.T) {
	cfg := testFocusConfig()
	f := NewFocusCycler(cfg)
	f.Start("STAY FOCUSED KEEP", TextTiming{}, nil)

	if got := len(f.Words()); got != 3 {
		t.Fatalf("words = %d, want 3", got)
	}
	if f.Focused() != 0 || f.Blur(0) != 0 {
		t.Errorf("focused %d blur %f, want word 0 sharp", f.Focused(), f.Blur(0))
	}
	if f.Blur(1) != cfg.Blur || f.Blur(2) != cfg.Blur {
		t.Error("unfocused words should start blurred")
	}
}

func TestFocusCycler_Advances(t *testing.T) {
	cfg := testFocusConfig()
	f := NewFocusCycler(cfg)
	f.Start("A B C", TextTiming{}, nil)

	f.Update(299 * time.Millisecond)
	if f.Focused() != 0 {
		t.Fatalf("focus moved early to %d", f.Focused())
	}
	f.Update(time.Millisecond)
	if f.Focused() != 1 {
		t.Fatalf("Focused = %d, want 1", f.Focused())
	}
	f.Update(cfg.Cycle)
	if !approxEqual(f.Blur(1), 0, 1e-6) || !approxEqual(f.Blur(0), cfg.Blur, 1e-6) {
		t.Errorf("blur after transition = (%f, %f), want (%f, 0)", f.Blur(0), f.Blur(1), cfg.Blur)
	}
}

func TestFocusCycler_WrapsAndCompletesOnce(t *testing.T) {
	f := NewFocusCycler(testFocusConfig())
	calls := 0
	f.Start("A B C", TextTiming{}, func() { calls++ })

	f.Update(300 * time.Millisecond)
	if calls != 0 {
		t.Fatal("completed before every word was focused")
	}
	f.Update(300 * time.Millisecond)
	if calls != 1 {
		t.Fatalf("calls = %d after visiting every word, want 1", calls)
	}
	f.Update(300 * time.Millisecond)
	if f.Focused() != 0 {
		t.Errorf("Focused = %d, want wrap to 0", f.Focused())
	}
	f.Update(time.Second)
	if calls != 1 {
		t.Errorf("calls = %d after wrapping, want 1", calls)
	}
}

func TestFocusCycler_WrapSnapsFrame(t *testing.T) {
	f := NewFocusCycler(testFocusConfig())
	f.Start("A B C", TextTiming{}, nil)

	f.Update(300 * time.Millisecond)
	f.Update(299 * time.Millisecond)
	f.Update(time.Millisecond) // focus moves to word 2
	f.Update(100 * time.Millisecond)
	if f.frame <= 1 || f.frame >= 2 {
		t.Fatalf("frame = %f mid-slide, want between 1 and 2", f.frame)
	}
	f.Update(200 * time.Millisecond)
	if f.Focused() != 0 {
		t.Fatalf("Focused = %d, want wrap to 0", f.Focused())
	}
	if f.frame != 0 {
		t.Errorf("frame = %f after wrap, want 0 with no sweep", f.frame)
	}
}

func TestFocusCycler_SingleAndEmpty(t *testing.T) {
	calls := 0
	one := NewFocusCycler(testFocusConfig())
	one.Start("FOCUS", TextTiming{}, func() { calls++ })
	if calls != 1 {
		t.Errorf("single word: calls = %d, want 1", calls)
	}

	calls = 0
	empty := NewFocusCycler(testFocusConfig())
	empty.Start("   ", TextTiming{}, func() { calls++ })
	if calls != 1 || len(empty.Words()) != 0 {
		t.Errorf("empty: calls = %d words = %d", calls, len(empty.Words()))
	}
	empty.Update(time.Second)
}

func TestFocusCycler_CloseStops(t *testing.T) {
	f := NewFocusCycler(testFocusConfig())
	calls := 0
	f.Start("A B", TextTiming{}, func() { calls++ })
	f.Close()
	f.Update(time.Second)
	if f.Focused() != 0 || calls != 0 {
		t.Errorf("closed cycler advanced: focused %d calls %d", f.Focused(), calls)
	}
}
