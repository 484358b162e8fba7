package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/drift"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitIntroEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []drift.IntroEvent
	IntroEventType.Subscribe(world, func(w donburi.World, e drift.IntroEvent) {
		received = append(received, e)
	})

	sink.EmitIntroEvent(drift.IntroEvent{Kind: drift.IntroMounted})
	sink.EmitIntroEvent(drift.IntroEvent{Kind: drift.IntroImpact, At: time.Second})

	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	IntroEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != drift.IntroMounted {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Kind != drift.IntroImpact || received[1].At != time.Second {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_SequencerLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	cfg := drift.DefaultConfig()
	scene := drift.NewIntroScene(cfg, 800, 600, nil)
	seq := drift.NewIntroSequencer(cfg.Intro, scene, drift.NewLetterReveal())
	seq.SetEventSink(NewDonburiSink(world))

	var kinds []drift.IntroEventKind
	IntroEventType.Subscribe(world, func(w donburi.World, e drift.IntroEvent) {
		kinds = append(kinds, e.Kind)
	})

	seq.Mount(nil)
	for i := 0; i < 120; i++ {
		seq.Update(10 * time.Millisecond)
	}
	seq.Unmount()
	IntroEventType.ProcessEvents(world)

	want := []drift.IntroEventKind{drift.IntroMounted, drift.IntroImpact, drift.IntroTextShown, drift.IntroUnmounted}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}
