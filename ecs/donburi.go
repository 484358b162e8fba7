// Package ecs provides ECS adapters for drift.
package ecs

import (
	"github.com/phanxgames/drift"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// IntroEventType is the Donburi event type for drift intro lifecycle events.
var IntroEventType = events.NewEventType[drift.IntroEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on IntroEventType and delivered by its ProcessEvents.
func NewDonburiSink(world donburi.World) drift.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitIntroEvent(event drift.IntroEvent) {
	IntroEventType.Publish(s.world, event)
}
