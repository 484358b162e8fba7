// Package ecs bridges drift's intro lifecycle events into an ECS world.
//
// [NewDonburiSink] publishes every [drift.IntroEvent] into a [Donburi]
// world as a typed event. Subscribe to [IntroEventType] in your systems to
// react to the intro mounting, the dumbbell impact, the title reveal and
// the hand-off to the main page.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	page.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
