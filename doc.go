// Package drift is a scroll- and time-driven procedural animation layer for
// [Ebitengine]: a landing page whose text dissolves and scrambles into view
// as you scroll, opened by a physics intro where a dumbbell drops onto the
// floor and kicks up dust.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for a [Stage]:
//
//	cfg := drift.DefaultConfig()
//	page := drift.NewPage(cfg, fonts, 1280, 720)
//	drift.Run(drift.NewStage(page, 1280, 720), drift.RunConfig{
//		Title: "Arun Fitness", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Page.Update] and [Page.Draw] directly with your own frame delta.
//
// # Time
//
// Animation timing never reads the wall clock. Every component owns a
// [Scheduler] and advances only by the durations passed to its Update
// method, so a test can step an intro through exactly 1100 ms and inspect
// it. The clock is read only for debug timings and the footer year.
//
// # Scroll
//
// A [Scroller] owns the viewport. Components subscribe to it:
//
//   - [ScrollTracker] maps a span's position in the viewport to progress in [0, 1].
//   - [VisibilityGate] fires once when enough of a span is visible.
//   - [DissolveText] derives per-character opacity, blur and offset from progress.
//   - [ScrambleText] reveals its text through random glyphs once its gate fires.
//
// # Intro
//
// [IntroScene] runs a small rigid-body [World] with a box falling onto a
// floor plane and a [DustBurst] of particles. [IntroSequencer] fires the
// impact and the headline on fixed timers and reports completion once
// through its callback and an optional [EventSink]. The headline is any
// [TextDisplay]; [LetterReveal] and [FocusCycler] are provided.
//
// # Configuration
//
// [DefaultConfig] holds every tunable. [LoadConfig] reads a YAML file over
// the defaults and validates the result.
//
// # Terminal
//
// The term subpackage renders scramble and dissolve text into a tcell
// screen.
//
// [Ebitengine]: https://ebitengine.org
package drift
