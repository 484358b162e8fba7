package drift

import (
	"math/rand/v2"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// DefaultScrambleAlphabet is the pool of placeholder glyphs for unrevealed
// positions.
const DefaultScrambleAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+"

// ScramblePhase is the lifecycle of a ScrambleText.
type ScramblePhase uint8

const (
	ScrambleIdle      ScramblePhase = iota // waiting for the trigger
	ScrambleArmed                          // triggered, nothing revealed yet
	ScrambleRevealing                      // ticking, prefix partially locked in
	ScrambleDone                           // fully revealed, timer released
)

// String returns the phase name.
func (p ScramblePhase) String() string {
	switch p {
	case ScrambleIdle:
		return "idle"
	case ScrambleArmed:
		return "armed"
	case ScrambleRevealing:
		return "revealing"
	case ScrambleDone:
		return "done"
	default:
		return "unknown"
	}
}

// ScrambleState is the per-tick state of a ScrambleText.
type ScrambleState struct {
	RevealedCount int    // runes locked in, in [0, len(text)]
	LockedPrefix  string // the revealed prefix of the target text
	RenderedText  string // what is currently displayed
}

// ScrambleOption configures a ScrambleText.
type ScrambleOption func(*ScrambleText)

// WithRand sets the random source used for placeholder glyphs. Tests pass a
// seeded generator for reproducible output.
func WithRand(rng *rand.Rand) ScrambleOption {
	return func(s *ScrambleText) { s.rng = rng }
}

// WithOnDone sets a callback invoked once when the reveal completes.
func WithOnDone(fn func()) ScrambleOption {
	return func(s *ScrambleText) { s.onDone = fn }
}

// ScrambleText reveals its text left to right on a fixed tick, filling
// positions not yet revealed with random glyphs that change every tick.
// Whitespace is never scrambled.
type ScrambleText struct {
	cfg      ScrambleConfig
	text     string
	target   []rune
	alphabet []rune
	rng      *rand.Rand

	phase  ScramblePhase
	state  ScrambleState
	ticks  int
	closed bool
	onDone func()

	sched  Scheduler
	ticker *Timer
	gate   *VisibilityGate
	buf    []rune

	font   *Font
	pos    []Vec2
	width  float64
	height float64
	glyphs map[rune]string
	textOp text.DrawOptions

	// Color is the text tint.
	Color Color
}

// NewScrambleText creates an idle scramble effect for s.
func NewScrambleText(s string, cfg ScrambleConfig, opts ...ScrambleOption) *ScrambleText {
	st := &ScrambleText{
		cfg:    cfg,
		text:   s,
		target: []rune(s),
		Color:  ColorWhite,
	}
	st.alphabet = []rune(cfg.Alphabet)
	if len(st.alphabet) == 0 {
		st.alphabet = []rune(DefaultScrambleAlphabet)
	}
	for _, opt := range opts {
		opt(st)
	}
	if st.rng == nil {
		st.rng = newRand()
	}
	st.buf = make([]rune, len(st.target))
	st.pos = make([]Vec2, len(st.target))
	return st
}

// Text returns the target text.
func (s *ScrambleText) Text() string { return s.text }

// Phase returns the current phase.
func (s *ScrambleText) Phase() ScramblePhase { return s.phase }

// State returns the current reveal state.
func (s *ScrambleText) State() ScrambleState { return s.state }

// Rendered returns the text currently displayed.
func (s *ScrambleText) Rendered() string { return s.state.RenderedText }

// Ticks returns the number of reveal ticks run so far.
func (s *ScrambleText) Ticks() int { return s.ticks }

// BatchSize returns how many runes each tick reveals.
func (s *ScrambleText) BatchSize() int {
	return s.cfg.BatchFor(len(s.target))
}

// Observe arms a visibility gate for span on sc; the reveal starts the
// first time the region becomes visible. When the gate cannot observe, the
// text is shown statically instead.
func (s *ScrambleText) Observe(sc *Scroller, span Span) bool {
	if s.closed || s.gate != nil || s.phase != ScrambleIdle {
		return false
	}
	s.gate = NewVisibilityGate(span, s.cfg.Threshold, func() { s.Trigger() })
	if !s.gate.Observe(sc) {
		s.gate = nil
		s.finish(false)
		return false
	}
	return true
}

// SetSpan moves the observed region after a relayout.
func (s *ScrambleText) SetSpan(span Span) {
	if s.gate != nil {
		s.gate.SetSpan(span)
	}
}

// Trigger starts the reveal. It reports false, and does nothing, if the
// reveal was already triggered or the text was closed.
func (s *ScrambleText) Trigger() bool {
	if s.closed || s.phase != ScrambleIdle {
		return false
	}
	if s.gate != nil {
		s.gate.Close()
	}
	if len(s.target) == 0 {
		s.finish(true)
		return true
	}
	s.phase = ScrambleArmed
	s.state.RevealedCount = 0
	s.render()
	s.ticker = s.sched.Every(s.cfg.Interval(), s.Tick)
	return true
}

// Tick advances the reveal by one batch. It is a no-op unless the text is
// armed or revealing.
func (s *ScrambleText) Tick() {
	if s.closed || (s.phase != ScrambleArmed && s.phase != ScrambleRevealing) {
		return
	}
	s.ticks++
	s.state.RevealedCount = min(s.state.RevealedCount+s.BatchSize(), len(s.target))
	if s.state.RevealedCount >= len(s.target) {
		s.finish(true)
		return
	}
	s.phase = ScrambleRevealing
	s.render()
}

// Update advances the tick timer by dt.
func (s *ScrambleText) Update(dt time.Duration) {
	s.sched.Advance(dt)
}

// Close stops the timer and gate. No further ticks or callbacks run.
func (s *ScrambleText) Close() {
	s.closed = true
	s.sched.StopAll()
	s.ticker = nil
	if s.gate != nil {
		s.gate.Close()
	}
}

// finish moves to the done phase with the exact target text.
func (s *ScrambleText) finish(notify bool) {
	s.phase = ScrambleDone
	s.state = ScrambleState{
		RevealedCount: len(s.target),
		LockedPrefix:  s.text,
		RenderedText:  s.text,
	}
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if notify && s.onDone != nil {
		s.onDone()
	}
}

// render rebuilds the displayed string from the revealed count.
func (s *ScrambleText) render() {
	n := s.state.RevealedCount
	for i, r := range s.target {
		switch {
		case i < n:
			s.buf[i] = r
		case unicode.IsSpace(r):
			s.buf[i] = r
		default:
			s.buf[i] = s.alphabet[s.rng.IntN(len(s.alphabet))]
		}
	}
	s.state.LockedPrefix = string(s.target[:n])
	s.state.RenderedText = string(s.buf)
}

// ScrambleTicks returns the number of ticks needed to reveal n runes with
// the given batch size.
func ScrambleTicks(n, batch int) int {
	if n <= 0 || batch <= 0 {
		return 0
	}
	return (n + batch - 1) / batch
}

// SetFont sets the font and wrap width used by Draw. Layout is computed on
// the target text so glyphs do not shift as they resolve.
func (s *ScrambleText) SetFont(f *Font, wrapWidth float64, align TextAlign) {
	s.font = f
	s.width, s.height = layoutRunes(f, s.target, wrapWidth, align, s.pos)
	s.glyphs = make(map[rune]string, len(s.alphabet)+len(s.target))
	for _, r := range s.alphabet {
		s.glyphs[r] = string(r)
	}
	for _, r := range s.target {
		s.glyphs[r] = string(r)
	}
}

// Size returns the laid-out size, zero until a font is set.
func (s *ScrambleText) Size() (width, height float64) { return s.width, s.height }

// Draw renders the current text with its top-left corner at (x, y). Nothing
// is drawn while idle.
func (s *ScrambleText) Draw(dst *ebiten.Image, x, y float64) {
	if s.font == nil || s.phase == ScrambleIdle {
		return
	}
	shown := s.buf
	if s.phase == ScrambleDone {
		shown = s.target
	}
	face := s.font.Face()
	for i, r := range shown {
		if unicode.IsSpace(r) {
			continue
		}
		s.textOp.GeoM.Reset()
		s.textOp.ColorScale.Reset()
		s.textOp.GeoM.Translate(x+s.pos[i].X, y+s.pos[i].Y)
		scaleColor(&s.textOp.ColorScale, s.Color)
		text.Draw(dst, s.glyphs[r], face, &s.textOp)
	}
}
