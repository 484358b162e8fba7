package drift

import (
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

// minLetterDuration keeps letter tweens away from a zero-length gween.
const minLetterDuration = time.Millisecond

// LetterReveal is the default TextDisplay: each letter fades in while
// rising into place, staggered left to right. It reports completion after
// the last letter's tween finishes.
type LetterReveal struct {
	text   string
	runes  []rune
	glyphs []string
	timing TextTiming

	opacity []float64
	offset  []float64
	tweens  []*TweenGroup

	started    bool
	done       bool
	closed     bool
	onComplete func()

	font   *Font
	pos    []Vec2
	width  float64
	height float64
	textOp text.DrawOptions

	// Color is the letter tint.
	Color Color
}

var _ TextDisplay = (*LetterReveal)(nil)

// NewLetterReveal creates an idle letter reveal.
func NewLetterReveal() *LetterReveal {
	return &LetterReveal{Color: ColorWhite}
}

// Start begins revealing s. A second call during a run is ignored; after
// Close, Start begins a fresh run.
func (l *LetterReveal) Start(s string, timing TextTiming, onComplete func()) {
	if l.started && !l.closed {
		return
	}
	l.closed = false
	l.done = false
	l.started = true
	l.text = s
	l.runes = []rune(s)
	l.timing = timing
	l.onComplete = onComplete

	n := len(l.runes)
	l.glyphs = make([]string, n)
	l.opacity = make([]float64, n)
	l.offset = make([]float64, n)
	l.tweens = make([]*TweenGroup, n)
	l.pos = make([]Vec2, n)
	l.font = nil

	dur := seconds(max(timing.LetterDuration, minLetterDuration))
	for i, r := range l.runes {
		l.glyphs[i] = string(r)
		l.offset[i] = timing.Rise
		l.tweens[i] = TweenFields(
			[]*float64{&l.opacity[i], &l.offset[i]},
			[]float64{1, 0},
			dur, ease.OutCubic,
		).Delay(seconds(time.Duration(i) * timing.PerLetterDelay))
	}
	if n == 0 {
		l.finish()
	}
}

// Update advances every letter tween by dt.
func (l *LetterReveal) Update(dt time.Duration) {
	if !l.started || l.done || l.closed {
		return
	}
	step := seconds(dt)
	all := true
	for _, tw := range l.tweens {
		tw.Update(step)
		if !tw.Done {
			all = false
		}
	}
	if all {
		l.finish()
	}
}

func (l *LetterReveal) finish() {
	l.done = true
	if fn := l.onComplete; fn != nil {
		l.onComplete = nil
		fn()
	}
}

// Close stops the reveal without reporting completion.
func (l *LetterReveal) Close() {
	l.closed = true
	l.onComplete = nil
}

// Started reports whether Start was called.
func (l *LetterReveal) Started() bool { return l.started }

// Done reports whether every letter has finished.
func (l *LetterReveal) Done() bool { return l.done }

// Text returns the text being revealed.
func (l *LetterReveal) Text() string { return l.text }

// Letter returns letter i's opacity and vertical offset.
func (l *LetterReveal) Letter(i int) (opacity, offsetY float64) {
	return l.opacity[i], l.offset[i]
}

// Draw renders the letters centered on (x, y).
func (l *LetterReveal) Draw(dst *ebiten.Image, f *Font, x, y float64) {
	if !l.started || f == nil {
		return
	}
	if f != l.font {
		l.font = f
		l.width, l.height = layoutRunes(f, l.runes, 0, TextAlignLeft, l.pos)
	}
	ox := x - l.width/2
	oy := y - l.height/2
	face := f.Face()
	for i, r := range l.runes {
		if unicode.IsSpace(r) || l.opacity[i] <= 0 {
			continue
		}
		l.textOp.GeoM.Reset()
		l.textOp.ColorScale.Reset()
		l.textOp.GeoM.Translate(ox+l.pos[i].X, oy+l.pos[i].Y+l.offset[i])
		scaleColor(&l.textOp.ColorScale, l.Color.WithAlpha(l.opacity[i]))
		text.Draw(dst, l.glyphs[i], face, &l.textOp)
	}
}
