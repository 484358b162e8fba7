package drift

import (
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

// focusBracket is the length of each corner bracket in pixels.
const focusBracket = 10

// FocusCycler highlights one word of a sentence at a time: the focused word
// is sharp and framed by corner brackets while the others are blurred. The
// focus advances every cycle plus pause and wraps around indefinitely.
type FocusCycler struct {
	config FocusConfig

	words  []string
	blur   []float64
	tweens []*TweenGroup
	index  int
	frame  float64 // focused word position, animated between indices
	slide  *TweenGroup

	sched   Scheduler
	started bool
	closed  bool
	visited int

	onComplete func()

	font    *Font
	offsets []float64
	widths  []float64
	width   float64

	blurF   *BlurFilter
	filters []Filter
	pool    texturePool
	textOp  text.DrawOptions
	imgOp   ebiten.DrawImageOptions

	// Color is the word tint.
	Color Color
}

var _ TextDisplay = (*FocusCycler)(nil)

// NewFocusCycler creates an idle cycler.
func NewFocusCycler(cfg FocusConfig) *FocusCycler {
	f := &FocusCycler{config: cfg, Color: ColorWhite, blurF: NewBlurFilter(0)}
	f.filters = []Filter{f.blurF}
	return f
}

// Start splits s into words and focuses the first one. onComplete is
// called once, after every word has been focused; it may be nil. The
// timing argument is unused: the cycle comes from the config.
func (f *FocusCycler) Start(s string, _ TextTiming, onComplete func()) {
	if f.started || f.closed {
		return
	}
	f.started = true
	f.words = strings.Fields(s)
	f.onComplete = onComplete
	n := len(f.words)
	f.blur = make([]float64, n)
	f.tweens = make([]*TweenGroup, n)
	f.offsets = make([]float64, n)
	f.widths = make([]float64, n)
	f.font = nil
	if n == 0 {
		f.report()
		return
	}
	for i := range f.blur {
		f.blur[i] = f.config.Blur
	}
	f.blur[0] = 0
	f.visited = 1
	if n == 1 {
		f.report()
	}
	f.sched.Every(f.config.Cycle+f.config.Pause, f.advance)
}

// advance moves focus to the next word.
func (f *FocusCycler) advance() {
	n := len(f.words)
	prev := f.index
	f.index = (f.index + 1) % n
	dur := seconds(f.config.Cycle)
	f.tweens[prev] = TweenValue(&f.blur[prev], f.config.Blur, dur, ease.OutCubic)
	f.tweens[f.index] = TweenValue(&f.blur[f.index], 0, dur, ease.OutCubic)
	if f.index == 0 {
		// Wrapping back snaps the brackets instead of sweeping across every word.
		f.frame = 0
		f.slide = nil
	} else {
		f.slide = TweenValue(&f.frame, float64(f.index), dur, ease.InOutCubic)
	}
	if f.visited < n {
		f.visited++
		if f.visited == n {
			f.report()
		}
	}
}

func (f *FocusCycler) report() {
	if fn := f.onComplete; fn != nil {
		f.onComplete = nil
		fn()
	}
}

// Update advances the cycle timer and running tweens.
func (f *FocusCycler) Update(dt time.Duration) {
	if !f.started || f.closed {
		return
	}
	f.sched.Advance(dt)
	step := seconds(dt)
	for _, tw := range f.tweens {
		if tw != nil {
			tw.Update(step)
		}
	}
	if f.slide != nil {
		f.slide.Update(step)
	}
}

// Close stops cycling and releases pooled textures.
func (f *FocusCycler) Close() {
	f.closed = true
	f.onComplete = nil
	f.sched.StopAll()
	f.pool.Dispose()
}

// Words returns the sentence's words.
func (f *FocusCycler) Words() []string { return f.words }

// Focused returns the index of the focused word.
func (f *FocusCycler) Focused() int { return f.index }

// Blur returns word i's current blur radius.
func (f *FocusCycler) Blur(i int) float64 { return f.blur[i] }

// Draw renders the sentence centered on (x, y) with the focus frame.
func (f *FocusCycler) Draw(dst *ebiten.Image, font *Font, x, y float64) {
	if !f.started || font == nil || len(f.words) == 0 {
		return
	}
	if font != f.font {
		f.layout(font)
	}
	ox := x - f.width/2
	oy := y - font.LineHeight()/2
	for i, w := range f.words {
		wx := ox + f.offsets[i]
		radius := int(math.Round(f.blur[i]))
		if radius == 0 {
			f.textOp.GeoM.Reset()
			f.textOp.ColorScale.Reset()
			f.textOp.GeoM.Translate(wx, oy)
			scaleColor(&f.textOp.ColorScale, f.Color)
			text.Draw(dst, w, font.Face(), &f.textOp)
			continue
		}
		f.blurF.Radius = radius
		drawTextFiltered(dst, &f.pool, f.filters, font, w, f.widths[i], wx, oy, f.Color, 1, &f.textOp, &f.imgOp)
	}
	f.drawFrame(dst, ox, oy, font.LineHeight())
}

// layout measures each word and the gaps between them.
func (f *FocusCycler) layout(font *Font) {
	f.font = font
	space := font.runeAdvance(' ')
	pos := 0.0
	for i, w := range f.words {
		if i > 0 {
			pos += space
		}
		f.offsets[i] = pos
		f.widths[i], _ = font.MeasureString(w)
		pos += f.widths[i]
	}
	f.width = pos
}

// drawFrame draws corner brackets around the interpolated focus position.
func (f *FocusCycler) drawFrame(dst *ebiten.Image, ox, oy, lh float64) {
	lo := int(math.Floor(f.frame))
	hi := min(lo+1, len(f.words)-1)
	lo = max(min(lo, len(f.words)-1), 0)
	t := f.frame - math.Floor(f.frame)
	left := ox + lerp(f.offsets[lo], f.offsets[hi], t) - 4
	width := lerp(f.widths[lo], f.widths[hi], t) + 8
	top := oy - 4
	bottom := oy + lh + 4
	right := left + width

	c := f.config.BorderColor.toRGBA()
	const sw = 3
	b := float32(focusBracket)
	l, r, tp, bt := float32(left), float32(right), float32(top), float32(bottom)
	vector.StrokeLine(dst, l, tp, l+b, tp, sw, c, true)
	vector.StrokeLine(dst, l, tp, l, tp+b, sw, c, true)
	vector.StrokeLine(dst, r, tp, r-b, tp, sw, c, true)
	vector.StrokeLine(dst, r, tp, r, tp+b, sw, c, true)
	vector.StrokeLine(dst, l, bt, l+b, bt, sw, c, true)
	vector.StrokeLine(dst, l, bt, l, bt-b, sw, c, true)
	vector.StrokeLine(dst, r, bt, r-b, bt, sw, c, true)
	vector.StrokeLine(dst, r, bt, r, bt-b, sw, c, true)
}
