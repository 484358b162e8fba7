package drift

import (
	"math"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// nbsp replaces whitespace glyphs so dissolving text keeps its width.
const nbsp = '\u00A0'

// CharacterCell is one source character of a DissolveText. Cells are
// immutable for the lifetime of the text and rebuilt wholesale when it
// changes.
type CharacterCell struct {
	Char        rune
	Index       int
	PhaseOffset float64 // entrance delay in seconds
}

// CharVisual is the sampled visual state of one cell.
type CharVisual struct {
	Glyph    rune    // rendered rune (whitespace becomes U+00A0)
	OffsetY  float64 // vertical offset in pixels (negative is up)
	Opacity  float64 // scroll-driven opacity in [0, 1]
	Blur     float64 // blur radius in pixels
	AlphaMul float64 // alpha channel multiplier applied by the color matrix
	Entrance float64 // mount stagger factor in [0, 1], independent of scroll
}

// DissolveText renders a string whose characters rise, fade and blur away
// as the page scrolls past a threshold. Every character reads the same
// progress value; none depends on another.
type DissolveText struct {
	cfg       DissolveConfig
	text      string
	threshold float64

	// Arena indexed by cell position; rebuilt on SetText.
	cells   []CharacterCell
	visuals []CharVisual
	glyphs  []string
	pos     []Vec2

	font      *Font
	wrapWidth float64
	align     TextAlign
	width     float64
	height    float64

	// Color is the text tint.
	Color Color

	tracker *ScrollTracker
	age     time.Duration

	blur    *BlurFilter
	matrix  *ColorMatrixFilter
	filters []Filter
	pool    texturePool
	textOp  text.DrawOptions
	imgOp   ebiten.DrawImageOptions
}

// NewDissolveText creates a dissolve effect for s that completes when scroll
// progress reaches threshold. threshold is clamped to [0, 1].
func NewDissolveText(s string, threshold float64, cfg DissolveConfig) *DissolveText {
	d := &DissolveText{
		cfg:       cfg,
		threshold: clamp01(threshold),
		Color:     ColorWhite,
		blur:      NewBlurFilter(0),
		matrix:    NewColorMatrixFilter(),
	}
	d.filters = []Filter{d.blur, d.matrix}
	d.SetText(s)
	return d
}

// Text returns the source text.
func (d *DissolveText) Text() string { return d.text }

// Threshold returns the scroll progress at which characters are fully gone.
func (d *DissolveText) Threshold() float64 { return d.threshold }

// Cells returns the character cells. The slice MUST NOT be mutated.
func (d *DissolveText) Cells() []CharacterCell { return d.cells }

// Visuals returns the last sampled visual state, one entry per cell.
func (d *DissolveText) Visuals() []CharVisual { return d.visuals }

// Size returns the laid-out size, zero until a font is set.
func (d *DissolveText) Size() (width, height float64) { return d.width, d.height }

// SetText replaces the text. All cells are discarded and rebuilt from
// scratch, and the entrance stagger restarts.
func (d *DissolveText) SetText(s string) {
	d.text = s
	runes := []rune(s)
	d.cells = make([]CharacterCell, len(runes))
	d.visuals = make([]CharVisual, len(runes))
	d.glyphs = make([]string, len(runes))
	d.pos = make([]Vec2, len(runes))
	for i, r := range runes {
		d.cells[i] = CharacterCell{Char: r, Index: i, PhaseOffset: float64(i) * d.cfg.Stagger}
		glyph := r
		if unicode.IsSpace(r) {
			glyph = nbsp
		}
		d.visuals[i].Glyph = glyph
		d.glyphs[i] = string(glyph)
	}
	d.age = 0
	d.relayout()
	d.Sample(d.Progress())
}

// SetFont sets the font and layout parameters. wrapWidth <= 0 disables
// wrapping.
func (d *DissolveText) SetFont(f *Font, wrapWidth float64, align TextAlign) {
	d.font = f
	d.wrapWidth = wrapWidth
	d.align = align
	d.relayout()
}

func (d *DissolveText) relayout() {
	runes := make([]rune, len(d.cells))
	for i, c := range d.cells {
		runes[i] = c.Char
	}
	d.width, d.height = layoutRunes(d.font, runes, d.wrapWidth, d.align, d.pos)
}

// Mount starts tracking span as it scrolls from entering the viewport
// bottom to leaving its top. It reports false when tracking could not be
// registered; the text then renders statically.
func (d *DissolveText) Mount(s *Scroller, span Span) bool {
	d.Unmount()
	d.tracker = NewScrollTracker(span, OffsetStartEnd, OffsetEndStart)
	if !d.tracker.Mount(s) {
		d.tracker = nil
		return false
	}
	d.Sample(d.tracker.Progress())
	return true
}

// SetSpan moves the tracked region after a relayout.
func (d *DissolveText) SetSpan(span Span) {
	if d.tracker != nil {
		d.tracker.SetSpan(span)
	}
}

// Unmount releases scroll tracking and pooled textures.
func (d *DissolveText) Unmount() {
	if d.tracker != nil {
		d.tracker.Unmount()
		d.tracker = nil
	}
	d.pool.Dispose()
}

// Progress returns the current scroll progress, or 0 when not tracking.
func (d *DissolveText) Progress() float64 {
	if d.tracker == nil {
		return 0
	}
	return d.tracker.Progress()
}

// Update advances the entrance stagger and resamples from the current
// scroll progress.
func (d *DissolveText) Update(dt time.Duration) {
	d.age += dt
	d.Sample(d.Progress())
}

// Sample recomputes every cell's visual state for progress p, in place.
func (d *DissolveText) Sample(p float64) []CharVisual {
	t := d.threshold
	from := t - d.cfg.Band
	opacity := DissolveOpacity(p, t, d.cfg.Band)
	offset := MapRange(p, from, t, 0, d.cfg.Rise, nil)
	blur := MapRange(p, from, t, 0, d.cfg.MaxBlur, nil)
	alpha := MapRange(p, from, t, 1, d.cfg.MinAlpha, nil)
	age := d.age.Seconds()

	for i := range d.visuals {
		v := &d.visuals[i]
		v.OffsetY = offset
		v.Opacity = opacity
		v.Blur = blur
		v.AlphaMul = alpha
		v.Entrance = entrance(age, d.cells[i].PhaseOffset, d.cfg.Entrance)
	}
	return d.visuals
}

// DissolveOpacity maps scroll progress p through [t-band, t] onto [1, 0].
func DissolveOpacity(p, t, band float64) float64 {
	return MapRange(p, t-band, t, 1, 0, nil)
}

// entrance returns the mount fade-in factor for a cell delayed by delay.
func entrance(age, delay, duration float64) float64 {
	if duration <= 0 {
		if age >= delay {
			return 1
		}
		return 0
	}
	return clamp01((age - delay) / duration)
}

// Draw renders the text with its top-left corner at (x, y).
func (d *DissolveText) Draw(dst *ebiten.Image, x, y float64) {
	if d.font == nil {
		return
	}
	face := d.font.Face()
	for i := range d.visuals {
		v := &d.visuals[i]
		if v.Glyph == nbsp {
			continue
		}
		a := v.Opacity * v.Entrance
		if a <= 0 {
			continue
		}
		gx := x + d.pos[i].X
		gy := y + d.pos[i].Y + v.OffsetY

		radius := int(math.Round(v.Blur))
		if radius == 0 && v.AlphaMul == 1 {
			d.textOp.GeoM.Reset()
			d.textOp.ColorScale.Reset()
			d.textOp.GeoM.Translate(gx, gy)
			scaleColor(&d.textOp.ColorScale, d.Color.WithAlpha(a))
			text.Draw(dst, d.glyphs[i], face, &d.textOp)
			continue
		}
		d.drawFiltered(dst, i, gx, gy, radius, v.AlphaMul, a)
	}
}

// drawFiltered runs glyph i through blur and the alpha color matrix.
func (d *DissolveText) drawFiltered(dst *ebiten.Image, i int, gx, gy float64, radius int, alphaMul, a float64) {
	d.blur.Radius = radius
	d.matrix.SetAlphaScale(alphaMul)
	drawTextFiltered(dst, &d.pool, d.filters, d.font, d.glyphs[i], d.font.runeAdvance(d.cells[i].Char),
		gx, gy, d.Color, a, &d.textOp, &d.imgOp)
}

// scaleColor multiplies cs by c, premultiplying alpha.
func scaleColor(cs *ebiten.ColorScale, c Color) {
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
}
