package drift

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering and caches
// per-rune advances for character layout.
type Font struct {
	face     *text.GoTextFace
	source   *text.GoTextFaceSource
	size     float64
	lh       float64
	advances map[rune]float64
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("drift: parse TTF data: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{
		face:     face,
		source:   source,
		size:     size,
		lh:       m.HAscent + m.HDescent + m.HLineGap,
		advances: make(map[rune]float64),
	}
}

// WithSize returns a font sharing this font's source at a different size.
func (f *Font) WithSize(size float64) *Font {
	return newFont(f.source, size)
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 { return f.size }

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace { return f.face }

// runeAdvance returns the horizontal advance of r, cached after first use.
func (f *Font) runeAdvance(r rune) float64 {
	if a, ok := f.advances[r]; ok {
		return a
	}
	a := text.Advance(string(r), f.face)
	f.advances[r] = a
	return a
}

// textLine is one laid-out line: runes [start, end) and their width.
type textLine struct {
	start, end int
	width      float64
}

// layoutRunes positions every rune of runes into pos (which must have the
// same length), wrapping at whitespace when a word would cross wrapWidth.
// wrapWidth <= 0 disables wrapping. Whitespace keeps its advance, so
// positions stay stable when glyphs are later swapped for placeholders.
// Returns the laid-out width and height. A nil font yields zero positions.
func layoutRunes(f *Font, runes []rune, wrapWidth float64, align TextAlign, pos []Vec2) (width, height float64) {
	if f == nil || len(runes) == 0 {
		for i := range pos {
			pos[i] = Vec2{}
		}
		return 0, 0
	}

	var lines []textLine
	lineStart := 0
	x := 0.0
	closeLine := func(end int, w float64) {
		lines = append(lines, textLine{start: lineStart, end: end, width: w})
		lineStart = end
		x = 0
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '\n' {
			pos[i] = Vec2{X: x}
			closeLine(i+1, x)
			i++
			continue
		}
		if unicode.IsSpace(r) {
			pos[i] = Vec2{X: x}
			x += f.runeAdvance(r)
			i++
			continue
		}
		j := i
		word := 0.0
		for j < len(runes) && !unicode.IsSpace(runes[j]) {
			word += f.runeAdvance(runes[j])
			j++
		}
		if wrapWidth > 0 && x > 0 && x+word > wrapWidth {
			closeLine(i, trimmedWidth(f, runes, lineStart, i, x))
		}
		for k := i; k < j; k++ {
			pos[k] = Vec2{X: x}
			x += f.runeAdvance(runes[k])
		}
		i = j
	}
	if lineStart < len(runes) || len(lines) == 0 {
		lines = append(lines, textLine{start: lineStart, end: len(runes), width: x})
	}

	for _, l := range lines {
		width = max(width, l.width)
	}
	for li, l := range lines {
		dx := 0.0
		switch align {
		case TextAlignCenter:
			dx = (width - l.width) / 2
		case TextAlignRight:
			dx = width - l.width
		}
		y := float64(li) * f.lh
		for k := l.start; k < l.end; k++ {
			pos[k].X += dx
			pos[k].Y = y
		}
	}
	return width, float64(len(lines)) * f.lh
}

// trimmedWidth is the width of line [start, end) ignoring trailing spaces.
func trimmedWidth(f *Font, runes []rune, start, end int, w float64) float64 {
	for k := end - 1; k >= start && unicode.IsSpace(runes[k]); k-- {
		w -= f.runeAdvance(runes[k])
	}
	return w
}
