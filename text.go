package drift

import (
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextBlock is static wrapped text: body copy that does not animate.
// Layout is cached and recomputed only when the font or wrap width changes.
type TextBlock struct {
	Content   string
	Align     TextAlign
	WrapWidth float64
	Color     Color

	font        *Font
	runes       []rune
	glyphs      []string
	pos         []Vec2
	measuredW   float64
	measuredH   float64
	layoutDirty bool
	textOp      text.DrawOptions
}

// NewTextBlock creates a white, left-aligned block.
func NewTextBlock(content string, f *Font, wrapWidth float64) *TextBlock {
	tb := &TextBlock{Content: content, WrapWidth: wrapWidth, Color: ColorWhite, font: f}
	tb.runes = []rune(content)
	tb.glyphs = make([]string, len(tb.runes))
	tb.pos = make([]Vec2, len(tb.runes))
	for i, r := range tb.runes {
		tb.glyphs[i] = string(r)
	}
	tb.layoutDirty = true
	return tb
}

// SetFont changes the font.
func (tb *TextBlock) SetFont(f *Font) {
	if f != tb.font {
		tb.font = f
		tb.layoutDirty = true
	}
}

// SetWrapWidth changes the wrap width.
func (tb *TextBlock) SetWrapWidth(w float64) {
	if w != tb.WrapWidth {
		tb.WrapWidth = w
		tb.layoutDirty = true
	}
}

// Size returns the laid-out size.
func (tb *TextBlock) Size() (width, height float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

func (tb *TextBlock) layout() {
	if !tb.layoutDirty {
		return
	}
	tb.measuredW, tb.measuredH = layoutRunes(tb.font, tb.runes, tb.WrapWidth, tb.Align, tb.pos)
	tb.layoutDirty = false
}

// Draw renders the block with its top-left corner at (x, y).
func (tb *TextBlock) Draw(dst *ebiten.Image, x, y float64) {
	if tb.font == nil {
		return
	}
	tb.layout()
	face := tb.font.Face()
	for i, r := range tb.runes {
		if unicode.IsSpace(r) {
			continue
		}
		tb.textOp.GeoM.Reset()
		tb.textOp.ColorScale.Reset()
		tb.textOp.GeoM.Translate(x+tb.pos[i].X, y+tb.pos[i].Y)
		scaleColor(&tb.textOp.ColorScale, tb.Color)
		text.Draw(dst, tb.glyphs[i], face, &tb.textOp)
	}
}
