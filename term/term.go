// Package term renders drift's animation state into a terminal cell grid
// with tcell. It reads the same component state the Ebitengine renderer
// does and maps opacity onto gray levels, so scramble, dissolve and the
// intro can be watched over SSH.
package term

import (
	"math"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/drift"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2

// Glyphs used for the intro scene.
const (
	floorRune = '_'
	bodyRune  = '#'
	dustRune  = '.'
	dustHeavy = ':'
)

// Renderer draws drift components onto a tcell screen. It does not own
// the screen: callers Init, Fini and Show it.
type Renderer struct {
	screen tcell.Screen

	// Style is the base style; text foregrounds are derived from it.
	Style tcell.Style
	// Dim is the opacity below which a dissolving character is not drawn.
	Dim float64
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, Style: tcell.StyleDefault, Dim: 0.05}
}

// Screen returns the target screen.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

// Clear blanks the screen.
func (r *Renderer) Clear() { r.screen.Clear() }

// Show flushes drawn cells to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// gray returns the base style with a gray foreground for opacity a.
func (r *Renderer) gray(a float64) tcell.Style {
	v := int32(math.Round(clamp01(a) * 255))
	return r.Style.Foreground(tcell.NewRGBColor(v, v, v))
}

// DrawString writes s starting at (x, y), wrapping at width columns when
// width is positive and on every newline. It returns the number of rows
// used.
func (r *Renderer) DrawString(x, y, width int, s string, style tcell.Style) int {
	col, row := 0, 0
	for _, ch := range s {
		if ch == '\n' {
			col, row = 0, row+1
			continue
		}
		if width > 0 && col >= width {
			col, row = 0, row+1
			if unicode.IsSpace(ch) {
				continue
			}
		}
		r.screen.SetContent(x+col, y+row, ch, nil, style)
		col++
	}
	if col == 0 && row > 0 {
		return row
	}
	return row + 1
}

// DrawScramble writes the scramble's rendered text. Idle text renders
// nothing.
func (r *Renderer) DrawScramble(x, y, width int, s *drift.ScrambleText) int {
	rendered := s.Rendered()
	if rendered == "" {
		return 0
	}
	style := r.Style
	if s.Phase() == drift.ScrambleRevealing {
		style = style.Bold(true)
	}
	return r.DrawString(x, y, width, rendered, style)
}

// DrawDissolve writes every character of d with a gray level taken from
// its sampled opacity and entrance. Characters past the blur radius are
// drawn dim.
func (r *Renderer) DrawDissolve(x, y, width int, d *drift.DissolveText) int {
	cells := d.Cells()
	visuals := d.Visuals()
	col, row := 0, 0
	for i, c := range cells {
		if c.Char == '\n' {
			col, row = 0, row+1
			continue
		}
		if width > 0 && col >= width {
			col, row = 0, row+1
		}
		v := visuals[i]
		a := v.Opacity * v.Entrance * v.AlphaMul
		if a >= r.Dim && !unicode.IsSpace(c.Char) {
			style := r.gray(a)
			if v.Blur >= 1 {
				style = style.Dim(true)
			}
			// Rise is in pixels; one cell row is about 16 of them.
			r.screen.SetContent(x+col, y+row+int(math.Round(v.OffsetY/16)), c.Char, nil, style)
		}
		col++
	}
	if len(cells) == 0 {
		return 0
	}
	return row + 1
}

// DrawIntro draws the intro scene's floor, body and dust into the whole
// screen, projecting through a camera sized to the cell grid.
func (r *Renderer) DrawIntro(scene *drift.IntroScene) {
	w, h := r.screen.Size()
	if w == 0 || h == 0 {
		return
	}
	cam := *scene.Camera()
	cam.SetViewport(drift.Rect{Width: float64(w), Height: float64(h * cellAspect)})

	if p, _, ok := cam.WorldToScreen(drift.Vec3{Y: scene.Floor().Offset}); ok {
		fy := int(p.Y) / cellAspect
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, fy, floorRune, nil, r.gray(0.4))
		}
	}

	if dust := scene.Dust(); dust.Active() {
		origin := dust.Origin()
		for i, pos := range dust.Positions {
			p, _, ok := cam.WorldToScreen(origin.Add(pos))
			if !ok {
				continue
			}
			ch := dustRune
			if dust.Sizes[i] > 0.25 {
				ch = dustHeavy
			}
			c := dust.Colors[i]
			r.screen.SetContent(int(p.X), int(p.Y)/cellAspect, ch, nil, r.gray(c.R*c.A))
		}
	}

	b := scene.Body()
	he := b.HalfExtents
	for _, local := range [...]drift.Vec3{
		{X: -he.X}, {X: -he.X / 2}, {}, {X: he.X / 2}, {X: he.X},
	} {
		p, _, ok := cam.WorldToScreen(b.ToWorld(local))
		if !ok {
			continue
		}
		r.screen.SetContent(int(p.X), int(p.Y)/cellAspect, bodyRune, nil, r.Style.Bold(true))
	}
}

// DrawLetters draws a letter reveal centered on row y, fading each letter
// by its opacity.
func (r *Renderer) DrawLetters(y int, l *drift.LetterReveal) {
	if !l.Started() {
		return
	}
	runes := []rune(l.Text())
	w, _ := r.screen.Size()
	x := (w - len(runes)) / 2
	for i, ch := range runes {
		a, _ := l.Letter(i)
		if a < r.Dim || unicode.IsSpace(ch) {
			continue
		}
		r.screen.SetContent(x+i, y, ch, nil, r.gray(a))
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
