package drift

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Filter is an effect applied to a glyph's offscreen image before it is
// composited onto the page.
type Filter interface {
	// Apply draws src into dst with the effect.
	Apply(src, dst *ebiten.Image)
	// Padding is how many pixels the effect bleeds past the source.
	Padding() int
}

// colorMatrixShaderSrc applies a 4x5 color matrix. Ebitengine uses
// premultiplied alpha, so the shader un-premultiplies first.
const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

// Lazy shader compilation. Drawing is single-threaded, so no sync.Once.
var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("drift: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// --- ColorMatrixFilter ---

// ColorMatrixFilter runs a glyph through a row-major 4x5 color matrix in a
// Kage shader. Dissolving text uses it to fade blurred glyphs.
type ColorMatrixFilter struct {
	Matrix      [20]float64
	uniforms    map[string]any
	matrixF32   [20]float32
	matrixSlice []float32
	shaderOp    ebiten.DrawRectShaderOptions
}

// NewColorMatrixFilter returns an identity filter.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{
		uniforms: make(map[string]any, 1),
	}
	f.matrixSlice = f.matrixF32[:]
	f.uniforms["Matrix"] = f.matrixSlice
	f.SetAlphaScale(1)
	return f
}

// SetAlphaScale sets the matrix to the identity with the alpha row scaled
// by a, leaving color channels untouched.
func (f *ColorMatrixFilter) SetAlphaScale(a float64) {
	f.Matrix = [20]float64{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, a, 0,
	}
}

// Identity reports whether the matrix leaves every pixel unchanged.
func (f *ColorMatrixFilter) Identity() bool {
	for i, v := range f.Matrix {
		want := 0.0
		if i%6 == 0 && i < 20 {
			want = 1
		}
		if v != want {
			return false
		}
	}
	return true
}

// Apply writes src through the matrix into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorMatrixShader()
	for i, v := range f.Matrix {
		f.matrixF32[i] = float32(v)
	}
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding is always 0.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// --- BlurFilter ---

// BlurFilter softens a glyph by halving it repeatedly and scaling it back up
// with linear filtering (a Kawase-style blur without a shader).
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter returns a blur of radius pixels; negative radii are 0.
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// blurPasses returns the number of downscale passes for a radius.
func blurPasses(radius int) int {
	if radius <= 0 {
		return 0
	}
	return max(int(math.Ceil(math.Log2(float64(radius)))), 1)
}

// Apply blurs src into dst: down through each pass, back up, then out.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	passes := blurPasses(f.Radius)
	if passes == 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}
	f.trimTemps(passes)

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	current := src
	for i := range passes {
		w, h = max(w/2, 1), max(h/2, 1)
		drawScaled(f.temp(i, w, h), current, op)
		current = f.temps[i]
	}
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}
	drawScaled(dst, current, op)
}

// trimTemps sizes the pass buffer list to n, releasing extra images.
func (f *BlurFilter) trimTemps(n int) {
	for len(f.temps) < n {
		f.temps = append(f.temps, nil)
	}
	for _, img := range f.temps[n:] {
		if img != nil {
			img.Deallocate()
		}
	}
	clear(f.temps[n:])
	f.temps = f.temps[:n]
}

// temp returns a cleared w x h buffer for pass i, reallocating on resize.
func (f *BlurFilter) temp(i, w, h int) *ebiten.Image {
	img := f.temps[i]
	if img != nil && img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		img.Clear()
		return img
	}
	if img != nil {
		img.Deallocate()
	}
	f.temps[i] = ebiten.NewImage(w, h)
	return f.temps[i]
}

// drawScaled draws src stretched over all of dst with bilinear filtering.
func drawScaled(dst, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding is the blur radius, so soft edges are not clipped.
func (f *BlurFilter) Padding() int { return f.Radius }

// filterChainPadding sums the padding of every filter.
func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between pooled
// images. Returns the image holding the result and the scratch image the
// caller must release (nil if none was used).
func applyFilters(filters []Filter, src *ebiten.Image, pool *texturePool) (result, scratch *ebiten.Image) {
	if len(filters) == 0 {
		return src, nil
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	current := src
	for _, f := range filters {
		if scratch == nil {
			scratch = pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}
	if scratch == src {
		scratch = nil
	}
	return current, scratch
}

// drawTextFiltered renders s offscreen with enough padding for the filter
// chain, applies the filters and composites the result so the text's
// top-left lands on (x, y), scaled by alpha.
func drawTextFiltered(dst *ebiten.Image, pool *texturePool, filters []Filter, f *Font, s string, width, x, y float64,
	tint Color, alpha float64, textOp *text.DrawOptions, imgOp *ebiten.DrawImageOptions) {
	pad := filterChainPadding(filters)
	w := int(math.Ceil(width)) + 2*pad
	h := int(math.Ceil(f.LineHeight())) + 2*pad
	src := pool.Acquire(w, h)

	textOp.GeoM.Reset()
	textOp.ColorScale.Reset()
	textOp.GeoM.Translate(float64(pad), float64(pad))
	scaleColor(&textOp.ColorScale, tint)
	text.Draw(src, s, f.Face(), textOp)

	result, scratch := applyFilters(filters, src, pool)

	imgOp.GeoM.Reset()
	imgOp.ColorScale.Reset()
	imgOp.GeoM.Translate(x-float64(pad), y-float64(pad))
	imgOp.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(result, imgOp)

	if result != src {
		pool.Release(result)
	}
	pool.Release(src)
	if scratch != nil && scratch != src && scratch != result {
		pool.Release(scratch)
	}
}
