package drift

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Light is a feathered pool of light in screen space.
type Light struct {
	// X and Y are the pool's center in pixels.
	X, Y float64
	// Radius is the horizontal radius in pixels.
	Radius float64
	// Squash scales the vertical radius; 1 draws a circle, smaller values
	// an ellipse lying on the floor.
	Squash float64
	// Intensity controls how much darkness is removed, in [0, 1].
	Intensity float64
	// Enabled determines whether this light is drawn during Redraw.
	Enabled bool
}

// LightLayer darkens everything drawn under it except where lights shine.
// Redraw fills an offscreen image with ambient darkness and erases a
// feathered ellipse at each enabled light; Draw composites it over the
// destination.
type LightLayer struct {
	img          *ebiten.Image
	width        int
	height       int
	lights       []*Light
	ambientAlpha float64
	circleCache  map[int]*ebiten.Image
	imgOp        ebiten.DrawImageOptions
}

// NewLightLayer creates a light layer covering (w x h) pixels.
// ambientAlpha controls the base darkness (0 = no darkening, 1 = black).
func NewLightLayer(w, h int, ambientAlpha float64) *LightLayer {
	return &LightLayer{width: w, height: h, ambientAlpha: ambientAlpha}
}

// AddLight adds a light to the layer.
func (ll *LightLayer) AddLight(l *Light) {
	ll.lights = append(ll.lights, l)
}

// Lights returns the current light list. The returned slice MUST NOT be mutated.
func (ll *LightLayer) Lights() []*Light {
	return ll.lights
}

// SetAmbientAlpha sets the base darkness level.
func (ll *LightLayer) SetAmbientAlpha(a float64) {
	ll.ambientAlpha = a
}

// AmbientAlpha returns the current ambient darkness level.
func (ll *LightLayer) AmbientAlpha() float64 {
	return ll.ambientAlpha
}

// Resize changes the covered area. The offscreen image is reallocated on
// the next Redraw.
func (ll *LightLayer) Resize(w, h int) {
	if w == ll.width && h == ll.height {
		return
	}
	ll.width, ll.height = w, h
	if ll.img != nil {
		ll.img.Deallocate()
		ll.img = nil
	}
}

// getCircle returns a cached circle texture for the given radius, generating
// one if it doesn't exist. Radius is quantized to the nearest integer to
// avoid generating separate textures for tiny differences.
func (ll *LightLayer) getCircle(radius float64) *ebiten.Image {
	key := max(int(math.Ceil(radius)), 1)
	if ll.circleCache == nil {
		ll.circleCache = make(map[int]*ebiten.Image)
	}
	if img, ok := ll.circleCache[key]; ok {
		return img
	}
	img := generateCircle(float64(key))
	ll.circleCache[key] = img
	return img
}

// Redraw clears the layer, fills it with ambient darkness and erases each
// enabled light. Call it every frame the lights move, before Draw.
func (ll *LightLayer) Redraw() {
	if ll.width <= 0 || ll.height <= 0 {
		return
	}
	if ll.img == nil {
		ll.img = ebiten.NewImage(ll.width, ll.height)
	}
	target := ll.img
	target.Clear()
	target.Fill(color.NRGBA{A: uint8(clamp01(ll.ambientAlpha) * 255)})

	op := &ll.imgOp
	for _, l := range ll.lights {
		if !l.Enabled || l.Radius <= 0 {
			continue
		}
		circle := ll.getCircle(l.Radius)
		size := float64(circle.Bounds().Dx())
		squash := l.Squash
		if squash <= 0 {
			squash = 1
		}
		op.GeoM.Reset()
		op.GeoM.Scale(l.Radius*2/size, l.Radius*2*squash/size)
		op.GeoM.Translate(l.X-l.Radius, l.Y-l.Radius*squash)
		i := float32(clamp01(l.Intensity))
		op.ColorScale.Reset()
		op.ColorScale.Scale(i, i, i, i)
		op.Blend = ebiten.BlendDestinationOut
		target.DrawImage(circle, op)
	}
}

// Draw composites the darkness over dst.
func (ll *LightLayer) Draw(dst *ebiten.Image) {
	if ll.img == nil {
		return
	}
	op := &ll.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	dst.DrawImage(ll.img, op)
}

// Dispose releases all resources owned by the light layer.
func (ll *LightLayer) Dispose() {
	if ll.img != nil {
		ll.img.Deallocate()
		ll.img = nil
	}
	for _, img := range ll.circleCache {
		img.Deallocate()
	}
	ll.circleCache = nil
}

// circleAlpha is the smoothstep falloff of a feathered circle at normalized
// distance d from its center: 1 at the center, 0 at and beyond the edge.
func circleAlpha(d float64) float64 {
	if d >= 1 {
		return 0
	}
	t := 1 - d
	return t * t * (3 - 2*t)
}

// generateCircle creates a feathered white circle image with the given
// radius, in premultiplied alpha.
func generateCircle(radius float64) *ebiten.Image {
	size := max(int(math.Ceil(radius*2)), 1)
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			a := uint8(circleAlpha(math.Sqrt(dx*dx+dy*dy)/radius) * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	img.WritePixels(pix)
	return img
}

// Shade darkens dst with a feathered ellipse centered on (x, y), for
// contact shadows drawn under the lit scene.
func (ll *LightLayer) Shade(dst *ebiten.Image, x, y, radius, squash, opacity float64) {
	if radius <= 0 || opacity <= 0 {
		return
	}
	circle := ll.getCircle(radius)
	size := float64(circle.Bounds().Dx())
	op := &ll.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(radius*2/size, radius*2*squash/size)
	op.GeoM.Translate(x-radius, y-radius*squash)
	op.ColorScale.Reset()
	// Black at the circle's alpha: zero the color, keep scaled alpha.
	a := float32(clamp01(opacity))
	op.ColorScale.Scale(0, 0, 0, a)
	op.Blend = ebiten.BlendSourceOver
	dst.DrawImage(circle, op)
}
