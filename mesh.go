package drift

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once; drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used by untextured polygon meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// meshBatch accumulates untextured convex polygons and submits them in a
// single DrawTriangles32 call. The buffers are reused across frames.
type meshBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
	triOp ebiten.DrawTrianglesOptions
}

// reset empties the batch without releasing its buffers.
func (b *meshBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// fillPolygon appends a convex polygon with fan triangulation. Fewer than
// three points is a no-op.
func (b *meshBatch) fillPolygon(points []Vec2, c Color) {
	if len(points) < 3 {
		return
	}
	a := float32(clamp01(c.A))
	r := float32(clamp01(c.R)) * a
	g := float32(clamp01(c.G)) * a
	bl := float32(clamp01(c.B)) * a
	base := uint32(len(b.verts))
	for _, p := range points {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		})
	}
	for i := 1; i < len(points)-1; i++ {
		b.inds = append(b.inds, base, base+uint32(i), base+uint32(i+1))
	}
}

// flush draws everything accumulated and resets the batch.
func (b *meshBatch) flush(dst *ebiten.Image) {
	if len(b.inds) == 0 {
		b.reset()
		return
	}
	b.triOp.AntiAlias = true
	dst.DrawTriangles32(b.verts, b.inds, ensureWhitePixel(), &b.triOp)
	b.reset()
}
