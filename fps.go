package drift

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay text is redrawn.
const fpsRefresh = 500 * time.Millisecond

// fpsWidget displays the current FPS and TPS in the top-left corner.
// It uses a private image and ebitenutil.DebugPrint for rendering.
type fpsWidget struct {
	img       *ebiten.Image
	imgOp     ebiten.DrawImageOptions
	sinceDraw time.Duration
	sampled   bool
	needsDraw bool
	fps, tps  float64
}

func (w *fpsWidget) update(dt time.Duration) {
	w.sinceDraw += dt
	if w.sinceDraw < fpsRefresh && w.sampled {
		return
	}
	w.sinceDraw = 0
	w.sampled = true
	w.fps = ebiten.ActualFPS()
	w.tps = ebiten.ActualTPS()
	w.needsDraw = true
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	if w.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		w.img = ebiten.NewImage(100, 32)
		w.needsDraw = true
	}
	if w.needsDraw {
		w.img.Clear()
		// Semi-transparent background for readability
		w.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", w.fps, w.tps))
		w.needsDraw = false
	}
	screen.DrawImage(w.img, &w.imgOp)
}
