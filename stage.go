package drift

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// Input defaults.
const (
	defaultScrollStep = 60  // pixels per wheel notch or arrow key
	pageScrollFactor  = 0.9 // fraction of the viewport a page key scrolls
	pageScrollTime    = 0.4 // seconds for animated page scrolls
)

// Stage is the top-level ebiten.Game. Each frame it applies input to the
// page's scroller first, so scroll listeners have settled progress and
// gates, then advances the page's timers, physics and tweens, and finally
// draws.
type Stage struct {
	page   *Page
	width  int
	height int
	debug  bool

	// ScrollStep is the scroll distance per wheel notch or arrow key press.
	ScrollStep float64
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	screenshotQueue []string
	injectQueue     []scrollInjection
	testRunner      *TestRunner
	fps             *fpsWidget
	stats           debugStats
}

// NewStage creates a stage that runs page at the given logical size. The
// page is mounted on the first Update.
func NewStage(page *Page, width, height int) *Stage {
	return &Stage{
		page:          page,
		width:         width,
		height:        height,
		ScrollStep:    defaultScrollStep,
		ScreenshotDir: "screenshots",
	}
}

// Page returns the page being run.
func (s *Stage) Page() *Page { return s.page }

// SetShowFPS toggles the FPS/TPS overlay.
func (s *Stage) SetShowFPS(show bool) {
	if !show {
		s.fps = nil
		return
	}
	if s.fps == nil {
		s.fps = &fpsWidget{}
	}
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timings, live scroll listeners and the page phase are logged to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update implements ebiten.Game.
func (s *Stage) Update() error {
	s.tick(frameDelta(ebiten.TPS()), true)
	return nil
}

// tick runs one frame of logic. readInput is false in tests, where only
// injected input applies.
func (s *Stage) tick(dt time.Duration, readInput bool) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.page.Phase() == PageIdle {
		s.page.Mount()
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedScroll() && readInput {
		s.processInput()
	}
	s.page.Update(dt)
	if s.fps != nil {
		s.fps.update(dt)
	}

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.listeners = s.page.Scroller().Listeners()
		s.stats.phase = s.page.Phase()
	}
}

// processInput maps wheel and keyboard input onto the scroller.
func (s *Stage) processInput() {
	sc := s.page.Scroller()
	if _, dy := ebiten.Wheel(); dy != 0 {
		sc.ScrollBy(-dy * s.ScrollStep)
	}
	page := sc.Viewport().Height * pageScrollFactor
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.page.SkipIntro()
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		sc.ScrollBy(s.ScrollStep / 4)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		sc.ScrollBy(-s.ScrollStep / 4)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		sc.ScrollTo(sc.ScrollY()+page, pageScrollTime, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		sc.ScrollTo(sc.ScrollY()-page, pageScrollTime, ease.OutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		sc.ScrollTo(0, pageScrollTime*2, ease.InOutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		sc.ScrollTo(sc.MaxScroll(), pageScrollTime*2, ease.InOutCubic)
	}
}

// Draw implements ebiten.Game.
func (s *Stage) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.page.Draw(screen)
	if s.fps != nil {
		s.fps.draw(screen)
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.debugLog(s.stats)
	}
	s.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical size follows the window so
// text wraps to the available width.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != s.width || outsideHeight != s.height) {
		s.width, s.height = outsideWidth, outsideHeight
		s.page.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return s.width, s.height
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	TPS       int
	Resizable bool
	ShowFPS   bool
	Debug     bool
}

// Run opens a window and runs stage until the window is closed.
func Run(stage *Stage, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	stage.SetShowFPS(cfg.ShowFPS)
	stage.SetDebugMode(cfg.Debug)
	return ebiten.RunGame(stage)
}
