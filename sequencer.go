package drift

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// TextTiming controls how a TextDisplay reveals its text.
type TextTiming struct {
	PerLetterDelay time.Duration // stagger between consecutive letters
	LetterDuration time.Duration // one letter's fade and rise
	Rise           float64       // pixels each letter travels upward
}

// TextDisplay is a text effect the intro hands its headline to. Start is
// called at most once per mount; the display must call onComplete exactly
// once, when its animation has finished. A nil onComplete means nobody is
// waiting.
type TextDisplay interface {
	Start(text string, timing TextTiming, onComplete func())
	Update(dt time.Duration)
	// Draw renders the text centered on (x, y).
	Draw(dst *ebiten.Image, font *Font, x, y float64)
	// Close stops the animation; onComplete must not be called afterwards.
	Close()
}

// IntroEventKind identifies an intro lifecycle transition.
type IntroEventKind uint8

const (
	IntroMounted   IntroEventKind = iota // timers armed, physics running
	IntroImpact                          // the body hit the floor, dust shown
	IntroTextShown                       // the headline started revealing
	IntroCompleted                       // the headline finished
	IntroUnmounted                       // the intro was torn down
)

// String returns the kind name.
func (k IntroEventKind) String() string {
	switch k {
	case IntroMounted:
		return "mounted"
	case IntroImpact:
		return "impact"
	case IntroTextShown:
		return "text-shown"
	case IntroCompleted:
		return "completed"
	case IntroUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// IntroEvent is a lifecycle notification from an IntroSequencer.
type IntroEvent struct {
	Kind IntroEventKind
	At   time.Duration // sequencer time since mount
}

// EventSink receives intro lifecycle events.
type EventSink interface {
	EmitIntroEvent(IntroEvent)
}

// IntroSequencer runs the intro: the physics scene from mount, the dust
// burst when the impact timer fires, and the headline when the text timer
// fires. Its completion callback is forwarded from the text display at most
// once and never after Unmount.
type IntroSequencer struct {
	config  IntroConfig
	scene   *IntroScene
	display TextDisplay
	sink    EventSink
	font    *Font

	sched       Scheduler
	impactTimer *Timer
	textTimer   *Timer

	mounted   bool
	impact    bool
	textShown bool
	completed bool
	onDone    func()

	fade      float64
	fadeTween *TweenGroup

	pool  texturePool
	imgOp ebiten.DrawImageOptions
}

// NewIntroSequencer creates an unmounted sequencer. scene may be nil for a
// text-only intro.
func NewIntroSequencer(cfg IntroConfig, scene *IntroScene, display TextDisplay) *IntroSequencer {
	return &IntroSequencer{config: cfg, scene: scene, display: display}
}

// SetEventSink sets where lifecycle events go. nil disables events.
func (q *IntroSequencer) SetEventSink(sink EventSink) { q.sink = sink }

// SetFont sets the headline font.
func (q *IntroSequencer) SetFont(f *Font) { q.font = f }

// Scene returns the physics scene, or nil.
func (q *IntroSequencer) Scene() *IntroScene { return q.scene }

// Mounted reports whether the intro is running.
func (q *IntroSequencer) Mounted() bool { return q.mounted }

// Impact reports whether the impact timer has fired.
func (q *IntroSequencer) Impact() bool { return q.impact }

// TextShown reports whether the headline has started.
func (q *IntroSequencer) TextShown() bool { return q.textShown }

// Completed reports whether completion was forwarded.
func (q *IntroSequencer) Completed() bool { return q.completed }

// Elapsed returns the time since mount.
func (q *IntroSequencer) Elapsed() time.Duration { return q.sched.Now() }

// Fade returns the headline overlay opacity in [0, 1].
func (q *IntroSequencer) Fade() float64 { return q.fade }

// Mount starts the intro. onComplete is called once when the headline
// finishes, unless the sequencer is unmounted first. Mounting a mounted
// sequencer does nothing.
func (q *IntroSequencer) Mount(onComplete func()) {
	if q.mounted {
		return
	}
	q.sched = Scheduler{}
	q.mounted = true
	q.impact = false
	q.textShown = false
	q.completed = false
	q.onDone = onComplete
	q.fade = 0
	q.fadeTween = nil

	if q.scene != nil {
		q.scene.Mount()
	}
	q.impactTimer = q.sched.After(q.config.ImpactDelay, q.fireImpact)
	q.textTimer = q.sched.After(q.config.TextDelay, q.fireText)
	q.emit(IntroMounted)
}

// Unmount stops both timers, closes the display and tears down the scene,
// whatever state the intro is in.
func (q *IntroSequencer) Unmount() {
	if !q.mounted {
		return
	}
	q.mounted = false
	q.impactTimer.Stop()
	q.textTimer.Stop()
	q.sched.StopAll()
	if q.display != nil {
		q.display.Close()
	}
	if q.scene != nil {
		q.scene.Unmount()
	}
	q.pool.Dispose()
	q.onDone = nil
	q.emit(IntroUnmounted)
}

func (q *IntroSequencer) fireImpact() {
	q.impact = true
	if q.scene != nil {
		q.scene.Dust().SetActive(true)
	}
	q.emit(IntroImpact)
}

func (q *IntroSequencer) fireText() {
	q.textShown = true
	q.fadeTween = TweenValue(&q.fade, 1, seconds(q.config.FadeIn), ease.Linear)
	if q.config.FadeIn <= 0 {
		q.fade = 1
		q.fadeTween.Done = true
	}
	q.emit(IntroTextShown)
	if q.display == nil {
		q.complete()
		return
	}
	q.display.Start(q.config.Text, TextTiming{
		PerLetterDelay: q.config.PerLetterDelay,
		LetterDuration: q.config.LetterDuration,
		Rise:           q.config.LetterRise,
	}, q.complete)
}

// complete forwards the display's completion once.
func (q *IntroSequencer) complete() {
	if !q.mounted || q.completed {
		return
	}
	q.completed = true
	q.emit(IntroCompleted)
	if fn := q.onDone; fn != nil {
		fn()
	}
}

func (q *IntroSequencer) emit(kind IntroEventKind) {
	if q.sink != nil {
		q.sink.EmitIntroEvent(IntroEvent{Kind: kind, At: q.sched.Now()})
	}
}

// Update advances the timers, physics, fade and headline by dt.
func (q *IntroSequencer) Update(dt time.Duration) {
	if !q.mounted {
		return
	}
	q.sched.Advance(dt)
	if !q.mounted {
		return
	}
	if q.scene != nil {
		q.scene.Update(dt)
	}
	if q.fadeTween != nil {
		q.fadeTween.Update(seconds(dt))
	}
	if q.textShown && q.display != nil {
		q.display.Update(dt)
	}
}

// Draw renders the scene and, once shown, the headline centered on the
// screen at the current fade.
func (q *IntroSequencer) Draw(dst *ebiten.Image) {
	if !q.mounted {
		return
	}
	if q.scene != nil {
		q.scene.Draw(dst)
	}
	if !q.textShown || q.display == nil || q.font == nil || q.fade <= 0 {
		return
	}
	b := dst.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	if q.fade >= 1 {
		q.display.Draw(dst, q.font, cx, cy)
		return
	}
	layer := q.pool.Acquire(b.Dx(), b.Dy())
	q.display.Draw(layer, q.font, cx, cy)
	q.imgOp.GeoM.Reset()
	q.imgOp.ColorScale.Reset()
	q.imgOp.ColorScale.ScaleAlpha(float32(q.fade))
	dst.DrawImage(layer, &q.imgOp)
	q.pool.Release(layer)
}
