package drift

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Page copy.
const (
	heroTitleText     = "Transform Your Body,\nTransform Your Life"
	heroSubtitleText  = "Personal training with a focus on your unique fitness journey"
	aboutHeadingText  = "About Arun Fitness"
	servicesTitleText = "Our Services"
	servicesSubText   = "Comprehensive fitness solutions tailored to your individual needs and goals"
	ctaTitleText      = "Ready to Transform Your Body?"
	ctaSubText        = "Take the first step towards a healthier, stronger you. Schedule a free consultation today."
	footerBrandText   = "ARUN FITNESS"
	footerTagText     = "Transforming bodies and lives through personalized fitness training."
	footerContactText = "Contact\nPacefic Wallah Andheri\ninfo@arunfitness.com"

	aboutBodyText = "I'm Arun, a Physics educator from IIT and a certified personal trainer, blending science " +
		"with strength to help people transform both their body and mindset. Over the years, I've taught " +
		"hundreds of students how to understand complex concepts with ease, and now I bring that same " +
		"clarity and care into fitness. I know what it feels like to want change but not know where to " +
		"start. Whether you're a student buried in books or someone who's never stepped into a gym, I'm " +
		"here to tell you: building a strong, healthy body isn't just possible, it's simple when you have " +
		"the right guidance. At Arun Fitness, we don't just count reps. We build habits, confidence, and " +
		"connection. You don't need fancy machines or perfect genetics, you just need someone who truly " +
		"gets your struggles and stands beside you like a friend, a mentor, and a trainer who actually " +
		"cares. Let's begin, together."
)

var serviceCopy = [...][2]string{
	{"Personal Training", "One-on-one sessions designed specifically for your body, goals, and schedule."},
	{"Nutrition Planning", "Custom meal plans that complement your training and help you achieve optimal results."},
	{"Group Sessions", "High-energy group workouts that combine motivation, community, and results."},
}

// Section indices, top to bottom.
const (
	SectionHero = iota
	SectionAbout
	SectionFocus
	SectionServices
	SectionCTA
	SectionFooter
	numSections
)

// Layout spacing in pixels.
const (
	sectionPad = 80
	blockGap   = 24
)

// PagePhase is the page shell's lifecycle.
type PagePhase uint8

const (
	PageIdle    PagePhase = iota // not mounted
	PageLoading                  // intro running
	PageMain                     // main content mounted
	PageClosed                   // unmounted
)

// String returns the phase name.
func (p PagePhase) String() string {
	switch p {
	case PageIdle:
		return "idle"
	case PageLoading:
		return "loading"
	case PageMain:
		return "main"
	case PageClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// PageFonts are the faces the page draws with. Any may be nil, in which
// case that text is laid out with zero size and not drawn.
type PageFonts struct {
	Title   *Font
	Heading *Font
	Body    *Font
	Intro   *Font
}

type serviceCard struct {
	title, desc *TextBlock
	at          Vec2
}

// Page is the landing page shell: the intro while loading, then the main
// content sections driven by scroll. The intro ends when its headline
// completes or when the loading fallback fires, whichever comes first.
type Page struct {
	config   Config
	fonts    PageFonts
	scroller *Scroller
	intro    *IntroSequencer
	letters  *LetterReveal
	rng      *rand.Rand

	phase    PagePhase
	sched    Scheduler
	fallback *Timer

	heroTitle       *DissolveText
	heroSub         *ScrambleText
	heroTracker     *ScrollTracker
	aboutHeading    *TextBlock
	aboutBody       *ScrambleText
	focus           *FocusCycler
	servicesHeading *ScrambleText
	servicesSub     *TextBlock
	cards           [len(serviceCopy)]serviceCard
	ctaTitle        *DissolveText
	ctaSub          *TextBlock
	footerBrand     *TextBlock
	footerTag       *TextBlock
	footerContact   *TextBlock
	footerCopy      *TextBlock

	sections [numSections]Span
	at       struct {
		heroTitle, heroSub, aboutHeading, aboutBody     Vec2
		focus, servicesHeading, servicesSub             Vec2
		ctaTitle, ctaSub                                Vec2
		footerBrand, footerTag, footerContact, footCopy Vec2
	}
}

// NewPage creates an unmounted page for a viewport of the given size.
func NewPage(cfg Config, fonts PageFonts, width, height float64) *Page {
	p := &Page{
		config:   cfg,
		fonts:    fonts,
		scroller: NewScroller(width, height),
		letters:  NewLetterReveal(),
	}
	scene := NewIntroScene(cfg, width, height, nil)
	p.intro = NewIntroSequencer(cfg.Intro, scene, p.letters)
	p.intro.SetFont(fonts.Intro)
	return p
}

// SetRand makes every scramble on the page draw from rng. Call before
// Mount.
func (p *Page) SetRand(rng *rand.Rand) { p.rng = rng }

// SetEventSink forwards intro lifecycle events to sink.
func (p *Page) SetEventSink(sink EventSink) { p.intro.SetEventSink(sink) }

// Phase returns the page's phase.
func (p *Page) Phase() PagePhase { return p.phase }

// Scroller returns the page viewport.
func (p *Page) Scroller() *Scroller { return p.scroller }

// Intro returns the intro sequencer.
func (p *Page) Intro() *IntroSequencer { return p.intro }

// Section returns the span of section i in page coordinates.
func (p *Page) Section(i int) Span { return p.sections[i] }

// HeroTitle returns the hero headline, nil before the main content mounts.
func (p *Page) HeroTitle() *DissolveText { return p.heroTitle }

// HeroSubtitle returns the hero subtitle.
func (p *Page) HeroSubtitle() *ScrambleText { return p.heroSub }

// AboutBody returns the about paragraph.
func (p *Page) AboutBody() *ScrambleText { return p.aboutBody }

// ServicesHeading returns the services heading.
func (p *Page) ServicesHeading() *ScrambleText { return p.servicesHeading }

// CTATitle returns the call-to-action headline.
func (p *Page) CTATitle() *DissolveText { return p.ctaTitle }

// Focus returns the focus banner.
func (p *Page) Focus() *FocusCycler { return p.focus }

// Mount starts the intro and the loading fallback.
func (p *Page) Mount() {
	if p.phase != PageIdle {
		return
	}
	p.phase = PageLoading
	p.scroller.SetContentHeight(p.scroller.Viewport().Height)
	p.fallback = p.sched.After(p.config.Page.LoadingFallback, p.finishLoading)
	p.intro.Mount(p.finishLoading)
}

// SkipIntro ends the intro immediately, as if it had completed.
func (p *Page) SkipIntro() { p.finishLoading() }

// finishLoading swaps the intro for the main content. Only the first call
// during loading has an effect.
func (p *Page) finishLoading() {
	if p.phase != PageLoading {
		return
	}
	p.fallback.Stop()
	p.intro.Unmount()
	p.mountMain()
}

func (p *Page) scrambleOpts() []ScrambleOption {
	if p.rng == nil {
		return nil
	}
	return []ScrambleOption{WithRand(p.rng)}
}

// mountMain builds the main content, lays it out and attaches every
// scroll-driven component.
func (p *Page) mountMain() {
	p.phase = PageMain
	cfg := p.config
	opts := p.scrambleOpts()

	p.heroTitle = NewDissolveText(heroTitleText, cfg.Page.HeroThreshold, cfg.Dissolve)
	p.heroSub = NewScrambleText(heroSubtitleText, cfg.Scramble, opts...)
	p.heroTracker = NewScrollTracker(Span{}, OffsetStartStart, OffsetEndStart)
	p.aboutHeading = NewTextBlock(aboutHeadingText, p.fonts.Heading, 0)
	p.aboutBody = NewScrambleText(aboutBodyText, cfg.Scramble, opts...)
	p.focus = NewFocusCycler(cfg.Focus)
	p.servicesHeading = NewScrambleText(servicesTitleText, cfg.Scramble, opts...)
	p.servicesSub = NewTextBlock(servicesSubText, p.fonts.Body, 0)
	p.servicesSub.Color = Gray(0.83)
	p.servicesSub.Align = TextAlignCenter
	for i, c := range serviceCopy {
		p.cards[i].title = NewTextBlock(c[0], p.fonts.Heading, 0)
		p.cards[i].desc = NewTextBlock(c[1], p.fonts.Body, 0)
		p.cards[i].desc.Color = Gray(0.63)
	}
	p.ctaTitle = NewDissolveText(ctaTitleText, cfg.Page.CTAThreshold, cfg.Dissolve)
	p.ctaSub = NewTextBlock(ctaSubText, p.fonts.Body, 0)
	p.ctaSub.Color = Gray(0.83)
	p.ctaSub.Align = TextAlignCenter
	p.footerBrand = NewTextBlock(footerBrandText, p.fonts.Heading, 0)
	p.footerTag = NewTextBlock(footerTagText, p.fonts.Body, 0)
	p.footerTag.Color = Gray(0.63)
	p.footerContact = NewTextBlock(footerContactText, p.fonts.Body, 0)
	p.footerContact.Color = Gray(0.63)
	p.footerCopy = NewTextBlock(
		fmt.Sprintf("© %d Arun Fitness and Training. All rights reserved.", time.Now().Year()),
		p.fonts.Body, 0)
	p.footerCopy.Color = Gray(0.44)

	p.layout()

	p.heroTitle.Mount(p.scroller, p.heroTitleSpan())
	p.heroTracker.Mount(p.scroller)
	p.ctaTitle.Mount(p.scroller, p.ctaTitleSpan())
	p.heroSub.Observe(p.scroller, p.scrambleSpan(p.heroSub, p.at.heroSub))
	p.aboutBody.Observe(p.scroller, p.scrambleSpan(p.aboutBody, p.at.aboutBody))
	p.servicesHeading.Observe(p.scroller, p.scrambleSpan(p.servicesHeading, p.at.servicesHeading))
	p.focus.Start(cfg.Focus.Sentence, TextTiming{}, nil)
}

// Unmount tears down the intro or the main content and releases every
// subscription and timer.
func (p *Page) Unmount() {
	switch p.phase {
	case PageLoading:
		p.intro.Unmount()
	case PageMain:
		p.heroTitle.Unmount()
		p.ctaTitle.Unmount()
		p.heroTracker.Unmount()
		p.heroSub.Close()
		p.aboutBody.Close()
		p.servicesHeading.Close()
		p.focus.Close()
	}
	p.sched.StopAll()
	p.phase = PageClosed
}

// Resize changes the viewport and relays the content out.
func (p *Page) Resize(width, height float64) {
	p.scroller.Resize(width, height)
	p.intro.Scene().Resize(width, height)
	if p.phase != PageMain {
		p.scroller.SetContentHeight(height)
		return
	}
	p.layout()
	p.heroTitle.SetSpan(p.heroTitleSpan())
	p.ctaTitle.SetSpan(p.ctaTitleSpan())
	p.heroSub.SetSpan(p.scrambleSpan(p.heroSub, p.at.heroSub))
	p.aboutBody.SetSpan(p.scrambleSpan(p.aboutBody, p.at.aboutBody))
	p.servicesHeading.SetSpan(p.scrambleSpan(p.servicesHeading, p.at.servicesHeading))
}

// Update advances the fallback timer and whichever content is mounted.
func (p *Page) Update(dt time.Duration) {
	p.sched.Advance(dt)
	switch p.phase {
	case PageLoading:
		p.intro.Update(dt)
	case PageMain:
		p.scroller.update(seconds(dt))
		p.heroTitle.Update(dt)
		p.ctaTitle.Update(dt)
		p.heroSub.Update(dt)
		p.aboutBody.Update(dt)
		p.servicesHeading.Update(dt)
		p.focus.Update(dt)
	}
}

// HeroParallax returns the hero background's opacity, scale and vertical
// offset for the current scroll position.
func (p *Page) HeroParallax() (opacity, scale, offsetY float64) {
	if p.heroTracker == nil {
		return 1, 1, 0
	}
	t := p.heroTracker.Progress()
	return MapRange(t, 0, 1, 1, 0, nil), MapRange(t, 0, 1, 1, 0.9, nil), MapRange(t, 0, 1, 0, 100, nil)
}

// ContentHeight returns the laid-out page height.
func (p *Page) ContentHeight() float64 {
	last := p.sections[numSections-1]
	return last.Top + last.Height
}

// layout positions every section and element for the current viewport.
func (p *Page) layout() {
	vp := p.scroller.Viewport()
	w, h := vp.Width, vp.Height
	margin := w * 0.08
	contentW := max(w-2*margin, 1)
	lh := func(f *Font) float64 {
		if f == nil {
			return 0
		}
		return f.LineHeight()
	}
	centerX := func(width float64) float64 { return (w - width) / 2 }

	// Hero
	p.heroTitle.SetFont(p.fonts.Title, contentW, TextAlignLeft)
	p.heroSub.SetFont(p.fonts.Body, contentW, TextAlignLeft)
	_, titleH := p.heroTitle.Size()
	p.at.heroTitle = Vec2{margin, h * 0.3}
	p.at.heroSub = Vec2{margin, p.at.heroTitle.Y + titleH + blockGap}
	p.sections[SectionHero] = Span{0, h}
	p.heroTracker.SetSpan(p.sections[SectionHero])

	// About
	top := h
	p.aboutHeading.SetWrapWidth(contentW)
	p.aboutBody.SetFont(p.fonts.Body, contentW, TextAlignLeft)
	_, headH := p.aboutHeading.Size()
	_, bodyH := p.aboutBody.Size()
	p.at.aboutHeading = Vec2{margin, top + sectionPad}
	p.at.aboutBody = Vec2{margin, p.at.aboutHeading.Y + headH + blockGap}
	p.sections[SectionAbout] = Span{top, max(2*sectionPad+headH+blockGap+bodyH, h*0.6)}

	// Focus banner
	top = p.sections[SectionAbout].Top + p.sections[SectionAbout].Height
	p.sections[SectionFocus] = Span{top, max(h*0.4, 2*sectionPad+lh(p.fonts.Heading))}
	p.at.focus = Vec2{w / 2, top + p.sections[SectionFocus].Height/2}

	// Services
	top = p.sections[SectionFocus].Top + p.sections[SectionFocus].Height
	p.servicesHeading.SetFont(p.fonts.Heading, contentW, TextAlignCenter)
	p.servicesSub.SetWrapWidth(contentW * 0.7)
	sw, sh := p.servicesHeading.Size()
	subW, subH := p.servicesSub.Size()
	p.at.servicesHeading = Vec2{centerX(sw), top + sectionPad}
	p.at.servicesSub = Vec2{centerX(subW), p.at.servicesHeading.Y + max(sh, lh(p.fonts.Heading)) + blockGap}
	y := p.at.servicesSub.Y + subH + 2*blockGap
	for i := range p.cards {
		c := &p.cards[i]
		c.title.SetWrapWidth(contentW)
		c.desc.SetWrapWidth(contentW)
		_, th := c.title.Size()
		_, dh := c.desc.Size()
		c.at = Vec2{margin, y}
		y += th + blockGap/2 + dh + 2*blockGap
	}
	p.sections[SectionServices] = Span{top, y - top + sectionPad}

	// Call to action
	top = y + sectionPad
	p.ctaTitle.SetFont(p.fonts.Heading, contentW, TextAlignCenter)
	p.ctaSub.SetWrapWidth(contentW * 0.7)
	cw, ch := p.ctaTitle.Size()
	csw, csh := p.ctaSub.Size()
	p.at.ctaTitle = Vec2{centerX(cw), top + sectionPad}
	p.at.ctaSub = Vec2{centerX(csw), p.at.ctaTitle.Y + max(ch, lh(p.fonts.Heading)) + blockGap}
	p.sections[SectionCTA] = Span{top, max(p.at.ctaSub.Y+csh+sectionPad-top, h*0.5)}

	// Footer
	top = p.sections[SectionCTA].Top + p.sections[SectionCTA].Height
	p.footerTag.SetWrapWidth(contentW / 2)
	_, bh := p.footerBrand.Size()
	_, tgh := p.footerTag.Size()
	_, cth := p.footerContact.Size()
	p.at.footerBrand = Vec2{margin, top + sectionPad/2}
	p.at.footerTag = Vec2{margin, p.at.footerBrand.Y + bh + blockGap/2}
	p.at.footerContact = Vec2{w / 2, top + sectionPad/2}
	bottom := max(p.at.footerTag.Y+tgh, p.at.footerContact.Y+cth) + 2*blockGap
	cpw, cph := p.footerCopy.Size()
	p.at.footCopy = Vec2{centerX(cpw), bottom}
	p.sections[SectionFooter] = Span{top, bottom + cph + sectionPad/2 - top}

	p.scroller.SetContentHeight(p.ContentHeight())
}

func (p *Page) heroTitleSpan() Span {
	_, th := p.heroTitle.Size()
	return Span{p.at.heroTitle.Y, max(th, 1)}
}

func (p *Page) ctaTitleSpan() Span {
	_, th := p.ctaTitle.Size()
	return Span{p.at.ctaTitle.Y, max(th, 1)}
}

// scrambleSpan is the observed region of a scramble text placed at at.
func (p *Page) scrambleSpan(s *ScrambleText, at Vec2) Span {
	_, th := s.Size()
	return Span{at.Y, max(th, 1)}
}

// Section background shades.
var sectionShades = [numSections]float64{0, 0.094, 0, 0, 0.094, 0.035}

// Draw renders the intro or the visible part of the main content.
func (p *Page) Draw(dst *ebiten.Image) {
	dst.Fill(Gray(p.config.Page.BackgroundShade).toRGBA())
	switch p.phase {
	case PageLoading:
		p.intro.Draw(dst)
	case PageMain:
		p.drawMain(dst)
	}
}

func (p *Page) drawMain(dst *ebiten.Image) {
	vp := p.scroller.Viewport()
	sy := vp.ScrollY
	visible := func(i int) bool {
		s := p.sections[i]
		return s.Top+s.Height > sy && s.Top < sy+vp.Height
	}

	for i, s := range p.sections {
		if i == SectionHero || !visible(i) || sectionShades[i] == 0 {
			continue
		}
		vector.DrawFilledRect(dst, 0, float32(s.Top-sy), float32(vp.Width), float32(s.Height),
			Gray(sectionShades[i]).toRGBA(), false)
	}

	if visible(SectionHero) {
		op, sc, oy := p.HeroParallax()
		bw, bh := vp.Width*sc, vp.Height*sc
		bx := (vp.Width - bw) / 2
		by := (vp.Height-bh)/2 + oy - sy
		vector.DrawFilledRect(dst, float32(bx), float32(by), float32(bw), float32(bh),
			Gray(0.12).WithAlpha(op).toRGBA(), false)
		p.heroTitle.Draw(dst, p.at.heroTitle.X, p.at.heroTitle.Y-sy)
		p.heroSub.Draw(dst, p.at.heroSub.X, p.at.heroSub.Y-sy)
	}
	if visible(SectionAbout) {
		p.aboutHeading.Draw(dst, p.at.aboutHeading.X, p.at.aboutHeading.Y-sy)
		p.aboutBody.Draw(dst, p.at.aboutBody.X, p.at.aboutBody.Y-sy)
	}
	if visible(SectionFocus) {
		p.focus.Draw(dst, p.fonts.Heading, p.at.focus.X, p.at.focus.Y-sy)
	}
	if visible(SectionServices) {
		p.servicesHeading.Draw(dst, p.at.servicesHeading.X, p.at.servicesHeading.Y-sy)
		p.servicesSub.Draw(dst, p.at.servicesSub.X, p.at.servicesSub.Y-sy)
		for i := range p.cards {
			c := &p.cards[i]
			_, th := c.title.Size()
			c.title.Draw(dst, c.at.X, c.at.Y-sy)
			c.desc.Draw(dst, c.at.X, c.at.Y+th+blockGap/2-sy)
		}
	}
	if visible(SectionCTA) {
		p.ctaTitle.Draw(dst, p.at.ctaTitle.X, p.at.ctaTitle.Y-sy)
		p.ctaSub.Draw(dst, p.at.ctaSub.X, p.at.ctaSub.Y-sy)
	}
	if visible(SectionFooter) {
		p.footerBrand.Draw(dst, p.at.footerBrand.X, p.at.footerBrand.Y-sy)
		p.footerTag.Draw(dst, p.at.footerTag.X, p.at.footerTag.Y-sy)
		p.footerContact.Draw(dst, p.at.footerContact.X, p.at.footerContact.Y-sy)
		p.footerCopy.Draw(dst, p.at.footCopy.X, p.at.footCopy.Y-sy)
	}
}
