package drift

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error from Config.Validate.
var ErrInvalidConfig = errors.New("drift: invalid config")

// Config holds every tunable of the page's animations. The zero value is
// not useful; start from DefaultConfig or ParseConfig.
type Config struct {
	Intro    IntroConfig    `yaml:"intro"`
	Scramble ScrambleConfig `yaml:"scramble"`
	Dissolve DissolveConfig `yaml:"dissolve"`
	Dust     DustConfig     `yaml:"dust"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Focus    FocusConfig    `yaml:"focus"`
	Page     PageConfig     `yaml:"page"`
}

// IntroConfig drives the IntroSequencer.
type IntroConfig struct {
	ImpactDelay    time.Duration `yaml:"impactDelay"`    // timer A
	TextDelay      time.Duration `yaml:"textDelay"`      // timer B
	Text           string        `yaml:"text"`           // letter-reveal text
	PerLetterDelay time.Duration `yaml:"perLetterDelay"` // stagger between letters
	LetterDuration time.Duration `yaml:"letterDuration"` // one letter's tween
	LetterRise     float64       `yaml:"letterRise"`     // pixels each letter rises while fading in
	FadeIn         time.Duration `yaml:"fadeIn"`         // overlay fade-in
}

// ScrambleConfig drives ScrambleText.
type ScrambleConfig struct {
	TickInterval time.Duration `yaml:"tickInterval"`
	SmallBatch   int           `yaml:"smallBatch"` // runes per tick for short text
	LargeBatch   int           `yaml:"largeBatch"` // runes per tick for long text
	LongText     int           `yaml:"longText"`   // rune count above which LargeBatch applies
	Alphabet     string        `yaml:"alphabet"`
	Threshold    float64       `yaml:"threshold"` // visible fraction that triggers the reveal
}

// Interval returns the tick interval.
func (c ScrambleConfig) Interval() time.Duration { return c.TickInterval }

// BatchFor returns the reveal batch size for a text of n runes.
func (c ScrambleConfig) BatchFor(n int) int {
	if n > c.LongText {
		return max(c.LargeBatch, 1)
	}
	return max(c.SmallBatch, 1)
}

// DissolveConfig drives DissolveText. Durations are in seconds.
type DissolveConfig struct {
	Stagger  float64 `yaml:"stagger"`  // entrance delay per character
	Entrance float64 `yaml:"entrance"` // entrance fade duration
	Band     float64 `yaml:"band"`     // progress width of the dissolve before the threshold
	Rise     float64 `yaml:"rise"`     // final vertical offset in pixels
	MaxBlur  float64 `yaml:"maxBlur"`
	MinAlpha float64 `yaml:"minAlpha"`
}

// DustConfig drives DustBurst.
type DustConfig struct {
	Count   int     `yaml:"count"`
	Radius  Range   `yaml:"radius"`
	Height  Range   `yaml:"height"`
	Size    Range   `yaml:"size"`
	Shade   Range   `yaml:"shade"`
	Opacity float64 `yaml:"opacity"`
}

// PhysicsConfig drives the intro World. Step is in seconds.
type PhysicsConfig struct {
	Step            float64 `yaml:"step"`
	MaxSubSteps     int     `yaml:"maxSubSteps"`
	Gravity         Vec3    `yaml:"gravity"`
	Mass            float64 `yaml:"mass"`
	Start           Vec3    `yaml:"start"`
	Rotation        Vec3    `yaml:"rotation"`
	AngularVelocity Vec3    `yaml:"angularVelocity"`
	HalfExtents     Vec3    `yaml:"halfExtents"`
	FloorY          float64 `yaml:"floorY"`
	Restitution     float64 `yaml:"restitution"`
	Friction        float64 `yaml:"friction"`
	LinearDamping   float64 `yaml:"linearDamping"`
	AngularDamping  float64 `yaml:"angularDamping"`
	CameraZ         float64 `yaml:"cameraZ"`
	FOV             float64 `yaml:"fov"` // vertical, degrees

	// Lighting. The spot aims at the world origin.
	Ambient       float64 `yaml:"ambient"` // ambient light level in [0, 1]
	Spot          Vec3    `yaml:"spot"`
	SpotAngle     float64 `yaml:"spotAngle"` // cone half-angle, radians
	SpotIntensity float64 `yaml:"spotIntensity"`
	Shadow        float64 `yaml:"shadow"` // contact shadow opacity at rest
}

// FocusConfig drives FocusCycler.
type FocusConfig struct {
	Sentence    string        `yaml:"sentence"`
	BorderColor Color         `yaml:"borderColor"`
	Blur        float64       `yaml:"blur"`
	Cycle       time.Duration `yaml:"cycle"`
	Pause       time.Duration `yaml:"pause"`
}

// PageConfig drives the page shell.
type PageConfig struct {
	LoadingFallback time.Duration `yaml:"loadingFallback"`
	HeroThreshold   float64       `yaml:"heroThreshold"`
	CTAThreshold    float64       `yaml:"ctaThreshold"`
	BackgroundShade float64       `yaml:"backgroundShade"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Intro: IntroConfig{
			ImpactDelay:    1000 * time.Millisecond,
			TextDelay:      1200 * time.Millisecond,
			Text:           "ARUN FITNESS AND TRAINING",
			PerLetterDelay: 20 * time.Millisecond,
			LetterDuration: 500 * time.Millisecond,
			LetterRise:     40,
			FadeIn:         500 * time.Millisecond,
		},
		Scramble: ScrambleConfig{
			TickInterval: 2 * time.Millisecond,
			SmallBatch:   2,
			LargeBatch:   10,
			LongText:     100,
			Alphabet:     DefaultScrambleAlphabet,
			Threshold:    0.1,
		},
		Dissolve: DissolveConfig{
			Stagger:  0.01,
			Entrance: 0.3,
			Band:     0.1,
			Rise:     -20,
			MaxBlur:  2,
			MinAlpha: 0.5,
		},
		Dust: DustConfig{
			Count:   200,
			Radius:  Range{0, 5},
			Height:  Range{0, 3},
			Size:    Range{0.1, 0.4},
			Shade:   Range{0.5, 0.8},
			Opacity: 0.8,
		},
		Physics: PhysicsConfig{
			Step:            1.0 / 60,
			MaxSubSteps:     5,
			Gravity:         Vec3{0, -5, 0},
			Mass:            10,
			Start:           Vec3{0, 15, 0},
			Rotation:        Vec3{0.1, 0.1, 0.1},
			AngularVelocity: Vec3{0.4, 0.2, 0.3},
			HalfExtents:     Vec3{2.9, 2.2, 2.2},
			FloorY:          -5,
			Restitution:     0,
			Friction:        0.3,
			LinearDamping:   0.01,
			AngularDamping:  0.01,
			CameraZ:         15,
			FOV:             50,
			Ambient:         0.5,
			Spot:            Vec3{10, 10, 10},
			SpotAngle:       0.3,
			SpotIntensity:   1,
			Shadow:          0.6,
		},
		Focus: FocusConfig{
			Sentence:    "STAY FOCUSED KEEP TRAINING",
			BorderColor: Color{1, 0, 0, 1},
			Blur:        5,
			Cycle:       2 * time.Second,
			Pause:       time.Second,
		},
		Page: PageConfig{
			LoadingFallback: 2 * time.Second,
			HeroThreshold:   0.2,
			CTAThreshold:    0.4,
			BackgroundShade: 0,
		},
	}
}

// ParseConfig decodes YAML onto DefaultConfig, so omitted keys keep their
// defaults, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("drift: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("drift: read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field for values the animations cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Intro.ImpactDelay < 0 || c.Intro.TextDelay < 0:
		return invalid("intro delays must not be negative")
	case c.Intro.PerLetterDelay < 0 || c.Intro.LetterDuration < 0 || c.Intro.FadeIn < 0:
		return invalid("intro durations must not be negative")
	case c.Scramble.TickInterval <= 0:
		return invalid("scramble.tickInterval must be positive, got %s", c.Scramble.TickInterval)
	case c.Scramble.SmallBatch < 1 || c.Scramble.LargeBatch < 1:
		return invalid("scramble batch sizes must be at least 1")
	case c.Scramble.LongText < 0:
		return invalid("scramble.longText must not be negative")
	case len([]rune(c.Scramble.Alphabet)) == 0:
		return invalid("scramble.alphabet must not be empty")
	case !inUnit(c.Scramble.Threshold):
		return invalid("scramble.threshold must be in [0, 1], got %g", c.Scramble.Threshold)
	case c.Dissolve.Stagger < 0 || c.Dissolve.Entrance < 0:
		return invalid("dissolve timings must not be negative")
	case c.Dissolve.Band <= 0 || c.Dissolve.Band > 1:
		return invalid("dissolve.band must be in (0, 1], got %g", c.Dissolve.Band)
	case c.Dissolve.MaxBlur < 0:
		return invalid("dissolve.maxBlur must not be negative")
	case !inUnit(c.Dissolve.MinAlpha):
		return invalid("dissolve.minAlpha must be in [0, 1], got %g", c.Dissolve.MinAlpha)
	case c.Dust.Count < 0:
		return invalid("dust.count must not be negative")
	case c.Dust.Radius.Min > c.Dust.Radius.Max || c.Dust.Height.Min > c.Dust.Height.Max ||
		c.Dust.Size.Min > c.Dust.Size.Max || c.Dust.Shade.Min > c.Dust.Shade.Max:
		return invalid("dust ranges must have min <= max")
	case !inUnit(c.Dust.Opacity):
		return invalid("dust.opacity must be in [0, 1], got %g", c.Dust.Opacity)
	case c.Physics.Step <= 0:
		return invalid("physics.step must be positive, got %g", c.Physics.Step)
	case c.Physics.MaxSubSteps < 1:
		return invalid("physics.maxSubSteps must be at least 1")
	case c.Physics.Mass <= 0:
		return invalid("physics.mass must be positive, got %g", c.Physics.Mass)
	case c.Physics.HalfExtents.X <= 0 || c.Physics.HalfExtents.Y <= 0 || c.Physics.HalfExtents.Z <= 0:
		return invalid("physics.halfExtents must be positive")
	case !inUnit(c.Physics.Restitution) || c.Physics.Friction < 0:
		return invalid("physics contact material out of range")
	case !inUnit(c.Physics.LinearDamping) || !inUnit(c.Physics.AngularDamping):
		return invalid("physics damping must be in [0, 1]")
	case c.Physics.FOV <= 0 || c.Physics.FOV >= 180:
		return invalid("physics.fov must be in (0, 180), got %g", c.Physics.FOV)
	case !inUnit(c.Physics.Ambient) || !inUnit(c.Physics.SpotIntensity) || !inUnit(c.Physics.Shadow):
		return invalid("physics lighting levels must be in [0, 1]")
	case c.Physics.SpotAngle < 0 || c.Physics.SpotAngle >= math.Pi/2:
		return invalid("physics.spotAngle must be in [0, pi/2), got %g", c.Physics.SpotAngle)
	case c.Focus.Blur < 0 || c.Focus.Cycle <= 0 || c.Focus.Pause < 0:
		return invalid("focus blur and timings out of range")
	case c.Page.LoadingFallback <= 0:
		return invalid("page.loadingFallback must be positive")
	case !inUnit(c.Page.HeroThreshold) || !inUnit(c.Page.CTAThreshold):
		return invalid("page thresholds must be in [0, 1]")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
