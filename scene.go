package treemorph

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Config controls scene generation. Zero fields take defaults.
type Config struct {
	CanopyCount      int     // default 50000
	GroundCount      int     // default 8000
	OrnamentCount    int     // default 1500
	OrnamentClusters int     // default 15
	Rate             float64 // interpolation rate k, default DefaultRate
	// Seed seeds generation. Zero draws a random seed on every
	// regeneration.
	Seed  uint64
	Theme string // default DefaultThemeName
}

func (c Config) withDefaults() Config {
	if c.CanopyCount <= 0 {
		c.CanopyCount = 50000
	}
	if c.GroundCount <= 0 {
		c.GroundCount = 8000
	}
	if c.OrnamentCount <= 0 {
		c.OrnamentCount = 1500
	}
	if c.OrnamentClusters <= 0 {
		c.OrnamentClusters = 15
	}
	if c.Rate <= 0 {
		c.Rate = DefaultRate
	}
	if c.Theme == "" {
		c.Theme = DefaultThemeName
	}
	return c
}

// EventSink is the interface for optional ECS integration.
// When set on a Scene, scene events are forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event describes a mode, hand or theme transition.
type Event struct {
	Type  EventType
	Mode  Mode
	Prev  Mode
	Hand  Hand
	Theme string
}

// Scene is the top-level object that owns the particle groups, the shared
// state, the interpolator and the rotation controller.
type Scene struct {
	cfg    Config
	theme  Theme
	groups [3]Group
	gen    uint64 // regeneration count

	elapsed float64

	state        *State
	classifier   *Classifier
	rotation     *RotationController
	interpolator Interpolator
	tint         *TintFade

	sink     EventSink
	lastSeen GestureState
	debug    atomic.Bool // read by trackers on their own goroutine

	injectQueue     []HandFrame
	runner          *GestureRunner
	screenshotQueue []string

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// NewScene generates all groups under cfg.Theme.
func NewScene(cfg Config) (*Scene, error) {
	cfg = cfg.withDefaults()
	theme, err := LookupTheme(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	st := NewState()
	s := &Scene{
		cfg:           cfg,
		state:         st,
		classifier:    NewClassifier(st),
		rotation:      NewRotationController(st),
		interpolator:  Interpolator{Rate: cfg.Rate},
		lastSeen:      GestureState{Mode: DefaultMode},
		ScreenshotDir: "screenshots",
	}
	s.regenerate(theme)
	s.tint = NewTintFade(theme.Ambient, theme.Ambient, 0, ease.Linear)
	return s, nil
}

// regenerate replaces every group with a fresh draw under theme.
func (s *Scene) regenerate(theme Theme) {
	seed := s.cfg.Seed
	if seed != 0 {
		seed += s.gen
	}
	s.gen++
	g := NewGenerator(theme, seed)
	s.theme = theme
	s.groups[GroupCanopy] = g.Canopy(s.cfg.CanopyCount)
	s.groups[GroupGround] = g.Ground(s.cfg.GroundCount)
	s.groups[GroupOrnament] = g.Ornaments(s.cfg.OrnamentCount, s.cfg.OrnamentClusters)
}

// SetTheme regenerates all groups under the named theme. Counts are kept;
// positions and colors are drawn anew, and every particle's Current is
// reset to its new base, so the cloud restarts from the tree shape and
// converges on the active mode from there. The ambient tint fades over
// DefaultTintFade seconds.
func (s *Scene) SetTheme(name string) error {
	theme, err := LookupTheme(name)
	if err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	from := s.tint.Color()
	s.regenerate(theme)
	s.tint = NewTintFade(from, theme.Ambient, DefaultTintFade, ease.InOutQuad)
	s.emit(Event{Type: EventThemeChange, Mode: s.state.Mode(), Theme: name})
	return nil
}

// Elapsed returns the total time advanced by Step, in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Theme returns the active theme.
func (s *Scene) Theme() Theme {
	return s.theme
}

// Ambient returns the current, possibly fading, background tint.
func (s *Scene) Ambient() Color {
	return s.tint.Color()
}

// State returns the shared mode and rotation state.
func (s *Scene) State() *State {
	return s.state
}

// Classifier returns the classifier used for injected frames.
func (s *Scene) Classifier() *Classifier {
	return s.classifier
}

// RotationController returns the scene's rotation controller.
func (s *Scene) RotationController() *RotationController {
	return s.rotation
}

// NewTracker returns a tracker that classifies into the scene state from
// its own goroutine. Use either a tracker or injected frames, not both.
// The tracker follows the scene's debug mode for clamp warnings.
func (s *Scene) NewTracker() *Tracker {
	t := NewTracker(s.state)
	t.classifier.Config = s.classifier.Config
	t.debug = &s.debug
	return t
}

// Group returns the group of the given kind.
func (s *Scene) Group(k GroupKind) *Group {
	return &s.groups[k]
}

// Canopy returns the canopy group.
func (s *Scene) Canopy() *Group { return &s.groups[GroupCanopy] }

// Ground returns the ground group.
func (s *Scene) Ground() *Group { return &s.groups[GroupGround] }

// Ornaments returns the ornament group.
func (s *Scene) Ornaments() *Group { return &s.groups[GroupOrnament] }

// Groups returns pointers to all three groups, canopy first.
func (s *Scene) Groups() []*Group {
	return []*Group{&s.groups[0], &s.groups[1], &s.groups[2]}
}

// ParticleCount returns the total number of particles.
func (s *Scene) ParticleCount() int {
	n := 0
	for i := range s.groups {
		n += s.groups[i].Len()
	}
	return n
}

// Update advances one frame using dt = 1/TPS.
func (s *Scene) Update() {
	s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances one frame by dt seconds: scripted input, injected gesture
// classification, event emission, interpolation, rotation and tint fade.
func (s *Scene) Step(dt float64) {
	var stats debugStats
	var t0 time.Time
	if s.debug.Load() {
		t0 = time.Now()
	}

	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInjected()
	s.emitTransitions()

	if s.debug.Load() {
		stats.classifyTime = time.Since(t0)
		t0 = time.Now()
	}

	s.elapsed += dt
	mode := s.state.Mode()
	s.interpolator.Step(s.Groups(), mode, dt)

	if s.debug.Load() {
		stats.interpolateTime = time.Since(t0)
		t0 = time.Now()
	}

	s.rotation.Step(dt)
	s.tint.Update(float32(dt))

	if s.debug.Load() {
		stats.rotateTime = time.Since(t0)
		stats.particleCount = s.ParticleCount()
		stats.mode = mode
		s.debugLog(stats)
	}
}

// emitTransitions compares the published gesture with the last one seen
// and forwards hand and mode changes to the sink.
func (s *Scene) emitTransitions() {
	g, _ := s.state.Gesture()
	prev := s.lastSeen
	s.lastSeen = g
	if s.sink == nil {
		return
	}
	if g.Hand.Detected != prev.Hand.Detected {
		typ := EventHandLost
		if g.Hand.Detected {
			typ = EventHandFound
		}
		s.emit(Event{Type: typ, Mode: g.Mode, Prev: prev.Mode, Hand: g.Hand})
	}
	if g.Mode != prev.Mode {
		s.emit(Event{Type: EventModeChange, Mode: g.Mode, Prev: prev.Mode, Hand: g.Hand})
	}
}

func (s *Scene) emit(e Event) {
	if e.Theme == "" {
		e.Theme = s.theme.Name
	}
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats are logged to stderr and clamped landmark input is reported,
// both for injected frames and for trackers made by NewTracker.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug.Store(enabled)
}
