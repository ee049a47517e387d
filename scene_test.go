package treemorph

import (
	"errors"
	"math"
	"testing"
)

func smallScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(Config{CanopyCount: 2000, GroundCount: 400, OrnamentCount: 150, Seed: 21})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type recordingSink struct {
	events []Event
}

func (r *recordingSink) EmitEvent(e Event) {
	r.events = append(r.events, e)
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.CanopyCount != 50000 || c.GroundCount != 8000 || c.OrnamentCount != 1500 {
		t.Errorf("counts = %d/%d/%d, want 50000/8000/1500", c.CanopyCount, c.GroundCount, c.OrnamentCount)
	}
	if c.OrnamentClusters != 15 {
		t.Errorf("OrnamentClusters = %d, want 15", c.OrnamentClusters)
	}
	if c.Rate != DefaultRate {
		t.Errorf("Rate = %v, want %v", c.Rate, DefaultRate)
	}
	if c.Theme != DefaultThemeName {
		t.Errorf("Theme = %q, want %q", c.Theme, DefaultThemeName)
	}
}

func TestNewSceneDefaultCanopy(t *testing.T) {
	s, err := NewScene(Config{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if n := s.Canopy().Len(); n != 50000 {
		t.Errorf("canopy = %d, want 50000", n)
	}
	if n := s.Canopy().SpiralCount; n != 35000 {
		t.Errorf("spiral = %d, want 35000", n)
	}
	if got := s.ParticleCount(); got != 50000+8000+1500 {
		t.Errorf("ParticleCount = %d", got)
	}
	if s.State().Mode() != ModeTree {
		t.Errorf("initial mode = %v, want TREE", s.State().Mode())
	}
}

func TestNewSceneUnknownTheme(t *testing.T) {
	_, err := NewScene(Config{Theme: "plaid"})
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestSetThemeRegenerates(t *testing.T) {
	s := smallScene(t)
	s.InjectOpenPalm(0.5, 0.5)
	for i := 0; i < 30; i++ {
		s.Step(1.0 / 60)
	}
	before := make([]Particle, s.Canopy().Len())
	copy(before, s.Canopy().Particles)
	counts := [3]int{s.Canopy().Len(), s.Ground().Len(), s.Ornaments().Len()}

	if err := s.SetTheme("frost"); err != nil {
		t.Fatal(err)
	}
	if s.Theme().Name != "frost" {
		t.Errorf("theme = %q, want frost", s.Theme().Name)
	}
	after := [3]int{s.Canopy().Len(), s.Ground().Len(), s.Ornaments().Len()}
	if after != counts {
		t.Errorf("counts = %v, want %v", after, counts)
	}

	moved, recolored := 0, 0
	for i, p := range s.Canopy().Particles {
		if p.Base != before[i].Base {
			moved++
		}
		if p.Color != before[i].Color {
			recolored++
		}
		if p.Current != p.Base {
			t.Fatalf("particle %d not reset to its new base", i)
		}
	}
	if moved < len(before)*9/10 {
		t.Errorf("only %d of %d base positions changed, want a fresh draw", moved, len(before))
	}
	if recolored < len(before)*9/10 {
		t.Errorf("only %d of %d canopy colors changed, want a fresh draw", recolored, len(before))
	}
}

// fromCanopyPalette reports whether c is one of th's canopy entries plus
// shimmer.
func fromCanopyPalette(c Color, th Theme) bool {
	const eps = 1e-9
	within := func(got, base float64) bool {
		return got >= base-eps && got <= math.Min(1, base+float64(maxShimmer)/255)+eps
	}
	for _, e := range []Color{th.Deep, th.Medium, th.Light, th.Highlight, ColorWhite} {
		if within(c.R, e.R) && within(c.G, e.G) && within(c.B, e.B) {
			return true
		}
	}
	return th.AccentChance > 0 && c == th.Accent
}

func TestSetThemeColorsFromNewTheme(t *testing.T) {
	s := smallScene(t)
	if err := s.SetTheme("frost"); err != nil {
		t.Fatal(err)
	}
	frost, _ := LookupTheme("frost")
	inRange := func(v float64, r Range) bool { return v >= r.Min && v <= r.Max }

	for i, p := range s.Canopy().Particles {
		if !fromCanopyPalette(p.Color, frost) {
			t.Fatalf("canopy %d color %+v not from the frost palette", i, p.Color)
		}
	}
	for i, p := range s.Ground().Particles {
		c := p.Color
		if !inRange(c.R, frost.GroundR) || !inRange(c.G, frost.GroundG) || !inRange(c.B, frost.GroundB) {
			t.Fatalf("ground %d color %+v outside frost ground ranges", i, c)
		}
	}
	// Frost's accent has a full blue channel, so the brightness factor
	// reads back from B without clamping.
	for i, p := range s.Ornaments().Particles {
		c := p.Color
		k := c.B / frost.Accent.B
		if k < frost.Brightness.Min-1e-9 || k > frost.Brightness.Max+1e-9 {
			t.Fatalf("ornament %d brightness %v outside %+v", i, k, frost.Brightness)
		}
		if want := frost.Accent.Scale(k); math.Abs(c.R-want.R) > 1e-9 || math.Abs(c.G-want.G) > 1e-9 {
			t.Fatalf("ornament %d color %+v, want accent scaled by %v", i, c, k)
		}
	}
}

func TestSetThemeSameNameStillRedraws(t *testing.T) {
	s := smallScene(t)
	first := s.Canopy().Particles[0].Base
	if err := s.SetTheme(s.Theme().Name); err != nil {
		t.Fatal(err)
	}
	if s.Canopy().Particles[0].Base == first {
		t.Error("re-selecting the theme did not redraw positions")
	}
}

func TestSetThemeUnknownKeepsGroups(t *testing.T) {
	s := smallScene(t)
	first := s.Canopy().Particles[0]
	err := s.SetTheme("plaid")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("err = %v, want ErrUnknownTheme", err)
	}
	if s.Canopy().Particles[0] != first || s.Theme().Name != DefaultThemeName {
		t.Error("failed SetTheme modified the scene")
	}
}

func TestPinchScenario(t *testing.T) {
	s := smallScene(t)
	c := s.Canopy()
	fill := c.Particles[c.SpiralCount:]
	initial := make([]float64, len(fill))
	for i := range fill {
		initial[i] = fill[i].Current.Distance(fill[i].Heart.Pos)
	}

	// Ten pinch frames, then the hand is held still (no new detections).
	s.InjectHold(SyntheticHand(0.5, 0.5, 0.32, 0.03), 10)
	for frame := 0; frame < 138; frame++ {
		s.Step(1.0 / 60)
		if m := s.State().Mode(); m != ModeHeart {
			t.Fatalf("frame %d: mode = %v, want HEART", frame, m)
		}
	}
	for i := range fill {
		if d := fill[i].Current.Distance(fill[i].Heart.Pos); d >= 0.01*initial[i] {
			t.Fatalf("fill particle %d: %g of %g remaining", i, d, initial[i])
		}
	}
	// Spiral particles have no heart target and stay on the tree.
	for i, p := range c.Particles[:c.SpiralCount] {
		if p.Current != p.Base {
			t.Fatalf("spiral particle %d left its base in HEART mode", i)
		}
	}
}

func TestLosingHandReturnsToTree(t *testing.T) {
	s := smallScene(t)
	s.InjectOpenPalm(0.5, 0.5)
	s.Step(1.0 / 60)
	if s.State().Mode() != ModeScatter {
		t.Fatalf("mode = %v, want SCATTER", s.State().Mode())
	}
	s.InjectNoHand()
	s.Step(1.0 / 60)
	if s.State().Mode() != ModeTree || s.State().Hand().Detected {
		t.Errorf("after signal loss: mode %v hand %+v", s.State().Mode(), s.State().Hand())
	}
}

func TestSceneEvents(t *testing.T) {
	s := smallScene(t)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	s.InjectFist(0.5, 0.5)     // hand found, mode stays TREE
	s.InjectOpenPalm(0.5, 0.5) // mode SCATTER
	s.InjectOpenPalm(0.6, 0.5) // no event
	s.InjectNoHand()           // hand lost, mode TREE
	for i := 0; i < 4; i++ {
		s.Step(1.0 / 60)
	}
	if err := s.SetTheme("rose"); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		typ  EventType
		mode Mode
	}{
		{EventHandFound, ModeTree},
		{EventModeChange, ModeScatter},
		{EventHandLost, ModeTree},
		{EventModeChange, ModeTree},
		{EventThemeChange, ModeTree},
	}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %+v, want %d", sink.events, len(want))
	}
	for i, w := range want {
		e := sink.events[i]
		if e.Type != w.typ || e.Mode != w.mode {
			t.Errorf("event %d = %v/%v, want %v/%v", i, e.Type, e.Mode, w.typ, w.mode)
		}
	}
	if last := sink.events[len(sink.events)-1]; last.Theme != "rose" {
		t.Errorf("theme event Theme = %q, want rose", last.Theme)
	}
	if sink.events[1].Prev != ModeTree {
		t.Errorf("mode event Prev = %v, want TREE", sink.events[1].Prev)
	}
}

func TestStepAdvancesRotationAndElapsed(t *testing.T) {
	s := smallScene(t)
	for i := 0; i < 60; i++ {
		s.Step(1.0 / 60)
	}
	if got := s.Elapsed(); got < 0.999 || got > 1.001 {
		t.Errorf("Elapsed = %v, want ~1", got)
	}
	// No gesture yet: idle drift only.
	r := s.State().Rotation()
	want := s.RotationController().Config.IdleYaw
	if r.Y < want*0.999 || r.Y > want*1.001 {
		t.Errorf("yaw = %v, want ~%v", r.Y, want)
	}
}

func TestAmbientFadesOnThemeSwitch(t *testing.T) {
	s := smallScene(t)
	from := s.Ambient()
	if err := s.SetTheme("rose"); err != nil {
		t.Fatal(err)
	}
	if s.Ambient() != from {
		t.Errorf("ambient jumped to %+v before any Step", s.Ambient())
	}
	for i := 0; i < 120; i++ {
		s.Step(1.0 / 60)
	}
	to := s.Theme().Ambient
	got := s.Ambient()
	if d := (got.R-to.R)*(got.R-to.R) + (got.G-to.G)*(got.G-to.G) + (got.B-to.B)*(got.B-to.B); d > 1e-4 {
		t.Errorf("ambient = %+v, want %+v", got, to)
	}
}

func TestNewTrackerSharesState(t *testing.T) {
	s := smallScene(t)
	s.Classifier().Config.Pinch = 0.1
	tr := s.NewTracker()
	if tr.Classifier().Config.Pinch != 0.1 {
		t.Errorf("tracker Pinch = %v, want scene threshold 0.1", tr.Classifier().Config.Pinch)
	}
	tr.Classifier().Observe(PinchFrame(0.5, 0.5))
	if s.State().Mode() != ModeHeart {
		t.Errorf("scene mode = %v, want HEART from tracker", s.State().Mode())
	}
}
