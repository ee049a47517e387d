package treemorph

import "sync/atomic"

// Hand is the tracked hand position. X and Y are in [-1, 1].
type Hand struct {
	Detected bool
	X, Y     float64
}

// GestureState is one classifier output. It is published as a whole so
// readers never see Hand.X and Hand.Y from different frames.
type GestureState struct {
	Mode Mode
	Hand Hand
}

// Rotation is the accumulated scene orientation in radians. X is pitch and
// Y is yaw. Values grow without wraparound.
type Rotation struct {
	X, Y float64
}

// State is the shared mode and rotation record of a scene. The classifier
// owns the gesture snapshot and the rotation controller owns the rotation;
// any goroutine may read either. Zero value is ready to use.
type State struct {
	gesture  atomic.Pointer[GestureState]
	rotation atomic.Pointer[Rotation]
}

// NewState returns a state with no gesture published yet.
func NewState() *State {
	return &State{}
}

// Gesture returns the latest gesture snapshot. ok is false until the first
// classification.
func (s *State) Gesture() (g GestureState, ok bool) {
	if p := s.gesture.Load(); p != nil {
		return *p, true
	}
	return GestureState{Mode: DefaultMode}, false
}

// Mode returns the active mode, DefaultMode before any classification.
func (s *State) Mode() Mode {
	g, _ := s.Gesture()
	return g.Mode
}

// Hand returns the latest hand snapshot.
func (s *State) Hand() Hand {
	g, _ := s.Gesture()
	return g.Hand
}

// publish swaps in a new gesture snapshot.
func (s *State) publish(g GestureState) {
	s.gesture.Store(&g)
}

// Rotation returns the accumulated rotation.
func (s *State) Rotation() Rotation {
	if p := s.rotation.Load(); p != nil {
		return *p
	}
	return Rotation{}
}

func (s *State) setRotation(r Rotation) {
	s.rotation.Store(&r)
}
