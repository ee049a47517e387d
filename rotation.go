package treemorph

import "math"

// RotationConfig holds the rotation controller constants. Rates are in
// radians per second; decay values are exponential rates in 1/seconds.
type RotationConfig struct {
	// DeadZone is the hand offset from center, per axis, that produces no
	// rotation in ModeScatter.
	DeadZone float64
	// Speed is the angular velocity with the hand at the frame edge.
	Speed float64

	TreeYaw    float64
	TreeDecay  float64
	HeartYaw   float64
	HeartDecay float64
	// IdleYaw is the drift whenever no hand is detected, including before
	// the first classification. Pitch then recenters at TreeDecay.
	IdleYaw float64
}

// DefaultRotationConfig returns the reference constants.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		DeadZone:   0.3,
		Speed:      1.2,
		TreeYaw:    0.3,
		TreeDecay:  2.0,
		HeartYaw:   0.15,
		HeartDecay: 1.0,
		IdleYaw:    0.05,
	}
}

// RotationController accumulates the scene rotation on a State. It is the
// only writer of the rotation.
type RotationController struct {
	Config RotationConfig
	state  *State
}

// NewRotationController returns a controller writing to s.
func NewRotationController(s *State) *RotationController {
	return &RotationController{Config: DefaultRotationConfig(), state: s}
}

// Step advances the rotation by dt seconds and returns the new value.
func (rc *RotationController) Step(dt float64) Rotation {
	r := rc.state.Rotation()
	if dt <= 0 {
		return r
	}
	c := &rc.Config
	g, ok := rc.state.Gesture()
	switch {
	case !ok || !g.Hand.Detected:
		r.Y += c.IdleYaw * dt
		r.X *= math.Exp(-c.TreeDecay * dt)
	case g.Mode == ModeScatter:
		r.Y += c.Speed * c.edge(g.Hand.X) * dt
		r.X += c.Speed * c.edge(g.Hand.Y) * dt
	case g.Mode == ModeHeart:
		r.Y += c.HeartYaw * dt
		r.X *= math.Exp(-c.HeartDecay * dt)
	default:
		r.Y += c.TreeYaw * dt
		r.X *= math.Exp(-c.TreeDecay * dt)
	}
	rc.state.setRotation(r)
	return r
}

// edge returns the signed share of v beyond the dead zone, normalized so
// that v = ±1 yields ±1.
func (c *RotationConfig) edge(v float64) float64 {
	a := math.Abs(v)
	if a <= c.DeadZone || c.DeadZone >= 1 {
		return 0
	}
	return math.Copysign((math.Min(a, 1)-c.DeadZone)/(1-c.DeadZone), v)
}
