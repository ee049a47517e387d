package treemorph

import (
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// Target is an optional alternate position. The zero value is absent.
type Target struct {
	Pos r3.Vector
	OK  bool
}

// Present wraps p as a present target.
func Present(p r3.Vector) Target {
	return Target{Pos: p, OK: true}
}

// Or returns the target position if present, otherwise fallback.
func (t Target) Or(fallback r3.Vector) r3.Vector {
	if t.OK {
		return t.Pos
	}
	return fallback
}

// Particle is one point of the cloud. Base, Scatter and Heart are fixed at
// generation. Current starts at Base and is then moved by the Interpolator;
// Scene.SetTheme replaces the particle outright.
type Particle struct {
	Base    r3.Vector
	Scatter Target
	Heart   Target
	Color   Color
	Current r3.Vector
}

// newParticle returns a particle resting at its base position.
func newParticle(base r3.Vector, scatter, heart Target, c Color) Particle {
	return Particle{
		Base:    base,
		Scatter: scatter,
		Heart:   heart,
		Color:   c,
		Current: base,
	}
}

// GroupKind names one of the three particle groups.
type GroupKind uint8

const (
	GroupCanopy   GroupKind = iota // tree body
	GroupGround                    // rings at the foot of the tree
	GroupOrnament                  // small floating hearts
)

func (k GroupKind) String() string {
	switch k {
	case GroupCanopy:
		return "canopy"
	case GroupGround:
		return "ground"
	case GroupOrnament:
		return "ornament"
	}
	return "unknown"
}

// Group is a fixed-length sequence of particles sharing generation parameters.
type Group struct {
	Kind      GroupKind
	Particles []Particle

	// SpiralCount is the number of leading particles produced by the
	// canopy spiral pass. Zero for other groups.
	SpiralCount int
}

// Len returns the number of particles in the group.
func (g *Group) Len() int {
	return len(g.Particles)
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Lerp maps t in [0, 1] into the range.
func (r Range) Lerp(t float64) float64 {
	return lerp(r.Min, r.Max, t)
}
