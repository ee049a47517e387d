package treemorph

import "github.com/golang/geo/r3"

// DefaultRate is the exponential convergence rate in 1/seconds.
const DefaultRate = 2.0

// TargetFor returns the position p converges on in mode m. Missing scatter
// or heart targets fall back to the base position.
func TargetFor(p *Particle, m Mode) r3.Vector {
	switch m {
	case ModeScatter:
		return p.Scatter.Or(p.Base)
	case ModeHeart:
		return p.Heart.Or(p.Base)
	default:
		return p.Base
	}
}

// HasTarget reports whether p carries its own target for mode m, as
// opposed to using the base fallback. Renderers hide particles without a
// heart target in ModeHeart.
func HasTarget(p *Particle, m Mode) bool {
	switch m {
	case ModeScatter:
		return p.Scatter.OK
	case ModeHeart:
		return p.Heart.OK
	default:
		return true
	}
}

// Interpolator moves particles toward their mode target with exponential
// smoothing: current += (target - current) * clamp(k*dt, 0, 1).
type Interpolator struct {
	// Rate is k in 1/seconds. Values <= 0 use DefaultRate.
	Rate float64
}

// Factor returns the blend factor applied for a step of dt seconds.
func (ip Interpolator) Factor(dt float64) float64 {
	k := ip.Rate
	if k <= 0 {
		k = DefaultRate
	}
	return clamp01(k * dt)
}

// Step advances every particle of every group by dt seconds.
func (ip Interpolator) Step(groups []*Group, m Mode, dt float64) {
	a := ip.Factor(dt)
	if a == 0 {
		return
	}
	for _, g := range groups {
		stepParticles(g.Particles, m, a)
	}
}

func stepParticles(ps []Particle, m Mode, a float64) {
	for i := range ps {
		p := &ps[i]
		t := TargetFor(p, m)
		p.Current.X += (t.X - p.Current.X) * a
		p.Current.Y += (t.Y - p.Current.Y) * a
		p.Current.Z += (t.Z - p.Current.Z) * a
	}
}
