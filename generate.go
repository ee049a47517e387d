package treemorph

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

// Tree geometry.
const (
	treeHeight = 8.0
	treeBaseY  = -4.0
	treeApexY  = treeBaseY + treeHeight

	spiralShareNum = 7 // spiral share of the canopy is 7/10
	spiralShareDen = 10

	spiralHeightExp = 1.6
	spiralRadius    = 3.2
	radiusExp       = 1.1
	spiralTurns     = 9
	angleJitter     = 0.22
	radiusJitter    = 0.135

	branchFreq  = 5.8
	branchPhase = 0.15
	branchGain  = 0.65

	fillHeightExp = 1.9
	fillRadius    = 4.3
)

// Galaxy (scatter) geometry.
const (
	galaxyY         = 0.5
	galaxyArms      = 2
	spiralTightness = 0.35
	fillTightness   = 0.6
	galaxyThickness = 0.35
	armSpread       = 0.4
	coreShare       = 0.85
)

// Heart geometry.
const (
	heartScale   = 0.22
	heartLift    = 4.2
	heartDepth   = 0.4
	heartJitter  = 0.08
	groundHeartS = 0.24
)

var groundRings = [...]float64{1.6, 2.6, 3.6, 4.8, 6.0}

const groundRingJitter = 0.3

// Ornament cluster placement.
var (
	ornamentRadius = Range{6, 10}
	ornamentHeight = Range{-2, 8}
	ornamentScale  = Range{0.04, 0.09}
)

const ornamentDepth = 0.1

// Generator produces particle groups for a theme. It consumes its random
// source and has no other side effects. Not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	theme Theme
}

// NewGenerator returns a generator drawing from a PCG source seeded with
// seed. A zero seed picks a random one, so output is not reproducible.
func NewGenerator(theme Theme, seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		theme: theme,
	}
}

// Theme returns the theme colors are drawn from.
func (g *Generator) Theme() Theme {
	return g.theme
}

// Canopy generates n canopy particles. The first n*7/10 come from the
// spiral pass and have no heart target; the rest come from the fill pass.
func (g *Generator) Canopy(n int) Group {
	if n <= 0 {
		return Group{Kind: GroupCanopy}
	}
	spiral := n * spiralShareNum / spiralShareDen
	ps := make([]Particle, 0, n)
	for i := 0; i < spiral; i++ {
		ps = append(ps, g.spiralParticle())
	}
	for i := spiral; i < n; i++ {
		ps = append(ps, g.fillParticle())
	}
	return Group{Kind: GroupCanopy, Particles: ps, SpiralCount: spiral}
}

func (g *Generator) spiralParticle() Particle {
	h := math.Pow(g.rng.Float64(), spiralHeightExp)
	branch := 1 + branchGain*math.Max(0, math.Sin((branchFreq*h+branchPhase)*2*math.Pi))
	r := math.Pow(1-h, radiusExp) * spiralRadius * branch
	r *= 1 + g.signed(radiusJitter)
	theta := h*spiralTurns*2*math.Pi + g.signed(angleJitter)

	base := r3.Vector{
		X: r * math.Cos(theta),
		Y: treeBaseY + h*treeHeight,
		Z: r * math.Sin(theta),
	}
	d := 1 + g.rng.Float64()*10
	scatter := g.armPoint(d, spiralTightness)
	return newParticle(base, Present(scatter), Target{}, g.canopyColor(spiralPalette))
}

func (g *Generator) fillParticle() Particle {
	h := math.Pow(g.rng.Float64(), fillHeightExp)
	r := math.Pow(1-h, radiusExp) * fillRadius * math.Sqrt(g.rng.Float64())
	theta := g.rng.Float64() * 2 * math.Pi

	base := r3.Vector{
		X: r * math.Cos(theta),
		Y: treeBaseY + h*treeHeight,
		Z: r * math.Sin(theta),
	}
	var d float64
	if g.rng.Float64() < 0.5 {
		d = 0.3 + g.rng.Float64()*3
	} else {
		d = 3 + g.rng.Float64()*8
	}
	scatter := g.armPoint(d, fillTightness)
	heart := g.heartPoint(heartScale)
	return newParticle(base, Present(scatter), Present(heart), g.canopyColor(fillPalette))
}

// Ground generates n particles on concentric rings at the foot of the tree.
func (g *Generator) Ground(n int) Group {
	if n <= 0 {
		return Group{Kind: GroupGround}
	}
	ps := make([]Particle, n)
	for i := range ps {
		ring := groundRings[g.rng.IntN(len(groundRings))]
		r := ring + g.signed(groundRingJitter)
		theta := g.rng.Float64() * 2 * math.Pi
		base := r3.Vector{
			X: r * math.Cos(theta),
			Y: treeBaseY - 0.15 + g.signed(0.05),
			Z: r * math.Sin(theta),
		}

		var scatter r3.Vector
		if g.rng.Float64() < coreShare {
			cr := math.Sqrt(g.rng.Float64()) * 2.2
			ct := g.rng.Float64() * 2 * math.Pi
			scatter = r3.Vector{
				X: cr * math.Cos(ct),
				Y: galaxyY + g.signed(0.25),
				Z: cr * math.Sin(ct),
			}
		} else {
			scatter = g.armPoint(4+g.rng.Float64()*8, spiralTightness)
		}

		t := g.theme
		c := Color{
			R: t.GroundR.Random(g.rng),
			G: t.GroundG.Random(g.rng),
			B: t.GroundB.Random(g.rng),
		}
		ps[i] = newParticle(base, Present(scatter), Present(g.heartPoint(groundHeartS)), c)
	}
	return Group{Kind: GroupGround, Particles: ps}
}

// Ornaments generates n particles split round-robin across clusters
// of small hearts. Their scatter target equals their base so they never disperse.
func (g *Generator) Ornaments(n, clusters int) Group {
	if n <= 0 {
		return Group{Kind: GroupOrnament}
	}
	if clusters <= 0 {
		clusters = 1
	}
	type cluster struct {
		center r3.Vector
		scale  float64
	}
	cs := make([]cluster, clusters)
	for i := range cs {
		a := g.rng.Float64() * 2 * math.Pi
		r := ornamentRadius.Random(g.rng)
		cs[i] = cluster{
			center: r3.Vector{X: r * math.Cos(a), Y: ornamentHeight.Random(g.rng), Z: r * math.Sin(a)},
			scale:  ornamentScale.Random(g.rng),
		}
	}

	ps := make([]Particle, n)
	for i := range ps {
		c := cs[i%clusters]
		fill := math.Sqrt(g.rng.Float64())
		hx, hy := heartCurve(g.rng.Float64() * 2 * math.Pi)
		base := c.center.Add(r3.Vector{
			X: hx * c.scale * fill,
			Y: hy * c.scale * fill,
			Z: g.signed(ornamentDepth),
		})
		hx, hy = heartCurve(g.rng.Float64() * 2 * math.Pi)
		heart := c.center.Add(r3.Vector{X: hx * c.scale, Y: hy * c.scale, Z: g.signed(ornamentDepth)})

		col := g.theme.Accent.Scale(g.theme.Brightness.Random(g.rng))
		ps[i] = newParticle(base, Present(base), Present(heart), col)
	}
	return Group{Kind: GroupOrnament, Particles: ps}
}

// armPoint places a point at distance d along one of the galaxy arms.
func (g *Generator) armPoint(d, tightness float64) r3.Vector {
	arm := g.rng.IntN(galaxyArms)
	angle := float64(arm)*2*math.Pi/galaxyArms + tightness*d
	spread := armSpread * (0.5 + d/11)
	thick := galaxyThickness * math.Max(0.2, 1-d/12)
	return r3.Vector{
		X: d*math.Cos(angle) + g.signed(spread),
		Y: galaxyY + g.signed(thick),
		Z: d*math.Sin(angle) + g.signed(spread),
	}
}

// heartPoint places a point on the large heart outline above the apex.
func (g *Generator) heartPoint(scale float64) r3.Vector {
	hx, hy := heartCurve(g.rng.Float64() * 2 * math.Pi)
	return r3.Vector{
		X: hx*scale + g.signed(heartJitter),
		Y: treeApexY + heartLift + hy*scale + g.signed(heartJitter),
		Z: g.signed(heartDepth),
	}
}

// signed returns a uniform draw in [-a, a].
func (g *Generator) signed(a float64) float64 {
	return (g.rng.Float64()*2 - 1) * a
}

// heartCurve evaluates the classic parametric heart at t.
func heartCurve(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return x, y
}
