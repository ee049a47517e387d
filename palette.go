package treemorph

// paletteSlot selects one entry of a theme's canopy palette.
type paletteSlot uint8

const (
	slotDeep paletteSlot = iota
	slotMedium
	slotLight
	slotHighlight
	slotWhite
)

// paletteWeights is a cumulative-probability policy table for canopy colors.
// Entries are checked in order; the last slot absorbs the remainder.
type paletteWeights [slotWhite]float64

var (
	// spiralPalette: deep 35%, medium 30%, light 20%, highlight 10%, white 5%.
	spiralPalette = paletteWeights{0.35, 0.65, 0.85, 0.95}
	// fillPalette: deep 20%, medium 30%, light 25%, highlight 15%, white 10%.
	fillPalette = paletteWeights{0.20, 0.50, 0.75, 0.90}
)

// maxShimmer is the largest per-channel jitter, in 8-bit levels.
const maxShimmer = 20

func (w paletteWeights) pick(u float64) paletteSlot {
	for i, edge := range w {
		if u < edge {
			return paletteSlot(i)
		}
	}
	return slotWhite
}

// canopyColor draws a palette entry and adds shimmer. White draws may be
// rerouted to the theme accent.
func (g *Generator) canopyColor(w paletteWeights) Color {
	t := &g.theme
	var c Color
	switch w.pick(g.rng.Float64()) {
	case slotDeep:
		c = t.Deep
	case slotMedium:
		c = t.Medium
	case slotLight:
		c = t.Light
	case slotHighlight:
		c = t.Highlight
	default:
		if t.AccentChance > 0 && g.rng.Float64() < t.AccentChance {
			return t.Accent
		}
		c = ColorWhite
	}
	return g.shimmer(c)
}

func (g *Generator) shimmer(c Color) Color {
	return Color{
		R: clamp01(c.R + float64(g.rng.IntN(maxShimmer+1))/255),
		G: clamp01(c.G + float64(g.rng.IntN(maxShimmer+1))/255),
		B: clamp01(c.B + float64(g.rng.IntN(maxShimmer+1))/255),
	}
}
