package treemorph

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ColorWhite is the neutral highlight color.
var ColorWhite = Color{1, 1, 1}

// RGB255 builds a Color from 8-bit channel values.
func RGB255(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Scale returns the color multiplied by k, clamped to [0, 1].
func (c Color) Scale(k float64) Color {
	return Color{clamp01(c.R * k), clamp01(c.G * k), clamp01(c.B * k)}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: 255,
	}
}

// Range is a general-purpose min/max range.
// Used by themes (ground color channels, ornament brightness) and generation jitter.
type Range struct {
	Min, Max float64
}

// Mode selects which target shape particles converge on.
type Mode uint8

const (
	ModeTree    Mode = iota // conical tree (base positions)
	ModeScatter             // flattened two-arm galaxy
	ModeHeart               // parametric heart outline
)

// DefaultMode is the idle shape. Losing the hand always returns here.
const DefaultMode = ModeTree

// String returns the upper-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "TREE"
	case ModeScatter:
		return "SCATTER"
	case ModeHeart:
		return "HEART"
	}
	return "UNKNOWN"
}

// BlendMode selects a compositing operation for the renderer.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// EventType identifies a kind of scene event.
type EventType uint8

const (
	EventModeChange  EventType = iota // the classified mode differs from the previous frame
	EventHandFound                    // a hand appeared after an absence
	EventHandLost                     // tracking dropped the hand
	EventThemeChange                  // all groups were regenerated under a new theme
)

func (t EventType) String() string {
	switch t {
	case EventModeChange:
		return "mode"
	case EventHandFound:
		return "hand-found"
	case EventHandLost:
		return "hand-lost"
	case EventThemeChange:
		return "theme"
	}
	return "unknown"
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampUnit clamps v to [-1, 1].
func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
