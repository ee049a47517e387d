package treemorph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTheme is returned when a theme name is not registered.
var ErrUnknownTheme = errors.New("treemorph: unknown theme")

// Theme is a named palette. Switching themes regenerates every group.
type Theme struct {
	Name string

	// Canopy palette: piecewise selection among these plus ColorWhite.
	Deep      Color
	Medium    Color
	Light     Color
	Highlight Color

	// Accent is used for ornaments and, when AccentChance > 0, for a share
	// of canopy highlight draws.
	Accent       Color
	AccentChance float64

	// GroundR/G/B are per-channel color ranges for ground particles.
	GroundR, GroundG, GroundB Range

	// Brightness scales the ornament accent color.
	Brightness Range

	// Ambient tints the scene background.
	Ambient Color
}

var themes = map[string]Theme{
	"classic": {
		Name:         "classic",
		Deep:         RGB255(6, 64, 28),
		Medium:       RGB255(20, 120, 48),
		Light:        RGB255(92, 190, 96),
		Highlight:    RGB255(255, 246, 214),
		Accent:       RGB255(220, 30, 48),
		AccentChance: 0.18,
		GroundR:      Range{0.55, 0.85},
		GroundG:      Range{0.45, 0.70},
		GroundB:      Range{0.10, 0.25},
		Brightness:   Range{0.6, 1.0},
		Ambient:      RGB255(4, 10, 18),
	},
	"frost": {
		Name:       "frost",
		Deep:       RGB255(18, 52, 110),
		Medium:     RGB255(60, 120, 200),
		Light:      RGB255(150, 200, 245),
		Highlight:  RGB255(240, 248, 255),
		Accent:     RGB255(180, 220, 255),
		GroundR:    Range{0.70, 0.90},
		GroundG:    Range{0.80, 0.95},
		GroundB:    Range{0.90, 1.00},
		Brightness: Range{0.5, 0.9},
		Ambient:    RGB255(6, 10, 26),
	},
	"rose": {
		Name:       "rose",
		Deep:       RGB255(120, 16, 60),
		Medium:     RGB255(200, 60, 120),
		Light:      RGB255(245, 150, 190),
		Highlight:  RGB255(255, 232, 240),
		Accent:     RGB255(255, 90, 140),
		GroundR:    Range{0.80, 1.00},
		GroundG:    Range{0.55, 0.75},
		GroundB:    Range{0.60, 0.80},
		Brightness: Range{0.7, 1.0},
		Ambient:    RGB255(20, 6, 14),
	},
}

// DefaultThemeName is the theme used when Config.Theme is empty.
const DefaultThemeName = "classic"

// LookupTheme returns the registered theme with the given name.
func LookupTheme(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("lookup %q: %w", name, ErrUnknownTheme)
	}
	return t, nil
}

// RegisterTheme adds or replaces a theme. Not safe for concurrent use with
// LookupTheme; register themes during program start.
func RegisterTheme(t Theme) error {
	if t.Name == "" {
		return errors.New("treemorph: register theme: empty name")
	}
	themes[t.Name] = t
	return nil
}

// ThemeNames returns the registered theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
