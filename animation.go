package treemorph

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTintFade is the ambient tint cross-fade duration in seconds.
const DefaultTintFade = 0.8

// TintFade cross-fades the ambient scene tint between themes. Call Update
// each frame; Color returns the current tint.
type TintFade struct {
	tweens [3]*gween.Tween
	color  Color
	Done   bool
}

// NewTintFade returns a fade from one color to another over duration
// seconds using the easing function. A non-positive duration jumps to the
// target immediately.
func NewTintFade(from, to Color, duration float32, fn ease.TweenFunc) *TintFade {
	f := &TintFade{color: from}
	if duration <= 0 {
		f.color = to
		f.Done = true
		return f
	}
	f.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	f.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	f.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	return f
}

// Update advances the fade by dt seconds.
func (f *TintFade) Update(dt float32) {
	if f.Done {
		return
	}
	allDone := true
	var v [3]float64
	for i, tw := range f.tweens {
		val, finished := tw.Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	f.color = Color{clamp01(v[0]), clamp01(v[1]), clamp01(v[2])}
	f.Done = allDone
}

// Color returns the current tint.
func (f *TintFade) Color() Color {
	return f.color
}
