package treemorph

import "math"

// fingertip spread angles from vertical, index first.
var tipAngles = [4]float64{-0.3, -0.1, 0.1, 0.3}

// wristOffset is the distance from the palm reference down to the wrist.
const wristOffset = 0.1

// SyntheticHand builds a detected frame whose palm reference sits at
// (x, y) in normalized coordinates, with the given openness and pinch
// distance. Coordinates that fall outside [0, 1] are clamped on
// classification, which changes the features; keep the hand near center.
func SyntheticHand(x, y, openness, pinch float64) HandFrame {
	f := HandFrame{Detected: true}
	lm := &f.Landmarks
	wrist := Landmark{X: x, Y: y + wristOffset}
	lm[LandmarkWrist] = wrist
	lm[LandmarkMiddleMCP] = Landmark{X: x, Y: y}
	for i, tip := range fingertips {
		a := tipAngles[i]
		lm[tip] = Landmark{
			X: wrist.X + openness*math.Sin(a),
			Y: wrist.Y - openness*math.Cos(a),
		}
	}
	index := lm[LandmarkIndexTip]
	lm[LandmarkThumbTip] = Landmark{X: index.X - pinch, Y: index.Y}
	return f
}

// PinchFrame is a thumb-index pinch at (x, y).
func PinchFrame(x, y float64) HandFrame {
	return SyntheticHand(x, y, 0.32, 0.02)
}

// OpenPalmFrame is a spread hand at (x, y).
func OpenPalmFrame(x, y float64) HandFrame {
	return SyntheticHand(x, y, 0.45, 0.1)
}

// FistFrame is a closed hand at (x, y).
func FistFrame(x, y float64) HandFrame {
	return SyntheticHand(x, y, 0.15, 0.1)
}

// InjectHand queues a frame to be classified on a later Update, one frame
// per Update. Injected frames are classified on the render goroutine.
func (s *Scene) InjectHand(f HandFrame) {
	s.injectQueue = append(s.injectQueue, f)
}

// InjectNoHand queues a signal-loss frame.
func (s *Scene) InjectNoHand() {
	s.InjectHand(NoHand)
}

// InjectPinch queues a pinch at (x, y).
func (s *Scene) InjectPinch(x, y float64) {
	s.InjectHand(PinchFrame(x, y))
}

// InjectOpenPalm queues an open palm at (x, y).
func (s *Scene) InjectOpenPalm(x, y float64) {
	s.InjectHand(OpenPalmFrame(x, y))
}

// InjectFist queues a fist at (x, y).
func (s *Scene) InjectFist(x, y float64) {
	s.InjectHand(FistFrame(x, y))
}

// InjectHold queues the same frame for n consecutive Updates.
func (s *Scene) InjectHold(f HandFrame, n int) {
	for i := 0; i < n; i++ {
		s.InjectHand(f)
	}
}

// processInjected classifies one queued frame. Returns true if a frame
// was consumed.
func (s *Scene) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	f := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.classifier.Observe(f)
	if s.debug.Load() && s.classifier.clamped > 0 {
		s.debugWarnf("clamped %d landmark coordinates", s.classifier.clamped)
	}
	return true
}
