package treemorph

import "math"

// LandmarkCount is the number of keypoints in one hand frame.
const LandmarkCount = 21

// Landmark indices used by the classifier.
const (
	LandmarkWrist     = 0
	LandmarkThumbTip  = 4
	LandmarkIndexTip  = 8
	LandmarkMiddleMCP = 9 // palm reference for hand position
	LandmarkMiddleTip = 12
	LandmarkRingTip   = 16
	LandmarkPinkyTip  = 20
)

var fingertips = [4]int{LandmarkIndexTip, LandmarkMiddleTip, LandmarkRingTip, LandmarkPinkyTip}

// Landmark is a normalized keypoint. X and Y are in [0, 1]; Z is relative
// depth and is not used for classification.
type Landmark struct {
	X, Y, Z float64
}

// HandFrame is one detector output. A frame with Detected false means no
// hand was found (or tracking stopped).
type HandFrame struct {
	Detected  bool
	Landmarks [LandmarkCount]Landmark
}

// NoHand is the frame for signal loss.
var NoHand = HandFrame{}

// ClassifierConfig holds the gesture thresholds.
type ClassifierConfig struct {
	// Pinch below this selects ModeHeart. Checked first.
	Pinch float64
	// Openness below Closed selects ModeTree, above Open selects
	// ModeScatter. Between the two the previous mode is held.
	Closed float64
	Open   float64
}

// DefaultClassifierConfig returns the reference thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{Pinch: 0.05, Closed: 0.30, Open: 0.35}
}

// Classify maps the two hand features to a mode. There is no hold band
// around the pinch threshold, only around the openness thresholds.
func (c ClassifierConfig) Classify(pinch, openness float64, prev Mode) Mode {
	switch {
	case pinch < c.Pinch:
		return ModeHeart
	case openness < c.Closed:
		return ModeTree
	case openness > c.Open:
		return ModeScatter
	default:
		return prev
	}
}

// Classify uses the default thresholds.
func Classify(pinch, openness float64, prev Mode) Mode {
	return DefaultClassifierConfig().Classify(pinch, openness, prev)
}

// Features returns the thumb-index pinch distance and the mean distance
// from the four fingertips to the wrist, both in normalized 2D space.
func Features(f *HandFrame) (pinch, openness float64) {
	lm := &f.Landmarks
	pinch = dist2(lm[LandmarkThumbTip], lm[LandmarkIndexTip])
	var sum float64
	for _, i := range fingertips {
		sum += dist2(lm[i], lm[LandmarkWrist])
	}
	return pinch, sum / float64(len(fingertips))
}

func dist2(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// sanitize clamps coordinates to [0, 1] and returns how many were clamped.
// A frame holding NaN or Inf is treated as no detection.
func sanitize(f HandFrame) (HandFrame, int) {
	if !f.Detected {
		return NoHand, 0
	}
	clamped := 0
	for i := range f.Landmarks {
		lm := &f.Landmarks[i]
		for _, v := range [...]*float64{&lm.X, &lm.Y} {
			if math.IsNaN(*v) || math.IsInf(*v, 0) {
				return NoHand, 0
			}
			if c := clamp01(*v); c != *v {
				*v = c
				clamped++
			}
		}
	}
	return f, clamped
}

// Classifier turns hand frames into gesture snapshots on a State. It is
// the only writer of the gesture snapshot.
type Classifier struct {
	Config ClassifierConfig
	state  *State

	// clamped counts coordinates clamped by the last Observe.
	clamped int
}

// NewClassifier returns a classifier writing to s with default thresholds.
func NewClassifier(s *State) *Classifier {
	return &Classifier{Config: DefaultClassifierConfig(), state: s}
}

// Observe classifies one frame, publishes the result and returns it.
func (c *Classifier) Observe(f HandFrame) GestureState {
	f, c.clamped = sanitize(f)
	if !f.Detected {
		g := GestureState{Mode: DefaultMode}
		c.state.publish(g)
		return g
	}
	pinch, open := Features(&f)
	ref := f.Landmarks[LandmarkMiddleMCP]
	g := GestureState{
		Mode: c.Config.Classify(pinch, open, c.state.Mode()),
		Hand: Hand{
			Detected: true,
			X:        clampUnit(ref.X*2 - 1),
			Y:        clampUnit(ref.Y*2 - 1),
		},
	}
	c.state.publish(g)
	return g
}
