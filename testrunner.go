package treemorph

import (
	"encoding/json"
	"fmt"
)

// gestureStep represents a single action in a gesture script.
type gestureStep struct {
	Action string   `json:"action"`
	Label  string   `json:"label,omitempty"`
	Theme  string   `json:"theme,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []gestureStep `json:"steps"`
}

// GestureRunner sequences injected hand frames, theme switches and
// screenshots across frames for automated runs. Attach to a Scene via
// SetGestureRunner.
//
// Hand actions ("pinch", "open", "fist") take a palm position in
// normalized coordinates (an omitted x or y is 0.5) and hold the gesture for
// Frames frames (default 1). "none" drops the hand, "wait" idles, "theme"
// switches themes and "screenshot" queues a capture.
type GestureRunner struct {
	steps     []gestureStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script and returns a runner
// ready to be attached to a Scene via SetGestureRunner.
func LoadGestureScript(jsonData []byte) (*GestureRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "pinch", "open", "fist", "none", "wait", "theme", "screenshot":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &GestureRunner{steps: script.Steps}, nil
}

// SetGestureRunner attaches a runner to the scene. The runner's step method
// is called from Scene.Step before injected frames are processed.
func (s *Scene) SetGestureRunner(runner *GestureRunner) {
	s.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *GestureRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.Step.
func (r *GestureRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	x, y := 0.5, 0.5
	if st.X != nil {
		x = *st.X
	}
	if st.Y != nil {
		y = *st.Y
	}
	frames := st.Frames
	if frames < 1 {
		frames = 1
	}

	switch st.Action {
	case "pinch":
		s.InjectHold(PinchFrame(x, y), frames)
	case "open":
		s.InjectHold(OpenPalmFrame(x, y), frames)
	case "fist":
		s.InjectHold(FistFrame(x, y), frames)
	case "none":
		s.InjectHold(NoHand, frames)
	case "wait":
		r.waitCount = frames - 1 // this frame counts as one
	case "theme":
		if err := s.SetTheme(st.Theme); err != nil {
			s.debugWarnf("gesture script: %v", err)
		}
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
