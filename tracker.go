package treemorph

import (
	"context"
	"sync"
	"sync/atomic"
)

// HandFeed carries detector frames to a Tracker. It holds at most one
// frame; publishing replaces an unread frame instead of blocking, so the
// tracker always sees the latest detection.
type HandFeed struct {
	ch   chan HandFrame
	done chan struct{}
	once sync.Once
	mu   sync.Mutex
}

// NewHandFeed returns an open feed.
func NewHandFeed() *HandFeed {
	return &HandFeed{
		ch:   make(chan HandFrame, 1),
		done: make(chan struct{}),
	}
}

// Publish offers f to the tracker, dropping any unread frame. It never
// blocks and is a no-op after Close.
func (h *HandFeed) Publish(f HandFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case <-h.ch:
	default:
	}
	h.ch <- f
}

// Close marks the feed as ended, e.g. when the camera stream stops.
func (h *HandFeed) Close() {
	h.once.Do(func() { close(h.done) })
}

// Tracker runs a Classifier on its own goroutine, decoupled from the
// render frame rate.
type Tracker struct {
	classifier *Classifier
	clamped    atomic.Int64
	debug      *atomic.Bool // nil: never warn
}

// NewTracker returns a tracker classifying into s.
func NewTracker(s *State) *Tracker {
	return &Tracker{classifier: NewClassifier(s)}
}

// Classifier returns the tracker's classifier for threshold tuning before Run.
func (t *Tracker) Classifier() *Classifier {
	return t.classifier
}

// Clamped returns the total number of landmark coordinates clamped to the
// frame so far. Safe to call while Run is active.
func (t *Tracker) Clamped() int64 {
	return t.clamped.Load()
}

// Run classifies frames from feed until ctx is done or the feed is closed.
// Either way a NoHand frame is classified last so the mode returns to
// DefaultMode. Returns ctx.Err() on cancellation and nil on feed close.
func (t *Tracker) Run(ctx context.Context, feed *HandFeed) error {
	defer t.classifier.Observe(NoHand)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-feed.done:
			return nil
		case f := <-feed.ch:
			t.observe(f)
		}
	}
}

func (t *Tracker) observe(f HandFrame) {
	t.classifier.Observe(f)
	n := t.classifier.clamped
	if n == 0 {
		return
	}
	t.clamped.Add(int64(n))
	if t.debug != nil && t.debug.Load() {
		warnf("tracker: clamped %d landmark coordinates", n)
	}
}
