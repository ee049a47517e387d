package treemorph

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 2s")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHandFeedLatestWins(t *testing.T) {
	feed := NewHandFeed()
	feed.Publish(FistFrame(0.5, 0.5))
	feed.Publish(PinchFrame(0.5, 0.5)) // must not block

	select {
	case f := <-feed.ch:
		pinch, _ := Features(&f)
		if pinch > 0.05 {
			t.Errorf("got stale frame with pinch %v", pinch)
		}
	default:
		t.Fatal("feed empty after Publish")
	}
	select {
	case <-feed.ch:
		t.Error("feed held more than one frame")
	default:
	}
}

func TestHandFeedPublishAfterClose(t *testing.T) {
	feed := NewHandFeed()
	feed.Close()
	feed.Close() // idempotent
	feed.Publish(FistFrame(0.5, 0.5))
	if len(feed.ch) != 0 {
		t.Error("Publish after Close queued a frame")
	}
}

func TestTrackerClassifiesFrames(t *testing.T) {
	st := NewState()
	tr := NewTracker(st)
	feed := NewHandFeed()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- tr.Run(ctx, feed) }()

	feed.Publish(PinchFrame(0.5, 0.5))
	waitFor(t, func() bool { return st.Mode() == ModeHeart })

	feed.Publish(OpenPalmFrame(0.5, 0.5))
	waitFor(t, func() bool { return st.Mode() == ModeScatter })

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	if st.Mode() != ModeTree || st.Hand().Detected {
		t.Errorf("after cancel: mode %v hand %+v, want TREE without hand", st.Mode(), st.Hand())
	}
}

func TestTrackerFeedCloseIsSignalLoss(t *testing.T) {
	st := NewState()
	tr := NewTracker(st)
	feed := NewHandFeed()

	errc := make(chan error, 1)
	go func() { errc <- tr.Run(context.Background(), feed) }()

	feed.Publish(OpenPalmFrame(0.5, 0.5))
	waitFor(t, func() bool { return st.Mode() == ModeScatter })

	feed.Close()
	if err := <-errc; err != nil {
		t.Errorf("Run = %v, want nil on feed close", err)
	}
	if st.Mode() != ModeTree {
		t.Errorf("mode = %v, want TREE", st.Mode())
	}
}

func TestTrackerCountsClampedCoordinates(t *testing.T) {
	st := NewState()
	tr := NewTracker(st)
	feed := NewHandFeed()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- tr.Run(ctx, feed) }()

	feed.Publish(OpenPalmFrame(0.5, 0.5))
	waitFor(t, func() bool { return st.Mode() == ModeScatter })
	if n := tr.Clamped(); n != 0 {
		t.Errorf("Clamped = %d for an in-frame hand, want 0", n)
	}

	// Fingertips past the right frame edge.
	feed.Publish(SyntheticHand(0.95, 0.5, 0.45, 0.1))
	waitFor(t, func() bool { return tr.Clamped() > 0 })

	cancel()
	<-errc
}

func TestSceneTrackerWarnsInDebugMode(t *testing.T) {
	s := smallScene(t)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	tr := s.NewTracker()
	feed := NewHandFeed()

	output := captureStderr(t, func() {
		errc := make(chan error, 1)
		go func() { errc <- tr.Run(context.Background(), feed) }()
		feed.Publish(SyntheticHand(0.95, 0.5, 0.45, 0.1))
		waitFor(t, func() bool { return tr.Clamped() > 0 })
		feed.Close()
		<-errc
	})

	if !strings.Contains(output, "warning: tracker: clamped") {
		t.Errorf("expected tracker clamp warning in stderr, got: %q", output)
	}
}
