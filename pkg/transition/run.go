package transition

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/observability"
)

// PhaseStart, PhaseHalfway and PhaseComplete are the phases reported to the
// transition hooks.
const (
	PhaseStart    = "start"
	PhaseHalfway  = "halfway"
	PhaseComplete = "complete"
)

type keyframe struct {
	frame     geom.Rect
	transform geom.Transform3D
	alpha     float64
}

// track animates one clone between two keyframes inside the progress window
// [start, end].
type track struct {
	clone      *Clone
	from, to   keyframe
	start, end float64
}

func (t track) apply(p float64, ease Easing) {
	local := geom.Clamp((p-t.start)/(t.end-t.start), 0, 1)
	switch e := ease(local); {
	case e <= 0:
		t.clone.Frame, t.clone.Transform, t.clone.Alpha = t.from.frame, t.from.transform, t.from.alpha
	case e >= 1:
		t.clone.Frame, t.clone.Transform, t.clone.Alpha = t.to.frame, t.to.transform, t.to.alpha
	default:
		t.clone.Frame = t.from.frame.Lerp(t.to.frame, e)
		t.clone.Transform = t.from.transform.Lerp(t.to.transform, e)
		t.clone.Alpha = geom.Lerp(t.from.alpha, t.to.alpha, e)
	}
}

// Run is one transition in flight. Drive it with Step from a display clock,
// with Drive from a ticker, or jump to the end with Finish.
type Run struct {
	ID string

	ctx      context.Context
	overlay  *Overlay
	coll     PerspectiveCollection
	host     Host
	tracks   []track
	content  [2]float64
	duration time.Duration
	easing   Easing
	reversed bool

	mu       sync.Mutex
	begun    time.Time
	progress float64
	halfway  bool
	done     bool
	finished bool
}

// Overlay returns the overlay the run animates.
func (r *Run) Overlay() *Overlay { return r.overlay }

// Progress returns the linear progress in [0, 1].
func (r *Run) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Done reports whether the run has completed, and whether it finished.
func (r *Run) Done() (done, finished bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done, r.finished
}

// Step advances the run to now. The first call fixes the start time. It
// returns false once the run has completed.
func (r *Run) Step(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return false
	}
	if r.begun.IsZero() {
		r.begun = now
	}
	p := geom.Clamp(float64(now.Sub(r.begun))/float64(r.duration), 0, 1)
	r.apply(p)
	if p >= 1 {
		r.complete(true)
	}
	return !r.done
}

// Finish jumps to the end state and completes the run.
func (r *Run) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.apply(1)
	r.complete(true)
}

// Cancel completes the run where it stands, reporting finished = false.
func (r *Run) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complete(false)
}

// Drive steps the run on every tick until it completes or ctx is done. A
// cancelled context cancels the run.
func (r *Run) Drive(ctx context.Context, tick time.Duration) error {
	t := time.NewTicker(tick)
	defer t.Stop()
	r.Step(time.Now())
	for {
		if done, _ := r.Done(); done {
			return nil
		}
		select {
		case <-ctx.Done():
			r.Cancel()
			return ctx.Err()
		case now := <-t.C:
			r.Step(now)
		}
	}
}

// Frame returns a copy of the overlay state at the current progress.
func (r *Run) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := Frame{
		Progress:      r.progress,
		ClipsToBounds: r.overlay.ClipsToBounds,
		ContentAlpha:  r.overlay.ContentAlpha,
		Clones:        make([]Clone, len(r.overlay.Clones)),
	}
	for i, c := range r.overlay.Clones {
		f.Clones[i] = *c
	}
	return f
}

func (r *Run) apply(p float64) {
	r.progress = p
	for _, t := range r.tracks {
		t.apply(p, r.easing)
	}
	r.overlay.ContentAlpha = geom.Lerp(r.content[0], r.content[1], r.easing(p))

	// The overlay clips while the stack is on screen.
	if p >= 0.5 {
		r.overlay.ClipsToBounds = r.reversed
		if !r.halfway {
			r.halfway = true
			observability.Transition().OnTransitionPhase(r.ctx, r.ID, PhaseHalfway)
		}
	} else {
		r.overlay.ClipsToBounds = !r.reversed
	}
}

func (r *Run) complete(finished bool) {
	if r.done {
		return
	}
	r.done, r.finished = true, finished
	if !r.reversed {
		r.overlay.ContentAlpha = 1
	}
	r.coll.SetAlpha(1)
	r.host.RemoveOverlay(r.overlay)
	r.host.CompleteTransition(finished)

	var elapsed time.Duration
	if !r.begun.IsZero() {
		elapsed = time.Since(r.begun)
	}
	observability.Transition().OnTransitionPhase(r.ctx, r.ID, PhaseComplete)
	observability.Transition().OnTransitionComplete(r.ctx, r.ID, finished, elapsed)
}
