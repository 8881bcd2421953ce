package stack

import (
	"math"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/observability"
)

// DeletionDelegate decides which cards may be deleted and learns about
// committed deletions.
type DeletionDelegate interface {
	// CanDelete reports whether the card at index may be swiped away.
	CanDelete(index int) bool

	// DidDelete is called when a swipe commits. The host removes the item
	// from its data source and invalidates the counts.
	DidDelete(index int)
}

// State is a state of the pan-to-delete gesture.
type State int

const (
	Idle State = iota
	Panning
	Committing
	Cancelling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case Committing:
		return "committing"
	case Cancelling:
		return "cancelling"
	}
	return "unknown"
}

// Phase is the phase of a gesture sample.
type Phase int

const (
	Began Phase = iota
	Changed
	Ended
	Cancelled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Changed:
		return "changed"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// GestureSample is one event of a pan gesture.
type GestureSample struct {
	Phase Phase

	// Location is the touch position in content coordinates.
	Location geom.Point

	// Translation is the movement since the previous sample.
	Translation geom.Point

	// Velocity is in points per second.
	Velocity geom.Point
}

// Transition is an edge of the deletion state machine.
type Transition struct {
	From  State
	To    State
	Event string
}

// Transitions returns every edge of the deletion state machine.
func Transitions() []Transition {
	return []Transition{
		{Idle, Panning, "began on deletable card, horizontal"},
		{Idle, Idle, "began, vertical or not deletable"},
		{Panning, Panning, "changed"},
		{Panning, Committing, "ended past half width or fast"},
		{Panning, Cancelling, "ended short"},
		{Panning, Cancelling, "cancelled / failed"},
		{Cancelling, Idle, "offsets cleared"},
		{Committing, Idle, "item removed"},
	}
}

// State returns the current gesture state.
func (s *Stack) State() State { return s.state }

// DeletingIndex returns the card being swiped, if any.
func (s *Stack) DeletingIndex() (int, bool) {
	if s.state == Panning || s.state == Committing {
		return s.deleting, true
	}
	return 0, false
}

// DeletionOffset returns the accumulated horizontal offset of the card at
// index.
func (s *Stack) DeletionOffset(index int) float64 { return s.offsets[index] }

// HandlePan feeds one gesture sample into the deletion state machine and
// returns the resulting state. Samples that do not apply to the current
// state are ignored.
func (s *Stack) HandlePan(g GestureSample) State {
	switch g.Phase {
	case Began:
		s.begin(g)
	case Changed:
		if s.state == Panning {
			s.moveTo(Panning, "changed")
			if g.Translation.X != 0 {
				s.Invalidate(layout.InvalidateDeletion(s.deleting, g.Translation.X))
			}
		}
	case Ended:
		if s.state == Panning {
			s.end(g)
		}
	case Cancelled, Failed:
		if s.state == Panning {
			s.cancel("cancelled / failed")
		}
	}
	return s.state
}

func (s *Stack) begin(g GestureSample) {
	if s.state != Idle {
		return
	}
	if math.Abs(g.Velocity.X) <= math.Abs(g.Velocity.Y) {
		s.debug("pan rejected: vertical", "velocity", g.Velocity)
		s.moveTo(Idle, "began, vertical or not deletable")
		return
	}
	index, ok := s.itemAt(g.Location)
	if !ok {
		return
	}
	d := s.deletionDelegate()
	if d == nil || !d.CanDelete(index) {
		s.debug("pan rejected: not deletable", "index", index)
		s.moveTo(Idle, "began, vertical or not deletable")
		return
	}
	s.deleting, s.removed = index, false
	s.moveTo(Panning, "began on deletable card, horizontal")
	if g.Translation.X != 0 {
		s.Invalidate(layout.InvalidateDeletion(index, g.Translation.X))
	}
}

func (s *Stack) end(g GestureSample) {
	index := s.deleting
	width := s.frameForItem(index).Width()
	offset := s.offsets[index]
	if offset < -width/2 || -g.Velocity.X > s.cfg.DeleteVelocity {
		s.removed = true
		s.moveTo(Committing, "ended past half width or fast")
		s.debug("deletion committed", "index", index, "offset", offset, "velocity", g.Velocity.X)
		observability.Layout().OnDeletion(s.name, index, true)
		if d := s.deletionDelegate(); d != nil {
			d.DidDelete(index)
		}
		return
	}
	s.cancel("ended short")
}

func (s *Stack) cancel(event string) {
	index := s.deleting
	s.moveTo(Cancelling, event)
	s.debug("deletion cancelled", "index", index, "offset", s.offsets[index])
	observability.Layout().OnDeletion(s.name, index, false)
	clear(s.offsets)
	s.Invalidate(layout.Scope{})
	s.moveTo(Idle, "offsets cleared")
}

// moveTo records a state change and reports it to the observer.
func (s *Stack) moveTo(to State, event string) {
	t := Transition{From: s.state, To: to, Event: event}
	s.state = to
	if s.observer != nil {
		s.observer(t)
	}
}

// AttributesForDisappearingItem returns the final attributes of a card
// leaving the stack. The card whose deletion was committed slides off the
// leading edge and fades out; other cards keep their geometry.
func (s *Stack) AttributesForDisappearingItem(index int) layout.Attributes {
	a := s.attributes(index)
	if s.removed && index == s.deleting {
		a.Frame.Origin.X = s.coll.Bounds().MinX() - a.Frame.Width()
		a.Alpha = 0
	}
	return a
}

func (s *Stack) deletionDelegate() DeletionDelegate {
	if s.deletion != nil {
		return s.deletion
	}
	d, _ := s.coll.Delegate().(DeletionDelegate)
	return d
}
