package stack

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/observability"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

// Stack lays out a single section of cards as a vertical, tilted stack.
type Stack struct {
	coll     layout.Collection
	cfg      Config
	deletion DeletionDelegate
	logger   *log.Logger
	name     string
	observer func(Transition)

	count    int
	hasCount bool
	tallest  float64
	size     geom.Size

	state    State
	deleting int
	removed  bool
	offsets  map[int]float64
}

// New creates a stack layout for c.
func New(c layout.Collection, opts ...Option) *Stack {
	s := &Stack{
		coll:    c,
		cfg:     DefaultConfig(),
		name:    "stack",
		offsets: make(map[int]float64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithObserver registers a function called on every state machine edge.
func WithObserver(fn func(Transition)) Option { return func(s *Stack) { s.observer = fn } }

// Config returns the layout configuration.
func (s *Stack) Config() Config { return s.cfg }

// SetConfig replaces the configuration and invalidates everything.
func (s *Stack) SetConfig(c Config) {
	s.cfg = c
	s.Invalidate(layout.InvalidateEverything())
}

func (s *Stack) itemCount() int {
	if !s.hasCount {
		layout.MustSingleSection(s.coll)
		s.count = 0
		if s.coll.NumberOfSections() > 0 {
			s.count = s.coll.NumberOfItems(0)
		}
		s.tallest = s.cfg.ItemSize.Height
		if d, ok := s.coll.Delegate().(layout.ItemSizer); ok {
			s.tallest = 0
			for i := range s.count {
				s.tallest = max(s.tallest, d.SizeForItem(i).Height)
			}
		}
		s.hasCount = true
	}
	return s.count
}

// Spacing returns the distance between consecutive cards. Stacks too short
// to fill the viewport spread out up to MaxSpacing.
func (s *Stack) Spacing() float64 {
	lo := s.cfg.MinSpacing
	hi := max(s.cfg.MaxSpacing, lo)
	n := s.itemCount()
	if n < 2 || hi == lo {
		return lo
	}
	avail := s.coll.Bounds().Height() - s.cfg.InsetTop - s.cfg.InsetBottom - s.cfg.ItemSize.Height
	return geom.Clamp(avail/float64(n-1), lo, hi)
}

func (s *Stack) itemSize(index int) geom.Size {
	if d, ok := s.coll.Delegate().(layout.ItemSizer); ok {
		return d.SizeForItem(index)
	}
	return s.cfg.ItemSize
}

// frameForItem returns the untransformed frame of the card at index,
// including its deletion offset.
func (s *Stack) frameForItem(index int) geom.Rect {
	y := s.cfg.InsetTop + s.Spacing()*float64(index)
	return geom.Rect{Origin: geom.Pt(s.offsets[index], y), Size: s.itemSize(index)}
}

// FrameForItem returns the untransformed frame of the card at index.
func (s *Stack) FrameForItem(index int) geom.Rect { return s.frameForItem(index) }

// ContentSize spans the viewport width and reaches past the last card by the
// bottom inset.
func (s *Stack) ContentSize() geom.Size {
	n := s.itemCount()
	if n == 0 {
		return geom.Size{}
	}
	b := s.coll.Bounds()
	last := s.frameForItem(n - 1)
	return geom.Sz(b.Width(), last.MaxY()+s.cfg.InsetBottom)
}

// Prepare queries the item count when it is not cached.
func (s *Stack) Prepare() {
	start := time.Now()
	n := s.itemCount()
	observability.Layout().OnPrepare(s.name, n, time.Since(start))
}

// Angle returns the tilt of a card whose top edge is at y in content
// coordinates. The result is negative: cards lean away from the viewer.
func (s *Stack) Angle(y float64) float64 {
	b := s.coll.Bounds()
	return -tilt(s.itemCount(), s.cfg.MaxAngle, y-b.MinY(), b.Height())
}

// TransformForItem returns the transform of a card of the given size tilted
// by angle. It is the single source of the stack's tilt geometry and is
// shared with the transition animator.
func (s *Stack) TransformForItem(origin geom.Point, size geom.Size, angle float64) geom.Transform3D {
	return TransformForItem(s.cfg, origin, size, angle)
}

func (s *Stack) attributes(index int) layout.Attributes {
	f := s.frameForItem(index)
	a := layout.NewAttributes(index, f)
	a.ZIndex = index
	a.Transform = s.TransformForItem(f.Origin, f.Size, s.Angle(f.MinY()))
	if off := s.offsets[index]; off != 0 {
		a.DeletionOffset = off
		a.Alpha = geom.Clamp(1-math.Abs(off)/f.Width(), 0, 1)
	}
	return a
}

// visibleRange returns the cards whose untransformed frame may intersect
// rect. The lookback above rect covers the tallest card.
func (s *Stack) visibleRange(rect geom.Rect) (first, last int) {
	n := s.itemCount()
	sp := s.Spacing()
	first = max(int(math.Floor((rect.MinY()-s.cfg.InsetTop-s.tallest)/sp)), 0)
	last = min(int(math.Floor((rect.MaxY()-s.cfg.InsetTop)/sp)), n-1)
	return first, last
}

// AttributesForElements returns the cards intersecting rect in index order.
func (s *Stack) AttributesForElements(rect geom.Rect) []layout.Attributes {
	if s.itemCount() == 0 {
		return nil
	}
	first, last := s.visibleRange(rect)
	var attrs []layout.Attributes
	for i := first; i <= last; i++ {
		a := s.attributes(i)
		if a.Frame.Offset(-a.DeletionOffset, 0).Intersects(rect) {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// AttributesForItem returns the attributes of the card at index.
func (s *Stack) AttributesForItem(index int) (layout.Attributes, bool) {
	if index < 0 || index >= s.itemCount() {
		return layout.Attributes{}, false
	}
	return s.attributes(index), true
}

// itemAt returns the topmost card containing p.
func (s *Stack) itemAt(p geom.Point) (int, bool) {
	first, last := s.visibleRange(geom.R(p.X, p.Y, 0, 0))
	for i := last; i >= first; i-- {
		if s.frameForItem(i).Contains(p) {
			return i, true
		}
	}
	return 0, false
}

// TargetOffset returns the proposal unchanged: the stack scrolls freely.
func (s *Stack) TargetOffset(proposed, _ geom.Point) geom.Point { return proposed }

// InvalidationScopeForBounds measures the size change since the last
// structural invalidation.
func (s *Stack) InvalidationScopeForBounds(newBounds geom.Rect) layout.Scope {
	return layout.InvalidateBounds(newBounds.Size.Sub(s.size))
}

// ShouldInvalidate always returns true: tilt depends on the scroll offset.
func (s *Stack) ShouldInvalidate(geom.Rect) bool { return true }

// Invalidate applies scope. A deletion scope accumulates its delta into the
// card's offset. A structural scope drops the cached count and completes a
// committed deletion.
func (s *Stack) Invalidate(scope layout.Scope) {
	if scope.Deleting {
		s.offsets[scope.DeletionIndex] += scope.DeletionDelta
	}
	structural := scope.Structural()
	if structural {
		s.hasCount = false
		s.size = s.coll.Bounds().Size
		if s.state == Committing {
			clear(s.offsets)
			s.moveTo(Idle, "item removed")
		}
	}
	observability.Layout().OnInvalidate(s.name, structural)
}

// Animator returns a transition animator presenting the card at index. The
// animator shares the stack's transform function.
func (s *Stack) Animator(index int, opts ...transition.Option) *transition.Animator {
	return transition.New(index, s.TransformForItem, opts...)
}

func (s *Stack) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

var _ layout.Layout = (*Stack)(nil)
