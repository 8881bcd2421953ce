package layout

import (
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/observability"
)

// Scroll deceleration rates a host should apply while a layout snaps.
const (
	DecelerationNormal = 0.998
	DecelerationFast   = 0.99
)

// Item pairs an item index with its frame in content coordinates.
type Item struct {
	Index int
	Frame geom.Rect
}

// outer is the part of a layout that a wrapping layout may refine. A
// SnapToCenter consults it instead of its own methods so that snapping and
// focus tracking see the wrapper's geometry.
type outer interface {
	Items(rect geom.Rect) []Item
	ContentSize() geom.Size
	Invalidate(scope Scope)
}

// SnapToCenter lays out fixed-size items in a single row and settles
// scrolling so that an item ends up centered in the viewport.
//
// The side insets are computed in Prepare: with CenterFirstItem set, they
// are wide enough for the first and last items to reach the center.
type SnapToCenter struct {
	coll   Collection
	cfg    Config
	cache  geometryCache
	focus  FocusState
	outer  outer
	logger *log.Logger
	name   string

	focusDelegate FocusChangeDelegate

	insetLeft  float64
	insetRight float64
}

// NewSnapToCenter creates a snap-to-center layout for c.
func NewSnapToCenter(c Collection, opts ...Option) *SnapToCenter {
	return newSnapToCenter(c, buildOptions("snap", opts))
}

func newSnapToCenter(c Collection, o options) *SnapToCenter {
	s := &SnapToCenter{
		coll:          c,
		cfg:           o.config,
		cache:         newGeometryCache(),
		logger:        o.logger,
		name:          o.name,
		focusDelegate: o.focus,
		insetLeft:     o.config.MinInsetLeft,
		insetRight:    o.config.MinInsetRight,
	}
	s.outer = s
	s.focus.onChange = func(from, to int) {
		observability.Layout().OnFocusChange(s.name, from, to)
	}
	return s
}

// Config returns the layout configuration.
func (s *SnapToCenter) Config() Config { return s.cfg }

// SetConfig replaces the configuration and invalidates everything.
func (s *SnapToCenter) SetConfig(c Config) {
	s.cfg = c
	s.outer.Invalidate(InvalidateEverything())
}

// Collection returns the collection the layout serves.
func (s *SnapToCenter) Collection() Collection { return s.coll }

// Insets returns the side insets computed by the last Prepare.
func (s *SnapToCenter) Insets() (left, right float64) { return s.insetLeft, s.insetRight }

// FocusedIndex returns the index of the item in focus.
func (s *SnapToCenter) FocusedIndex() int { return s.focus.Current() }

// DecelerationRate returns the deceleration rate the host should use.
func (s *SnapToCenter) DecelerationRate() float64 { return DecelerationFast }

// ContentSize returns the scrollable extent of the row.
func (s *SnapToCenter) ContentSize() geom.Size {
	n := s.cache.itemCount(s.coll)
	header, footer := s.cache.bands(s.coll, s.cfg)
	w := s.insetLeft + s.insetRight - s.cfg.Spacing + s.cfg.pageWidth()*float64(n)
	h := header + s.cfg.InsetTop + s.cfg.InsetBottom + s.cfg.ItemSize.Height + footer
	return geom.Sz(w, h)
}

// FrameForItem returns the frame of the item at index. It performs no range
// check.
func (s *SnapToCenter) FrameForItem(index int) geom.Rect {
	header, _ := s.cache.bands(s.coll, s.cfg)
	x := s.insetLeft + s.cfg.pageWidth()*float64(index)
	y := header + s.cfg.InsetTop
	return geom.Rect{Origin: geom.Pt(x, y), Size: s.cfg.ItemSize}
}

// Items returns the items whose slot intersects rect, in index order.
func (s *SnapToCenter) Items(rect geom.Rect) []Item {
	n := s.cache.itemCount(s.coll)
	page := s.cfg.pageWidth()
	if n == 0 || page <= 0 {
		return nil
	}
	first := max(int(math.Floor((rect.MinX()-s.insetLeft)/page)), 0)
	last := min(int(math.Floor((rect.MaxX()-s.insetLeft)/page)), n-1)
	if first > last {
		return nil
	}
	items := make([]Item, 0, last-first+1)
	for i := first; i <= last; i++ {
		items = append(items, Item{Index: i, Frame: s.FrameForItem(i)})
	}
	return items
}

// Prepare computes the side insets and, after a structural invalidation,
// scrolls the focused item back to the center.
func (s *SnapToCenter) Prepare() {
	start := time.Now()
	b := s.coll.Bounds()

	s.insetLeft, s.insetRight = s.cfg.MinInsetLeft, s.cfg.MinInsetRight
	if s.cfg.CenterFirstItem {
		s.insetLeft = max(s.cfg.MinInsetLeft, b.Width()/2-s.cfg.ItemSize.Width/2)
		s.insetRight = max(s.cfg.MinInsetRight, s.insetLeft)
	}
	n := s.cache.itemCount(s.coll)

	if s.cache.resetOffset {
		s.cache.resetOffset = false
		s.recenter(b)
	}
	observability.Layout().OnPrepare(s.name, n, time.Since(start))
}

// recenter moves the content offset so the focused item is centered. An
// offset resting at either end of the range is left alone unless
// CenterFirstItem is set.
func (s *SnapToCenter) recenter(b geom.Rect) {
	setter, ok := s.coll.(OffsetSetter)
	if !ok {
		return
	}
	end := s.outer.ContentSize().Width - b.Width()
	if !s.cfg.CenterFirstItem && (b.MinX() <= 0 || b.MinX() >= end) {
		return
	}
	x := s.FrameForItem(s.focus.Current()).MidX() - b.Width()/2
	s.debug("recentering focused item", "index", s.focus.Current(), "offset", x)
	setter.SetContentOffset(geom.Pt(x, b.MinY()))
}

// AttributesForElements returns the attributes of every item intersecting
// rect followed by the header and footer bands.
func (s *SnapToCenter) AttributesForElements(rect geom.Rect) []Attributes {
	items := s.Items(rect)
	if s.cache.itemCount(s.coll) == 0 {
		return nil
	}
	attrs := make([]Attributes, 0, len(items)+2)
	for _, it := range items {
		attrs = append(attrs, NewAttributes(it.Index, it.Frame))
	}
	return append(attrs, s.bandAttributes()...)
}

// AttributesForItem returns the attributes of the item at index.
func (s *SnapToCenter) AttributesForItem(index int) (Attributes, bool) {
	if index < 0 || index >= s.cache.itemCount(s.coll) {
		return Attributes{}, false
	}
	return NewAttributes(index, s.FrameForItem(index)), true
}

// AttributesForSupplementary returns the header or footer band. It reports
// false when the band has zero height.
func (s *SnapToCenter) AttributesForSupplementary(kind Kind) (Attributes, bool) {
	b := s.coll.Bounds()
	header, footer := s.cache.bands(s.coll, s.cfg)
	switch {
	case kind == KindHeader && header != 0:
		a := supplementary(kind, geom.R(b.MinX(), 0, b.Width(), header))
		s.cache.header = &a
		return a, true
	case kind == KindFooter && footer != 0:
		y := s.outer.ContentSize().Height - footer
		a := supplementary(kind, geom.R(b.MinX(), y, b.Width(), footer))
		s.cache.footer = &a
		return a, true
	}
	return Attributes{}, false
}

// bandAttributes returns the cached header and footer realigned to the live
// content offset.
func (s *SnapToCenter) bandAttributes() []Attributes {
	x := s.coll.Bounds().MinX()
	slots := []struct {
		kind   Kind
		cached **Attributes
	}{
		{KindHeader, &s.cache.header},
		{KindFooter, &s.cache.footer},
	}

	var out []Attributes
	for _, slot := range slots {
		if *slot.cached == nil {
			if _, ok := s.AttributesForSupplementary(slot.kind); !ok {
				continue
			}
		}
		(*slot.cached).Frame.Origin.X = x
		out = append(out, **slot.cached)
	}
	return out
}

// centerItem returns the item in rect whose center is closest to the
// center of rect.
func (s *SnapToCenter) centerItem(rect geom.Rect) (Item, bool) {
	var (
		best  Item
		found bool
	)
	mid := rect.MidX()
	for _, it := range s.outer.Items(rect) {
		if !found || math.Abs(it.Frame.MidX()-mid) < math.Abs(best.Frame.MidX()-mid) {
			best, found = it, true
		}
	}
	return best, found
}

// TargetOffset returns where scrolling should stop so that the item closest
// to the proposed center ends up centered. A fling whose velocity points
// past that item moves one page further.
func (s *SnapToCenter) TargetOffset(proposed, velocity geom.Point) geom.Point {
	b := s.coll.Bounds()
	candidate, ok := s.centerItem(geom.R(proposed.X, 0, b.Width(), b.Height()))
	if !ok {
		return proposed
	}

	x := candidate.Frame.MidX() - b.Width()/2
	if d := x - b.MinX(); (velocity.X < 0 && d > 0) || (velocity.X > 0 && d < 0) {
		if velocity.X > 0 {
			x += s.cfg.pageWidth()
		} else {
			x -= s.cfg.pageWidth()
		}
	}

	x = max(x, 0)
	x = min(x, s.outer.ContentSize().Width-b.Width())
	return geom.Pt(x, proposed.Y)
}

// updateFocus moves focus to the item closest to the center of rect.
func (s *SnapToCenter) updateFocus(rect geom.Rect) {
	if it, ok := s.centerItem(rect); ok {
		s.focus.Set(it.Index, s.focusChangeDelegate())
	}
}

func (s *SnapToCenter) focusChangeDelegate() FocusChangeDelegate {
	if s.focusDelegate != nil {
		return s.focusDelegate
	}
	d, _ := s.coll.Delegate().(FocusChangeDelegate)
	return d
}

// SetFocusDelegate sets the delegate notified of focus changes.
func (s *SnapToCenter) SetFocusDelegate(d FocusChangeDelegate) { s.focusDelegate = d }

// TransitionFrom adopts the focus of the layout being replaced. Without a
// focus-tracking predecessor, the middle visible item gets focus.
func (s *SnapToCenter) TransitionFrom(prior any) {
	if ft, ok := prior.(FocusTracker); ok {
		s.focus.Set(ft.FocusedIndex(), s.focusChangeDelegate())
	} else {
		vi, ok := s.coll.(VisibleIndexer)
		if !ok {
			return
		}
		visible := slices.Clone(vi.VisibleItems())
		if len(visible) == 0 {
			return
		}
		slices.Sort(visible)
		s.focus.Set(visible[len(visible)/2], s.focusChangeDelegate())
	}
	s.outer.Invalidate(InvalidateEverything())
}

// InvalidationScopeForBounds returns the scope for a move to newBounds. The
// size delta is measured against the size seen at the last structural
// invalidation.
func (s *SnapToCenter) InvalidationScopeForBounds(newBounds geom.Rect) Scope {
	return InvalidateBounds(newBounds.Size.Sub(s.cache.collectionSize))
}

// Invalidate drops the cached geometry when scope is structural.
func (s *SnapToCenter) Invalidate(scope Scope) {
	structural := s.cache.invalidate(scope, s.coll.Bounds().Size)
	if structural {
		s.debug("invalidated layout cache", "everything", scope.Everything,
			"counts", scope.DataSourceCounts, "delta", scope.BoundsDelta)
	}
	observability.Layout().OnInvalidate(s.name, structural)
}

// ShouldInvalidate updates focus when newBounds only scrolls the viewport.
// A resize keeps the current focus so the same item stays centered, and so
// does a pending recenter: the insets are stale until the next Prepare. It
// always returns true.
func (s *SnapToCenter) ShouldInvalidate(newBounds geom.Rect) bool {
	if !s.cache.resetOffset && s.cache.collectionSize == newBounds.Size {
		s.updateFocus(newBounds)
	}
	return true
}

func (s *SnapToCenter) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

var (
	_ Layout       = (*SnapToCenter)(nil)
	_ FocusTracker = (*SnapToCenter)(nil)
)
