package layout

import (
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// Infinite is a [SnapToCenter] whose row repeats in both directions. Items
// are not duplicated: attributes are computed per [Cycle] from the scroll
// position.
//
// Cyclic scrolling activates only when one cycle is wider than the viewport
// times Config.InfiniteThreshold, so an item never appears twice on screen.
// Otherwise the layout behaves exactly like SnapToCenter, and with
// Config.SnapToCenter unset it falls back to the minimum side insets.
type Infinite struct {
	*SnapToCenter

	cycle    Cycle
	hasCycle bool
}

// NewInfinite creates an infinite layout for c.
func NewInfinite(c Collection, opts ...Option) *Infinite {
	return newInfinite(c, buildOptions("infinite", opts))
}

func newInfinite(c Collection, o options) *Infinite {
	inf := &Infinite{SnapToCenter: newSnapToCenter(c, o)}
	inf.outer = inf
	return inf
}

// Cycle returns the current cycle mapping and whether it has been computed.
func (l *Infinite) Cycle() (Cycle, bool) { return l.cycle, l.hasCycle }

// CanInfiniteScroll reports whether cyclic scrolling is active.
func (l *Infinite) CanInfiniteScroll() bool {
	if !l.hasCycle || !l.cfg.InfiniteEnabled {
		return false
	}
	return l.cycle.Size.Width > l.coll.Bounds().Width()*l.cfg.InfiniteThreshold
}

// ContentSize returns the virtual extent when cyclic scrolling is active.
func (l *Infinite) ContentSize() geom.Size {
	size := l.SnapToCenter.ContentSize()
	if !l.CanInfiniteScroll() {
		return size
	}
	return geom.Sz(l.cycle.ContentWidth(), size.Height)
}

// Prepare recomputes the cycle after a structural invalidation and moves the
// content offset into cycle 0.
func (l *Infinite) Prepare() {
	l.SnapToCenter.Prepare()
	if l.hasCycle {
		l.applyDegradedInsets()
		return
	}

	n := l.cache.itemCount(l.coll)
	l.cycle = NewCycle(n, l.cfg.pageWidth(), l.cfg.ItemSize.Height)
	l.hasCycle = true

	if !l.CanInfiniteScroll() {
		l.debug("infinite scrolling inactive", "cycle", l.cycle.Size.Width,
			"viewport", l.coll.Bounds().Width(), "threshold", l.cfg.InfiniteThreshold)
		l.applyDegradedInsets()
		return
	}

	// The offset was just centered on the focused item; shift it by the
	// cycle start without the left inset.
	b := l.coll.Bounds()
	if setter, ok := l.coll.(OffsetSetter); ok {
		setter.SetContentOffset(geom.Pt(l.cycle.Start+b.MinX()-l.insetLeft, b.MinY()))
	}
}

func (l *Infinite) applyDegradedInsets() {
	if !l.CanInfiniteScroll() && !l.cfg.SnapToCenter {
		l.insetLeft, l.insetRight = l.cfg.MinInsetLeft, l.cfg.MinInsetRight
	}
}

// FrameForItem returns the frame of the item at index in cycle 0, or the
// finite frame when cyclic scrolling is inactive.
func (l *Infinite) FrameForItem(index int) geom.Rect {
	if !l.CanInfiniteScroll() {
		return l.SnapToCenter.FrameForItem(index)
	}
	return l.frameInCycle(index, l.cycle.Start)
}

func (l *Infinite) frameInCycle(index int, cycleX float64) geom.Rect {
	header, _ := l.cache.bands(l.coll, l.cfg)
	x := cycleX + l.cfg.pageWidth()*float64(index)
	return geom.Rect{Origin: geom.Pt(x, header+l.cfg.InsetTop), Size: l.cfg.ItemSize}
}

// Items returns the items intersecting rect across every cycle it overlaps.
func (l *Infinite) Items(rect geom.Rect) []Item {
	if !l.CanInfiniteScroll() {
		return l.SnapToCenter.Items(rect)
	}
	n := l.cache.itemCount(l.coll)
	return l.cycle.Items(rect, n, l.cfg.pageWidth(), l.frameInCycle)
}

// AttributesForElements returns the attributes of the items on screen. In
// cyclic mode the live bounds are used rather than rect.
func (l *Infinite) AttributesForElements(rect geom.Rect) []Attributes {
	if !l.CanInfiniteScroll() {
		return l.SnapToCenter.AttributesForElements(rect)
	}
	items := l.Items(l.coll.Bounds())
	attrs := make([]Attributes, 0, len(items)+2)
	for _, it := range items {
		attrs = append(attrs, NewAttributes(it.Index, it.Frame))
	}
	return append(attrs, l.bandAttributes()...)
}

// AttributesForItem returns the on-screen attributes of the item at index.
// An item that is not visible is placed in the last visible cycle so that
// scrolling to it stays short.
func (l *Infinite) AttributesForItem(index int) (Attributes, bool) {
	if !l.CanInfiniteScroll() {
		return l.SnapToCenter.AttributesForItem(index)
	}
	if index < 0 || index >= l.cache.itemCount(l.coll) {
		return Attributes{}, false
	}
	b := l.coll.Bounds()
	for _, it := range l.Items(b) {
		if it.Index == index {
			return NewAttributes(index, it.Frame), true
		}
	}
	last := l.cycle.Frame(l.cycle.Index(b.MaxX()))
	return NewAttributes(index, l.frameInCycle(index, last.MinX())), true
}

// TargetOffset snaps like SnapToCenter unless Config.SnapToCenter is unset.
func (l *Infinite) TargetOffset(proposed, velocity geom.Point) geom.Point {
	if !l.cfg.SnapToCenter {
		return proposed
	}
	return l.SnapToCenter.TargetOffset(proposed, velocity)
}

// Invalidate drops the cycle together with the base caches when scope is
// structural.
func (l *Infinite) Invalidate(scope Scope) {
	if scope.Structural() {
		l.hasCycle = false
	}
	l.SnapToCenter.Invalidate(scope)
}

var _ Layout = (*Infinite)(nil)
