package scroll

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

// Panner is a layout that handles pan gestures.
type Panner interface {
	HandlePan(g stack.GestureSample) stack.State
	State() stack.State
}

// Disappearer is a layout that animates removed items out.
type Disappearer interface {
	DeletingIndex() (int, bool)
	AttributesForDisappearingItem(index int) layout.Attributes
}

// Transitioner is a layout that adopts state from the layout it replaces.
type Transitioner interface {
	TransitionFrom(prior any)
}

// View is a headless scroll view.
type View struct {
	source   DataSource
	delegate any
	layout   layout.Layout
	logger   *log.Logger

	frame  geom.Rect
	bounds geom.Rect
	inset  geom.Insets
	alpha  float64

	// passed holds the bounds of the last pass; hasPassed is false before
	// the first one.
	passed    geom.Rect
	hasPassed bool

	cells   map[int]*Cell
	bands   []layout.Attributes
	removed []layout.Attributes
}

// Option configures a [View].
type Option func(*View)

// WithDelegate sets the object layouts query for optional capabilities. When
// unset, the data source is the delegate.
func WithDelegate(d any) Option { return func(v *View) { v.delegate = d } }

// WithContentInset sets the content inset.
func WithContentInset(in geom.Insets) Option { return func(v *View) { v.inset = in } }

// WithLogger enables debug traces of layout passes.
func WithLogger(l *log.Logger) Option { return func(v *View) { v.logger = l } }

// New returns a view of source with the given frame in container
// coordinates. The view has no layout until SetLayout is called.
func New(source DataSource, frame geom.Rect, opts ...Option) *View {
	v := &View{
		source: source,
		frame:  frame,
		bounds: geom.Rect{Size: frame.Size},
		alpha:  1,
		cells:  make(map[int]*Cell),
	}
	v.delegate = source
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) NumberOfSections() int         { return v.source.NumberOfSections() }
func (v *View) NumberOfItems(section int) int { return v.source.NumberOfItems(section) }
func (v *View) Bounds() geom.Rect             { return v.bounds }
func (v *View) Frame() geom.Rect              { return v.frame }
func (v *View) ContentInset() geom.Insets     { return v.inset }
func (v *View) Delegate() any                 { return v.delegate }
func (v *View) Alpha() float64                { return v.alpha }
func (v *View) SetAlpha(a float64)            { v.alpha = a }

// SetContentOffset moves the viewport without a layout pass. Layouts call it
// from Prepare.
func (v *View) SetContentOffset(p geom.Point) { v.bounds.Origin = p }

// ContentOffset returns the viewport origin.
func (v *View) ContentOffset() geom.Point { return v.bounds.Origin }

// Layout returns the current layout.
func (v *View) Layout() layout.Layout { return v.layout }

// SetLayout replaces the layout. A layout that can adopt state from its
// predecessor is given the chance before the first pass; otherwise it is
// invalidated completely.
func (v *View) SetLayout(l layout.Layout) []layout.Attributes {
	prior := v.layout
	v.layout = l
	if t, ok := l.(Transitioner); ok && prior != nil {
		t.TransitionFrom(prior)
	} else {
		l.Invalidate(layout.InvalidateEverything())
	}
	return v.Pass()
}

// Pass runs one layout pass for the current bounds and updates the visible
// cells. The layout is only asked about a bounds change when the bounds
// moved since the previous pass.
func (v *View) Pass() []layout.Attributes {
	l := v.layout
	if l == nil {
		return nil
	}
	if (!v.hasPassed || v.bounds != v.passed) && l.ShouldInvalidate(v.bounds) {
		l.Invalidate(l.InvalidationScopeForBounds(v.bounds))
	}
	l.Prepare()
	v.passed, v.hasPassed = v.bounds, true
	attrs := l.AttributesForElements(v.bounds)
	v.apply(attrs)
	if v.logger != nil {
		v.logger.Debug("layout pass", "offset", v.bounds.Origin, "visible", v.VisibleItems())
	}
	return attrs
}

func (v *View) apply(attrs []layout.Attributes) {
	seen := make(map[int]bool, len(attrs))
	v.bands = v.bands[:0]
	for _, a := range attrs {
		if !a.IsCell() {
			v.bands = append(v.bands, a)
			continue
		}
		seen[a.Index] = true
		if c, ok := v.cells[a.Index]; ok {
			c.apply(a)
			continue
		}
		v.cells[a.Index] = newCell(a)
	}
	maps.DeleteFunc(v.cells, func(i int, _ *Cell) bool { return !seen[i] })
}

// ScrollTo moves the viewport to p and runs a pass.
func (v *View) ScrollTo(p geom.Point) []layout.Attributes {
	v.bounds.Origin = p
	return v.Pass()
}

// ScrollBy moves the viewport by (dx, dy) and runs a pass.
func (v *View) ScrollBy(dx, dy float64) []layout.Attributes {
	return v.ScrollTo(v.bounds.Origin.Add(geom.Pt(dx, dy)))
}

// Fling ends a drag at the current offset with the given velocity, scrolls
// to where the layout wants the motion to stop and returns that offset.
func (v *View) Fling(velocity geom.Point) geom.Point {
	if v.layout == nil {
		return v.bounds.Origin
	}
	target := v.layout.TargetOffset(v.bounds.Origin, velocity)
	v.ScrollTo(target)
	return target
}

// Resize changes the viewport size and runs a pass.
func (v *View) Resize(size geom.Size) []layout.Attributes {
	v.frame.Size = size
	v.bounds.Size = size
	return v.Pass()
}

// Reload tells the layout the item counts changed and runs a pass.
func (v *View) Reload() []layout.Attributes {
	if v.layout != nil {
		v.layout.Invalidate(layout.InvalidateCounts())
	}
	return v.Pass()
}

// Pan feeds a gesture sample to the layout. A committed deletion is
// completed by reloading the view; the departing item's final attributes
// are kept in Removed.
func (v *View) Pan(g stack.GestureSample) (stack.State, error) {
	p, ok := v.layout.(Panner)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnsupported, "layout does not handle pan gestures")
	}
	st := p.HandlePan(g)
	if st == stack.Committing {
		if d, ok := v.layout.(Disappearer); ok {
			if index, ok := d.DeletingIndex(); ok {
				v.removed = append(v.removed, d.AttributesForDisappearingItem(index))
			}
		}
		v.Reload()
		return st, nil
	}
	v.Pass()
	return st, nil
}

// Removed returns the final attributes of every item deleted by a pan.
func (v *View) Removed() []layout.Attributes { return v.removed }

// VisibleItems returns the indexes of the visible cells in ascending order.
func (v *View) VisibleItems() []int {
	return slices.Sorted(maps.Keys(v.cells))
}

// Cell returns the cell of a visible item.
func (v *View) Cell(index int) transition.View {
	if c, ok := v.cells[index]; ok {
		return c
	}
	return nil
}

// Supplementary returns the header and footer attributes of the last pass.
func (v *View) Supplementary() []layout.Attributes { return v.bands }

// FocusedIndex returns the layout's focused item, or -1 when the layout
// does not track focus.
func (v *View) FocusedIndex() int {
	if f, ok := v.layout.(layout.FocusTracker); ok {
		return f.FocusedIndex()
	}
	return -1
}

var (
	_ layout.Collection                = (*View)(nil)
	_ layout.OffsetSetter              = (*View)(nil)
	_ layout.VisibleIndexer            = (*View)(nil)
	_ transition.PerspectiveCollection = (*View)(nil)
)
