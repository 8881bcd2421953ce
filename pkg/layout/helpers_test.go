package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// testCollection is a minimal scroll view for driving layouts.
type testCollection struct {
	sections   int
	count      int
	bounds     geom.Rect
	inset      geom.Insets
	delegate   any
	visible    []int
	countCalls int
}

func newTestCollection(count int, width, height float64) *testCollection {
	return &testCollection{sections: 1, count: count, bounds: geom.R(0, 0, width, height)}
}

func (c *testCollection) NumberOfSections() int { return c.sections }

func (c *testCollection) NumberOfItems(int) int {
	c.countCalls++
	return c.count
}

func (c *testCollection) Bounds() geom.Rect             { return c.bounds }
func (c *testCollection) ContentInset() geom.Insets     { return c.inset }
func (c *testCollection) Delegate() any                 { return c.delegate }
func (c *testCollection) VisibleItems() []int           { return c.visible }
func (c *testCollection) SetContentOffset(p geom.Point) { c.bounds.Origin = p }

// scrollTo moves the viewport and runs one layout pass.
func (c *testCollection) scrollTo(l Layout, x float64) []Attributes {
	c.bounds.Origin.X = x
	return pass(l, c)
}

// pass runs the host contract once for the current bounds.
func pass(l Layout, c *testCollection) []Attributes {
	if l.ShouldInvalidate(c.bounds) {
		l.Invalidate(l.InvalidationScopeForBounds(c.bounds))
	}
	l.Prepare()
	return l.AttributesForElements(c.bounds)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func cellIndexes(attrs []Attributes) []int {
	var out []int
	for _, a := range attrs {
		if a.IsCell() {
			out = append(out, a.Index)
		}
	}
	return out
}

func itemIndexes(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

// focusRecorder records focus notifications together with the focused index
// observed at the time of each call.
type focusRecorder struct {
	tracker FocusTracker
	events  []string
}

func (r *focusRecorder) WillChangeFocus(from, to int) {
	r.events = append(r.events, fmtEvent("will", from, to, r.tracker.FocusedIndex()))
}

func (r *focusRecorder) DidChangeFocus(index int) {
	r.events = append(r.events, fmtEvent("did", index, index, r.tracker.FocusedIndex()))
}

type fixedFocus int

func (f fixedFocus) FocusedIndex() int { return int(f) }

type bands struct{ header, footer float64 }

func (b bands) HeaderHeight() float64 { return b.header }
func (b bands) FooterHeight() float64 { return b.footer }

func fmtEvent(kind string, a, b, observed int) string {
	return fmt.Sprintf("%s %d->%d (current %d)", kind, a, b, observed)
}
