package stack

import (
	"math"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
)

type testCollection struct {
	count    int
	bounds   geom.Rect
	delegate any
}

func newTestCollection(count int) *testCollection {
	return &testCollection{count: count, bounds: geom.R(0, 0, 320, 480)}
}

func (c *testCollection) NumberOfSections() int     { return 1 }
func (c *testCollection) NumberOfItems(int) int     { return c.count }
func (c *testCollection) Bounds() geom.Rect         { return c.bounds }
func (c *testCollection) ContentInset() geom.Insets { return geom.Insets{} }
func (c *testCollection) Delegate() any             { return c.delegate }

// deleter allows deleting every index except those in locked and records
// committed deletions.
type deleter struct {
	locked  map[int]bool
	deleted []int
}

func (d *deleter) CanDelete(i int) bool { return !d.locked[i] }
func (d *deleter) DidDelete(i int)      { d.deleted = append(d.deleted, i) }

// newDeletable returns a stack of count cards whose collection delegate is
// a deleter.
func newDeletable(count int, opts ...Option) (*Stack, *testCollection, *deleter) {
	c := newTestCollection(count)
	d := &deleter{locked: map[int]bool{}}
	c.delegate = d
	s := New(c, opts...)
	s.Prepare()
	return s, c, d
}

// centerOf returns the center of the untransformed frame of card i.
func centerOf(s *Stack, i int) geom.Point { return s.FrameForItem(i).Center() }

func swipe(s *Stack, i int, dx, releaseVelocity float64) State {
	s.HandlePan(GestureSample{Phase: Began, Location: centerOf(s, i), Velocity: geom.Pt(-300, 10)})
	s.HandlePan(GestureSample{Phase: Changed, Translation: geom.Pt(dx, 0)})
	return s.HandlePan(GestureSample{Phase: Ended, Velocity: geom.Pt(releaseVelocity, 0)})
}

func indexes(attrs []layout.Attributes) []int {
	out := make([]int, len(attrs))
	for i, a := range attrs {
		out[i] = a.Index
	}
	return out
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
