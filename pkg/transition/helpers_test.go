package transition

import (
	"context"
	"math"
	"time"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// testView grows its reported frame by 10 points in each direction while it
// carries a transform, standing in for a transformed bounding box.
type testView struct {
	frame     geom.Rect
	transform geom.Transform3D
}

func newTestView(f geom.Rect, t geom.Transform3D) *testView {
	return &testView{frame: f, transform: t}
}

func (v *testView) Frame() geom.Rect {
	if v.transform.IsIdentity() {
		return v.frame
	}
	return geom.R(v.frame.MinX()-10, v.frame.MinY()-10, v.frame.Width()+20, v.frame.Height()+20)
}

func (v *testView) SetFrame(f geom.Rect)            { v.frame = f }
func (v *testView) Transform() geom.Transform3D     { return v.transform }
func (v *testView) SetTransform(t geom.Transform3D) { v.transform = t }
func (v *testView) Snapshot() any                   { return v.frame.String() }

type testCollection struct {
	frame  geom.Rect
	bounds geom.Rect
	inset  geom.Insets
	cells  map[int]*testView
	order  []int
	alpha  float64
}

// newTestCollection returns a stack scrolled to y = 200 with cards 2, 3 and 4
// visible at y = 200, 300 and 400, each tilted.
func newTestCollection() *testCollection {
	c := &testCollection{
		frame:  geom.R(0, 0, 320, 480),
		bounds: geom.R(0, 200, 320, 480),
		inset:  geom.Insets{Top: 20, Bottom: 10},
		cells:  map[int]*testView{},
		alpha:  1,
	}
	for _, i := range []int{4, 2, 3} {
		c.cells[i] = newTestView(geom.R(10, float64(i)*100, 300, 100), geom.RotationX(-0.2))
		c.order = append(c.order, i)
	}
	return c
}

func (c *testCollection) VisibleItems() []int { return c.order }

func (c *testCollection) Cell(i int) View {
	if v, ok := c.cells[i]; ok {
		return v
	}
	return nil
}

func (c *testCollection) Frame() geom.Rect          { return c.frame }
func (c *testCollection) Bounds() geom.Rect         { return c.bounds }
func (c *testCollection) ContentInset() geom.Insets { return c.inset }
func (c *testCollection) Alpha() float64            { return c.alpha }
func (c *testCollection) SetAlpha(a float64)        { c.alpha = a }

type testHost struct {
	bounds      geom.Rect
	overlays    []*Overlay
	removed     []*Overlay
	completions []bool
}

func newTestHost() *testHost { return &testHost{bounds: geom.R(0, 0, 320, 568)} }

func (h *testHost) ContainerBounds() geom.Rect       { return h.bounds }
func (h *testHost) AddOverlay(o *Overlay)            { h.overlays = append(h.overlays, o) }
func (h *testHost) RemoveOverlay(o *Overlay)         { h.removed = append(h.removed, o) }
func (h *testHost) CompleteTransition(finished bool) { h.completions = append(h.completions, finished) }

func tilt(_ geom.Point, _ geom.Size, angle float64) geom.Transform3D {
	return geom.RotationX(angle)
}

func start(t interface{ Fatalf(string, ...any) }, index int, opts ...Option) (*Run, *testCollection, *testHost) {
	coll, host := newTestCollection(), newTestHost()
	r, err := New(index, tilt, opts...).Start(context.Background(), coll, host, "detail")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return r, coll, host
}

func at(base time.Time, ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func sameRect(a, b geom.Rect) bool {
	return approx(a.MinX(), b.MinX()) && approx(a.MinY(), b.MinY()) &&
		approx(a.Width(), b.Width()) && approx(a.Height(), b.Height())
}

type phaseRecorder struct {
	ids     []string
	phases  []string
	results []bool
}

func (p *phaseRecorder) OnTransitionStart(_ context.Context, id string, _ int, _ bool, _ int) {
	p.ids = append(p.ids, id)
}

func (p *phaseRecorder) OnTransitionPhase(_ context.Context, _ string, phase string) {
	p.phases = append(p.phases, phase)
}

func (p *phaseRecorder) OnTransitionComplete(_ context.Context, _ string, finished bool, _ time.Duration) {
	p.results = append(p.results, finished)
}
