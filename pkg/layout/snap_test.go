package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

func TestSnapFrameForItemIsPure(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)

	for i := 0; i < 5; i++ {
		first := l.FrameForItem(i)
		for range 3 {
			if got := l.FrameForItem(i); got != first {
				t.Fatalf("FrameForItem(%d) = %v, then %v", i, first, got)
			}
		}
		wantX := 100 + float64(i)*108
		if !approx(first.MinX(), wantX) || !approx(first.MinY(), 8) {
			t.Errorf("FrameForItem(%d) origin = %v, want (%v, 8)", i, first.Origin, wantX)
		}
	}
}

func TestSnapContentSizeGrowsByPage(t *testing.T) {
	var prev float64
	for n := 0; n <= 6; n++ {
		c := newTestCollection(n, 300, 200)
		l := NewSnapToCenter(c)
		pass(l, c)

		size := l.ContentSize()
		if n > 0 && !approx(size.Width-prev, 108) {
			t.Errorf("width(%d) - width(%d) = %v, want 108", n, n-1, size.Width-prev)
		}
		if !approx(size.Height, 116) {
			t.Errorf("height = %v, want 116", size.Height)
		}
		prev = size.Width
	}
}

func TestSnapInsetsCenterFirstItem(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		center    bool
		wantLeft  float64
		wantRight float64
	}{
		{name: "centered", width: 300, center: true, wantLeft: 100, wantRight: 100},
		{name: "narrow viewport keeps minimum", width: 100, center: true, wantLeft: 8, wantRight: 8},
		{name: "not centered", width: 300, center: false, wantLeft: 8, wantRight: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CenterFirstItem = tt.center
			c := newTestCollection(5, tt.width, 200)
			l := NewSnapToCenter(c, WithConfig(cfg))
			pass(l, c)

			left, right := l.Insets()
			if !approx(left, tt.wantLeft) || !approx(right, tt.wantRight) {
				t.Errorf("Insets() = (%v, %v), want (%v, %v)", left, right, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestSnapTargetOffset(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		proposed float64
		velocity float64
		want     float64
	}{
		{name: "nearest item is centered", current: 0, proposed: 200, want: 216},
		{name: "fling back past candidate", current: 0, proposed: 200, velocity: -1, want: 108},
		{name: "fling forward past candidate", current: 300, proposed: 200, velocity: 1, want: 324},
		{name: "velocity toward candidate", current: 0, proposed: 200, velocity: 1, want: 216},
		{name: "clamped to end", current: 500, proposed: 420, velocity: 1, want: 432},
		{name: "clamped to start", current: -50, proposed: -100, velocity: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCollection(5, 300, 200)
			l := NewSnapToCenter(c)
			pass(l, c)
			c.bounds.Origin.X = tt.current

			got := l.TargetOffset(geom.Pt(tt.proposed, 7), geom.Pt(tt.velocity, 0))
			if !approx(got.X, tt.want) {
				t.Errorf("TargetOffset().X = %v, want %v", got.X, tt.want)
			}
			if got.Y != 7 {
				t.Errorf("TargetOffset().Y = %v, want proposed y", got.Y)
			}
		})
	}
}

func TestSnapTargetOffsetWithoutItems(t *testing.T) {
	c := newTestCollection(0, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)

	proposed := geom.Pt(42, 0)
	if got := l.TargetOffset(proposed, geom.Pt(1, 0)); got != proposed {
		t.Errorf("TargetOffset() = %v, want proposal %v", got, proposed)
	}
}

func TestSnapItemsClipped(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)

	tests := []struct {
		name string
		rect geom.Rect
		want []int
	}{
		{name: "leading edge", rect: geom.R(0, 0, 300, 200), want: []int{0, 1}},
		{name: "middle", rect: geom.R(216, 0, 300, 200), want: []int{1, 2, 3}},
		{name: "before content", rect: geom.R(-1000, 0, 300, 200), want: nil},
		{name: "past content", rect: geom.R(600, 0, 300, 200), want: []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemIndexes(l.Items(tt.rect))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Items() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapFocusNotificationOrder(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	rec := &focusRecorder{}
	l := NewSnapToCenter(c, WithFocusDelegate(rec))
	rec.tracker = l
	pass(l, c)

	c.scrollTo(l, 216)
	c.scrollTo(l, 216)

	want := []string{
		"will 0->2 (current 0)",
		"did 2->2 (current 2)",
	}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %q, want %q", rec.events, want)
	}
	if l.FocusedIndex() != 2 {
		t.Errorf("FocusedIndex() = %d, want 2", l.FocusedIndex())
	}
}

func TestSnapFocusDelegateFromCollection(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	rec := &focusRecorder{}
	c.delegate = rec
	l := NewSnapToCenter(c)
	rec.tracker = l
	pass(l, c)

	c.scrollTo(l, 108)
	if len(rec.events) != 2 {
		t.Fatalf("got %d events, want 2: %q", len(rec.events), rec.events)
	}
}

func TestSnapResizeKeepsFocus(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)
	c.scrollTo(l, 216)

	// A resize is structural: focus is kept and re-centered.
	c.bounds = geom.R(216, 0, 400, 200)
	pass(l, c)

	if l.FocusedIndex() != 2 {
		t.Errorf("FocusedIndex() = %d, want 2 after resize", l.FocusedIndex())
	}
	// insetLeft = 200 - 50 = 150; center of item 2 = 150 + 216 + 50.
	if want := 416 - 200.0; !approx(c.bounds.MinX(), want) {
		t.Errorf("offset = %v, want %v", c.bounds.MinX(), want)
	}
}

func TestSnapZeroDeltaKeepsCache(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)
	if c.countCalls != 1 {
		t.Fatalf("count queried %d times on first pass, want 1", c.countCalls)
	}

	for _, x := range []float64{10, 50, 120, 216, 300} {
		c.scrollTo(l, x)
	}
	if c.countCalls != 1 {
		t.Errorf("count queried %d times while scrolling, want 1", c.countCalls)
	}

	l.Invalidate(InvalidateCounts())
	pass(l, c)
	if c.countCalls != 2 {
		t.Errorf("count queried %d times after count invalidation, want 2", c.countCalls)
	}
}

func TestSnapHeaderFooter(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	c.delegate = bands{header: 20, footer: 30}
	l := NewSnapToCenter(c)
	pass(l, c)
	attrs := c.scrollTo(l, 216)

	if h := l.ContentSize().Height; !approx(h, 166) {
		t.Errorf("content height = %v, want 166", h)
	}
	if y := l.FrameForItem(0).MinY(); !approx(y, 28) {
		t.Errorf("item y = %v, want 28", y)
	}

	var header, footer *Attributes
	for i := range attrs {
		switch attrs[i].Kind {
		case KindHeader:
			header = &attrs[i]
		case KindFooter:
			footer = &attrs[i]
		}
	}
	if header == nil || footer == nil {
		t.Fatalf("missing bands in %v", attrs)
	}
	if want := geom.R(216, 0, 300, 20); header.Frame != want {
		t.Errorf("header frame = %v, want %v", header.Frame, want)
	}
	if want := geom.R(216, 136, 300, 30); footer.Frame != want {
		t.Errorf("footer frame = %v, want %v", footer.Frame, want)
	}

	// Bands follow the offset without being recomputed.
	attrs = c.scrollTo(l, 300)
	for _, a := range attrs {
		if !a.IsCell() && a.Frame.MinX() != 300 {
			t.Errorf("%s x = %v, want 300", a.Kind, a.Frame.MinX())
		}
	}
}

func TestSnapNoBandsWithoutHeights(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)

	if _, ok := l.AttributesForSupplementary(KindHeader); ok {
		t.Error("AttributesForSupplementary(header) reported a zero-height band")
	}
	for _, a := range l.AttributesForElements(c.bounds) {
		if !a.IsCell() {
			t.Errorf("unexpected %s attributes", a.Kind)
		}
	}
}

func TestSnapAttributesForItem(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c)
	pass(l, c)

	a, ok := l.AttributesForItem(3)
	if !ok {
		t.Fatal("AttributesForItem(3) not found")
	}
	if a.Frame != l.FrameForItem(3) || a.Alpha != 1 || !a.Transform.IsIdentity() {
		t.Errorf("AttributesForItem(3) = %+v", a)
	}
	if _, ok := l.AttributesForItem(5); ok {
		t.Error("AttributesForItem(5) should be out of range")
	}
}

func TestSnapTransitionFrom(t *testing.T) {
	t.Run("focus tracker", func(t *testing.T) {
		c := newTestCollection(5, 300, 200)
		l := NewSnapToCenter(c)
		pass(l, c)

		l.TransitionFrom(fixedFocus(3))
		l.Prepare()

		if l.FocusedIndex() != 3 {
			t.Errorf("FocusedIndex() = %d, want 3", l.FocusedIndex())
		}
		if !approx(c.bounds.MinX(), 324) {
			t.Errorf("offset = %v, want 324", c.bounds.MinX())
		}
	})

	t.Run("full pass keeps adopted focus", func(t *testing.T) {
		c := newTestCollection(5, 300, 200)
		l := NewSnapToCenter(c)

		l.TransitionFrom(fixedFocus(2))
		pass(l, c)

		if l.FocusedIndex() != 2 {
			t.Errorf("FocusedIndex() = %d, want 2", l.FocusedIndex())
		}
		if !approx(c.bounds.MinX(), 216) {
			t.Errorf("offset = %v, want 216", c.bounds.MinX())
		}
	})

	t.Run("middle visible item", func(t *testing.T) {
		c := newTestCollection(5, 300, 200)
		c.visible = []int{4, 2, 3}
		l := NewSnapToCenter(c)
		pass(l, c)

		l.TransitionFrom(struct{}{})
		if l.FocusedIndex() != 3 {
			t.Errorf("FocusedIndex() = %d, want 3", l.FocusedIndex())
		}
	})

	t.Run("nothing visible", func(t *testing.T) {
		c := newTestCollection(5, 300, 200)
		l := NewSnapToCenter(c)
		pass(l, c)

		l.TransitionFrom(struct{}{})
		if l.FocusedIndex() != 0 {
			t.Errorf("FocusedIndex() = %d, want 0", l.FocusedIndex())
		}
	})
}

func TestSnapRecenterOnlyInsideRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CenterFirstItem = false
	c := newTestCollection(5, 300, 200)
	l := NewSnapToCenter(c, WithConfig(cfg))
	pass(l, c)

	if c.bounds.MinX() != 0 {
		t.Errorf("offset at the start moved to %v", c.bounds.MinX())
	}

	c.scrollTo(l, 100) // item 2 is nearest the center
	l.Invalidate(InvalidateEverything())
	l.Prepare()
	if want := 8 + 216 + 50 - 150.0; !approx(c.bounds.MinX(), want) {
		t.Errorf("offset = %v, want %v", c.bounds.MinX(), want)
	}
}

func TestSnapMultipleSectionsPanics(t *testing.T) {
	c := newTestCollection(5, 300, 200)
	c.sections = 2
	l := NewSnapToCenter(c)

	if err := CheckSections(c); !errors.Is(err, errors.ErrCodeUnsupportedSections) {
		t.Errorf("CheckSections() = %v, want UNSUPPORTED_SECTIONS", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for two sections")
		}
		err, ok := r.(error)
		if !ok || errors.GetCode(err) != errors.ErrCodeUnsupportedSections {
			t.Errorf("panic value = %v, want UNSUPPORTED_SECTIONS error", r)
		}
	}()
	l.ContentSize()
}

func TestScopeStructural(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{name: "everything", scope: InvalidateEverything(), want: true},
		{name: "counts", scope: InvalidateCounts(), want: true},
		{name: "resize", scope: InvalidateBounds(geom.Sz(10, 0)), want: true},
		{name: "scroll", scope: InvalidateBounds(geom.Size{}), want: false},
		{name: "deletion", scope: InvalidateDeletion(2, -5), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Structural(); got != tt.want {
				t.Errorf("Structural() = %v, want %v", got, tt.want)
			}
		})
	}
}
