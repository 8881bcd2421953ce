package stack

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
)

func TestFramesAndContentSize(t *testing.T) {
	s := New(newTestCollection(5))
	s.Prepare()

	if got := s.FrameForItem(2); got != geom.R(0, 208, 100, 100) {
		t.Errorf("FrameForItem(2) = %v, want (0,208) 100x100", got)
	}
	if got := s.ContentSize(); got != geom.Sz(320, 516) {
		t.Errorf("ContentSize() = %v, want 320x516", got)
	}
	if got := New(newTestCollection(0)).ContentSize(); !got.IsZero() {
		t.Errorf("empty ContentSize() = %v, want zero", got)
	}
}

func TestSpacingSpreadsShortStacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSpacing = 200

	tests := []struct {
		count int
		want  float64
	}{
		{1, 100},
		{3, 182},
		{10, 100},
	}
	for _, tt := range tests {
		s := New(newTestCollection(tt.count), WithConfig(cfg))
		if got := s.Spacing(); !approx(got, tt.want) {
			t.Errorf("Spacing() with %d cards = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestAttributesForElements(t *testing.T) {
	c := newTestCollection(10)
	s := New(c)
	s.Prepare()

	if got := indexes(s.AttributesForElements(c.bounds)); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("at top: %v", got)
	}

	c.bounds.Origin.Y = 250
	if got := indexes(s.AttributesForElements(c.bounds)); !slices.Equal(got, []int{2, 3, 4, 5, 6, 7}) {
		t.Errorf("scrolled: %v", got)
	}

	for _, a := range s.AttributesForElements(c.bounds) {
		if a.ZIndex != a.Index {
			t.Errorf("card %d has z-index %d", a.Index, a.ZIndex)
		}
		if a.Transform.IsIdentity() {
			t.Errorf("card %d is not tilted", a.Index)
		}
	}
}

// sizes gives card 0 a custom height; the rest use the default size.
type sizes struct{ first float64 }

func (z sizes) SizeForItem(i int) geom.Size {
	if i == 0 {
		return geom.Sz(100, z.first)
	}
	return geom.Sz(100, 100)
}

func TestTallCardAboveViewportIsVisible(t *testing.T) {
	c := newTestCollection(10)
	c.delegate = sizes{first: 400}
	s := New(c)
	s.Prepare()

	c.bounds.Origin.Y = 300
	if got := indexes(s.AttributesForElements(c.bounds)); !slices.Equal(got, []int{0, 2, 3, 4, 5, 6, 7}) {
		t.Errorf("AttributesForElements() = %v, want the tall card 0 first", got)
	}
}

func TestSingleCardIsVisible(t *testing.T) {
	c := newTestCollection(1)
	s := New(c)
	s.Prepare()
	if got := indexes(s.AttributesForElements(c.bounds)); !slices.Equal(got, []int{0}) {
		t.Errorf("AttributesForElements() = %v, want [0]", got)
	}
	if got := New(newTestCollection(0)).AttributesForElements(c.bounds); got != nil {
		t.Errorf("empty stack returned %v", got)
	}
}

func TestAttributesForItem(t *testing.T) {
	s := New(newTestCollection(3))
	if _, ok := s.AttributesForItem(3); ok {
		t.Error("AttributesForItem(3) found a card in a stack of 3")
	}
	a, ok := s.AttributesForItem(1)
	if !ok || a.Frame != s.FrameForItem(1) || a.Alpha != 1 {
		t.Errorf("AttributesForItem(1) = %+v, %v", a, ok)
	}
}

func TestAngleAtTop(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, math.Pi / 30},
		{1, math.Pi / 30},
		{3, math.Pi / 20},
		{5, math.Pi / 15},
		{12, math.Pi / 15},
	}
	for _, tt := range tests {
		if got := AngleAtTop(tt.count); !approx(got, tt.want) {
			t.Errorf("AngleAtTop(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestAngleByPosition(t *testing.T) {
	c := newTestCollection(5)
	s := New(c)

	tests := []struct {
		y    float64
		want float64
	}{
		{-40, -math.Pi / 15},
		{0, -math.Pi / 15},
		{240, -math.Pi / 12},
		{480, -math.Pi / 10},
		{900, -math.Pi / 10},
	}
	for _, tt := range tests {
		if got := s.Angle(tt.y); !approx(got, tt.want) {
			t.Errorf("Angle(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}

	// Angles follow the viewport.
	c.bounds.Origin.Y = 100
	if got := s.Angle(100); !approx(got, -math.Pi/15) {
		t.Errorf("Angle at scrolled top = %v", got)
	}
}

func TestTransformForItem(t *testing.T) {
	cfg := DefaultConfig()
	size := geom.Sz(100, 100)

	// r = h/2 + |zOffset / sin θ| = 50 + 50.
	tr := TransformForItem(cfg, geom.Point{}, size, math.Pi/2)
	if !approx(tr.M42(), 100) || !approx(tr.M43(), 100) {
		t.Errorf("at π/2: m42=%v m43=%v, want 100 100", tr.M42(), tr.M43())
	}

	flat := TransformForItem(cfg, geom.Point{}, size, 0)
	if !flat.Equal(geom.Perspective(cfg.Perspective)) {
		t.Errorf("at 0: %v, want the bare perspective", flat)
	}
	if !approx(flat.M34(), DefaultPerspective) {
		t.Errorf("m34 = %v", flat.M34())
	}

	// The origin does not matter.
	a := TransformForItem(cfg, geom.Pt(0, 0), size, -0.3)
	b := TransformForItem(cfg, geom.Pt(40, 900), size, -0.3)
	if !a.Equal(b) {
		t.Error("transform depends on origin")
	}
}

func TestInvalidationScopeForBounds(t *testing.T) {
	c := newTestCollection(3)
	s := New(c)
	s.Invalidate(layout.InvalidateEverything())

	c.bounds.Origin.Y = 40
	if scope := s.InvalidationScopeForBounds(c.bounds); scope.Structural() {
		t.Errorf("scrolling produced a structural scope: %+v", scope)
	}

	c.bounds.Size = geom.Sz(320, 500)
	if scope := s.InvalidationScopeForBounds(c.bounds); scope.BoundsDelta != geom.Sz(0, 20) {
		t.Errorf("resize delta = %v, want 0x20", scope.BoundsDelta)
	}
	if !s.ShouldInvalidate(c.bounds) {
		t.Error("ShouldInvalidate() = false")
	}
	if got := s.TargetOffset(geom.Pt(0, 123), geom.Pt(0, 900)); got != geom.Pt(0, 123) {
		t.Errorf("TargetOffset() = %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.ItemSize.Width = 0 }},
		{"zero spacing", func(c *Config) { c.MinSpacing = 0 }},
		{"negative inset", func(c *Config) { c.InsetTop = -1 }},
		{"angle past vertical", func(c *Config) { c.MaxAngle = math.Pi }},
		{"positive perspective", func(c *Config) { c.Perspective = 0.01 }},
		{"zero velocity", func(c *Config) { c.DeleteVelocity = 0 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestMultipleSectionsPanic(t *testing.T) {
	c := &multiSection{newTestCollection(3)}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, errors.ErrCodeUnsupportedSections) {
			t.Errorf("recovered %v, want UNSUPPORTED_SECTIONS", r)
		}
	}()
	New(c).Prepare()
}

type multiSection struct{ *testCollection }

func (multiSection) NumberOfSections() int { return 2 }

func TestAnimatorSharesTransform(t *testing.T) {
	s := New(newTestCollection(3))
	a := s.Animator(2)
	if a.Index() != 2 {
		t.Errorf("Index() = %d", a.Index())
	}
	if a.Options().Reversed {
		t.Error("default animator should present")
	}
}
