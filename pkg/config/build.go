package config

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
)

// Build creates a scroll view of the scene's items, installs the scene's
// layout, runs the first pass and then scrolls by the viewport offset, so
// focus tracking starts from the requested position. logger may be nil.
func (s Scene) Build(logger *log.Logger) (*scroll.View, layout.Layout) {
	list := scroll.NewList(s.Items)
	for _, i := range s.Locked {
		list.Locked[i] = true
	}
	v := scroll.New(list, geom.R(0, 0, s.Viewport.Width, s.Viewport.Height),
		scroll.WithContentInset(s.Viewport.Inset),
		scroll.WithLogger(logger),
	)
	l := s.NewLayout(v, logger)
	v.SetLayout(l)
	if off := geom.Pt(s.Viewport.OffsetX, s.Viewport.OffsetY); off != (geom.Point{}) {
		v.ScrollBy(off.X, off.Y)
	}
	return v, l
}

// NewLayout creates the scene's layout for c.
func (s Scene) NewLayout(c layout.Collection, logger *log.Logger) layout.Layout {
	opts := []layout.Option{layout.WithConfig(s.LayoutConfig()), layout.WithLogger(logger)}
	switch s.Kind {
	case KindSnap:
		return layout.NewSnapToCenter(c, opts...)
	case KindInfinite:
		return layout.NewInfinite(c, opts...)
	case KindStack:
		return stack.New(c, stack.WithConfig(s.StackConfig()), stack.WithLogger(logger))
	default:
		return layout.NewCarousel(c, opts...)
	}
}
