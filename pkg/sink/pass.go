package sink

import (
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
)

// Pass is the result of one layout pass.
type Pass struct {
	Kind        string
	Viewport    geom.Rect
	ContentSize geom.Size
	Focused     int
	Attributes  []layout.Attributes
}

// Capture runs a pass on v and returns it. kind labels the output.
func Capture(kind string, v *scroll.View) Pass {
	attrs := v.Pass()
	p := Pass{
		Kind:       kind,
		Viewport:   v.Bounds(),
		Focused:    v.FocusedIndex(),
		Attributes: attrs,
	}
	if l := v.Layout(); l != nil {
		p.ContentSize = l.ContentSize()
	}
	return p
}
