package scroll

import (
	"slices"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

// Container is a headless transition host. It records overlays and
// completions.
type Container struct {
	bounds      geom.Rect
	overlays    []*transition.Overlay
	completions []bool
}

// NewContainer returns a container with the given bounds.
func NewContainer(bounds geom.Rect) *Container { return &Container{bounds: bounds} }

func (c *Container) ContainerBounds() geom.Rect { return c.bounds }

func (c *Container) AddOverlay(o *transition.Overlay) { c.overlays = append(c.overlays, o) }

func (c *Container) RemoveOverlay(o *transition.Overlay) {
	c.overlays = slices.DeleteFunc(c.overlays, func(x *transition.Overlay) bool { return x == o })
}

func (c *Container) CompleteTransition(finished bool) {
	c.completions = append(c.completions, finished)
}

// Overlays returns the overlays currently shown.
func (c *Container) Overlays() []*transition.Overlay { return c.overlays }

// Completions returns the finished flag of every completed transition.
func (c *Container) Completions() []bool { return c.completions }

var _ transition.Host = (*Container)(nil)
