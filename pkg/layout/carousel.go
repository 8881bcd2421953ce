package layout

import (
	"math"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// zIndexScale converts a scale factor into a paint order.
const zIndexScale = 100000

// Carousel is an [Infinite] layout that shrinks items as they move away from
// the viewport center. The centered item is drawn at full size and on top.
// With Config.InfiniteEnabled unset the row is finite but still scaled.
type Carousel struct {
	*Infinite
}

// NewCarousel creates a carousel layout for c.
func NewCarousel(c Collection, opts ...Option) *Carousel {
	return &Carousel{Infinite: newInfinite(c, buildOptions("carousel", opts))}
}

// Scale returns the scale of an item whose center lies distance points from
// the viewport center: 1 at the center, falling linearly to
// Config.MinScale at Config.ScalingOffset and beyond.
func (c *Carousel) Scale(distance float64) float64 {
	d := min(math.Abs(distance), c.cfg.ScalingOffset)
	return d*(c.cfg.MinScale-1)/c.cfg.ScalingOffset + 1
}

func (c *Carousel) decorate(a *Attributes) {
	if !a.IsCell() {
		return
	}
	s := c.Scale(c.coll.Bounds().MidX() - a.Center().X)
	a.ZIndex = int(s * zIndexScale)
	a.Transform = geom.Scaling(s, s, 1)
}

// AttributesForElements returns the attributes of the items in rect, scaled
// by distance from the center.
func (c *Carousel) AttributesForElements(rect geom.Rect) []Attributes {
	attrs := c.Infinite.AttributesForElements(rect)
	for i := range attrs {
		c.decorate(&attrs[i])
	}
	return attrs
}

// AttributesForItem returns the scaled attributes of the item at index.
func (c *Carousel) AttributesForItem(index int) (Attributes, bool) {
	a, ok := c.Infinite.AttributesForItem(index)
	if ok {
		c.decorate(&a)
	}
	return a, ok
}

var _ Layout = (*Carousel)(nil)
