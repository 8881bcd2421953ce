package scroll

import (
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
)

// Cell is the view of one visible item.
type Cell struct {
	index     int
	frame     geom.Rect
	transform geom.Transform3D
	alpha     float64
	zIndex    int
}

func newCell(a layout.Attributes) *Cell {
	c := &Cell{index: a.Index}
	c.apply(a)
	return c
}

func (c *Cell) apply(a layout.Attributes) {
	c.frame, c.transform, c.alpha, c.zIndex = a.Frame, a.Transform, a.Alpha, a.ZIndex
}

// Index returns the item index the cell displays.
func (c *Cell) Index() int { return c.index }

// Alpha returns the cell opacity.
func (c *Cell) Alpha() float64 { return c.alpha }

// ZIndex returns the cell's stacking order.
func (c *Cell) ZIndex() int { return c.zIndex }

// Frame returns the cell's frame in content coordinates. A transformed cell
// reports the bounding box of its projected corners, the transform being
// applied about the cell center.
func (c *Cell) Frame() geom.Rect { return c.transform.Bounds(c.frame) }

// SetFrame sets the untransformed frame.
func (c *Cell) SetFrame(f geom.Rect) { c.frame = f }

// Transform returns the cell transform.
func (c *Cell) Transform() geom.Transform3D { return c.transform }

// SetTransform sets the cell transform.
func (c *Cell) SetTransform(t geom.Transform3D) { c.transform = t }

// Snapshot returns the cell's current attributes.
func (c *Cell) Snapshot() any {
	a := layout.NewAttributes(c.index, c.frame)
	a.Transform, a.Alpha, a.ZIndex = c.transform, c.alpha, c.zIndex
	return a
}
