package layout

import (
	"math"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// Virtual extent of an infinite row, in cycles. The row starts in the middle
// so it can be scrolled the same distance in both directions.
const (
	cycleCount      = 20000
	cycleStartIndex = cycleCount / 2
)

// Cycle maps virtual content coordinates onto a finite item set. Cycle 0
// spans [Start, Start+Size.Width); negative cycles lie before it.
type Cycle struct {
	Size  geom.Size
	Start float64
}

// NewCycle returns the cycle for count items of the given page width and
// item height, starting in the middle of the virtual extent.
func NewCycle(count int, page, height float64) Cycle {
	w := page * float64(count)
	return Cycle{Size: geom.Sz(w, height), Start: w * cycleStartIndex}
}

// ContentWidth is the virtual width of the whole row.
func (c Cycle) ContentWidth() float64 { return c.Size.Width * cycleCount }

// Index returns the cycle containing the virtual x coordinate.
func (c Cycle) Index(x float64) int {
	return int(math.Floor((x - c.Start) / c.Size.Width))
}

// Frame returns the extent of cycle i.
func (c Cycle) Frame(i int) geom.Rect {
	return geom.R(c.Start+c.Size.Width*float64(i), 0, c.Size.Width, c.Size.Height)
}

// Items returns the items of a count-item row that intersect rect, visiting
// every cycle rect overlaps. frame places local item j of a cycle starting
// at x.
func (c Cycle) Items(rect geom.Rect, count int, page float64, frame func(j int, x float64) geom.Rect) []Item {
	if c.Size.Width == 0 || count == 0 || page <= 0 {
		return nil
	}
	var items []Item
	x := rect.MinX()
	for i := c.Index(rect.MinX()); i <= c.Index(rect.MaxX()); i++ {
		cf := c.Frame(i)
		end := min(cf.MaxX(), rect.MaxX())
		first := max(int(math.Floor((x-cf.MinX())/page)), 0)
		last := min(int(math.Floor((end-cf.MinX())/page)), count-1)
		for j := first; j <= last; j++ {
			items = append(items, Item{Index: j, Frame: frame(j, cf.MinX())})
		}
		x = end
	}
	return items
}
