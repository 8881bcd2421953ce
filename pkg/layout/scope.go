package layout

import "github.com/matzehuels/lnzlayouts/pkg/geom"

// Scope describes what changed since the last layout pass.
type Scope struct {
	// Everything is set when the host reloads all data.
	Everything bool

	// DataSourceCounts is set when items were inserted or removed.
	DataSourceCounts bool

	// BoundsDelta is the viewport size change. Pure scrolling yields a zero
	// delta.
	BoundsDelta geom.Size

	// Deleting is set while a pan-to-delete gesture is in progress on
	// DeletionIndex. DeletionDelta is the horizontal movement since the
	// previous update, not the accumulated offset.
	Deleting      bool
	DeletionIndex int
	DeletionDelta float64
}

// InvalidateEverything returns a scope that drops every cached value.
func InvalidateEverything() Scope { return Scope{Everything: true} }

// InvalidateCounts returns a scope for a data source change.
func InvalidateCounts() Scope { return Scope{DataSourceCounts: true} }

// InvalidateBounds returns a scope for a bounds change with the given size
// delta.
func InvalidateBounds(delta geom.Size) Scope { return Scope{BoundsDelta: delta} }

// InvalidateDeletion returns a scope carrying an incremental pan offset for
// the item at index.
func InvalidateDeletion(index int, delta float64) Scope {
	return Scope{Deleting: true, DeletionIndex: index, DeletionDelta: delta}
}

// Structural reports whether cached geometry must be recomputed.
func (s Scope) Structural() bool {
	return s.Everything || s.DataSourceCounts || !s.BoundsDelta.IsZero()
}

// geometryCache holds the per-layout scalars that are expensive to query.
// Only a structural scope clears it.
type geometryCache struct {
	count    int
	hasCount bool

	headerHeight, footerHeight float64
	hasBands                   bool

	// header and footer are reused across passes; only their x origin
	// follows the content offset.
	header, footer *Attributes

	// resetOffset asks the next Prepare to re-center the focused item.
	resetOffset bool

	// collectionSize is the viewport size recorded at the last structural
	// invalidation.
	collectionSize geom.Size
}

func newGeometryCache() geometryCache {
	return geometryCache{resetOffset: true}
}

// invalidate applies s and reports whether it was structural.
func (c *geometryCache) invalidate(s Scope, size geom.Size) bool {
	if !s.Structural() {
		return false
	}
	*c = geometryCache{resetOffset: true, collectionSize: size}
	return true
}

// itemCount returns the cached count, querying the collection on a miss.
func (c *geometryCache) itemCount(coll Collection) int {
	if !c.hasCount {
		c.count = itemCount(coll)
		c.hasCount = true
	}
	return c.count
}

// bands returns the cached header and footer heights. Without a
// HeaderFooterSizer delegate the configured defaults apply.
func (c *geometryCache) bands(coll Collection, cfg Config) (header, footer float64) {
	if !c.hasBands {
		c.headerHeight, c.footerHeight = cfg.HeaderHeight, cfg.FooterHeight
		if d, ok := coll.Delegate().(HeaderFooterSizer); ok {
			c.headerHeight, c.footerHeight = d.HeaderHeight(), d.FooterHeight()
		}
		c.hasBands = true
	}
	return c.headerHeight, c.footerHeight
}
