// Package layout computes item geometry for a horizontally scrolling,
// single-section item collection.
//
// # Overview
//
// A host scroll view (anything implementing [Collection]) asks a layout for
// the geometry of its items whenever its bounds change. The layout answers
// with [Attributes] values: frame, 3-D transform, z-order and alpha per
// item. Layouts never own the items; they only cache a handful of scalars
// (item count, header and footer heights, cycle size) and drop them when the
// host reports a structural change through a [Scope].
//
// Three layouts are provided, each built on the previous one by composition:
//
//   - [SnapToCenter] places fixed-size items in one row with uniform spacing
//     and settles scrolling so that an item is centered in the viewport.
//   - [Infinite] maps an enormous virtual content width onto the same item
//     set, cycle by cycle, so the row can be scrolled in both directions
//     without duplicating items.
//   - [Carousel] scales items down with their distance from the viewport
//     center and orders them so the centered item paints on top.
//
// # Host Contract
//
// On every bounds change the host calls, in order:
//
//	if l.ShouldInvalidate(newBounds) {
//	    l.Invalidate(l.InvalidationScopeForBounds(newBounds))
//	}
//	l.Prepare()
//	attrs := l.AttributesForElements(newBounds)
//
// A bounds change that only moves the content offset yields a [Scope] with a
// zero size delta. Such a scope keeps every cached value, so scrolling never
// re-queries the data source. A size change, a data source change or an
// explicit [InvalidateEverything] drops the caches.
//
// # Focus
//
// The item whose center is closest to the viewport center is "in focus".
// [FocusState] tracks it and notifies a [FocusChangeDelegate] before and after
// every change. Repeated updates to the same index are silent.
//
// # Sections
//
// Every layout in this package supports exactly one section. A host reporting
// more than one is misconfigured; [MustSingleSection] panics with an
// UNSUPPORTED_SECTIONS error in that case.
package layout
