// Package scroll is an in-memory scroll view that hosts the layouts of
// [github.com/matzehuels/lnzlayouts/pkg/layout] and
// [github.com/matzehuels/lnzlayouts/pkg/stack].
//
// A [View] owns a data source, a viewport and a layout. Every call that moves
// or resizes the viewport runs one layout pass the way a UI toolkit would:
//
//	if l.ShouldInvalidate(bounds) {
//	    l.Invalidate(l.InvalidationScopeForBounds(bounds))
//	}
//	l.Prepare()
//	attrs := l.AttributesForElements(bounds)
//
// and keeps a [Cell] for every visible item, so the view can also serve as
// the collection of a [github.com/matzehuels/lnzlayouts/pkg/transition]
// run. A [Container] is the matching transition host.
//
// The package is used by the command line tool and by tests; it draws
// nothing.
package scroll
