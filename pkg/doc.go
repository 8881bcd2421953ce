// Package pkg provides the core libraries for lnzlayouts, a headless engine
// for collection view layouts.
//
// # Overview
//
// A collection view hosts a scrolling list of equally sized items. The
// libraries here compute where every item goes for a given scroll offset:
// snapping pages, endlessly wrapping rows, scaled carousels and a perspective
// stack of cards that can be swiped away. Nothing is drawn; every pass
// produces plain [layout.Attributes] that a renderer or a test can inspect.
//
// # Architecture
//
// The typical data flow through lnzlayouts:
//
//	config.Scene (TOML or flags)
//	         ↓
//	    [scroll] view (offset, bounds, data source)
//	         ↓
//	    [layout] or [stack] (geometry for the visible range)
//	         ↓
//	    [sink] package (JSON, SVG, PNG)
//
// # Quick Start
//
// Lay out five items in a carousel and export the pass:
//
//	import (
//	    "github.com/matzehuels/lnzlayouts/pkg/geom"
//	    "github.com/matzehuels/lnzlayouts/pkg/layout"
//	    "github.com/matzehuels/lnzlayouts/pkg/scroll"
//	    "github.com/matzehuels/lnzlayouts/pkg/sink"
//	)
//
//	v := scroll.New(scroll.NewList(5), geom.R(0, 0, 375, 667))
//	v.SetLayout(layout.NewCarousel(v))
//	v.ScrollBy(120, 0)
//	v.Fling(geom.Point{})
//
//	svg := sink.RenderSVG(sink.Capture("carousel", v))
//
// # Main Packages
//
// ## Layouts
//
// [layout] - The Layout contract and the row layouts built on it. SnapToCenter
// keeps the focused item centered and reports focus changes, Infinite wraps
// the content around once it is wide enough and Carousel scales cells by
// their distance from the center.
//
// [stack] - The stacked perspective layout. Cards tilt back as they rise up
// the stack and can be deleted with a horizontal pan. The pan is a small
// state machine (idle, panning, committing, cancelling) that [stack.ToDOT]
// renders as a Graphviz chart.
//
// [transition] - The animator that presents a card from the stack in full
// size and dismisses it again. A Run is stepped with explicit timestamps, so
// frames can be sampled without a display.
//
// ## Host
//
// [scroll] - An in-memory collection view: data source, offset, insets,
// cells and the invalidate, prepare and query pass every layout expects.
//
// [geom] - Points, sizes, rects, insets and 3D transforms.
//
// ## Infrastructure
//
// [config] - Scene files in TOML. A scene names the layout kind, the item
// count and the viewport, plus per-layout settings.
//
// [sink] - Snapshots of a pass and their JSON, SVG and PNG renderings.
//
// [cache] - Artifact cache with file, Redis and no-op backends, keyed by a
// hash of the scene.
//
// [observability] - Hooks for layout passes, transitions and cache access.
//
// [errors] - Coded errors shared by all packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/stack/...     # Specific package
//	go test -run Example ./...  # Examples only
package pkg
