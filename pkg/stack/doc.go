// Package stack implements a vertical stack of tilted cards, in the style of
// a browser's tab switcher, with pan-to-delete.
//
// # Geometry
//
// Card i sits at y = InsetTop + spacing·i and is rotated about the x axis.
// The tilt grows from [AngleAtTop] for a card at the top of the viewport to
// Config.MaxAngle for a card at its bottom edge. [Stack.TransformForItem]
// builds the matrix: the card is first pushed back along its own plane and
// then rotated, so it pivots about a point behind it rather than about its
// center. A perspective term is applied last.
//
// # Deletion
//
// A horizontal pan over a card moves it sideways. The gesture is modeled as
// a state machine fed with [GestureSample] values:
//
//	Idle ──began──▶ Panning ──ended──▶ Committing ──removed──▶ Idle
//	                   │                  ▲
//	                   │                  └ offset past half width, or fast fling
//	                   └──ended/cancelled──▶ Cancelling ──▶ Idle
//
// A pan only begins when the delegate allows deleting the card under the
// touch and the horizontal velocity dominates. Every change is forwarded as
// an incremental invalidation, so the layout accumulates the offset itself.
// On commit the delegate's DidDelete is called; removing the item from the
// data source is the host's job.
//
// [RenderStateChart] draws the state machine with Graphviz.
package stack
