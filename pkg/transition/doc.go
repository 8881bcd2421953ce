// Package transition animates a stacked card expanding to fill the screen
// and collapsing back.
//
// The animator never moves live cells. It builds an [Overlay] positioned over
// the collection, fills it with a [Clone] of every visible cell, hides the
// collection and animates the clones instead. The collection is shown again
// and the overlay removed when the run completes.
//
// # Present
//
// Over the first half of the run every clone except the target slides to
// the top (cards above the target) or the bottom (cards below) of the
// overlay, tilting to -90° and fading out. Over the whole run the target's
// transform goes to identity and its frame grows to the container bounds,
// while the destination content fades in inside it. The overlay stops
// clipping at the halfway point so the target can grow past it.
//
// # Dismiss
//
// The mirror sequence: the target shrinks back to its original frame and
// transform while the snapshot of the dismissed content fades out, and the
// other clones return in the second half.
//
// # Timing
//
// A [Run] is advanced explicitly with [Run.Step], driven by a ticker with
// [Run.Drive], or jumped to its end state with [Run.Finish]. The tilt of
// sliding clones comes from the layout's [TransformFunc], so the animator
// never derives the stack geometry itself.
package transition
