// Package sink writes layout passes and transition runs to files.
//
// A [Pass] is the result of one layout pass: the viewport, the content size
// and the attributes the layout returned. [RenderJSON] serialises it for
// other tools; [RenderSVG] draws it, projecting each cell's 3-D transform
// so tilted and scaled cards look the way a host would show them, and
// [RenderPNG] rasterises the same picture.
//
// Transition runs are written with [RenderFramesJSON], one entry per
// sampled frame.
package sink
