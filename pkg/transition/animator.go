package transition

import (
	"context"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/observability"
)

// Animator presents or dismisses the card at one index.
type Animator struct {
	index     int
	transform TransformFunc
	opts      Options
}

// New creates an animator for the card at index. fn is the layout's
// transform function, used to tilt the clones that slide away.
func New(index int, fn TransformFunc, opts ...Option) *Animator {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Easing == nil {
		o.Easing = EaseInOut
	}
	return &Animator{index: index, transform: fn, opts: o}
}

// Index returns the index of the animated card.
func (a *Animator) Index() int { return a.index }

// Options returns the animator options.
func (a *Animator) Options() Options { return a.opts }

// Start builds the overlay, hides the collection and returns a run at
// progress 0. content is the destination content when presenting or a
// snapshot of the dismissed content.
func (a *Animator) Start(ctx context.Context, coll PerspectiveCollection, host Host, content any) (*Run, error) {
	if coll == nil || host == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transition needs a collection and a host")
	}
	if a.transform == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "transition needs a transform function")
	}
	if err := a.opts.Validate(); err != nil {
		return nil, err
	}

	cf, b, in := coll.Frame(), coll.Bounds(), coll.ContentInset()
	ov := &Overlay{
		ID:      uuid.NewString(),
		Frame:   geom.R(cf.MinX(), cf.MinY()+in.Top, cf.Width(), cf.Height()-in.Top-in.Bottom),
		Content: content,
	}
	// Content coordinates to overlay coordinates.
	dx := cf.MinX() - b.MinX() - ov.Frame.MinX()
	dy := cf.MinY() - b.MinY() - ov.Frame.MinY()
	full := host.ContainerBounds().Offset(-ov.Frame.MinX(), -ov.Frame.MinY())

	r := &Run{
		ID:       ov.ID,
		ctx:      ctx,
		overlay:  ov,
		coll:     coll,
		host:     host,
		duration: a.opts.Duration,
		easing:   a.opts.Easing,
		reversed: a.opts.Reversed,
	}

	visible := slices.Clone(coll.VisibleItems())
	slices.Sort(visible)
	for _, i := range visible {
		cell := coll.Cell(i)
		if cell == nil {
			continue
		}
		t := cell.Transform()
		cell.SetTransform(geom.Identity())
		frame := cell.Frame().Offset(dx, dy)
		cell.SetTransform(t)

		c := &Clone{Index: i, Target: i == a.index, Snapshot: cell.Snapshot(), Frame: frame, Transform: t, Alpha: 1}
		ov.Clones = append(ov.Clones, c)
		r.tracks = append(r.tracks, a.track(c, frame, t, full, ov.Frame.Height()))
	}

	if a.opts.Reversed {
		ov.ClipsToBounds = false
		r.content = [2]float64{1, 0}
	} else {
		ov.ClipsToBounds = true
		r.content = [2]float64{0, 0}
		if a.opts.Interpolate {
			r.content[1] = 1
		}
	}
	r.apply(0)

	coll.SetAlpha(0)
	host.AddOverlay(ov)
	observability.Transition().OnTransitionStart(ctx, r.ID, a.index, a.opts.Reversed, len(ov.Clones))
	observability.Transition().OnTransitionPhase(ctx, r.ID, PhaseStart)
	return r, nil
}

// track builds the keyframes of one clone. original and transform describe
// the clone's place in the stack; full is the container in overlay
// coordinates.
func (a *Animator) track(c *Clone, original geom.Rect, transform geom.Transform3D, full geom.Rect, height float64) track {
	open := a.openState(c.Index, original.Size, height)
	stack := keyframe{frame: original, transform: transform, alpha: 1}

	switch {
	case c.Target && !a.opts.Reversed:
		expanded := keyframe{frame: full, transform: geom.Identity(), alpha: 1}
		return track{clone: c, from: stack, to: expanded, start: 0, end: 1}
	case c.Target:
		expanded := keyframe{frame: full, transform: geom.Identity(), alpha: 1}
		return track{clone: c, from: expanded, to: stack, start: 0, end: 1}
	case !a.opts.Reversed:
		return track{clone: c, from: stack, to: open, start: 0, end: 0.5}
	default:
		return track{clone: c, from: open, to: stack, start: 0.5, end: 1}
	}
}

// openState is where a non-target clone goes while the target is expanded:
// the top edge for cards above the target, the bottom edge for cards below,
// tilted flat and transparent.
func (a *Animator) openState(index int, size geom.Size, height float64) keyframe {
	origin := geom.Pt(0, 0)
	if index > a.index {
		origin = geom.Pt(0, height)
	}
	return keyframe{
		frame:     geom.Rect{Origin: origin, Size: size},
		transform: a.transform(origin, size, -math.Pi/2),
		alpha:     0,
	}
}
