package transition

import (
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// TransformFunc maps a card's untransformed origin and size and a rotation
// angle to its 3-D transform.
type TransformFunc func(origin geom.Point, size geom.Size, angle float64) geom.Transform3D

// View is a rendered cell.
type View interface {
	// Frame returns the frame in the collection's content coordinates. For
	// a transformed view it is the bounding box of the transformed bounds.
	Frame() geom.Rect
	SetFrame(f geom.Rect)
	Transform() geom.Transform3D
	SetTransform(t geom.Transform3D)

	// Snapshot returns an opaque image of the view.
	Snapshot() any
}

// PerspectiveCollection is the collection a transition starts from or
// returns to.
type PerspectiveCollection interface {
	// VisibleItems returns the indexes that currently have a cell.
	VisibleItems() []int

	// Cell returns the cell for index, or nil when it is not visible.
	Cell(index int) View

	// Frame returns the collection's frame in container coordinates.
	Frame() geom.Rect

	// Bounds returns the visible rectangle; its origin is the content
	// offset.
	Bounds() geom.Rect

	ContentInset() geom.Insets
	Alpha() float64
	SetAlpha(a float64)
}

// Host owns the container the transition runs in.
type Host interface {
	ContainerBounds() geom.Rect
	AddOverlay(o *Overlay)
	RemoveOverlay(o *Overlay)
	CompleteTransition(finished bool)
}

// Clone is the stand-in for one visible cell during a transition. Its frame
// is in overlay coordinates.
type Clone struct {
	Index     int              `json:"index"`
	Target    bool             `json:"target,omitempty"`
	Frame     geom.Rect        `json:"frame"`
	Transform geom.Transform3D `json:"transform"`
	Alpha     float64          `json:"alpha"`
	Snapshot  any              `json:"-"`
}

// Overlay is the view the clones are animated in.
type Overlay struct {
	ID            string    `json:"id"`
	Frame         geom.Rect `json:"frame"`
	ClipsToBounds bool      `json:"clips_to_bounds"`
	Clones        []*Clone  `json:"clones"`

	// Content is the destination content shown inside the target clone
	// when presenting, or the snapshot of the dismissed content.
	Content      any     `json:"-"`
	ContentAlpha float64 `json:"content_alpha"`
}

// Clone returns the clone of the item at index.
func (o *Overlay) Clone(index int) (*Clone, bool) {
	for _, c := range o.Clones {
		if c.Index == index {
			return c, true
		}
	}
	return nil, false
}

// Frame is the state of an overlay at one point of a run.
type Frame struct {
	Progress      float64 `json:"progress"`
	ClipsToBounds bool    `json:"clips_to_bounds"`
	ContentAlpha  float64 `json:"content_alpha"`
	Clones        []Clone `json:"clones"`
}
