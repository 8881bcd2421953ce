package layout

import (
	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// Kind identifies what an [Attributes] value describes.
type Kind string

const (
	KindCell   Kind = "cell"
	KindHeader Kind = "header"
	KindFooter Kind = "footer"
)

// Attributes is the computed geometry of one element for one layout pass.
// Values are owned by the caller once returned.
type Attributes struct {
	Index          int              `json:"index"`
	Kind           Kind             `json:"kind"`
	Frame          geom.Rect        `json:"frame"`
	Transform      geom.Transform3D `json:"transform"`
	ZIndex         int              `json:"z_index"`
	Alpha          float64          `json:"alpha"`
	DeletionOffset float64          `json:"deletion_offset,omitempty"`
	Hidden         bool             `json:"hidden,omitempty"`
}

// NewAttributes returns opaque, untransformed attributes for a cell.
func NewAttributes(index int, frame geom.Rect) Attributes {
	return Attributes{
		Index:     index,
		Kind:      KindCell,
		Frame:     frame,
		Transform: geom.Identity(),
		Alpha:     1,
	}
}

func supplementary(kind Kind, frame geom.Rect) Attributes {
	a := NewAttributes(0, frame)
	a.Kind = kind
	return a
}

// Center returns the center of the frame.
func (a Attributes) Center() geom.Point { return a.Frame.Center() }

// IsCell reports whether a describes an item rather than a header or footer.
func (a Attributes) IsCell() bool { return a.Kind == KindCell }

// =============================================================================
// Host Collaborators
// =============================================================================

// Collection is the scroll view a layout computes geometry for.
type Collection interface {
	// NumberOfSections returns the data source's section count.
	NumberOfSections() int

	// NumberOfItems returns the number of items in a section.
	NumberOfItems(section int) int

	// Bounds returns the visible rectangle in content coordinates. Its
	// origin is the content offset.
	Bounds() geom.Rect

	// ContentInset returns the scroll view's content inset.
	ContentInset() geom.Insets

	// Delegate returns the host's delegate object, or nil. Layouts discover
	// optional capabilities on it by type assertion.
	Delegate() any
}

// OffsetSetter is implemented by collections whose content offset a layout
// may move during Prepare.
type OffsetSetter interface {
	SetContentOffset(p geom.Point)
}

// VisibleIndexer is implemented by collections that can report which items
// currently have an on-screen cell.
type VisibleIndexer interface {
	VisibleItems() []int
}

// ItemSizer lets a delegate size items individually.
type ItemSizer interface {
	SizeForItem(index int) geom.Size
}

// HeaderFooterSizer lets a delegate request header and footer bands.
// A zero height means no band.
type HeaderFooterSizer interface {
	HeaderHeight() float64
	FooterHeight() float64
}

// FocusChangeDelegate is notified around every change of the focused item.
type FocusChangeDelegate interface {
	// WillChangeFocus is called before the focused index changes.
	WillChangeFocus(from, to int)

	// DidChangeFocus is called after the focused index changed.
	DidChangeFocus(index int)
}

// FocusTracker is implemented by layouts that track a focused item.
type FocusTracker interface {
	FocusedIndex() int
}

// Layout is the contract a host drives on every geometry change.
type Layout interface {
	ContentSize() geom.Size
	Prepare()
	AttributesForElements(rect geom.Rect) []Attributes
	AttributesForItem(index int) (Attributes, bool)
	InvalidationScopeForBounds(newBounds geom.Rect) Scope
	Invalidate(scope Scope)
	ShouldInvalidate(newBounds geom.Rect) bool
	TargetOffset(proposed, velocity geom.Point) geom.Point
}

// CheckSections returns an UNSUPPORTED_SECTIONS error when c reports more
// than one section.
func CheckSections(c Collection) error {
	if n := c.NumberOfSections(); n > 1 {
		return errors.New(errors.ErrCodeUnsupportedSections,
			"layout supports one section, collection has %d", n)
	}
	return nil
}

// MustSingleSection panics when c reports more than one section.
func MustSingleSection(c Collection) {
	if err := CheckSections(c); err != nil {
		panic(err)
	}
}

// itemCount queries the data source for the number of items, enforcing the
// single-section rule. A collection without sections has no items.
func itemCount(c Collection) int {
	MustSingleSection(c)
	if c.NumberOfSections() == 0 {
		return 0
	}
	return c.NumberOfItems(0)
}
