package scroll

import (
	"fmt"
	"slices"
)

// DataSource supplies the sections and item counts of a [View].
type DataSource interface {
	NumberOfSections() int
	NumberOfItems(section int) int
}

// List is an editable single-section data source. It is also a deletion
// delegate: locked items cannot be swiped away, and a committed deletion
// removes the item.
type List struct {
	Titles []string
	Locked map[int]bool
}

// NewList returns a list of n items titled "item 0" to "item n-1".
func NewList(n int) *List {
	l := &List{Locked: make(map[int]bool)}
	for i := range n {
		l.Titles = append(l.Titles, fmt.Sprintf("item %d", i))
	}
	return l
}

func (l *List) NumberOfSections() int { return 1 }
func (l *List) NumberOfItems(int) int { return len(l.Titles) }

// CanDelete reports whether the item at index is unlocked.
func (l *List) CanDelete(index int) bool { return !l.Locked[index] }

// DidDelete removes the item at index.
func (l *List) DidDelete(index int) {
	if index < 0 || index >= len(l.Titles) {
		return
	}
	l.Titles = slices.Delete(l.Titles, index, index+1)
	locked := make(map[int]bool, len(l.Locked))
	for i, on := range l.Locked {
		switch {
		case !on:
		case i < index:
			locked[i] = true
		case i > index:
			locked[i-1] = true
		}
	}
	l.Locked = locked
}
