package layout

// FocusState tracks the index of the item closest to the viewport center.
//
// Set notifies the delegate with WillChangeFocus(old, new) while Current
// still reports old, then with DidChangeFocus(new) once it reports new.
// Setting the current value again notifies nobody.
type FocusState struct {
	current  int
	onChange func(from, to int)
}

// Current returns the focused index.
func (f *FocusState) Current() int { return f.current }

// Set moves focus to index, notifying d when the value changes. d may be nil.
func (f *FocusState) Set(index int, d FocusChangeDelegate) {
	if index == f.current {
		return
	}
	old := f.current
	if d != nil {
		d.WillChangeFocus(old, index)
	}
	f.current = index
	if d != nil {
		d.DidChangeFocus(index)
	}
	if f.onChange != nil {
		f.onChange(old, index)
	}
}
