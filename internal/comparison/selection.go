// Package comparison holds the comparison-target selection state of an offer
// page: which catalog offer, if any, is shown next to the primary offer.
package comparison

import (
	"github.com/rshade/wattfocus/internal/offer"
)

// State is the comparison state of a page.
type State int

const (
	// NoComparison means only the primary offer is shown.
	NoComparison State = iota
	// ComparingWith means a second offer is shown next to the primary.
	ComparingWith
)

// String returns a human-readable state name.
func (s State) String() string {
	if s == ComparingWith {
		return "comparing"
	}
	return "none"
}

// Transition names the edge taken by a user action.
type Transition string

// Transitions of the selection state machine.
const (
	// TransitionCompare moves to ComparingWith(Y) for a Y other than the primary.
	TransitionCompare Transition = "compare"
	// TransitionClearBySelf leaves ComparingWith because the primary was selected.
	TransitionClearBySelf Transition = "clear_by_self"
	// TransitionReset leaves ComparingWith through the reset action.
	TransitionReset Transition = "reset"
	// TransitionNoop is a select(primary) or reset while already in NoComparison.
	TransitionNoop Transition = "noop"
)

// ChangeFunc receives the new comparison target after every user action.
// ok is false when there is no comparison target.
type ChangeFunc func(target offer.ID, ok bool)

// Selection is the session-local comparison state. It is owned by a single
// page and is not safe for concurrent use.
type Selection struct {
	primary  offer.ID
	target   offer.ID
	open     bool
	onChange ChangeFunc
}

// New creates a selection in NoComparison for the given primary offer.
// onChange may be nil.
func New(primary offer.ID, onChange ChangeFunc) *Selection {
	return &Selection{primary: primary, onChange: onChange}
}

// Restore creates a selection from a previously chosen comparison id, for
// example one carried in a URL or a CLI flag. A target equal to the primary or
// empty yields NoComparison. No callback is fired.
func Restore(primary, target offer.ID, onChange ChangeFunc) *Selection {
	s := New(primary, onChange)
	if target != "" && target != primary {
		s.target = target
	}
	return s
}

// Primary returns the primary offer id.
func (s *Selection) Primary() offer.ID {
	return s.primary
}

// State returns the current state.
func (s *Selection) State() State {
	if s.target == "" {
		return NoComparison
	}
	return ComparingWith
}

// Active reports whether a comparison target is set.
func (s *Selection) Active() bool {
	return s.State() == ComparingWith
}

// Target returns the comparison target. ok is false in NoComparison.
func (s *Selection) Target() (offer.ID, bool) {
	return s.target, s.target != ""
}

// Select handles the user picking an offer in the comparison picker. Picking
// the primary offer clears the comparison rather than comparing the offer with
// itself. Ids are not validated against the catalog. Selecting always closes
// the picker and notifies the change callback.
func (s *Selection) Select(id offer.ID) Transition {
	s.open = false

	var t Transition
	switch {
	case id == s.primary || id == "":
		t = TransitionClearBySelf
		if s.target == "" {
			t = TransitionNoop
		}
		s.target = ""
	default:
		t = TransitionCompare
		s.target = id
	}

	s.notify()
	return t
}

// ReturnToPrimary is the banner's "return to primary" action. It has the same
// effect as selecting the primary offer.
func (s *Selection) ReturnToPrimary() Transition {
	return s.Select(s.primary)
}

// Reset unconditionally clears the comparison target.
func (s *Selection) Reset() Transition {
	s.open = false

	t := TransitionReset
	if s.target == "" {
		t = TransitionNoop
	}
	s.target = ""

	s.notify()
	return t
}

// DropdownOpen reports whether the comparison picker is open.
func (s *Selection) DropdownOpen() bool {
	return s.open
}

// ToggleDropdown opens or closes the comparison picker. It does not touch the
// comparison target.
func (s *Selection) ToggleDropdown() {
	s.open = !s.open
}

// CloseDropdown closes the comparison picker.
func (s *Selection) CloseDropdown() {
	s.open = false
}

func (s *Selection) notify() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Target())
}
