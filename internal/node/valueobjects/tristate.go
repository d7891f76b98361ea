// Package valueobjects holds the small, immutable value types shared across
// the node descriptor and its per-scheme payloads.
package valueobjects

// TriState distinguishes "not requested" from an explicit true/false. Emitters
// must never treat TriStateUnset as TriStateFalse — absence must propagate as
// absence.
type TriState int

const (
	TriStateUnset TriState = iota
	TriStateTrue
	TriStateFalse
)

// NewTriState converts a bool pointer into a TriState: nil means unset.
func NewTriState(v *bool) TriState {
	if v == nil {
		return TriStateUnset
	}
	if *v {
		return TriStateTrue
	}
	return TriStateFalse
}

// IsSet reports whether the flag was explicitly requested either way.
func (t TriState) IsSet() bool {
	return t != TriStateUnset
}

// Bool returns the explicit value and whether one was set.
func (t TriState) Bool() (value bool, ok bool) {
	switch t {
	case TriStateTrue:
		return true, true
	case TriStateFalse:
		return false, true
	default:
		return false, false
	}
}

// String renders the tri-state for diagnostics.
func (t TriState) String() string {
	switch t {
	case TriStateTrue:
		return "true"
	case TriStateFalse:
		return "false"
	default:
		return "unset"
	}
}
