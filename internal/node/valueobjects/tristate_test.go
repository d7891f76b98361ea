package valueobjects

import "testing"

func TestNewTriState(t *testing.T) {
	truth := true
	lie := false

	tests := []struct {
		name     string
		input    *bool
		expected TriState
	}{
		{"nil pointer is unset", nil, TriStateUnset},
		{"true pointer is true", &truth, TriStateTrue},
		{"false pointer is false", &lie, TriStateFalse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewTriState(tt.input); got != tt.expected {
				t.Errorf("NewTriState(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTriState_IsSet(t *testing.T) {
	tests := []struct {
		name     string
		state    TriState
		expected bool
	}{
		{"unset is not set", TriStateUnset, false},
		{"true is set", TriStateTrue, true},
		{"false is set", TriStateFalse, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsSet(); got != tt.expected {
				t.Errorf("IsSet() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTriState_Bool(t *testing.T) {
	tests := []struct {
		name      string
		state     TriState
		wantValue bool
		wantOK    bool
	}{
		{"unset yields not ok", TriStateUnset, false, false},
		{"true yields true, ok", TriStateTrue, true, true},
		{"false yields false, ok", TriStateFalse, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := tt.state.Bool()
			if value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("Bool() = (%v, %v), want (%v, %v)", value, ok, tt.wantValue, tt.wantOK)
			}
		})
	}
}

func TestTriState_RoundTrip(t *testing.T) {
	// Absence must propagate as absence: a nil input must never resolve to false.
	state := NewTriState(nil)
	if _, ok := state.Bool(); ok {
		t.Error("nil input must round-trip to an unset tri-state, never a concrete bool")
	}
}
