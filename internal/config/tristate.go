package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TriState is a boolean with an extra "not yet decided" state used while
// layers are merged. The zero value is Unset.
type TriState int8

const (
	Unset TriState = iota
	False
	True
)

// Bool converts b to a set TriState.
func Bool(b bool) TriState {
	if b {
		return True
	}
	return False
}

// IsSet reports whether a layer has decided the value.
func (t TriState) IsSet() bool { return t == True || t == False }

// IsTrue reports whether the value is set and true.
func (t TriState) IsTrue() bool { return t == True }

// Or returns t when set and def otherwise.
func (t TriState) Or(def bool) TriState {
	if t.IsSet() {
		return t
	}
	return Bool(def)
}

// String returns the string representation of a TriState.
func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// MarshalYAML renders set values as booleans and Unset as "unset".
func (t TriState) MarshalYAML() (any, error) {
	if t.IsSet() {
		return t == True, nil
	}
	return "unset", nil
}

// UnmarshalYAML accepts a boolean or the literal "unset".
func (t *TriState) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: tri-state must be a scalar", value.Line)
	}
	if value.Value == "unset" || value.Value == "" {
		*t = Unset
		return nil
	}
	var b bool
	if err := value.Decode(&b); err != nil {
		return fmt.Errorf("line %d: invalid tri-state %q", value.Line, value.Value)
	}
	*t = Bool(b)
	return nil
}
