// Package patch models partial-update fields with three explicit states:
// absent from the payload (leave unchanged), present as null (clear), or
// present with a value (set). Nested optionals hide the distinction between
// "clear" and "unchanged"; a tagged field makes every handler spell out all
// three cases.
package patch

import "encoding/json"

type State int

const (
	Unchanged State = iota
	Set
	Clear
)

// Field is a tri-state update field. The zero value is Unchanged, which is
// what a field keeps when the JSON key is absent.
type Field[T any] struct {
	state State
	value T
}

// SetTo returns a field carrying the value.
func SetTo[T any](v T) Field[T] {
	return Field[T]{state: Set, value: v}
}

// Cleared returns a field requesting the target be cleared.
func Cleared[T any]() Field[T] {
	return Field[T]{state: Clear}
}

func (f Field[T]) State() State { return f.state }

// Value returns the value and whether the field is in the Set state.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == Set
}

// UnmarshalJSON is only invoked when the key is present, so the state is
// either Clear (null) or Set.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Field[T]{state: Clear}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Field[T]{state: Set, value: v}
	return nil
}

// MarshalJSON renders Set values as-is and everything else as null. Encoding
// is only used in diagnostics; the wire direction that matters is decoding.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state == Set {
		return json.Marshal(f.value)
	}
	return []byte("null"), nil
}
