package survey

import (
	"encoding/json"
	"errors"
)

// ErrInvalidValue is returned when an answer payload is neither a string nor
// an array of strings.
var ErrInvalidValue = errors.New("answer must be a string or an array of strings")

// Value is a tagged union over the two answer shapes: a single choice or a
// set of choices. The zero Value is an empty single choice.
type Value struct {
	single   string
	multiple []string
	isMulti  bool
}

// Single builds a single-choice value.
func Single(s string) Value {
	return Value{single: s}
}

// Multiple builds a multi-choice value. Caller-supplied order is preserved.
func Multiple(ss []string) Value {
	return Value{multiple: ss, isMulti: true}
}

// IsMultiple reports whether the value holds a set of choices.
func (v Value) IsMultiple() bool { return v.isMulti }

// IsEmpty reports whether no choice has been made.
func (v Value) IsEmpty() bool {
	if v.isMulti {
		return len(v.multiple) == 0
	}
	return v.single == ""
}

// Single returns the single choice, or "" for multi values.
func (v Value) Single() string {
	if v.isMulti {
		return ""
	}
	return v.single
}

// Choices returns the selected options of a multi value in caller order.
func (v Value) Choices() []string {
	if !v.isMulti {
		return nil
	}
	return v.multiple
}

// Contains reports whether option is among the selected choices.
func (v Value) Contains(option string) bool {
	if !v.isMulti {
		return v.single == option
	}
	for _, c := range v.multiple {
		if c == option {
			return true
		}
	}
	return false
}

// Toggle returns a copy of a multi value with option added if absent or
// removed if present. Single values are replaced wholesale instead.
func (v Value) Toggle(option string) Value {
	if !v.isMulti {
		return Multiple([]string{option})
	}
	out := make([]string, 0, len(v.multiple)+1)
	removed := false
	for _, c := range v.multiple {
		if c == option {
			removed = true
			continue
		}
		out = append(out, c)
	}
	if !removed {
		out = append(out, option)
	}
	return Multiple(out)
}

// Display renders the value for human-readable contexts: the raw string for
// single choices, the JSON array form for multi choices.
func (v Value) Display() string {
	if !v.isMulti {
		return v.single
	}
	b, err := json.Marshal(v.multiple)
	if err != nil {
		return ""
	}
	return string(b)
}

// MarshalJSON emits the union's wire form: a JSON string or a JSON array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isMulti {
		if v.multiple == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.multiple)
	}
	return json.Marshal(v.single)
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Single(s)
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err == nil {
		*v = Multiple(ss)
		return nil
	}
	return ErrInvalidValue
}

// EncodeValue serializes a value to its stable storage string. The storage
// form is the value's JSON encoding, so a single choice is stored quoted and
// a multi choice as an array literal.
func EncodeValue(v Value) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeValue is the symmetric inverse of EncodeValue.
func DecodeValue(s string) (Value, error) {
	var v Value
	if err := v.UnmarshalJSON([]byte(s)); err != nil {
		return Value{}, err
	}
	return v, nil
}

// Answer pairs a catalog question with the respondent's value.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      Value  `json:"answer"`
}
