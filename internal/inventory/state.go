package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field selects one of the two counted states of an item.
type Field string

// Counted states.
const (
	Usable Field = "usable"
	Broken Field = "broken"
)

// ErrUnknownField is returned when text names neither Usable nor Broken.
var ErrUnknownField = errors.New("unknown field")

// Valid reports whether f is Usable or Broken.
func (f Field) Valid() bool { return f == Usable || f == Broken }

// ParseField converts s (case-insensitive) to a Field.
//
// Postcondition: Returns Usable or Broken, or an error wrapping ErrUnknownField.
func ParseField(s string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case Usable:
		return Usable, nil
	case Broken:
		return Broken, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// ItemState is the usable/broken count pair for one item type.
//
// Invariant: Usable >= 0 and Broken >= 0.
type ItemState struct {
	Usable int `yaml:"usable" json:"usable"`
	Broken int `yaml:"broken" json:"broken"`
}

// Total returns Usable + Broken.
func (s ItemState) Total() int {
	return s.Usable + s.Broken
}

// Get returns the count for f. Unknown fields read as zero.
func (s ItemState) Get(f Field) int {
	switch f {
	case Usable:
		return s.Usable
	case Broken:
		return s.Broken
	default:
		return 0
	}
}

// With returns a copy of s with field f set to n, clamped at zero.
func (s ItemState) With(f Field, n int) ItemState {
	n = clamp(n)
	switch f {
	case Usable:
		s.Usable = n
	case Broken:
		s.Broken = n
	}
	return s
}

// Add returns the field-wise sum of s and o.
func (s ItemState) Add(o ItemState) ItemState {
	return ItemState{Usable: s.Usable + o.Usable, Broken: s.Broken + o.Broken}
}

func (s ItemState) normalized() ItemState {
	return ItemState{Usable: clamp(s.Usable), Broken: clamp(s.Broken)}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ParseCount leniently converts a cell edit to a count. Surrounding space is
// ignored and the leading run of digits (after an optional sign) is used, so
// "12 chairs" reads as 12. Text without leading digits, negative values and
// values too large for an int all read as 0.
//
// Postcondition: Returns a value >= 0; never fails.
func ParseCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || neg {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
