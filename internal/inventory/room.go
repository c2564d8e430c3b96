package inventory

import (
	"errors"
	"fmt"
)

// Kind distinguishes ordinary classrooms from computer labs.
type Kind string

// Room kinds.
const (
	KindClassroom   Kind = "classroom"
	KindComputerLab Kind = "computerLab"
)

// ErrUnknownKind is returned when text names no known room Kind.
var ErrUnknownKind = errors.New("unknown room kind")

// ParseKind converts s to a Kind. The empty string selects KindClassroom.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindClassroom:
		return KindClassroom, nil
	case KindComputerLab:
		return KindComputerLab, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Room is a classroom, lab, or similar space holding an Inventory.
// ID is assigned once at creation and never changes.
type Room struct {
	ID    string
	Name  string
	Kind  Kind
	Items Inventory
}
