// Package catalog loads inventory module definitions: one per grade or lab,
// each naming its item keys, labels and seed rooms.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
)

// ErrUnknownModule is returned when a module ID is not registered.
var ErrUnknownModule = errors.New("unknown module")

// Seed is an initial room of a module.
type Seed struct {
	Name  string
	Items map[inventory.ItemKey]inventory.ItemState
}

// SummaryItem is one line of a module's quick summary defaults.
type SummaryItem struct {
	Name     string
	Quantity int
}

// SummaryDefaults pre-fills the quick summary generator for a module.
type SummaryDefaults struct {
	Classes []string
	Items   []SummaryItem
}

// Module configures one room-collection component.
type Module struct {
	// ID is the unique module identifier, e.g. "grade3".
	ID string
	// Title is the human-readable name, e.g. "Grade 3".
	Title string
	// Kind is the kind of room the module tracks.
	Kind inventory.Kind
	// Keys is the ordered subset of item keys shown and totalled.
	Keys []inventory.ItemKey
	// Labels maps every key in Keys to its display label.
	Labels map[inventory.ItemKey]string
	// ReportTitle heads exported documents.
	ReportTitle string
	// FileStem names exported files (without extension).
	FileStem string
	// Seeds are the rooms present when a session starts.
	Seeds []Seed
	// Summary holds the quick summary generator defaults; may be zero.
	Summary SummaryDefaults
}

// Validate checks the module invariants.
//
// Postcondition: Returns nil if the module is valid, or an error listing all violations.
func (m *Module) Validate() error {
	var errs []string
	if m.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if strings.TrimSpace(m.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	if len(m.Keys) == 0 {
		errs = append(errs, "keys must not be empty")
	}
	for _, k := range m.Keys {
		if !k.Valid() {
			errs = append(errs, fmt.Sprintf("unknown key %q", k))
		}
	}
	for i, s := range m.Seeds {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("room %d: name must not be empty", i))
		}
	}
	for _, it := range m.Summary.Items {
		if it.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("summary item %q: quantity must be > 0", it.Name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("module %q: %s", m.ID, strings.Join(errs, "; "))
	}
	return nil
}
