package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
)

// ErrEmptySummary is returned when a summary has no classes or no items.
var ErrEmptySummary = errors.New("report: summary needs at least one class and one item")

// ErrInvalidSummaryItem is returned for an item with a blank name or a
// non-positive quantity.
var ErrInvalidSummaryItem = errors.New("report: summary item needs a name and a positive quantity")

// SummaryItem is one column of a quick summary.
type SummaryItem struct {
	Name     string
	Quantity int
}

// ParseClassNames splits a comma-separated list, dropping blank entries.
func ParseClassNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ParseSummaryItem validates a name and a raw quantity.
//
// Postcondition: Returns an item with a trimmed non-empty name and
// Quantity > 0, or ErrInvalidSummaryItem.
func ParseSummaryItem(name, rawQty string) (SummaryItem, error) {
	name = strings.TrimSpace(name)
	qty := inventory.ParseCount(rawQty)
	if name == "" || qty <= 0 {
		return SummaryItem{}, fmt.Errorf("%w: %q=%q", ErrInvalidSummaryItem, name, rawQty)
	}
	return SummaryItem{Name: name, Quantity: qty}, nil
}

// ParseSummaryItems parses "name=qty" pairs separated by commas.
func ParseSummaryItems(s string) ([]SummaryItem, error) {
	var items []SummaryItem
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, qty, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name=quantity", ErrInvalidSummaryItem, part)
		}
		it, err := ParseSummaryItem(name, qty)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Summary builds a single-section document with one row per class. Every
// row repeats the item quantities and ends with their sum.
//
// Precondition: items were produced by ParseSummaryItem or satisfy its rules.
// Postcondition: Returns ErrEmptySummary when classes or items is empty.
func Summary(title, school string, classes []string, items []SummaryItem) (Document, error) {
	if len(classes) == 0 || len(items) == 0 {
		return Document{}, ErrEmptySummary
	}
	if title == "" {
		title = "Inventory Summary"
	}

	cols := make([]string, 0, len(items)+2)
	cols = append(cols, "Class")
	values := make([]int, 0, len(items)+1)
	total := 0
	for _, it := range items {
		if it.Quantity <= 0 || strings.TrimSpace(it.Name) == "" {
			return Document{}, fmt.Errorf("%w: %q=%d", ErrInvalidSummaryItem, it.Name, it.Quantity)
		}
		cols = append(cols, it.Name)
		values = append(values, it.Quantity)
		total += it.Quantity
	}
	cols = append(cols, "Total")
	values = append(values, total)

	sec := Section{
		Name:    "Summary",
		Heading: heading(school, title),
		Columns: cols,
		Rows:    make([]Row, 0, len(classes)),
	}
	for _, c := range classes {
		sec.Rows = append(sec.Rows, Row{Label: c, Values: append([]int(nil), values...)})
	}
	return Document{
		Title:     title,
		FileStem:  "inventory_summary",
		Sections:  []Section{sec},
		Landscape: len(items) > 6,
	}, nil
}
