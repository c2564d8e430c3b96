// Package report turns room inventories into exportable documents and
// renders them as PDF, XLSX or plain text.
package report

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
	"github.com/cory-johannsen/schoolstock/internal/totals"
)

// ErrNoRooms is returned when a document would be built from no rooms.
var ErrNoRooms = errors.New("report: no rooms to export")

// Row is one labelled line of counts.
type Row struct {
	Label  string
	Values []int
}

// Section is one titled table of a document, usually one page.
type Section struct {
	// Name is the short section name, e.g. a room name or "Summary".
	Name       string
	Heading    string
	Subheading string
	// Columns holds the header of every column, starting with the label column.
	Columns []string
	Rows    []Row
	// Foot is an optional closing row, e.g. a grand total.
	Foot *Row
}

// Document is the renderer-independent content of an export.
type Document struct {
	Title    string
	FileStem string
	Sections []Section
	// Landscape requests a wide page layout from paged renderers.
	Landscape bool
}

// Input carries everything Build needs from a module's current state.
type Input struct {
	// School prefixes every heading, e.g. "R/EMB/ROYAL COLLEGE".
	School      string
	Title       string
	ReportTitle string
	FileStem    string
	Rooms       []inventory.Room
	Totals      totals.Totals
	Labels      map[inventory.ItemKey]string
	Keys        []inventory.ItemKey
}

// Build lays out one section per room followed by a summary section with
// the per-key totals and a grand total row.
//
// Postcondition: Returns a document with len(in.Rooms)+1 sections, or
// ErrNoRooms when in.Rooms is empty.
func Build(in Input) (Document, error) {
	if len(in.Rooms) == 0 {
		return Document{}, ErrNoRooms
	}

	doc := Document{
		Title:    in.ReportTitle,
		FileStem: in.FileStem,
		Sections: make([]Section, 0, len(in.Rooms)+1),
	}
	for _, r := range in.Rooms {
		sec := Section{
			Name:       r.Name,
			Heading:    heading(in.School, r.Name),
			Subheading: in.ReportTitle,
			Columns:    []string{"Category", "Usable", "Broken"},
			Rows:       make([]Row, 0, len(in.Keys)),
		}
		for _, k := range in.Keys {
			s := r.Items.Get(k)
			sec.Rows = append(sec.Rows, Row{Label: label(in.Labels, k), Values: []int{s.Usable, s.Broken}})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	summary := Section{
		Name:    "Summary",
		Heading: heading(in.School, in.Title+" Total Summary"),
		Columns: []string{"Category", "Total Usable", "Total Broken"},
		Rows:    make([]Row, 0, len(in.Keys)),
	}
	for _, kt := range in.Totals.Rows() {
		summary.Rows = append(summary.Rows, Row{
			Label:  label(in.Labels, kt.Key),
			Values: []int{kt.State.Usable, kt.State.Broken},
		})
	}
	g := totals.Grand(in.Totals)
	summary.Foot = &Row{Label: "Grand Total", Values: []int{g.Usable, g.Broken}}
	doc.Sections = append(doc.Sections, summary)

	return doc, nil
}

// Validate checks that doc can be rendered.
func (d Document) Validate() error {
	if len(d.Sections) == 0 {
		return ErrNoRooms
	}
	for i, s := range d.Sections {
		for j, r := range s.Rows {
			if len(r.Values)+1 != len(s.Columns) {
				return fmt.Errorf("report: section %d row %d has %d values for %d columns", i, j, len(r.Values), len(s.Columns))
			}
		}
	}
	return nil
}

func heading(school, name string) string {
	if school == "" {
		return name
	}
	return school + " - " + name
}

func label(labels map[inventory.ItemKey]string, k inventory.ItemKey) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return k.Label()
}
