package report_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
	"github.com/cory-johannsen/schoolstock/internal/report"
	"github.com/cory-johannsen/schoolstock/internal/totals"
)

var testKeys = []inventory.ItemKey{inventory.Chairs, inventory.Desks}

func testRooms() []inventory.Room {
	return []inventory.Room{
		{ID: "1", Name: "6A", Items: inventory.Build(map[inventory.ItemKey]inventory.ItemState{
			inventory.Chairs: {Usable: 1200, Broken: 2},
			inventory.Desks:  {Usable: 38, Broken: 1},
		})},
		{ID: "2", Name: "6B", Items: inventory.Build(map[inventory.ItemKey]inventory.ItemState{
			inventory.Chairs: {Usable: 30},
		})},
	}
}

func testInput() report.Input {
	rooms := testRooms()
	return report.Input{
		School:      "ROYAL COLLEGE",
		Title:       "Grade 6",
		ReportTitle: "Grade 6 Inventory",
		FileStem:    "grade6_inventory",
		Rooms:       rooms,
		Totals:      totals.Compute(rooms, testKeys),
		Labels:      map[inventory.ItemKey]string{inventory.Chairs: "Student Chairs"},
		Keys:        testKeys,
	}
}

func TestBuild(t *testing.T) {
	doc, err := report.Build(testInput())
	require.NoError(t, err)
	require.NoError(t, doc.Validate())

	want := report.Document{
		Title:    "Grade 6 Inventory",
		FileStem: "grade6_inventory",
		Sections: []report.Section{
			{
				Name:       "6A",
				Heading:    "ROYAL COLLEGE - 6A",
				Subheading: "Grade 6 Inventory",
				Columns:    []string{"Category", "Usable", "Broken"},
				Rows: []report.Row{
					{Label: "Student Chairs", Values: []int{1200, 2}},
					{Label: "Desks", Values: []int{38, 1}},
				},
			},
			{
				Name:       "6B",
				Heading:    "ROYAL COLLEGE - 6B",
				Subheading: "Grade 6 Inventory",
				Columns:    []string{"Category", "Usable", "Broken"},
				Rows: []report.Row{
					{Label: "Student Chairs", Values: []int{30, 0}},
					{Label: "Desks", Values: []int{0, 0}},
				},
			},
			{
				Name:    "Summary",
				Heading: "ROYAL COLLEGE - Grade 6 Total Summary",
				Columns: []string{"Category", "Total Usable", "Total Broken"},
				Rows: []report.Row{
					{Label: "Student Chairs", Values: []int{1230, 2}},
					{Label: "Desks", Values: []int{38, 1}},
				},
				Foot: &report.Row{Label: "Grand Total", Values: []int{1268, 3}},
			},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_NoRooms(t *testing.T) {
	in := testInput()
	in.Rooms = nil
	_, err := report.Build(in)
	assert.ErrorIs(t, err, report.ErrNoRooms)
}

func TestBuild_NoSchoolOmitsPrefix(t *testing.T) {
	in := testInput()
	in.School = ""
	doc, err := report.Build(in)
	require.NoError(t, err)
	assert.Equal(t, "6A", doc.Sections[0].Heading)
}

func TestValidate_RejectsRaggedRows(t *testing.T) {
	doc := report.Document{Sections: []report.Section{{
		Columns: []string{"Category", "Usable", "Broken"},
		Rows:    []report.Row{{Label: "Chairs", Values: []int{1}}},
	}}}
	assert.Error(t, doc.Validate())
	assert.ErrorIs(t, report.Document{}.Validate(), report.ErrNoRooms)
}

func TestNumbers(t *testing.T) {
	en, err := report.NewNumbers("en")
	require.NoError(t, err)
	assert.Equal(t, "1,234,567", en.Format(1234567))
	assert.Equal(t, "12", en.Format(12))

	de, err := report.NewNumbers("de")
	require.NoError(t, err)
	assert.Equal(t, "1.234", de.Format(1234))

	_, err = report.NewNumbers("not a locale!")
	assert.Error(t, err)

	assert.Equal(t, "1234", report.Numbers{}.Format(1234))
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, "txt", f.Ext())
	assert.Equal(t, "xlsx", report.FormatXLSX.Ext())

	_, err = report.ParseFormat("docx")
	assert.Error(t, err)
}
