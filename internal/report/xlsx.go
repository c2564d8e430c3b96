package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// XLSXExporter renders documents as an Excel workbook with one sheet per
// section.
type XLSXExporter struct{}

// NewXLSXExporter returns an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

type xlsxStyles struct {
	title, header, label, number, foot int
}

// Export writes doc to w as an .xlsx workbook.
func (e *XLSXExporter) Export(ctx context.Context, doc Document, w io.Writer) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	st, err := newXLSXStyles(f)
	if err != nil {
		return err
	}

	used := make(map[string]bool, len(doc.Sections))
	for _, sec := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := sheetName(sec.Name, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}
		if err := writeSection(f, name, sec, st); err != nil {
			return fmt.Errorf("writing sheet %q: %w", name, err)
		}
	}
	if !used["sheet1"] {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("deleting default sheet: %w", err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	var st xlsxStyles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return st, fmt.Errorf("creating title style: %w", err)
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, fmt.Errorf("creating header style: %w", err)
	}
	if st.label, err = f.NewStyle(&excelize.Style{Border: border}); err != nil {
		return st, fmt.Errorf("creating label style: %w", err)
	}
	if st.number, err = f.NewStyle(&excelize.Style{
		Border:    border,
		NumFmt:    3,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, fmt.Errorf("creating number style: %w", err)
	}
	if st.foot, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Border: border,
		NumFmt: 3,
	}); err != nil {
		return st, fmt.Errorf("creating footer style: %w", err)
	}
	return st, nil
}

// writeSection lays a section out as: heading in row 1, subheading in row 2,
// column headers in row 4 and data from row 5.
func writeSection(f *excelize.File, sheet string, sec Section, st xlsxStyles) error {
	if err := f.SetCellValue(sheet, "A1", sec.Heading); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return err
	}
	if sec.Subheading != "" {
		if err := f.SetCellValue(sheet, "A2", sec.Subheading); err != nil {
			return err
		}
	}

	const headerRow = 4
	for col, h := range sec.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return err
		}
	}

	row := headerRow + 1
	for _, r := range sec.Rows {
		if err := writeRow(f, sheet, row, r, st.label, st.number); err != nil {
			return err
		}
		row++
	}
	if sec.Foot != nil {
		if err := writeRow(f, sheet, row, *sec.Foot, st.foot, st.foot); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	if len(sec.Columns) > 1 {
		last, err := excelize.ColumnNumberToName(len(sec.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", last, 14); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, r Row, labelStyle, numStyle int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, r.Label); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, cell, labelStyle); err != nil {
		return err
	}
	for i, v := range r.Values {
		cell, err := excelize.CoordinatesToCellName(i+2, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, numStyle); err != nil {
			return err
		}
	}
	return nil
}

// sheetName makes name a valid, unused worksheet name. Excel compares sheet
// names case-insensitively, so collisions are found that way while the
// caller's spelling is kept.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "Sheet"
	}
	clean = truncate(clean, maxSheetName)

	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncate(clean, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
