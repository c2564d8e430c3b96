package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// TextExporter renders documents as bordered terminal tables. Colour is
// used only when the destination writer is a terminal that supports it.
type TextExporter struct {
	numbers Numbers
	plain   bool
}

// TextOption configures a TextExporter.
type TextOption func(*TextExporter)

// PlainText disables colour and text attributes regardless of the writer.
func PlainText() TextOption {
	return func(e *TextExporter) { e.plain = true }
}

// NewTextExporter returns a text exporter formatting counts with numbers.
func NewTextExporter(numbers Numbers, opts ...TextOption) *TextExporter {
	e := &TextExporter{numbers: numbers}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export writes doc to w as one table per section.
func (e *TextExporter) Export(ctx context.Context, doc Document, w io.Writer) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	r := lipgloss.NewRenderer(w)
	if e.plain {
		r.SetColorProfile(termenv.Ascii)
	}
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	headingStyle := r.NewStyle().Bold(true)
	subStyle := r.NewStyle().Italic(true).Foreground(lipgloss.Color("#6b7280"))
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Align(lipgloss.Right)
	footStyle := numStyle.Bold(true)

	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(titleStyle.Render(doc.Title))
		b.WriteString("\n\n")
	}
	for i, sec := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.WriteString(headingStyle.Render(sec.Heading))
		b.WriteString("\n")
		if sec.Subheading != "" {
			b.WriteString(subStyle.Render(sec.Subheading))
			b.WriteString("\n")
		}

		rows := make([][]string, 0, len(sec.Rows)+1)
		for _, row := range sec.Rows {
			rows = append(rows, e.cells(row))
		}
		footAt := -1
		if sec.Foot != nil {
			footAt = len(rows)
			rows = append(rows, e.cells(*sec.Foot))
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#6b7280"))).
			Headers(sec.Columns...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case row == footAt && col > 0:
					return footStyle
				case row == footAt:
					return headerStyle
				case col > 0:
					return numStyle
				default:
					return cellStyle
				}
			})
		b.WriteString(t.String())
		b.WriteString("\n")
		if i < len(doc.Sections)-1 {
			b.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text report: %w", err)
	}
	return nil
}

func (e *TextExporter) cells(row Row) []string {
	out := make([]string, 0, len(row.Values)+1)
	out = append(out, row.Label)
	for _, v := range row.Values {
		out = append(out, e.numbers.Format(v))
	}
	return out
}
