package console

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette
var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorAccent  = lipgloss.Color("#4FC3F7")
	colorMuted   = lipgloss.Color("#6b7280")
	colorError   = lipgloss.Color("#EF5350")
	colorWarn    = lipgloss.Color("#FFB74D")
)

type styles struct {
	prompt  lipgloss.Style
	title   lipgloss.Style
	heading lipgloss.Style
	command lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
}

// newStyles binds the palette to out. With color disabled every style
// renders plain text.
func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		prompt:  r.NewStyle().Bold(true).Foreground(colorAccent),
		title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		heading: r.NewStyle().Bold(true),
		command: r.NewStyle().Foreground(colorPrimary),
		muted:   r.NewStyle().Foreground(colorMuted),
		ok:      r.NewStyle().Foreground(colorPrimary),
		err:     r.NewStyle().Foreground(colorError),
		warn:    r.NewStyle().Foreground(colorWarn),
	}
}

func newMarkdownRenderer(color bool, width int) (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if !color {
		style = glamour.WithStandardStyle("notty")
	}
	return glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
}
