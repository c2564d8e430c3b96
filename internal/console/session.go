package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/book"
	"github.com/cory-johannsen/schoolstock/internal/inventory"
	"github.com/cory-johannsen/schoolstock/internal/report"
	"github.com/cory-johannsen/schoolstock/internal/resources"
)

// Config tunes a Session.
type Config struct {
	Prompt        string
	Color         bool
	Width         int
	School        string
	OutputDir     string
	DefaultFormat report.Format
	DefaultModule string
	Numbers       report.Numbers
}

// Session is one interactive console over a shelf of books. It is driven
// by a single goroutine; only resource searches block.
type Session struct {
	cfg       Config
	shelf     *book.Shelf
	current   *book.Book
	exporters map[report.Format]report.Exporter
	finder    *resources.Service
	registry  *Registry
	screen    *report.TextExporter
	md        *glamour.TermRenderer
	st        styles
	out       io.Writer
	logger    *zap.Logger
}

// NewSession creates a session writing to out.
//
// Precondition: shelf must hold at least one book; logger must be non-nil.
// Postcondition: The current book is cfg.DefaultModule, or the first book
// when that is empty.
func NewSession(cfg Config, shelf *book.Shelf, exporters map[report.Format]report.Exporter, finder *resources.Service, out io.Writer, logger *zap.Logger) (*Session, error) {
	if cfg.Prompt == "" {
		cfg.Prompt = "schoolstock> "
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = report.FormatPDF
	}

	var current *book.Book
	if cfg.DefaultModule != "" {
		b, err := shelf.Book(cfg.DefaultModule)
		if err != nil {
			return nil, err
		}
		current = b
	} else if books := shelf.Books(); len(books) > 0 {
		current = books[0]
	}
	if current == nil {
		return nil, errors.New("console: no modules loaded")
	}

	md, err := newMarkdownRenderer(cfg.Color, cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	var screenOpts []report.TextOption
	if !cfg.Color {
		screenOpts = append(screenOpts, report.PlainText())
	}

	return &Session{
		cfg:       cfg,
		shelf:     shelf,
		current:   current,
		exporters: exporters,
		finder:    finder,
		registry:  DefaultRegistry(),
		screen:    report.NewTextExporter(cfg.Numbers, screenOpts...),
		md:        md,
		st:        newStyles(out, cfg.Color),
		out:       out,
		logger:    logger,
	}, nil
}

// Current returns the book being edited.
func (s *Session) Current() *book.Book {
	return s.current
}

// Run reads commands from in until quit, end of input or ctx is done.
//
// Postcondition: Returns nil on quit or end of input, ctx.Err() on
// cancellation, or a wrapped read error.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	s.banner()
	s.prompt()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
				default:
				}
				s.println("")
				return nil
			}
			if s.Execute(ctx, line) {
				return nil
			}
			s.prompt()
		}
	}
}

// Execute runs one command line.
//
// Postcondition: Returns true when the line asked to quit.
func (s *Session) Execute(ctx context.Context, line string) bool {
	parsed := Parse(line)
	if parsed.Command == "" {
		return false
	}
	cmd, ok := s.registry.Resolve(parsed.Command)
	if !ok {
		s.errorf("Unknown command %q. Type 'help' for a list of commands.", parsed.Command)
		return false
	}

	switch cmd.Handler {
	case HandlerModules:
		s.listModules()
	case HandlerUse:
		s.use(parsed)
	case HandlerShow:
		s.show(parsed)
	case HandlerTotals:
		s.totals()
	case HandlerAdd:
		s.addRoom(parsed)
	case HandlerRemove:
		s.removeRoom(parsed)
	case HandlerSet:
		s.set(cmd, parsed)
	case HandlerExport:
		s.export(ctx, parsed)
	case HandlerSummary:
		s.summary(ctx, parsed)
	case HandlerSearch:
		s.search(ctx, parsed.RawArgs)
	case HandlerCategories:
		s.categories(ctx, parsed)
	case HandlerHelp:
		s.help()
	case HandlerQuit:
		s.println(s.st.muted.Render("Goodbye."))
		return true
	default:
		s.errorf("Command %q is not available here.", cmd.Name)
	}
	return false
}

func (s *Session) banner() {
	s.println(s.st.title.Render(s.title()))
	s.println(s.st.muted.Render(fmt.Sprintf("Editing %s. Type 'help' for commands.", s.current.Module().Title)))
}

func (s *Session) title() string {
	if s.cfg.School == "" {
		return "School Inventory"
	}
	return s.cfg.School + " Inventory"
}

func (s *Session) prompt() {
	_, _ = io.WriteString(s.out, s.st.prompt.Render(fmt.Sprintf("[%s] %s", s.current.Module().ID, s.cfg.Prompt)))
}

func (s *Session) println(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}

func (s *Session) infof(format string, args ...any) {
	s.println(s.st.ok.Render(fmt.Sprintf(format, args...)))
}

func (s *Session) errorf(format string, args ...any) {
	s.println(s.st.err.Render(fmt.Sprintf(format, args...)))
}

func (s *Session) usage(cmd *Command) {
	s.errorf("Usage: %s", cmd.Usage)
}

func (s *Session) listModules() {
	for _, b := range s.shelf.Books() {
		marker := "  "
		if b == s.current {
			marker = "* "
		}
		m := b.Module()
		s.println(fmt.Sprintf("%s%s  %s  %s",
			marker,
			s.st.command.Render(fmt.Sprintf("%-14s", m.ID)),
			m.Title,
			s.st.muted.Render(fmt.Sprintf("(%d rooms)", b.Rooms().Len()))))
	}
}

func (s *Session) use(p ParseResult) {
	if len(p.Args) != 1 {
		cmd, _ := s.registry.Resolve(HandlerUse)
		s.usage(cmd)
		return
	}
	b, err := s.shelf.Book(p.Args[0])
	if err != nil {
		s.errorf("No module %q. Type 'modules' to list them.", p.Args[0])
		return
	}
	s.current = b
	s.infof("Now editing %s.", b.Module().Title)
}

func (s *Session) show(p ParseResult) {
	rooms := s.current.Rooms().Rooms()
	if len(rooms) == 0 {
		s.println(s.st.warn.Render("No rooms. Use 'add <name>' to create one."))
		return
	}
	if p.RawArgs == "" {
		s.listRooms(rooms)
		return
	}

	room, ok := s.current.Rooms().Find(p.RawArgs)
	if !ok {
		s.errorf("No room %q.", p.RawArgs)
		return
	}
	doc, err := s.current.Document(s.cfg.School)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	for i, r := range rooms {
		if r.ID == room.ID {
			s.render(report.Document{Sections: []report.Section{doc.Sections[i]}})
			return
		}
	}
}

func (s *Session) listRooms(rooms []inventory.Room) {
	keys := s.current.Keys()
	rows := make([][]string, 0, len(rooms))
	for i, r := range rooms {
		var sum inventory.ItemState
		for _, k := range keys {
			sum = sum.Add(r.Items.Get(k))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.ID,
			r.Name,
			s.cfg.Numbers.Format(sum.Usable),
			s.cfg.Numbers.Format(sum.Broken),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.st.muted).
		Headers("#", "ID", "Room", "Usable", "Broken").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.st.heading.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	s.println(s.st.title.Render(s.current.Module().ReportTitle))
	s.println(t.String())
}

func (s *Session) totals() {
	doc, err := s.current.Document(s.cfg.School)
	if errors.Is(err, report.ErrNoRooms) {
		s.println(s.st.warn.Render("No rooms to total."))
		return
	}
	if err != nil {
		s.errorf("%v", err)
		return
	}
	s.render(report.Document{Sections: doc.Sections[len(doc.Sections)-1:]})
}

func (s *Session) addRoom(p ParseResult) {
	r, ok := s.current.AddRoom(p.RawArgs)
	if !ok {
		cmd, _ := s.registry.Resolve(HandlerAdd)
		s.usage(cmd)
		return
	}
	s.infof("Added room %d: %s (id %s).", s.current.Rooms().Len(), r.Name, r.ID)
}

func (s *Session) removeRoom(p ParseResult) {
	if p.RawArgs == "" {
		cmd, _ := s.registry.Resolve(HandlerRemove)
		s.usage(cmd)
		return
	}
	r, ok := s.current.Rooms().Find(p.RawArgs)
	if !ok {
		s.errorf("No room %q.", p.RawArgs)
		return
	}
	s.current.Rooms().RemoveRoom(r.ID)
	s.infof("Removed %s.", r.Name)
}

func (s *Session) set(cmd *Command, p ParseResult) {
	ref, rest, ok := p.RoomRef(3)
	if !ok {
		s.usage(cmd)
		return
	}
	room, ok := s.current.Rooms().Find(ref)
	if !ok {
		s.errorf("No room %q.", ref)
		return
	}
	key, ok := s.resolveKey(rest[0])
	if !ok {
		s.errorf("Unknown item %q for %s. Items: %s", rest[0], s.current.Module().Title, s.keyNames())
		return
	}
	field, err := inventory.ParseField(rest[1])
	if err != nil {
		s.errorf("Unknown field %q: use usable or broken.", rest[1])
		return
	}
	s.current.Rooms().UpdateCell(room.ID, key, field, rest[2])
	updated, _ := s.current.Rooms().Room(room.ID)
	s.infof("%s %s %s = %s", room.Name, s.current.Label(key), field,
		s.cfg.Numbers.Format(updated.Items.Get(key).Get(field)))
}

// resolveKey matches name case-insensitively against the current module's keys.
func (s *Session) resolveKey(name string) (inventory.ItemKey, bool) {
	for _, k := range s.current.Keys() {
		if strings.EqualFold(string(k), name) {
			return k, true
		}
	}
	return "", false
}

func (s *Session) keyNames() string {
	keys := s.current.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func (s *Session) export(ctx context.Context, p ParseResult) {
	format := s.cfg.DefaultFormat
	args := p.Args
	if len(args) > 0 {
		if f, err := report.ParseFormat(strings.ToLower(args[0])); err == nil {
			format = f
			args = args[1:]
		}
	}
	exp, ok := s.exporters[format]
	if !ok {
		s.errorf("Export format %q is not available.", format)
		return
	}

	doc, err := s.current.Document(s.cfg.School)
	if errors.Is(err, report.ErrNoRooms) {
		s.println(s.st.warn.Render("Nothing to export: add a room first."))
		return
	}
	if err != nil {
		s.errorf("%v", err)
		return
	}

	var path string
	if len(args) > 0 {
		path = strings.Join(args, " ")
		err = report.ExportPath(ctx, exp, doc, path)
	} else {
		path, err = report.ExportFile(ctx, exp, format, doc, s.cfg.OutputDir)
	}
	if err != nil {
		s.logger.Error("export failed", zap.String("module", s.current.Module().ID), zap.Error(err))
		s.errorf("Export failed: %v", err)
		return
	}
	s.logger.Info("exported module", zap.String("module", s.current.Module().ID), zap.String("path", path))
	s.infof("Saved %s", path)
}

func (s *Session) summary(ctx context.Context, p ParseResult) {
	var classes []string
	var items []report.SummaryItem
	if p.RawArgs == "" {
		d := s.current.Module().Summary
		classes = d.Classes
		for _, it := range d.Items {
			items = append(items, report.SummaryItem{Name: it.Name, Quantity: it.Quantity})
		}
	} else {
		names, list, ok := strings.Cut(p.RawArgs, ";")
		if !ok {
			cmd, _ := s.registry.Resolve(HandlerSummary)
			s.usage(cmd)
			return
		}
		classes = report.ParseClassNames(names)
		var err error
		if items, err = report.ParseSummaryItems(list); err != nil {
			s.errorf("%v", err)
			return
		}
	}

	doc, err := report.Summary(s.current.Module().Title+" Inventory Summary", s.cfg.School, classes, items)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	s.render(doc)
}

func (s *Session) search(ctx context.Context, query string) {
	if s.finder == nil || !s.finder.Enabled() {
		s.errorf("Resource search is not configured.")
		return
	}
	if strings.TrimSpace(query) == "" {
		cmd, _ := s.registry.Resolve(HandlerSearch)
		s.usage(cmd)
		return
	}
	s.println(s.st.muted.Render("Searching..."))
	st, err := s.finder.Search(ctx, query)
	if errors.Is(err, resources.ErrSuperseded) {
		return
	}
	s.renderResources(st)
}

func (s *Session) categories(ctx context.Context, p ParseResult) {
	if p.RawArgs == "" {
		for i, c := range resources.Categories {
			s.println(fmt.Sprintf("  %s %s", s.st.command.Render(strconv.Itoa(i+1)+"."), c))
		}
		return
	}
	if n, err := strconv.Atoi(p.RawArgs); err == nil && n >= 1 && n <= len(resources.Categories) {
		s.search(ctx, resources.Categories[n-1])
		return
	}
	for _, c := range resources.Categories {
		if strings.EqualFold(c, p.RawArgs) {
			s.search(ctx, c)
			return
		}
	}
	s.errorf("No category %q.", p.RawArgs)
}

func (s *Session) renderResources(st resources.State) {
	if st.Err != "" {
		s.errorf("%s", st.Err)
		return
	}
	if len(st.Results) == 0 {
		s.println(s.st.warn.Render(fmt.Sprintf("No resources found for %q.", st.Query)))
		return
	}
	var b strings.Builder
	for _, r := range st.Results {
		fmt.Fprintf(&b, "## %s\n\n_%s_\n\n%s\n\n", r.Title, r.Category, r.Summary)
	}
	out, err := s.md.Render(b.String())
	if err != nil {
		s.println(b.String())
		return
	}
	s.println(strings.TrimRight(out, "\n"))
}

func (s *Session) render(doc report.Document) {
	if err := s.screen.Export(context.Background(), doc, s.out); err != nil {
		s.errorf("%v", err)
	}
}

func (s *Session) help() {
	s.println(s.st.title.Render("Available commands:"))
	categories := []struct {
		name  string
		label string
	}{
		{CategoryRooms, "Rooms"},
		{CategoryReports, "Reports"},
		{CategoryResources, "Resources"},
		{CategorySystem, "System"},
	}
	byCategory := s.registry.CommandsByCategory()
	for _, cat := range categories {
		cmds := byCategory[cat.name]
		if len(cmds) == 0 {
			continue
		}
		s.println(s.st.heading.Render("  " + cat.label + ":"))
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = s.st.muted.Render(" (" + strings.Join(cmd.Aliases, ", ") + ")")
			}
			s.println("    " + s.st.command.Render(fmt.Sprintf("%-40s", cmd.Usage)) + cmd.Help + aliases)
		}
	}
}
