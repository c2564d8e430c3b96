package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/book"
	"github.com/cory-johannsen/schoolstock/internal/config"
	"github.com/cory-johannsen/schoolstock/internal/console"
	"github.com/cory-johannsen/schoolstock/internal/lifecycle"
	"github.com/cory-johannsen/schoolstock/internal/report"
	"github.com/cory-johannsen/schoolstock/internal/resources"
)

// App holds the assembled components.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Shelf     *book.Shelf
	Numbers   report.Numbers
	PDF       *report.PDFExporter
	Exporters Exporters
	Finder    *resources.Service
}

// NewApp collects the assembled components.
func NewApp(cfg config.Config, logger *zap.Logger, shelf *book.Shelf, numbers report.Numbers, pdf *report.PDFExporter, exporters Exporters, finder *resources.Service) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Shelf:     shelf,
		Numbers:   numbers,
		PDF:       pdf,
		Exporters: exporters,
		Finder:    finder,
	}
}

// Exporter returns the renderer for f.
func (a *App) Exporter(f report.Format) (report.Exporter, error) {
	exp, ok := a.Exporters[f]
	if !ok {
		return nil, fmt.Errorf("no exporter for format %q", f)
	}
	return exp, nil
}

// NewSession creates a console session over the shelf.
func (a *App) NewSession(out io.Writer) (*console.Session, error) {
	return console.NewSession(console.Config{
		Prompt:        a.Config.Console.Prompt,
		Color:         a.Config.Console.Color,
		Width:         a.Config.Console.Width,
		School:        a.Config.Report.SchoolName,
		OutputDir:     a.Config.Report.OutputDir,
		DefaultFormat: report.Format(a.Config.Report.DefaultFormat),
		DefaultModule: a.Config.Catalog.DefaultModule,
		Numbers:       a.Numbers,
	}, a.Shelf, a.Exporters, a.Finder, out, a.Logger.Named("console"))
}

// RunConsole runs an interactive session until the user quits or a signal
// arrives, then releases the browser.
func (a *App) RunConsole(ctx context.Context, in io.Reader, out io.Writer) error {
	session, err := a.NewSession(out)
	if err != nil {
		return err
	}
	lc := lifecycle.NewLifecycle(a.Logger)
	lc.Add("pdf-browser", lifecycle.Closer(a.PDF.Close, a.Logger))
	lc.Add("console", console.NewService(session, in))
	return lc.Run(ctx)
}

// ExportModules writes one document per module ID (all modules when ids is
// empty) into dir. Modules without rooms are skipped.
//
// Postcondition: Returns the written paths in module order.
func (a *App) ExportModules(ctx context.Context, ids []string, f report.Format, dir string) ([]string, error) {
	exp, err := a.Exporter(f)
	if err != nil {
		return nil, err
	}
	books := a.Shelf.Books()
	if len(ids) > 0 {
		books = make([]*book.Book, 0, len(ids))
		for _, id := range ids {
			b, err := a.Shelf.Book(id)
			if err != nil {
				return nil, err
			}
			books = append(books, b)
		}
	}

	docs := make([]report.Document, 0, len(books))
	for _, b := range books {
		doc, err := b.Document(a.Config.Report.SchoolName)
		if err != nil {
			a.Logger.Warn("skipping module", zap.String("module", b.Module().ID), zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, report.ErrNoRooms
	}

	paths, err := report.ExportAll(ctx, exp, f, docs, dir, a.Config.Report.Concurrency, a.Logger)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ExportSummary renders the quick summary into dir. When classes and items
// are both empty the defaults of moduleID are used.
func (a *App) ExportSummary(ctx context.Context, moduleID, title string, classes []string, items []report.SummaryItem, f report.Format, dir string) (string, error) {
	exp, err := a.Exporter(f)
	if err != nil {
		return "", err
	}
	if len(classes) == 0 && len(items) == 0 && moduleID != "" {
		b, err := a.Shelf.Book(moduleID)
		if err != nil {
			return "", err
		}
		d := b.Module().Summary
		classes = d.Classes
		for _, it := range d.Items {
			items = append(items, report.SummaryItem{Name: it.Name, Quantity: it.Quantity})
		}
		if title == "" {
			title = b.Module().Title + " Inventory Summary"
		}
	}
	doc, err := report.Summary(title, a.Config.Report.SchoolName, classes, items)
	if err != nil {
		return "", err
	}
	return report.ExportFile(ctx, exp, f, doc, dir)
}

// Search runs one resource query.
func (a *App) Search(ctx context.Context, query string) (resources.State, error) {
	if !a.Finder.Enabled() {
		return resources.State{}, resources.ErrNoProvider
	}
	return a.Finder.Search(ctx, query)
}
