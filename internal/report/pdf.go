package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

//go:embed templates/report.html.tmpl
var pageTemplate string

// PDFConfig selects the Chrome binary the PDF exporter drives.
type PDFConfig struct {
	// Bin is the Chrome/Chromium executable. Empty lets rod find or download one.
	Bin      string
	Headless bool
}

// PDFExporter prints documents to PDF with a headless Chrome owned by the
// exporter. The browser starts on first use and lives until Close.
type PDFExporter struct {
	cfg     PDFConfig
	numbers Numbers
	tmpl    *template.Template
	logger  *zap.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewPDFExporter parses the page template and returns an idle exporter.
//
// Postcondition: No browser is started until the first Export.
func NewPDFExporter(cfg PDFConfig, numbers Numbers, logger *zap.Logger) (*PDFExporter, error) {
	tmpl, err := newPageTemplate(numbers)
	if err != nil {
		return nil, err
	}
	return &PDFExporter{cfg: cfg, numbers: numbers, tmpl: tmpl, logger: logger}, nil
}

func newPageTemplate(numbers Numbers) (*template.Template, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"num": numbers.Format,
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	return tmpl, nil
}

// RenderHTML executes the page template for doc.
func (e *PDFExporter) RenderHTML(doc Document) (string, error) {
	return renderHTML(e.tmpl, doc)
}

func renderHTML(tmpl *template.Template, doc Document) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering report html: %w", err)
	}
	return buf.String(), nil
}

// Export prints doc to PDF and copies it to w.
func (e *PDFExporter) Export(ctx context.Context, doc Document, w io.Writer) error {
	html, err := e.RenderHTML(doc)
	if err != nil {
		return err
	}
	browser, err := e.ensureBrowser()
	if err != nil {
		return err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("loading report html: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for report html: %w", err)
	}
	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:         doc.Landscape,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return fmt.Errorf("printing pdf: %w", err)
	}
	if _, err := io.Copy(w, stream); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	e.logger.Debug("printed pdf", zap.String("document", doc.FileStem), zap.Int("sections", len(doc.Sections)))
	return nil
}

func (e *PDFExporter) ensureBrowser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return e.browser, nil
	}

	l := launcher.New().Headless(e.cfg.Headless)
	if e.cfg.Bin != "" {
		l = l.Bin(e.cfg.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching chrome: %w", err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to chrome: %w", err)
	}
	e.launcher = l
	e.browser = browser
	e.logger.Info("chrome started", zap.String("control_url", controlURL), zap.Bool("headless", e.cfg.Headless))
	return browser, nil
}

// Close shuts the browser down. It is safe to call on an exporter that never
// started one.
func (e *PDFExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.launcher.Kill()
	e.browser = nil
	e.launcher = nil
	if err != nil {
		return fmt.Errorf("closing chrome: %w", err)
	}
	return nil
}
