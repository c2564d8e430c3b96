// Package app assembles the application's components from configuration.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/schoolstock/internal/book"
	"github.com/cory-johannsen/schoolstock/internal/catalog"
	"github.com/cory-johannsen/schoolstock/internal/config"
	"github.com/cory-johannsen/schoolstock/internal/observability"
	"github.com/cory-johannsen/schoolstock/internal/report"
	"github.com/cory-johannsen/schoolstock/internal/resources"
)

// Exporters maps each output format to its renderer.
type Exporters map[report.Format]report.Exporter

// ProvideLogger builds the application logger.
func ProvideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideCatalog loads every module under the configured directory.
func ProvideCatalog(cfg config.Config, logger *zap.Logger) (*catalog.Registry, error) {
	modules, err := catalog.LoadModulesFromDir(cfg.Catalog.ModulesDir)
	if err != nil {
		return nil, fmt.Errorf("loading modules: %w", err)
	}
	reg, err := catalog.NewRegistry(modules)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded modules", zap.String("dir", cfg.Catalog.ModulesDir), zap.Int("count", reg.Len()))
	return reg, nil
}

// ProvideShelf opens one book per module.
func ProvideShelf(cfg config.Config, reg *catalog.Registry, logger *zap.Logger) *book.Shelf {
	return book.NewShelf(reg, cfg.Catalog.IDScheme, logger)
}

// ProvideNumbers returns the number formatter for the report locale.
func ProvideNumbers(cfg config.Config) (report.Numbers, error) {
	return report.NewNumbers(cfg.Report.Locale)
}

// ProvidePDFExporter creates the PDF exporter. Its browser is closed by the
// returned cleanup.
func ProvidePDFExporter(cfg config.Config, numbers report.Numbers, logger *zap.Logger) (*report.PDFExporter, func(), error) {
	pdf, err := report.NewPDFExporter(report.PDFConfig{
		Bin:      cfg.Report.ChromeBin,
		Headless: cfg.Report.Headless,
	}, numbers, logger)
	if err != nil {
		return nil, nil, err
	}
	return pdf, func() {
		if err := pdf.Close(); err != nil {
			logger.Warn("closing pdf exporter", zap.Error(err))
		}
	}, nil
}

// ProvideExporters registers every export format.
func ProvideExporters(pdf *report.PDFExporter, numbers report.Numbers) Exporters {
	return Exporters{
		report.FormatPDF:  pdf,
		report.FormatXLSX: report.NewXLSXExporter(),
		report.FormatText: report.NewTextExporter(numbers, report.PlainText()),
	}
}

// ProvideResourceProvider connects the configured model. Without an API key
// searching is disabled rather than failing startup.
func ProvideResourceProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) (resources.Provider, error) {
	rc := cfg.Resources
	if rc.Provider == resources.ProviderNone {
		return nil, nil
	}
	if !rc.Enabled() {
		logger.Warn("resource search disabled: no API key", zap.String("provider", rc.Provider))
		return nil, nil
	}
	p, err := resources.NewProvider(ctx, resources.ProviderConfig{
		Name:        rc.Provider,
		Model:       rc.Model,
		APIKey:      rc.APIKey,
		BaseURL:     rc.BaseURL,
		Temperature: rc.Temperature,
		MaxTokens:   rc.MaxTokens,
		MaxRetries:  rc.MaxRetries,
	})
	if err != nil {
		return nil, err
	}
	return resources.WithTimeout(p, rc.Timeout), nil
}

// ProvideFinder creates the resource query service.
func ProvideFinder(p resources.Provider, logger *zap.Logger) *resources.Service {
	return resources.NewService(p, logger.Named("resources"))
}
