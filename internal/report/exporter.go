package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Format names an export format.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatText Format = "text"
)

// ParseFormat converts s to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatXLSX, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("report: unknown format %q (want pdf, xlsx or text)", s)
	}
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Exporter renders a document to w.
type Exporter interface {
	Export(ctx context.Context, doc Document, w io.Writer) error
}

// ExportFile renders doc with exp into dir/<FileStem>.<ext>. No file is
// created for an invalid document.
//
// Postcondition: Returns the written path, or an error.
func ExportFile(ctx context.Context, exp Exporter, f Format, doc Document, dir string) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, doc.FileStem+"."+f.Ext())
	return path, exportTo(ctx, exp, doc, path)
}

// ExportPath renders doc with exp into the exact file path.
func ExportPath(ctx context.Context, exp Exporter, doc Document, path string) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return exportTo(ctx, exp, doc, path)
}

func exportTo(ctx context.Context, exp Exporter, doc Document, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := exp.Export(ctx, doc, out); err != nil {
		out.Close()
		_ = os.Remove(path)
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ExportAll writes every document to dir concurrently, at most limit at a time.
// Documents that fail validation are skipped and logged.
//
// Postcondition: Returns the written paths in input order (empty for skipped
// documents), or the first export error.
func ExportAll(ctx context.Context, exp Exporter, f Format, docs []Document, dir string, limit int, logger *zap.Logger) ([]string, error) {
	paths := make([]string, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			logger.Warn("skipping export", zap.String("document", doc.FileStem), zap.Error(err))
			continue
		}
		g.Go(func() error {
			p, err := ExportFile(ctx, exp, f, doc, dir)
			if err != nil {
				return err
			}
			paths[i] = p
			logger.Info("exported document", zap.String("path", p), zap.String("format", string(f)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
