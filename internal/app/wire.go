//go:build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/schoolstock/internal/config"
)

// ProviderSet lists every component constructor.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideCatalog,
	ProvideShelf,
	ProvideNumbers,
	ProvidePDFExporter,
	ProvideExporters,
	ProvideResourceProvider,
	ProvideFinder,
	NewApp,
)

// Initialize assembles an App from cfg.
func Initialize(ctx context.Context, cfg config.Config) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
