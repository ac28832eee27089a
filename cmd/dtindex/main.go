// Command dtindex looks up the digital transformation index of listed
// companies from the command line, a terminal UI or an MCP client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/dtindex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dtindex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/cli"
	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/services"
	"github.com/custodia-labs/dtindex/internal/encodings"
	"github.com/custodia-labs/dtindex/internal/loaders/delimited"
	"github.com/custodia-labs/dtindex/internal/loaders/spreadsheet"
	"github.com/custodia-labs/dtindex/internal/logger"
	"github.com/custodia-labs/dtindex/internal/normalisers/record"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli.SetServices(svc)
	cli.SetVersion(version)

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newServices builds the core services from the settings stored in
// configDir. An empty configDir uses the default location.
func newServices(configDir string) (cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("failed to open config: %w", err)
	}

	registry := encodings.NewRegistry()
	settingsService := services.NewSettingsService(store, registry)
	settings, err := settingsService.Get()
	if err != nil {
		return cli.Services{}, fmt.Errorf("failed to get settings: %w", err)
	}

	candidates, err := registry.Resolve(settings.Loader.Encodings)
	if err != nil {
		logger.Warn("invalid loader.encodings, using defaults: %v", err)
		if candidates, err = registry.Resolve(domain.DefaultEncodings); err != nil {
			return cli.Services{}, err
		}
	}

	datasetService := services.NewDatasetService(
		record.New(),
		memory.NewDatasetCache(settings.Cache.TTL),
		delimited.New(candidates),
		spreadsheet.New(settings.Dataset.Sheet),
	)

	return cli.Services{
		Dataset:  datasetService,
		Query:    services.NewQueryService(),
		Settings: settingsService,
	}, nil
}
