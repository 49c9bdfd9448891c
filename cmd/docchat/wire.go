package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/services"
	"github.com/custodia-labs/docchat/internal/logger"
	"github.com/custodia-labs/docchat/internal/normalisers"
	"github.com/custodia-labs/docchat/internal/postprocessors"
	"github.com/custodia-labs/docchat/internal/rankers/keyword"
)

// build assembles the service graph from stored settings and the environment.
func build(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	stored, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	settings := *stored
	services.ApplyEnvOverrides(&settings, os.LookupEnv)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	// Data and uploads live next to the config file unless configured.
	base := filepath.Dir(configStore.Path())
	if settings.Storage.DataDir == "" {
		settings.Storage.DataDir = filepath.Join(base, "data")
	}
	if settings.Upload.Dir == "" {
		settings.Upload.Dir = filepath.Join(base, "uploads")
	}

	docStore, closeStore, err := openDocumentStore(ctx, settings.Storage)
	if err != nil {
		return nil, err
	}

	pipeline, err := postprocessors.DefaultPipeline(settings.Chunking)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	filePipeline, err := postprocessors.DefaultPipeline(settings.Chunking.ForFiles())
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	corpus := memory.NewCorpus()
	search := services.NewSearchService(corpus, keyword.New(), settings.Search.TopK)
	ingest := services.NewIngestService(docStore, corpus, pipeline, normalisers.NewDefaultRegistry(),
		settings.Upload, services.WithFilePipeline(filePipeline))
	logger.Debug("services ready", "storage", settings.Storage.Driver, "config", configStore.Path())

	return &cli.Services{
		Ingest:      ingest,
		Search:      search,
		Chat:        services.NewChatService(search, settings.Search.TopK),
		Documents:   services.NewDocumentService(docStore),
		Settings:    settingsService,
		AppSettings: settings,
		ConfigPath:  configStore.Path(),
		Close:       closeStore,
	}, nil
}

// openDocumentStore opens the metadata store selected by the storage driver.
func openDocumentStore(ctx context.Context, s domain.StorageSettings) (driven.DocumentStore, func() error, error) {
	switch s.Driver {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(s.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, store.Close, nil
	case domain.StoragePostgres:
		store, err := postgres.NewStore(ctx, s.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return store, store.Close, nil
	case domain.StorageMemory:
		return memory.NewDocumentStore(), func() error { return nil }, nil
	}
	return nil, nil, errors.New("unknown storage driver: " + s.Driver.String())
}
