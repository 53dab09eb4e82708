package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"ckg/internal/config"
	"ckg/internal/logging"
	"ckg/internal/query"
	"ckg/internal/storage"
)

var (
	storeOnce sync.Once
	sharedDB  *storage.DB
	sharedCfg *config.Config
	storeErr  error
)

// openStore returns the shared store and configuration. Both are lazily
// initialized on first use and shared across subcommands.
func openStore(logger *logging.Logger) (*storage.DB, *config.Config, error) {
	storeOnce.Do(func() {
		repoRoot, err := os.Getwd()
		if err != nil {
			storeErr = fmt.Errorf("failed to resolve working directory: %w", err)
			return
		}

		cfg, err := config.Load(repoRoot)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
			cfg.RepoRoot = repoRoot
		}

		db, err := storage.Open(repoRoot, cfg.Storage.DirName, logger)
		if err != nil {
			storeErr = fmt.Errorf("failed to open graph store: %w", err)
			return
		}

		sharedDB = db
		sharedCfg = cfg
	})

	return sharedDB, sharedCfg, storeErr
}

// mustOpenStore returns the shared store and configuration or exits on error.
func mustOpenStore(logger *logging.Logger) (*storage.DB, *config.Config) {
	db, cfg, err := openStore(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return db, cfg
}

// mustGetEngine returns a query engine over the shared store or exits on error.
func mustGetEngine(logger *logging.Logger) *query.Engine {
	db, cfg := mustOpenStore(logger)
	return query.NewEngine(db, cfg.Query, logger)
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger matching the requested output format.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.InfoLevel,
	})
}

// fail prints an error to stderr and exits.
func fail(action string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", action, err)
	os.Exit(1)
}

// emit formats a response and writes it to stdout, exiting on format errors.
func emit(resp interface{}, format string) {
	output, err := FormatResponse(resp, OutputFormat(format))
	if err != nil {
		fail("formatting output", err)
	}
	fmt.Println(output)
}
