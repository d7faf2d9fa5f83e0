// Command httpd runs the testgen HTTP service: selector resolution, code
// validation, test generation and catalog management.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/testgen/internal/api"
	"github.com/jonesrussell/testgen/internal/config"
	"github.com/jonesrussell/testgen/internal/database"
	"github.com/jonesrussell/testgen/internal/domanalysis"
	"github.com/jonesrussell/testgen/internal/generator"
	"github.com/jonesrussell/testgen/internal/logger"
	"github.com/jonesrussell/testgen/internal/matcher"
	"github.com/jonesrussell/testgen/internal/resolver"
	"github.com/jonesrussell/testgen/internal/store"
	"github.com/jonesrussell/testgen/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "testgen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failure is harmless on exit

	log.Info("starting testgen service",
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port))

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	log.Info("database connected",
		logger.String("host", cfg.Database.Host),
		logger.String("database", cfg.Database.Database))

	brands := database.NewBrandRepository(db)
	selectors := database.NewSelectorRepository(db)
	rules := database.NewRuleRepository(db)
	templates := database.NewTemplateRepository(db)
	codes := database.NewGeneratedCodeRepository(db)

	catalog := store.NewCatalog(store.Repositories{
		Brands:    brands,
		Selectors: selectors,
		Rules:     rules,
		Templates: templates,
	}, cfg.Catalog.CacheTTL, log)

	provider, err := generator.NewAnthropicProvider(
		cfg.Generator.APIKey, cfg.Generator.Model, int64(cfg.Generator.MaxTokens))
	if err != nil {
		return fmt.Errorf("init generation provider: %w", err)
	}

	tel := telemetry.NewProvider()

	handler := api.NewHandler(api.Dependencies{
		Resolver:  resolver.New(matcher.New(matcher.DefaultConfig(), log), log),
		Generator: generator.NewService(provider, catalog, codes, log),
		Analyzer:  domanalysis.New(log),
		Catalog:   catalog,
		Brands:    brands,
		Selectors: selectors,
		Rules:     rules,
		Templates: templates,
		Codes:     codes,
		Telemetry: tel,
		DB:        db,
		Version:   cfg.Service.Version,
	}, log)

	server := api.NewServer(handler, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, tel, log)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server: %w", err)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("server stopped gracefully")
	}

	return nil
}

// configPath resolves the config file location, defaulting to config.yml in
// the working directory.
func configPath() string {
	if path := os.Getenv("TESTGEN_CONFIG"); path != "" {
		return path
	}
	return "config.yml"
}
