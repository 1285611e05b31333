package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/desertthunder/tubeflow/internal/repositories"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	tokens := services.NewFileTokenSource(shared.ExpandPath(config.Auth.TokenPath))

	backend := services.NewAPIClient(services.APIClientOpts{
		BaseURL:       config.API.BaseURL,
		Tokens:        tokens,
		RateLimit:     config.API.RateLimit,
		Timeout:       time.Duration(config.API.TimeoutSeconds) * time.Second,
		UploadTimeout: time.Duration(config.Upload.TimeoutSeconds) * time.Second,
	})

	var store repositories.SessionStore
	if db, err := shared.NewDatabase(shared.ExpandPath(config.Database.Path)); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Debug("migrations not applied", "error", err)
		}
		store = repositories.NewSessionRepository(db)
	} else {
		logger.Warn("session persistence unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Backend: backend,
		Store:   store,
		Tokens:  tokens,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "tubeflow",
		Usage:    "Upload, polish, and publish YouTube videos from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else if errors.Is(err, shared.ErrPublishAborted) {
			logger.Warn("publish aborted")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
