package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ankify/ankify-api/internal/config"
	"github.com/ankify/ankify-api/internal/platform/gemini"
	"github.com/ankify/ankify-api/internal/platform/postgres"
	"github.com/ankify/ankify-api/internal/platform/transcript"
	"github.com/ankify/ankify-api/internal/service"
	"github.com/ankify/ankify-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	flashcardSetStore store.FlashcardSetStore
	flashcardService  service.FlashcardService
}

// newApplication creates a new application instance with all dependencies
// initialized. Generation and YouTube sources are wired only when their API
// keys are configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.flashcardSetStore = postgres.NewFlashcardSetStore(db, logger)

	var opts []service.Option

	if cfg.LLM.Enabled() {
		completer, err := gemini.NewCompleter(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM completer: %w", err)
		}
		opts = append(opts, service.WithCompleter(completer))
		logger.Info("LLM completer initialized", "model", cfg.LLM.ModelName)
	} else {
		logger.Warn("No Gemini API key configured; flashcard generation is disabled")
	}

	if cfg.Transcript.Enabled() {
		client, err := transcript.New(cfg.Transcript, transcript.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize transcript client: %w", err)
		}
		opts = append(opts, service.WithTranscriptFetcher(client))
		logger.Info("Transcript client initialized", "base_url", cfg.Transcript.BaseURL)
	} else {
		logger.Warn("No transcript API key configured; YouTube sources are disabled")
	}

	var err error
	app.flashcardService, err = service.NewFlashcardService(app.flashcardSetStore, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) shutdownTimeout() time.Duration {
	if app.config.Server.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
