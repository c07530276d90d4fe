// Package main implements the entry point for the Ankify API server, which
// turns pasted text and YouTube videos into flashcards and stores flashcard
// sets for the browser extension.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ankify/ankify-api/internal/config"
	"github.com/ankify/ankify-api/internal/platform/logger"
	"github.com/ankify/ankify-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a database migration command and exit ("+strings.Join(postgres.MigrationCommands, ", ")+")")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("ankify-api: %v", err)
	}
}

// run loads configuration, connects to the database and either applies the
// requested migration command or serves HTTP until interrupted.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"generation_enabled", cfg.LLM.Enabled(),
		"youtube_enabled", cfg.Transcript.Enabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrateCmd != "" {
		defer closeDB(db, appLogger)
		return postgres.Migrate(ctx, db, appLogger, migrateCmd)
	}

	if err := postgres.Migrate(ctx, db, appLogger, "up"); err != nil {
		closeDB(db, appLogger)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		closeDB(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func closeDB(db interface{ Close() error }, l *slog.Logger) {
	if err := db.Close(); err != nil {
		l.Error("Error closing database connection", "error", err)
	}
}
