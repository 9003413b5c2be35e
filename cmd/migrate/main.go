package main

import (
	"context"
	"flag"
	"log"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/migrations"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/migration"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of migrations to apply or revert; 0 applies all pending (up) or reverts one (down)")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)),
		logger.WithDevelopment(cfg.App.Environment == "development"),
		logger.WithService(cfg.App.Name),
	)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	client, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer client.Close()

	runner := migration.NewRunner(client, lg, migrations.FS, migration.Config{})

	switch *direction {
	case "up":
		applied, err := runner.Up(ctx, *steps)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Printf("Applied %d migration(s)", applied)
	case "down":
		n := *steps
		if n <= 0 {
			n = 1
		}
		reverted, err := runner.Down(ctx, n)
		if err != nil {
			log.Fatalf("Failed to revert migrations: %v", err)
		}
		log.Printf("Reverted %d migration(s)", reverted)
	default:
		log.Fatalf("Unknown direction %q", *direction)
	}
}
