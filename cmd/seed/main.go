// Command seed loads articles from a YAML fixture file into the configured
// store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/DjordjeVuckovic/keypage/internal/seed"
	"github.com/DjordjeVuckovic/keypage/internal/storage/factory"
	"github.com/DjordjeVuckovic/keypage/pkg/config/env"
)

func main() {
	if err := env.LoadDotEnv(env.AppEnv(), "cmd/seed/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the fixture file and the store are
// closed on every path.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	path := fs.String("file", "db/fixtures/articles.yaml", "YAML fixture file")
	batch := fs.Int("batch", seed.DefaultBatchSize, "articles per bulk write")
	if err := fs.Parse(args); err != nil {
		return err
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return err
	}

	file, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer file.Close()

	articles, err := seed.NewYAMLLoader(file).Load()
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	store, err := factory.NewStore(ctx, storageCfg)
	if err != nil {
		return fmt.Errorf("failed to create article store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slog.Error("failed to close article store", "error", err)
		}
	}()

	if err := seed.Seed(ctx, store, articles, *batch); err != nil {
		return err
	}
	slog.Info("Seeding completed", "articles", len(articles), "storage", storageCfg.Type)
	return nil
}
