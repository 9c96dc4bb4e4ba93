// Copyright (c) 2026 Libris. All rights reserved.

// Command sweep garbage-collects orphaned jacket files.
//
// A jacket upload replacing an existing one deletes the old files
// best-effort; when that fails (or the process dies mid-replace), files
// remain on disk with no book referencing them. This command walks the
// jackets root, compares stems against the books table, and removes the
// orphans. Run it from cron or by hand after incidents.
//
// Usage:
//
//	sweep [-dry-run]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/libris/libris/internal/core/book"
	"github.com/libris/libris/internal/jacket"
	"github.com/libris/libris/internal/platform/config"
	"github.com/libris/libris/internal/platform/constants"
	pgstore "github.com/libris/libris/internal/platform/postgres"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report orphans without deleting anything")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName+"-sweep"))

	cfg, err := config.Load()
	if err != nil {
		log.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("startup failure", slog.String("context", "connect to postgres"), slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	sweeper := jacket.NewSweeper(
		book.NewPostgresRepository(pool),
		jacket.NewLayout(cfg.JacketsRoot()),
		log,
	)

	orphans, err := sweeper.Run(ctx, *dryRun)
	if err != nil {
		log.Error("sweep failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("sweep complete",
		slog.Int("orphans", len(orphans)),
		slog.Bool("dry_run", *dryRun),
	)
}
