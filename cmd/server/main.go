package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/config"
	"github.com/playperu/citydistance/internal/database"
	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/handler/health"
	"github.com/playperu/citydistance/internal/migrations"
	"github.com/playperu/citydistance/internal/selector"
	"github.com/playperu/citydistance/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if cfg.DBPath != database.Memory {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Catalog ---
	cat, err := catalog.Load(ctx, db)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded", "cities", cat.Len())

	engine := distance.New(cat)
	picker := selector.New(cat, selector.NewRandSource(cfg.RandomSeed))

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Catalog:          cat,
		Picker:           picker,
		Engine:           engine,
		CityCount:        cfg.CityCount,
		GeohashPrecision: cfg.GeohashPrecision,
		SPADir:           cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			"sqlite":  dbChecker{db},
			"catalog": catalogChecker{cat},
		}).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return srv.SweepGames(gctx, cfg.SweepInterval, cfg.SessionTTL)
	})

	return g.Wait()
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }

// catalogChecker fails when there are too few cities to draw a game from.
type catalogChecker struct{ cat *catalog.Catalog }

func (c catalogChecker) Check(context.Context) error {
	if n := c.cat.Len(); n < 2 {
		return fmt.Errorf("%d cities loaded, need at least 2", n)
	}
	return nil
}
