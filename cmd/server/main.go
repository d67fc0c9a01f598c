package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clark-Hu/movies-api/internal/catalog"
	"github.com/Clark-Hu/movies-api/internal/config"
	httpserver "github.com/Clark-Hu/movies-api/internal/http"
	"github.com/Clark-Hu/movies-api/internal/logger"
	"github.com/Clark-Hu/movies-api/internal/memstore"
	"github.com/Clark-Hu/movies-api/internal/repository"
	"github.com/Clark-Hu/movies-api/internal/store"
)

type seeder interface {
	Seed(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "movies-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	backend, cleanup, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.SeedData {
		if s, ok := backend.(seeder); ok {
			if err := s.Seed(ctx); err != nil {
				return fmt.Errorf("seed data: %w", err)
			}
			log.Info("seed data loaded")
		}
	}

	server := httpserver.New(cfg, catalog.NewService(backend, log), log)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("graceful shutdown error", "error", err)
	}
	return nil
}

// openBackend picks PostgreSQL when DB_URL is set and the in-memory store
// otherwise.
func openBackend(ctx context.Context, cfg config.Config, log *logger.Logger) (catalog.Store, func(), error) {
	if !cfg.UsePostgres() {
		log.Info("using in-memory store")
		return memstore.New(), func() {}, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.New(dbCtx, cfg.DBURL, store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.DBMigrate {
		if err := repository.Migrate(dbCtx, st.Pool(), log); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	cleanup := func() {
		st.LogStats()
		st.Close()
	}
	return repository.New(st), cleanup, nil
}
