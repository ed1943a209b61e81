package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/small-engineer/user-crud/internal/adapter/httpadapter"
	"github.com/small-engineer/user-crud/internal/config"
	"github.com/small-engineer/user-crud/internal/infra/db"
	"github.com/small-engineer/user-crud/internal/infra/file"
	"github.com/small-engineer/user-crud/internal/infra/mem"
	"github.com/small-engineer/user-crud/internal/logger"
	"github.com/small-engineer/user-crud/internal/usecase/users"

	_ "github.com/go-sql-driver/mysql"
)

func newDB(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	d, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.PingContext(pctx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// newRepo returns the backend selected by cfg and a func releasing it.
func newRepo(ctx context.Context, cfg config.Config) (users.UserRepo, func(), error) {
	switch cfg.Storage {
	case config.StorageFile:
		r, err := file.NewUserRepo(cfg.DataFile)
		return r, func() {}, err
	case config.StorageMySQL:
		d, err := newDB(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		return db.NewUserRepo(d), func() { d.Close() }, nil
	default:
		return mem.NewUserRepo(), func() {}, nil
	}
}

func run(ctx context.Context, cfg config.Config) error {
	ur, release, err := newRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	svc := users.NewService(ur)
	s := httpadapter.NewServer(svc)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("storage", cfg.Storage).Msg("start server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
