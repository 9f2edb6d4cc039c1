package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hazyhaar/zhanalyzer/pkg/api"
	"github.com/hazyhaar/zhanalyzer/pkg/importer"
)

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	st, err := buildState(cfg, logger)
	if err != nil {
		return err
	}
	svc := api.NewService(st, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// SIGHUP: rebuild tables and pipelines, keep serving the old state on failure.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go reloadOnSignal(ctx, sighup, svc, func() (*api.State, error) {
		return buildState(cfg, logger)
	}, logger)

	if cfg.CheckInterval > 0 {
		sdb, err := importer.OpenSourceDB(filepath.Join(cfg.TablesDir, "sources.db"))
		if err != nil {
			return err
		}
		defer sdb.Close()
		if err := sdb.Seed(importer.All()); err != nil {
			return err
		}
		go importer.NewChecker(sdb, logger, cfg.CheckInterval).Start(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("zhanalyzer listening", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reloadOnSignal rebuilds the service state on every signal until ctx is
// done. A failed rebuild keeps the current state.
func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, svc *api.Service, build func() (*api.State, error), logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
		}
		logger.Info("SIGHUP received, reloading")
		next, err := build()
		if err != nil {
			logger.Error("reload failed", "error", err)
			continue
		}
		svc.Swap(next)
		logger.Info("reloaded")
	}
}
