// eventrec 启动活动推荐 HTTP 服务。
//
//	EVENTREC_CONFIG=config.yaml eventrec
//	EVENTREC_STORE__BACKEND=redis EVENTREC_STORE__REDIS__ADDR=localhost:6379 eventrec
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

	"github.com/rushteam/eventrec/config"
	"github.com/rushteam/eventrec/pkg/logging"
	"github.com/rushteam/eventrec/pkg/metrics"
	"github.com/rushteam/eventrec/recommend"
	"github.com/rushteam/eventrec/server"
	"github.com/rushteam/eventrec/store"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("eventrec exited")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	logging.Init(cfg.LoggingConfig())
	logger := logging.WithComponent("eventrec")

	docs, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer docs.Close()
	logger.Info().Str("backend", docs.Name()).Msg("document store ready")

	rec := metrics.NewRecorder()

	opts := cfg.RecommendOptions()
	opts.Logger = logger
	opts.Metrics = rec
	engine, err := recommend.NewEngine(docs, opts)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	sopts := cfg.ServerOptions()
	sopts.Logger = logging.WithComponent("http")
	sopts.Metrics = rec
	if b, ok := docs.(*store.Breaker); ok {
		sopts.Health = func(context.Context) error {
			if state := b.State(); state == "open" {
				return fmt.Errorf("store circuit breaker %s", state)
			}
			return nil
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.New(engine, sopts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
