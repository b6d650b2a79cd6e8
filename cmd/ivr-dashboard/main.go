package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/celerix-dev/ivr-reports/internal/api"
	"github.com/celerix-dev/ivr-reports/internal/config"
	"github.com/celerix-dev/ivr-reports/internal/dashboard"
	"github.com/celerix-dev/ivr-reports/internal/engine"
	"github.com/celerix-dev/ivr-reports/internal/logger"
	"github.com/celerix-dev/ivr-reports/internal/server"
	"github.com/celerix-dev/ivr-reports/internal/session"
	"github.com/celerix-dev/ivr-reports/pkg/sdk"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	lvl, _ := cfg.Level()
	lg := logger.New("ivr-dashboard", lvl)
	log.Logger = lg

	if err := run(cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("dashboard exited")
	}
}

func run(cfg *config.Config, lg zerolog.Logger) error {
	lg.Info().Str("api_url", cfg.APIURL).Int("port", cfg.HTTPPort).Msg("starting IVR dashboard daemon")

	// The daemon's session lives for the process only, like a browser tab.
	store := engine.NewMemStore(nil, nil)
	client, err := sdk.FromConfig(cfg)
	if err != nil {
		return err
	}
	app := dashboard.New(client, session.NewAuthState(session.NewStore(store)),
		dashboard.WithPageSize(cfg.PageSize))

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(&api.Handler{App: app}, lg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr).Msg("HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	store.Wait()
	lg.Info().Msg("shutdown complete")
	return nil
}
