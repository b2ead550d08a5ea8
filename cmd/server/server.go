package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/infrastructure/crontab"
	"moodcanvas-server/internal/infrastructure/observability"
	"moodcanvas-server/internal/interfaces/httpserver"
)

type Application struct {
	cfg        *config.Config
	log        zerolog.Logger
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
}

// @title MoodCanvas API
// @version 1.0
// @description Mood diary service with AI generated images, quotes and insights.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func (a *Application) Start(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return a.crontab.Run(ctx) })
	group.Go(func() error { return a.httpServer.Run(ctx) })
	return group.Wait()
}

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup so they finish before the process exits.
func run() int {
	loadEnvFiles(".env", "../.env")

	app, cleanup, err := CreateApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "moodcanvas: %v\n", err)
		return 1
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing is optional; a broken collector config must not keep diaries offline.
	flush, err := observability.Setup(ctx, app.cfg, app.log)
	if err != nil {
		app.log.Error().Err(err).Msg("tracing unavailable")
	} else {
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownTimeout)
			defer cancel()
			if err := flush(flushCtx); err != nil {
				app.log.Warn().Err(err).Msg("flush traces")
			}
		}()
	}

	app.log.Info().Str("addr", app.cfg.Addr()).Str("environment", app.cfg.Environment).Msg("starting moodcanvas")
	if err := app.Start(ctx); err != nil {
		app.log.Error().Err(err).Msg("stopped with error")
		return 1
	}
	app.log.Info().Msg("stopped")
	return 0
}

// loadEnvFiles applies the first readable files without overriding variables
// already present in the process environment.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		fmt.Fprintf(os.Stderr, "moodcanvas: ignoring %s: %v\n", path, err)
	}
}
