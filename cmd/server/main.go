package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/config"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/history"
)

const shutdownTimeout = 5 * time.Second

var mainDepsProvider = defaultDeps
var mainRunner = realMain

func main() {
	mainRunner(mainDepsProvider())
}

type mainDeps struct {
	loadConfig func() *config.Config
	notify     func(chan<- os.Signal, ...os.Signal)
	run        func(context.Context, *config.Config, <-chan os.Signal, ListenFunc) error
}

func defaultDeps() mainDeps {
	return mainDeps{
		loadConfig: LoadEnvironment,
		notify:     signal.Notify,
		run:        Run,
	}
}

func realMain(deps mainDeps) {
	cfg := deps.loadConfig()

	signals := make(chan os.Signal, 1)
	deps.notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := deps.run(context.Background(), cfg, signals, nil); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}
}

type ListenFunc func(srv *http.Server) error

var defaultListen ListenFunc = func(srv *http.Server) error {
	return srv.ListenAndServe()
}

// Run builds the app, serves it and shuts down on a signal or ctx cancel.
func Run(ctx context.Context, cfg *config.Config, signals <-chan os.Signal, listen ListenFunc) error {
	if listen == nil {
		listen = defaultListen
	}

	repo, closers, err := InitRepository(ctx, cfg)
	if err != nil {
		return err
	}
	store, err := InitStorage(cfg)
	if err != nil {
		runClosers(closers)
		return err
	}

	app, err := NewApp(ctx, cfg, repo, history.NewExporter(store), closers)
	if err != nil {
		runClosers(closers)
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Str("backend", cfg.StoreBackend).Msg("listening")
		errCh <- listen(srv)
	}()

	select {
	case <-signals:
		log.Info().Msg("shutdown signal received")
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runClosers(closers []func() error) {
	for _, c := range closers {
		_ = c()
	}
}
