package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/async"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/config"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/history"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/stream"
	visitorapi "github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/endpoints"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/imam"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
)

// App is everything the router serves, built once at startup.
type App struct {
	Config         *config.Config
	Router         *gin.Engine
	Bus            *events.Bus
	Runner         *async.Runner
	Hub            *stream.Hub
	Limiter        *middleware.RateLimiter
	Admin          *imam.Admin
	Visitor        *visitorapi.Deps
	Metrics        metrics.Recorder
	MetricsHandler http.Handler

	closers []func() error
}

// NewApp wires the application around repo. closers run on Close after
// everything built here has stopped.
func NewApp(ctx context.Context, cfg *config.Config, repo kv.Repository, exporter *history.Exporter, closers []func() error) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	clock := func() time.Time { return time.Now().In(cfg.Timezone) }
	dir := directory.New(directory.Catalog())
	bus := events.NewBus()
	if err := AttachRelays(ctx, cfg, bus); err != nil {
		bus.Close()
		return nil, fmt.Errorf("event relays: %w", err)
	}

	runner := async.NewRunner(cfg.SaveDelay, collector)
	admin := imam.NewAdmin(dir, bus, runner, cfg.SubmitDelay, collector)

	app := &App{
		Config:  cfg,
		Bus:     bus,
		Runner:  runner,
		Admin:   admin,
		Metrics: collector,
		Visitor: &visitorapi.Deps{
			Repo:      repo,
			Bus:       bus,
			Directory: dir,
			Admin:     admin,
			Exporter:  exporter,
			Metrics:   collector,
			Clock:     clock,
		},
		MetricsHandler: metrics.Handler(reg),
		Limiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(cfg.RateLimitRPS),
			Burst: cfg.RateLimitBurst,
		}),
		closers: closers,
	}
	app.Hub = stream.NewHub(stream.Config{Bus: bus, Repo: repo, Clock: clock})

	app.Router = gin.New()
	RegisterRoutes(app.Router, app)
	return app, nil
}

// Close stops background work, then releases the store.
func (a *App) Close() {
	a.Hub.Close()
	a.Runner.Close()
	a.Limiter.Stop()
	a.Bus.Close()
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("error while closing resources")
		}
	}
}
