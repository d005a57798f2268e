package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/config"
)

var errListen = errors.New("listen failed")

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:    "test",
		ServerAddress:  ":0",
		LogLevel:       "disabled",
		StoreBackend:   config.BackendMemory,
		ExportDir:      t.TempDir(),
		Timezone:       time.UTC,
		SaveDelay:      10 * time.Millisecond,
		SubmitDelay:    10 * time.Millisecond,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func TestRunHandlesSignal(t *testing.T) {
	signals := make(chan os.Signal, 1)

	listenCalled := make(chan struct{})
	listen := func(*http.Server) error {
		close(listenCalled)
		return nil
	}

	go func() {
		<-listenCalled
		signals <- syscall.SIGINT
	}()

	require.NoError(t, Run(context.Background(), testConfig(t), signals, listen))
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := func(*http.Server) error { select {} }
	assert.NoError(t, Run(ctx, testConfig(t), make(chan os.Signal), block))
}

func TestRunListenError(t *testing.T) {
	err := Run(context.Background(), testConfig(t), make(chan os.Signal), func(*http.Server) error {
		return errListen
	})
	assert.ErrorIs(t, err, errListen)
}

func TestRunListenServerClosed(t *testing.T) {
	err := Run(context.Background(), testConfig(t), make(chan os.Signal), func(*http.Server) error {
		return http.ErrServerClosed
	})
	assert.NoError(t, err)
}

func TestRunDefaultListen(t *testing.T) {
	oldListen := defaultListen
	defaultListen = func(*http.Server) error { return nil }
	defer func() { defaultListen = oldListen }()

	assert.NoError(t, Run(context.Background(), testConfig(t), make(chan os.Signal), nil))
}

func TestRunServesRoutes(t *testing.T) {
	listen := func(srv *http.Server) error {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			return errors.New(rec.Body.String())
		}

		rec = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/masjids", nil))
		if rec.Code != http.StatusOK {
			return errors.New(rec.Body.String())
		}

		rec = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusOK {
			return errors.New("metrics unavailable")
		}
		return nil
	}

	assert.NoError(t, Run(context.Background(), testConfig(t), make(chan os.Signal), listen))
}

func TestRunServesLocalExports(t *testing.T) {
	listen := func(srv *http.Server) error {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/history/export", nil))
		if rec.Code != http.StatusCreated {
			return errors.New(rec.Body.String())
		}

		var resp struct {
			Location string `json:"location"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			return err
		}
		if !strings.HasPrefix(resp.Location, "/exports/") {
			return errors.New("unexpected export location " + resp.Location)
		}

		rec = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.Location, nil))
		if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "Date,Fajr") {
			return errors.New("export not downloadable from " + resp.Location)
		}
		return nil
	}

	assert.NoError(t, Run(context.Background(), testConfig(t), make(chan os.Signal), listen))
}

func TestRunWithRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.StoreBackend = config.BackendRedis
	cfg.RedisAddress = mr.Addr()

	assert.NoError(t, Run(context.Background(), cfg, make(chan os.Signal), func(*http.Server) error {
		return nil
	}))
}

func TestRunRedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreBackend = config.BackendRedis
	cfg.RedisAddress = "127.0.0.1:1"

	err := Run(context.Background(), cfg, make(chan os.Signal), func(*http.Server) error { return nil })
	assert.Error(t, err)
}

func TestRealMainHandlesErrors(t *testing.T) {
	calledNotify := false
	calledRun := false
	deps := mainDeps{
		loadConfig: func() *config.Config { return &config.Config{ServerAddress: ":0"} },
		notify: func(chan<- os.Signal, ...os.Signal) {
			calledNotify = true
		},
		run: func(context.Context, *config.Config, <-chan os.Signal, ListenFunc) error {
			calledRun = true
			return errListen
		},
	}

	realMain(deps)
	assert.True(t, calledNotify)
	assert.True(t, calledRun)
}

func TestDefaultDeps(t *testing.T) {
	deps := defaultDeps()
	assert.NotNil(t, deps.loadConfig)
	assert.NotNil(t, deps.notify)
	assert.NotNil(t, deps.run)
}

func TestMainUsesOverrides(t *testing.T) {
	oldProvider := mainDepsProvider
	oldRunner := mainRunner
	defer func() {
		mainDepsProvider = oldProvider
		mainRunner = oldRunner
	}()

	called := false
	mainDepsProvider = func() mainDeps { return mainDeps{} }
	mainRunner = func(mainDeps) { called = true }

	main()
	assert.True(t, called)
}
