package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ambiyansyah-risyal/dragonball"
	"github.com/ambiyansyah-risyal/dragonball/heroes"
	"github.com/ambiyansyah-risyal/dragonball/internal/config"
)

// app holds what a command needs once flags and config are resolved.
type app struct {
	cfg     config.Config
	log     *zap.Logger
	client  *dragonball.Client
	metrics *http.Server
}

func (g *Globals) resolve() (config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return cfg, err
	}
	override := config.Config{
		Host:        g.Host,
		Username:    g.User,
		Password:    g.Password,
		MetricsAddr: g.MetricsAddr,
		Insecure:    g.Insecure,
	}
	if g.Debug {
		override.LogLevel = "debug"
	}
	cfg = cfg.Merge(override)
	return cfg, cfg.Validate()
}

func (g *Globals) newApp() (*app, error) {
	cfg, err := g.resolve()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.Debug("starting dragonball", versionFields()...)

	registry := prometheus.NewRegistry()
	opts := []dragonball.Option{
		dragonball.WithHost(cfg.Host),
		dragonball.WithHTTPClient(newHTTPClient(cfg.Insecure)),
		dragonball.WithMetricsCollector(dragonball.NewMetricsCollectorWithRegistry(registry)),
	}
	if cfg.LogLevel == "debug" {
		opts = append(opts, dragonball.WithZapLogger(log.Named("client")))
	}

	client := dragonball.New(opts...)
	if !client.IsValid() {
		return nil, client.ValidationError()
	}

	a := &app{cfg: cfg, log: log, client: client}
	if cfg.MetricsAddr != "" {
		a.metrics = serveMetrics(cfg.MetricsAddr, registry, log)
	}
	return a, nil
}

func (a *app) close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.metrics.Shutdown(ctx)
	}
	_ = a.log.Sync()
}

// login authenticates with the configured credentials. The token stays in
// the client's session store for the following requests.
func (a *app) login(ctx context.Context) error {
	creds := heroes.Credentials{Username: a.cfg.Username, Password: a.cfg.Password}
	if err := heroes.NewLogin(a.client).Execute(ctx, creds); err != nil {
		return fmt.Errorf("login as %q: %w", creds.Username, err)
	}
	a.log.Debug("logged in", zap.String("user", creds.Username))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}

	var cfg zap.Config
	if isatty.IsTerminal(os.Stderr.Fd()) {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func versionFields() []zap.Field {
	info := dragonball.GetVersionInfo()
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.String(k, info[k]))
	}
	return fields
}

func newHTTPClient(insecure bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for local fake servers
	}
	return &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func serveMetrics(addr string, registry *prometheus.Registry, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return srv
}
