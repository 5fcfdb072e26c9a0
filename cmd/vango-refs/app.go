package main

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/vango-refs/internal/config"
	"github.com/vango-dev/vango-refs/internal/fixture"
	"github.com/vango-dev/vango-refs/internal/tracing"
	"github.com/vango-dev/vango-refs/pkg/refs"
	"github.com/vango-dev/vango-refs/pkg/vango"
)

// app holds what every command shares once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v          *viper.Viper
	configPath string

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *refs.Metrics
	tracer   *tracing.Provider
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		v:      config.New(),
	}
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, ".", a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.stderr)

	a.registry = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = refs.NewMetrics(
			refs.WithRegistry(a.registry),
			refs.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	a.tracer, err = tracing.NewProvider(cfg.Trace, a.stderr)
	if err != nil {
		return err
	}

	a.logger.Debug("config loaded", "path", cfg.Path(), "metrics", cfg.Metrics.Enabled, "trace", a.tracer.Enabled())
	return nil
}

// run wraps a command body so the tracer is flushed whether or not the
// body fails. cobra skips post-run hooks after an error.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		return stderrors.Join(err, a.close(cmd.Context()))
	}
}

func (a *app) close(ctx context.Context) error {
	if a.tracer == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.tracer.Shutdown(ctx)
}

// mount loads the fixture at path and mounts its page.
func (a *app) mount(ctx context.Context, path string) (*vango.Instance, error) {
	tree, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}

	refOpts := []refs.Option{refs.WithTracer(a.tracer.Tracer())}
	if a.metrics != nil {
		refOpts = append(refOpts, refs.WithMetrics(a.metrics))
	}

	page, err := tree.Mount(ctx,
		vango.WithLogger(a.logger),
		vango.WithRefOptions(refOpts...),
	)
	if err != nil {
		return nil, err
	}
	a.logger.Info("page mounted", "fixture", path, "page", page.Name(), "children", len(page.Children()))
	return page, nil
}
