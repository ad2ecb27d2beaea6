package application

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/DieOfCode/haproxy-statsd/internal/agent"
	"github.com/DieOfCode/haproxy-statsd/internal/configuration"
	"github.com/DieOfCode/haproxy-statsd/internal/stats"
	"github.com/DieOfCode/haproxy-statsd/internal/statsd"
	"github.com/DieOfCode/haproxy-statsd/internal/status"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	ConfigPath     string
	ConfigRequired bool
	Once           bool
	Output         io.Writer
}

// Run loads the configuration and reports stats until interrupted, or once
// when requested.
func Run(opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return RunContext(ctx, opts)
}

func RunContext(ctx context.Context, opts Options) error {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := configuration.Load(opts.ConfigPath, opts.ConfigRequired)
	if err != nil {
		logger.Error().Err(err).Msg("Configuration error")
		return err
	}
	level, _ := cfg.Level()
	logger = logger.Level(level)

	hostname, err := os.Hostname()
	if err != nil {
		err = errors.Wrap(err, "failed to resolve hostname")
		logger.Error().Err(err).Msg("Configuration error")
		return err
	}
	namespace := cfg.Namespace(hostname)

	filter, err := agent.NewFilter(cfg.IncludeProxies, cfg.ExcludeProxies)
	if err != nil {
		logger.Error().Err(err).Msg("Configuration error")
		return err
	}

	client, err := statsd.New(cfg.StatsdHost, cfg.StatsdPort)
	if err != nil {
		logger.Error().Err(err).Msg("Statsd initializing error")
		return err
	}
	defer client.Close()

	source := NewSource(cfg)

	tracker := status.NewTracker()
	metricsAgent := agent.NewMetricsAgent(
		logger.With().Str("component", "agent").Logger(),
		source,
		client,
		agent.Options{
			Namespace: namespace,
			Interval:  cfg.PollInterval(),
			Once:      opts.Once,
			Filter:    filter,
			Observer:  tracker,
		},
	)

	logger.Info().
		Str("namespace", namespace).
		Str("statsd", client.Addr()).
		Bool("socket", cfg.UseSocket()).
		Dur("interval", cfg.PollInterval()).
		Msg("Reporting haproxy stats")

	if opts.Once || cfg.StatusListen == "" {
		return metricsAgent.Run(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	statusLogger := logger.With().Str("component", "status").Logger()
	server := status.NewServer(&statusLogger, cfg.StatusListen, tracker)

	g.Go(func() error {
		return server.ListenAndServe(serverCtx)
	})
	g.Go(func() error {
		defer stopServer()
		return metricsAgent.Run(gctx)
	})

	err = g.Wait()
	logger.Info().Msg("Agent stopped")
	return err
}

// NewSource picks the stats socket when configured, the HTTP stats page
// otherwise.
func NewSource(cfg *configuration.Config) stats.Source {
	if cfg.UseSocket() {
		return stats.NewSocketSource(cfg.HAProxySocket, cfg.RequestTimeout())
	}
	return stats.NewHTTPSource(cfg.HAProxyURL, cfg.HAProxyUser, cfg.HAProxyPassword, cfg.RequestTimeout())
}
