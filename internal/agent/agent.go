package agent

import (
	"context"
	"time"

	m "github.com/DieOfCode/haproxy-statsd/internal/metrics"
	"github.com/DieOfCode/haproxy-statsd/internal/stats"
	"github.com/rs/zerolog"
)

// Sink accepts one metric at a time.
type Sink interface {
	Send(metric m.Metric) error
}

// Observer is told about the outcome of every collection cycle.
type Observer interface {
	ObserveCycle(reported int, err error)
}

type Options struct {
	Namespace string
	Interval  time.Duration
	Once      bool
	Filter    *Filter
	Observer  Observer
}

type MetricsAgent struct {
	logger  zerolog.Logger
	source  stats.Source
	sink    Sink
	options Options
}

func NewMetricsAgent(logger zerolog.Logger, source stats.Source, sink Sink, options Options) *MetricsAgent {
	return &MetricsAgent{
		logger:  logger,
		source:  source,
		sink:    sink,
		options: options,
	}
}

// CollectMetrics fetches the current snapshot and turns it into metrics.
func (metricAgent *MetricsAgent) CollectMetrics(ctx context.Context) ([]m.Metric, error) {
	rows, err := metricAgent.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	rows = metricAgent.options.Filter.Apply(rows)

	return m.NormalizeAll(rows, metricAgent.options.Namespace), nil
}

// SendMetrics sends metrics in order and returns how many were sent. A
// failed packet is logged and skipped.
func (metricAgent *MetricsAgent) SendMetrics(metrics []m.Metric) int {
	sent := 0
	for _, metric := range metrics {
		if err := metricAgent.sink.Send(metric); err != nil {
			metricAgent.logger.Err(err).Str("metric", metric.Path).Msg("Failed to send metric")
			continue
		}
		sent++
	}
	return sent
}

// Report runs one collection cycle and returns the number of reported stats.
func (metricAgent *MetricsAgent) Report(ctx context.Context) (int, error) {
	metrics, err := metricAgent.CollectMetrics(ctx)
	if err != nil {
		metricAgent.observe(0, err)
		return 0, err
	}

	reported := metricAgent.SendMetrics(metrics)
	metricAgent.observe(reported, nil)

	return reported, nil
}

// Run reports immediately and then on every interval until ctx is done. In
// once mode it returns after the first cycle. An interrupted cycle is not an
// error.
func (metricAgent *MetricsAgent) Run(ctx context.Context) error {
	if metricAgent.options.Once {
		reported, err := metricAgent.Report(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			metricAgent.logger.Err(err).Msg("Failed to collect stats")
			return err
		}
		metricAgent.logger.Info().Int("reported", reported).Msgf("Reported %d stats", reported)
		return nil
	}

	ticker := time.NewTicker(metricAgent.options.Interval)
	defer ticker.Stop()

	for ctx.Err() == nil {
		metricAgent.cycle(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func (metricAgent *MetricsAgent) cycle(ctx context.Context) {
	reported, err := metricAgent.Report(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		metricAgent.logger.Err(err).Msg("Failed to collect stats")
		return
	}
	metricAgent.logger.Info().Int("reported", reported).Msgf("Reported %d stats", reported)
}

func (metricAgent *MetricsAgent) observe(reported int, err error) {
	if metricAgent.options.Observer != nil {
		metricAgent.options.Observer.ObserveCycle(reported, err)
	}
}
