package status

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot is the JSON view of the latest collection cycles.
type Snapshot struct {
	Cycles       int64     `json:"cycles"`
	Errors       int64     `json:"errors"`
	LastReported int       `json:"last_reported"`
	LastCycle    time.Time `json:"last_cycle"`
	LastError    string    `json:"last_error,omitempty"`
}

// Tracker records cycle outcomes for the status endpoints.
type Tracker struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time

	registry     *prometheus.Registry
	cycles       prometheus.Counter
	cycleErrors  prometheus.Counter
	reported     prometheus.Counter
	lastReported prometheus.Gauge
}

func NewTracker() *Tracker {
	t := &Tracker{
		now:      time.Now,
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "haproxy_statsd_cycles_total",
			Help: "Number of collection cycles run.",
		}),
		cycleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "haproxy_statsd_cycle_errors_total",
			Help: "Number of collection cycles that failed to read stats.",
		}),
		reported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "haproxy_statsd_stats_reported_total",
			Help: "Number of stats sent to statsd.",
		}),
		lastReported: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "haproxy_statsd_last_reported_stats",
			Help: "Number of stats sent by the latest successful cycle.",
		}),
	}
	t.registry.MustRegister(t.cycles, t.cycleErrors, t.reported, t.lastReported)
	return t
}

func (t *Tracker) ObserveCycle(reported int, err error) {
	t.cycles.Inc()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.snapshot.Cycles++
	t.snapshot.LastCycle = t.now()
	if err != nil {
		t.cycleErrors.Inc()
		t.snapshot.Errors++
		t.snapshot.LastError = err.Error()
		return
	}

	t.reported.Add(float64(reported))
	t.lastReported.Set(float64(reported))
	t.snapshot.LastReported = reported
	t.snapshot.LastError = ""
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot
}

func (t *Tracker) Registry() *prometheus.Registry {
	return t.registry
}
